package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CapabilityClaims are the JWT claims accepted by the admin API. Caps lists the
// capabilities granted to the subject, e.g. "manage_options".
type CapabilityClaims struct {
	Caps []string `json:"caps,omitempty"`
	jwt.RegisteredClaims
}

// GenerateJWT generates a new JWT token with the given parameters.
func GenerateJWT(userID string, caps []string, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := CapabilityClaims{
		Caps: caps,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a JWT token string, validates its signature and standard claims.
// It returns the claims if the token is valid, or an error otherwise.
func ParseAndValidateJWT(tokenString string, secretKey string) (*CapabilityClaims, error) {
	claims := &CapabilityClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err // expired, bad signature, malformed...
	}

	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	return claims, nil
}
