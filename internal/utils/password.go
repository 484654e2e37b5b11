package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashAPIKey hashes a plaintext admin API key using bcrypt.
func HashAPIKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckAPIKeyHash compares a plaintext admin API key with a bcrypt hash.
func CheckAPIKeyHash(key, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}
