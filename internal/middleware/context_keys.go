package middleware

import (
	"context"
	"slices"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey       = contextKey("userID")
	capabilitiesKey = contextKey("capabilities")

	// authMethodKey is set in the Gin context once a request is authenticated.
	authMethodKey = "authMethod"
)

// WithPrincipal returns a copy of ctx carrying the authenticated subject and its capabilities.
func WithPrincipal(ctx context.Context, userID string, capabilities []string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, capabilitiesKey, capabilities)
}

// GetUserIDFromCtx retrieves the authenticated subject from a standard context.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return GetUserIDFromCtx(c.Request.Context())
}

// CapabilitiesFromCtx returns the capabilities granted to the caller.
func CapabilitiesFromCtx(ctx context.Context) []string {
	caps, _ := ctx.Value(capabilitiesKey).([]string)
	return caps
}

// HasCapability reports whether the caller was granted capability.
func HasCapability(ctx context.Context, capability string) bool {
	return slices.Contains(CapabilitiesFromCtx(ctx), capability)
}
