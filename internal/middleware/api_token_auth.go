package middleware

import (
	"log/slog"

	"github.com/SscSPs/dual_price_app/internal/core/domain"
	"github.com/SscSPs/dual_price_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// apiKeyUserID is the subject recorded for requests authenticated by the admin API key.
const apiKeyUserID = "api-key"

// APIKeyAuth authenticates requests carrying the admin key in the x-api-key
// header against its bcrypt hash. Authenticated requests are granted
// manage_options and skip JWT auth. Requests without a valid key continue
// unauthenticated so AuthMiddleware can still accept a bearer token.
func APIKeyAuth(keyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("x-api-key")
		if key == "" || keyHash == "" {
			c.Next()
			return
		}

		logger := GetLoggerFromCtx(c.Request.Context())
		if !utils.CheckAPIKeyHash(key, keyHash) {
			logger.Warn("Invalid admin API key")
			c.Next()
			return
		}

		ctx := WithPrincipal(c.Request.Context(), apiKeyUserID, []string{domain.CapabilityManageOptions})
		c.Request = c.Request.WithContext(WithLogger(ctx, logger.With(slog.String("user_id", apiKeyUserID))))
		c.Set(authMethodKey, "api_key")
		c.Next()
	}
}
