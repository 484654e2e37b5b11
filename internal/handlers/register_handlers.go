package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/dual_price_app/internal/core/ports/services"
	"github.com/SscSPs/dual_price_app/internal/middleware"
	"github.com/SscSPs/dual_price_app/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// rateLimiter may be nil, in which case API requests are not throttled.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
) {
	// Storefront pages call the price routes from the browser
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: cfg.CORSAllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost},
			AllowHeaders: []string{"Origin", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}))
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupAPIV1Routes(r, cfg, services, rateLimiter)
}

// setupAPIV1Routes configures the /api/v1 group. Storefront price routes are
// public, settings and migration routes need an admin API key or a bearer token.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
) {
	v1 := r.Group("/api/v1")
	if rateLimiter != nil {
		v1.Use(middleware.RateLimit(rateLimiter))
	}

	registerPriceRoutes(v1, service.PriceDisplay)

	admin := v1.Group("", middleware.APIKeyAuth(cfg.AdminAPIKeyHash), middleware.AuthMiddleware(cfg.JWTSecret))
	registerSettingsRoutes(admin, service.Settings)
	registerMigrationRoutes(admin, service.Migration)
}
