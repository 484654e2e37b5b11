package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"

	portsrepo "github.com/SscSPs/dual_price_app/internal/core/ports/repositories"
	"github.com/SscSPs/dual_price_app/internal/core/services"
	"github.com/SscSPs/dual_price_app/internal/handlers"
	"github.com/SscSPs/dual_price_app/internal/middleware"
	"github.com/SscSPs/dual_price_app/internal/observability"
	"github.com/SscSPs/dual_price_app/internal/platform/cache"
	"github.com/SscSPs/dual_price_app/internal/platform/config"
	rediscache "github.com/SscSPs/dual_price_app/internal/repositories/cache"
	"github.com/SscSPs/dual_price_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/dual_price_app/pkg/database"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Dual Price API
// @version 1.0
// @description BGN/EUR dual price display and catalog migration for a Bulgarian store.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Redis is optional, prices are read straight from Postgres without it
	var priceCache portsrepo.PriceCache
	if cfg.RedisAddr != "" {
		redisClient, err := cache.New(context.Background(), cfg.RedisAddr)
		if err != nil {
			logger.Error("Failed to connect to Redis", slog.String("addr", cfg.RedisAddr), slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.Error("Error closing Redis client", slog.String("error", cerr.Error()))
			}
		}()
		priceCache = rediscache.NewRedisPriceCache(redisClient, cfg.PriceCacheTTL)
		logger.Info("Price cache enabled", slog.String("addr", cfg.RedisAddr), slog.Duration("ttl", cfg.PriceCacheTTL))
	}

	metrics := observability.NewMetrics(nil)
	repos := pgsql.NewRepositoryProvider(dbPool, priceCache)
	serviceContainer := services.NewServiceContainer(cfg, repos, metrics)

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, rateLimiter)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending schema migrations from cfg.MigrationsPath.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	// Open a temporary standard sql.DB connection for migrations
	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}

	// Check for dirty migrations after running Up.
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
