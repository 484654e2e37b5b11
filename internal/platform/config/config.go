package config

import (
	"log"
	"strings"
	"time"

	"github.com/SscSPs/dual_price_app/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	MigrationsPath string
	RedisAddr      string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	// AdminAPIKeyHash is the bcrypt hash of the x-api-key accepted for admin calls.
	AdminAPIKeyHash string

	MigrationBatchSize      int
	MigrationStrictFinalize bool
	MigrationReplayGuard    bool

	PriceCacheTTL time.Duration
	RateLimit     string
	// CORSAllowedOrigins lists storefront origins allowed to call the price routes from the browser.
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "dual-price-app")
	v.SetDefault("ADMIN_API_KEY_HASH", "")
	v.SetDefault("MIGRATION_BATCH_SIZE", domain.DefaultBatchSize)
	v.SetDefault("MIGRATION_STRICT_FINALIZE", false)
	v.SetDefault("MIGRATION_REPLAY_GUARD", false)
	v.SetDefault("PRICE_CACHE_TTL", "10m")
	v.SetDefault("RATE_LIMIT", "60-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")

	// Actual environment variables override .env values and defaults
	v.AutomaticEnv()

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		DatabaseURL:             v.GetString("PGSQL_URL"),
		MigrationsPath:          v.GetString("MIGRATIONS_PATH"),
		RedisAddr:               v.GetString("REDIS_ADDR"),
		Port:                    v.GetString("PORT"),
		IsProduction:            v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:           v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:               v.GetString("JWT_SECRET"),
		JWTIssuer:               v.GetString("JWT_ISSUER"),
		AdminAPIKeyHash:         v.GetString("ADMIN_API_KEY_HASH"),
		MigrationBatchSize:      v.GetInt("MIGRATION_BATCH_SIZE"),
		MigrationStrictFinalize: v.GetBool("MIGRATION_STRICT_FINALIZE"),
		MigrationReplayGuard:    v.GetBool("MIGRATION_REPLAY_GUARD"),
		RateLimit:               v.GetString("RATE_LIMIT"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := v.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	if cfg.MigrationBatchSize <= 0 {
		log.Printf("Warning: Invalid value for MIGRATION_BATCH_SIZE (%d). Defaulting to %d.\n", cfg.MigrationBatchSize, domain.DefaultBatchSize)
		cfg.MigrationBatchSize = domain.DefaultBatchSize
	}

	ttlStr := v.GetString("PRICE_CACHE_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl <= 0 {
		ttl = 10 * time.Minute
		log.Printf("Warning: Invalid value for PRICE_CACHE_TTL ('%s'). Defaulting to %s.\n", ttlStr, ttl.String())
	}
	cfg.PriceCacheTTL = ttl

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if cfg.RedisAddr == "" {
		log.Println("Warning: REDIS_ADDR not set. Product price lookups will not be cached.")
	}
	if cfg.AdminAPIKeyHash == "" {
		log.Println("Warning: ADMIN_API_KEY_HASH not set. Admin API key authentication is disabled.")
	}

	return cfg
}
