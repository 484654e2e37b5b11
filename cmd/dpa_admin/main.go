// Command dpa_admin issues credentials for the dual price admin API.
//
//	dpa_admin apikey              prints a fresh admin API key and its ADMIN_API_KEY_HASH
//	dpa_admin token [-sub] [-ttl] prints a bearer token signed with JWT_SECRET
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/dual_price_app/internal/core/domain"
	"github.com/SscSPs/dual_price_app/internal/platform/config"
	"github.com/SscSPs/dual_price_app/internal/utils"
)

const apiKeyBytes = 32

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := run(os.Args[1:], cfg, os.Stdout); err != nil {
		slog.Error("dpa_admin failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(args []string, cfg *config.Config, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: dpa_admin apikey | token [-sub name] [-ttl duration]")
	}

	switch args[0] {
	case "apikey":
		key, err := utils.GenerateSecureRandomString(apiKeyBytes)
		if err != nil {
			return err
		}
		hash, err := utils.HashAPIKey(key)
		if err != nil {
			return fmt.Errorf("failed to hash api key: %w", err)
		}
		fmt.Fprintf(out, "API key: %s\nADMIN_API_KEY_HASH=%s\n", key, hash)
		return nil

	case "token":
		fs := flag.NewFlagSet("token", flag.ContinueOnError)
		fs.SetOutput(out)
		sub := fs.String("sub", "admin", "token subject")
		ttl := fs.Duration("ttl", cfg.JWTExpiryDuration, "token lifetime")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *ttl <= 0 {
			return fmt.Errorf("ttl must be positive, got %s", *ttl)
		}
		token, err := utils.GenerateJWT(*sub, []string{domain.CapabilityManageOptions}, cfg.JWTSecret, *ttl, cfg.JWTIssuer)
		if err != nil {
			return fmt.Errorf("failed to sign token: %w", err)
		}
		fmt.Fprintf(out, "%s\n", token)
		slog.Info("Issued admin token", slog.String("sub", *sub), slog.Time("expires_at", time.Now().Add(*ttl)))
		return nil
	}

	return fmt.Errorf("unknown command %q", args[0])
}
