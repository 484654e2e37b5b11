package services

import (
	portsrepo "github.com/SscSPs/dual_price_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/dual_price_app/internal/core/ports/services"
	"github.com/SscSPs/dual_price_app/internal/observability"
	"github.com/SscSPs/dual_price_app/internal/platform/config"
	"github.com/SscSPs/dual_price_app/internal/utils/conversion"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, metrics *observability.Metrics) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}
	authorizer := NewCapabilityAuthorizer()
	engine := conversion.NewEngine()

	// Settings first since price display reads through it
	container.Settings = NewSettingsService(
		repos.SettingsRepo,
		WithSettingsAuthorizer(authorizer),
	)

	displayOpts := []PriceDisplayServiceOption{
		WithDisplayMetrics(metrics),
		WithDisplayEngine(engine),
	}
	if repos.PriceCache != nil {
		displayOpts = append(displayOpts, WithPriceCache(repos.PriceCache))
	}
	container.PriceDisplay = NewPriceDisplayService(container.Settings, repos.CatalogRepo, displayOpts...)

	migrationOpts := []MigrationServiceOption{
		WithMigrationAuthorizer(authorizer),
		WithBatchSize(cfg.MigrationBatchSize),
		WithStrictFinalize(cfg.MigrationStrictFinalize),
		WithReplayGuard(cfg.MigrationReplayGuard),
		WithMigrationMetrics(metrics),
		WithMigrationEngine(engine),
	}
	if repos.PriceCache != nil {
		migrationOpts = append(migrationOpts, WithMigrationPriceCache(repos.PriceCache))
	}
	container.Migration = NewMigrationService(repos.CatalogRepo, repos.SettingsRepo, migrationOpts...)

	return container
}
