package pgsql

import (
	portsrepo "github.com/SscSPs/dual_price_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the Postgres repositories. priceCache may be nil
// when no Redis is configured.
func NewRepositoryProvider(dbPool *pgxpool.Pool, priceCache portsrepo.PriceCache) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		SettingsRepo: newPgxSettingsRepository(dbPool),
		CatalogRepo:  newPgxCatalogRepository(dbPool),
		PriceCache:   priceCache,
	}
}
