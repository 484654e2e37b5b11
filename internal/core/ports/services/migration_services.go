package services

import (
	"context"

	"github.com/SscSPs/dual_price_app/internal/core/domain"
)

// MigrationReaderSvc defines read operations for the catalog migration
type MigrationReaderSvc interface {
	// Status returns the persisted migration state. Status() on the result
	// derives IDLE, RUNNING, ERROR_PAUSED or COMPLETE.
	Status(ctx context.Context) (*domain.MigrationState, error)
}

// MigrationRunnerSvc defines the operations that drive a BGN to EUR catalog migration.
// Every operation requires the manage_options capability.
type MigrationRunnerSvc interface {
	// Start counts the products to convert and records a fresh migration.
	Start(ctx context.Context) (int, error)

	// ProcessBatch converts the next batch of products starting at offset.
	ProcessBatch(ctx context.Context, offset int) (*domain.BatchResult, error)

	// Resume continues from the persisted offset.
	Resume(ctx context.Context) (*domain.BatchResult, error)

	// Finalize switches the store currency to EUR and clears migration state.
	Finalize(ctx context.Context) error

	// Reset clears migration state without touching prices or the store currency.
	Reset(ctx context.Context) error
}

// MigrationSvcFacade combines all migration-related service interfaces
type MigrationSvcFacade interface {
	MigrationReaderSvc
	MigrationRunnerSvc
}
