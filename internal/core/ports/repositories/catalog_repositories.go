package repositories

import (
	"context"

	"github.com/SscSPs/dual_price_app/internal/core/domain"
)

// CatalogReader defines read operations for priced catalog entities
type CatalogReader interface {
	// CountProducts counts top-level products (simple and variable) in any status.
	CountProducts(ctx context.Context) (int, error)

	// ListProductIDs returns top-level product IDs in ascending ID order.
	ListProductIDs(ctx context.Context, offset, limit int) ([]int64, error)

	// FindProductByID retrieves a product or variation. Variable products carry
	// their variation IDs.
	FindProductByID(ctx context.Context, productID int64) (*domain.Product, error)
}

// CatalogWriter defines write operations for priced catalog entities
type CatalogWriter interface {
	// SaveProduct persists the regular and sale price of a product or variation.
	SaveProduct(ctx context.Context, product domain.Product) error

	// SyncVariablePriceRange recomputes the min/max price of a variable product
	// from its variations.
	SyncVariablePriceRange(ctx context.Context, parentID int64) error
}

// CatalogRepositoryFacade combines all catalog-related repository interfaces
type CatalogRepositoryFacade interface {
	CatalogReader
	CatalogWriter
}
