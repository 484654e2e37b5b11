package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/dual_price_app/internal/apperrors"
	"github.com/SscSPs/dual_price_app/internal/core/domain"
	portsrepo "github.com/SscSPs/dual_price_app/internal/core/ports/repositories"
	"github.com/SscSPs/dual_price_app/internal/models"
	"github.com/SscSPs/dual_price_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// topLevelFilter selects simple and variable products in any status.
const topLevelFilter = `parent_id IS NULL AND product_type IN ('simple', 'variable')`

type PgxCatalogRepository struct {
	BaseRepository
}

// newPgxCatalogRepository creates a new repository for priced catalog entities.
func newPgxCatalogRepository(pool *pgxpool.Pool) *PgxCatalogRepository {
	return &PgxCatalogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CatalogRepositoryFacade = (*PgxCatalogRepository)(nil)

// CountProducts counts top-level products.
func (r *PgxCatalogRepository) CountProducts(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM products WHERE ` + topLevelFilter + `;`

	var count int
	if err := r.Pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// ListProductIDs returns a page of top-level product IDs in ascending order.
func (r *PgxCatalogRepository) ListProductIDs(ctx context.Context, offset, limit int) ([]int64, error) {
	query := `
		SELECT product_id
		FROM products
		WHERE ` + topLevelFilter + `
		ORDER BY product_id ASC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list product ids: %w", err)
	}
	defer rows.Close()

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("failed to scan product ids: %w", err)
	}
	return ids, nil
}

// FindProductByID retrieves a product or variation by ID.
func (r *PgxCatalogRepository) FindProductByID(ctx context.Context, productID int64) (*domain.Product, error) {
	query := `
		SELECT product_id, parent_id, product_type, status, name,
		       regular_price, sale_price, min_price, max_price,
		       created_at, last_updated_at
		FROM products
		WHERE product_id = $1;
	`
	var m models.Product
	err := r.Pool.QueryRow(ctx, query, productID).Scan(
		&m.ProductID,
		&m.ParentID,
		&m.ProductType,
		&m.Status,
		&m.Name,
		&m.RegularPrice,
		&m.SalePrice,
		&m.MinPrice,
		&m.MaxPrice,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product %d: %w", productID, err)
	}

	var variations []int64
	if m.ProductType == string(domain.ProductVariable) {
		variations, err = r.listVariationIDs(ctx, productID)
		if err != nil {
			return nil, err
		}
	}

	product := mapping.ToDomainProduct(m, variations)
	return &product, nil
}

func (r *PgxCatalogRepository) listVariationIDs(ctx context.Context, parentID int64) ([]int64, error) {
	query := `
		SELECT product_id
		FROM products
		WHERE parent_id = $1 AND product_type = 'variation'
		ORDER BY product_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list variations of product %d: %w", parentID, err)
	}
	defer rows.Close()

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("failed to scan variations of product %d: %w", parentID, err)
	}
	return ids, nil
}

// SaveProduct persists the regular and sale price of a product or variation.
func (r *PgxCatalogRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	m.LastUpdatedAt = time.Now().UTC()

	query := `
		UPDATE products
		SET regular_price = $2, sale_price = $3, last_updated_at = $4
		WHERE product_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.ProductID, m.RegularPrice, m.SalePrice, m.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save product %d: %w", m.ProductID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SyncVariablePriceRange recomputes min_price and max_price of a variable
// product from the active price of its variations.
func (r *PgxCatalogRepository) SyncVariablePriceRange(ctx context.Context, parentID int64) error {
	query := `
		UPDATE products p
		SET min_price = r.min_price, max_price = r.max_price, last_updated_at = $2
		FROM (
			SELECT MIN(active) AS min_price, MAX(active) AS max_price
			FROM (
				SELECT CASE
					WHEN sale_price > 0 AND (regular_price IS NULL OR sale_price < regular_price) THEN sale_price
					ELSE regular_price
				END AS active
				FROM products
				WHERE parent_id = $1 AND product_type = 'variation'
			) v
		) r
		WHERE p.product_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, parentID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to sync price range of product %d: %w", parentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
