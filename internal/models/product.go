package models

import (
	"github.com/shopspring/decimal"
)

// Product represents a row of the products table. Variations reference their
// variable parent through ParentID.
type Product struct {
	ProductID    int64            `db:"product_id"`
	ParentID     *int64           `db:"parent_id"` // Nullable
	ProductType  string           `db:"product_type"`
	Status       string           `db:"status"`
	Name         string           `db:"name"`
	RegularPrice *decimal.Decimal `db:"regular_price"` // Nullable
	SalePrice    *decimal.Decimal `db:"sale_price"`    // Nullable
	MinPrice     *decimal.Decimal `db:"min_price"`
	MaxPrice     *decimal.Decimal `db:"max_price"`
	AuditFields
}
