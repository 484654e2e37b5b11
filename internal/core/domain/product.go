package domain

import "github.com/shopspring/decimal"

// ProductType distinguishes plain products, variable parents and their variations.
type ProductType string

const (
	ProductSimple    ProductType = "simple"
	ProductVariable  ProductType = "variable"
	ProductVariation ProductType = "variation"
)

// Product is a priced catalog entity. Nil prices are unset.
type Product struct {
	ProductID    int64            `json:"productId"`
	ParentID     *int64           `json:"parentId,omitempty"`
	Type         ProductType      `json:"type"`
	Name         string           `json:"name"`
	RegularPrice *decimal.Decimal `json:"regularPrice,omitempty"`
	SalePrice    *decimal.Decimal `json:"salePrice,omitempty"`
	// MinPrice and MaxPrice cache the variation price range of a variable product.
	MinPrice   *decimal.Decimal `json:"minPrice,omitempty"`
	MaxPrice   *decimal.Decimal `json:"maxPrice,omitempty"`
	Variations []int64          `json:"variations,omitempty"`
	AuditFields
}

// IsVariable reports whether the product owns variations.
func (p Product) IsVariable() bool {
	return p.Type == ProductVariable
}

// IsOnSale reports whether a sale price below the regular price is set.
func (p Product) IsOnSale() bool {
	if p.SalePrice == nil || p.SalePrice.IsZero() {
		return false
	}
	if p.RegularPrice == nil {
		return true
	}
	return p.SalePrice.LessThan(*p.RegularPrice)
}

// ActivePrice is the sale price when on sale, the regular price otherwise.
func (p Product) ActivePrice() (decimal.Decimal, bool) {
	if p.IsOnSale() {
		return *p.SalePrice, true
	}
	if p.RegularPrice != nil {
		return *p.RegularPrice, true
	}
	return decimal.Zero, false
}
