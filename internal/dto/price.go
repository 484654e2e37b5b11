package dto

import (
	"github.com/SscSPs/dual_price_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AnnotateRequest defines a price fragment to annotate with the secondary currency.
// Amounts are in the store currency.
type AnnotateRequest struct {
	Fragment      string                   `json:"fragment" binding:"required,max=65536"`
	Context       domain.AnnotationContext `json:"context" binding:"required"`
	Amount        *decimal.Decimal         `json:"amount"`
	RegularAmount *decimal.Decimal         `json:"regularAmount"`
	SaleAmount    *decimal.Decimal         `json:"saleAmount"`
	MinAmount     *decimal.Decimal         `json:"minAmount"`
	MaxAmount     *decimal.Decimal         `json:"maxAmount"`
	// Blocks marks client-rendered markup. Amounts are then read from the
	// elements carrying PriceClass instead of the request.
	Blocks     bool   `json:"blocks"`
	PriceClass string `json:"priceClass" binding:"max=128"`
}

// AnnotateResponse carries the annotated fragment.
type AnnotateResponse struct {
	HTML    string `json:"html"`
	Changed bool   `json:"changed"`
}

// LegacyOrderRequest defines an order amount recorded before the store switched currency.
type LegacyOrderRequest struct {
	OrderCurrency string          `json:"orderCurrency" binding:"required,len=3"`
	Amount        decimal.Decimal `json:"amount"`
	Discount      bool            `json:"discount"`
}

// LegacyOrderResponse carries the relabelled amount, if any.
type LegacyOrderResponse struct {
	HTML       string `json:"html"`
	Relabelled bool   `json:"relabelled"`
}

// ProductPriceResponse defines a product price in both currencies. The secondary
// amount is repeated under price_eur or price_bgn for storefront API clients.
type ProductPriceResponse struct {
	ProductID         int64               `json:"productId"`
	Price             string              `json:"price"`
	Currency          domain.CurrencyCode `json:"currency"`
	SecondaryPrice    string              `json:"secondaryPrice"`
	SecondaryCurrency domain.CurrencyCode `json:"secondaryCurrency"`
	OnSale            bool                `json:"onSale"`
	PriceEUR          *string             `json:"price_eur,omitempty"`
	PriceBGN          *string             `json:"price_bgn,omitempty"`
}

// ToProductPriceResponse converts a domain.ProductPrice to ProductPriceResponse DTO
func ToProductPriceResponse(price *domain.ProductPrice) ProductPriceResponse {
	res := ProductPriceResponse{
		ProductID:         price.ProductID,
		Price:             price.Price,
		Currency:          price.Currency,
		SecondaryPrice:    price.SecondaryPrice,
		SecondaryCurrency: price.SecondaryCurrency,
		OnSale:            price.OnSale,
	}
	secondary := price.SecondaryPrice
	if price.SecondaryCurrency == domain.EUR {
		res.PriceEUR = &secondary
	} else {
		res.PriceBGN = &secondary
	}
	return res
}

// DisplayStatusResponse reports whether secondary amounts are rendered.
type DisplayStatusResponse struct {
	Display bool `json:"display"`
}
