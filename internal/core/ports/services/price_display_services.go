package services

import (
	"context"

	"github.com/SscSPs/dual_price_app/internal/core/domain"
	"github.com/SscSPs/dual_price_app/internal/dto"
	"github.com/shopspring/decimal"
)

// PriceDisplaySvcFacade defines the storefront dual price operations
type PriceDisplaySvcFacade interface {
	// ShouldDisplay reports whether secondary amounts are rendered for the store.
	ShouldDisplay(ctx context.Context) (bool, error)

	// Annotate adds the secondary amount to a fragment. Fragments come back
	// unchanged when display is off, the context is toggled off or they are
	// already annotated.
	Annotate(ctx context.Context, req dto.AnnotateRequest) (string, bool, error)

	// ProductPrice returns the active price of a product in both currencies.
	ProductPrice(ctx context.Context, productID int64) (*domain.ProductPrice, error)

	// LegacyOrderAmount relabels an amount of an order placed in lev after the
	// store switched to euro. The amount is not converted.
	LegacyOrderAmount(ctx context.Context, orderCurrency domain.CurrencyCode, amount decimal.Decimal, discount bool) (string, bool, error)
}
