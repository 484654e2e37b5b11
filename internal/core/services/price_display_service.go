package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/dual_price_app/internal/apperrors"
	"github.com/SscSPs/dual_price_app/internal/core/domain"
	portsrepo "github.com/SscSPs/dual_price_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/dual_price_app/internal/core/ports/services"
	"github.com/SscSPs/dual_price_app/internal/dto"
	"github.com/SscSPs/dual_price_app/internal/observability"
	"github.com/SscSPs/dual_price_app/internal/utils/conversion"
	"github.com/SscSPs/dual_price_app/internal/utils/pricetext"
	"github.com/shopspring/decimal"
	"golang.org/x/net/html"
)

// DefaultBlockPriceClass marks amount elements in block-rendered cart and checkout markup.
const DefaultBlockPriceClass = "wc-block-formatted-money-amount"

// priceDisplayService implements the PriceDisplaySvcFacade interface
type priceDisplayService struct {
	BaseService
	settings portssvc.SettingsReaderSvc
	catalog  portsrepo.CatalogReader
	cache    portsrepo.PriceCache
	engine   *conversion.Engine
	metrics  *observability.Metrics
}

// PriceDisplayServiceOption is a functional option for configuring the price display service
type PriceDisplayServiceOption func(*priceDisplayService)

// WithPriceCache adds the cache used for product price lookups
func WithPriceCache(cache portsrepo.PriceCache) PriceDisplayServiceOption {
	return func(s *priceDisplayService) {
		s.cache = cache
	}
}

// WithDisplayMetrics adds Prometheus instrumentation
func WithDisplayMetrics(metrics *observability.Metrics) PriceDisplayServiceOption {
	return func(s *priceDisplayService) {
		s.metrics = metrics
	}
}

// WithDisplayEngine replaces the default conversion engine
func WithDisplayEngine(engine *conversion.Engine) PriceDisplayServiceOption {
	return func(s *priceDisplayService) {
		s.engine = engine
	}
}

// NewPriceDisplayService creates a new price display service with the provided options
func NewPriceDisplayService(settings portssvc.SettingsReaderSvc, catalog portsrepo.CatalogReader, options ...PriceDisplayServiceOption) portssvc.PriceDisplaySvcFacade {
	svc := &priceDisplayService{
		settings: settings,
		catalog:  catalog,
		engine:   conversion.NewEngine(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PriceDisplaySvcFacade = (*priceDisplayService)(nil)

func (s *priceDisplayService) ShouldDisplay(ctx context.Context) (bool, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return false, err
	}
	return settings.DisplayActive(), nil
}

// convertFunc converts out of the store currency using the configured rounding.
func (s *priceDisplayService) convertFunc(settings *domain.StoreSettings) pricetext.ConvertFunc {
	primary, rounding := settings.StoreCurrency, settings.Rounding
	return func(amount decimal.Decimal) decimal.Decimal {
		return s.engine.Convert(primary, amount, rounding)
	}
}

func (s *priceDisplayService) Annotate(ctx context.Context, req dto.AnnotateRequest) (string, bool, error) {
	if !req.Context.Valid() {
		return "", false, apperrors.NewValidationError(fmt.Sprintf("unknown display context %q", req.Context))
	}
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return "", false, err
	}
	if !settings.DisplayActive() || !settings.ShowContext(req.Context) {
		s.metrics.Annotated(string(req.Context), false)
		return req.Fragment, false, nil
	}

	annotator := pricetext.NewAnnotator(settings.StoreCurrency, settings.Display, s.convertFunc(settings))

	if req.Blocks {
		class := req.PriceClass
		if class == "" {
			class = DefaultBlockPriceClass
		}
		out, changed, err := annotator.AnnotateHTML(req.Fragment, func(n *html.Node) bool {
			return pricetext.HasClass(n, class)
		})
		if err != nil {
			return "", false, apperrors.NewValidationError(err.Error())
		}
		s.metrics.Annotated(string(req.Context), changed > 0)
		return out, changed > 0, nil
	}

	in := pricetext.Input{
		Regular: req.RegularAmount,
		Sale:    req.SaleAmount,
		Min:     req.MinAmount,
		Max:     req.MaxAmount,
	}
	if req.Amount != nil {
		in.Amount = *req.Amount
	} else if needsAmount(req.Context) {
		amount, ok := pricetext.ExtractAmount(req.Fragment, settings.StoreCurrency)
		if !ok {
			s.LogDebug(ctx, "No amount found in fragment", slog.String("context", string(req.Context)))
			s.metrics.Annotated(string(req.Context), false)
			return req.Fragment, false, nil
		}
		in.Amount = amount
	}

	out, err := annotator.Annotate(req.Fragment, req.Context, in)
	if err != nil {
		return "", false, apperrors.NewValidationError(err.Error())
	}
	changed := out != req.Fragment
	s.metrics.Annotated(string(req.Context), changed)
	return out, changed, nil
}

func needsAmount(ctx domain.AnnotationContext) bool {
	return ctx != domain.ContextSalePrice && ctx != domain.ContextVariableProduct
}

func (s *priceDisplayService) ProductPrice(ctx context.Context, productID int64) (*domain.ProductPrice, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.Supported {
		return nil, apperrors.NewPreconditionError(fmt.Sprintf("unsupported store currency %q", settings.StoreCurrency))
	}
	if !settings.DisplayActive() {
		return nil, apperrors.NewPreconditionError("dual price display is not active")
	}

	if s.cache == nil {
		return s.loadProductPrice(ctx, settings, productID)
	}

	missed := false
	var price domain.ProductPrice
	key := fmt.Sprintf("price:%s:%s:%d", settings.StoreCurrency, settings.Rounding, productID)
	err = s.cache.FetchJSON(ctx, key, &price, func(ctx context.Context) (any, error) {
		missed = true
		return s.loadProductPrice(ctx, settings, productID)
	})
	if err != nil {
		return nil, err
	}
	if missed {
		s.metrics.CacheLookup("miss")
	} else {
		s.metrics.CacheLookup("hit")
	}
	return &price, nil
}

func (s *priceDisplayService) loadProductPrice(ctx context.Context, settings *domain.StoreSettings, productID int64) (*domain.ProductPrice, error) {
	product, err := s.catalog.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	amount, ok := product.ActivePrice()
	if product.IsVariable() && product.MinPrice != nil {
		amount, ok = *product.MinPrice, true
	}
	if !ok {
		return nil, fmt.Errorf("%w: product %d has no price", apperrors.ErrNotFound, productID)
	}

	primary := settings.StoreCurrency
	return &domain.ProductPrice{
		ProductID:         product.ProductID,
		Price:             amount.StringFixed(2),
		Currency:          primary,
		SecondaryPrice:    s.engine.Convert(primary, amount, settings.Rounding).StringFixed(2),
		SecondaryCurrency: primary.Other(),
		OnSale:            product.IsOnSale(),
	}, nil
}

func (s *priceDisplayService) LegacyOrderAmount(ctx context.Context, orderCurrency domain.CurrencyCode, amount decimal.Decimal, discount bool) (string, bool, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return "", false, err
	}
	// only lev orders viewed after the store moved to euro are relabelled
	if settings.StoreCurrency != domain.EUR || orderCurrency != domain.BGN || amount.IsZero() {
		return "", false, nil
	}
	return pricetext.RelabelLegacy(amount, discount), true, nil
}
