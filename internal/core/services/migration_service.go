package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/SscSPs/dual_price_app/internal/apperrors"
	"github.com/SscSPs/dual_price_app/internal/core/domain"
	portsrepo "github.com/SscSPs/dual_price_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/dual_price_app/internal/core/ports/services"
	"github.com/SscSPs/dual_price_app/internal/observability"
	"github.com/SscSPs/dual_price_app/internal/utils/conversion"
	"github.com/shopspring/decimal"
)

// migrationService implements the MigrationSvcFacade interface. It rewrites
// catalog prices from lev to euro in externally driven batches and keeps its
// resume cursor in the settings store after every product.
type migrationService struct {
	BaseService
	catalog        portsrepo.CatalogRepositoryFacade
	settings       portsrepo.SettingsRepositoryFacade
	cache          portsrepo.PriceCache
	engine         *conversion.Engine
	metrics        *observability.Metrics
	batchSize      int
	strictFinalize bool
	replayGuard    bool
	now            func() time.Time
}

// MigrationServiceOption is a functional option for configuring the migration service
type MigrationServiceOption func(*migrationService)

// WithMigrationAuthorizer adds the authorizer guarding every migration operation
func WithMigrationAuthorizer(authorizer portssvc.Authorizer) MigrationServiceOption {
	return func(s *migrationService) {
		s.Authorizer = authorizer
	}
}

// WithBatchSize overrides the number of products per batch
func WithBatchSize(size int) MigrationServiceOption {
	return func(s *migrationService) {
		if size > 0 {
			s.batchSize = size
		}
	}
}

// WithStrictFinalize makes Finalize refuse to run before every product was visited
func WithStrictFinalize(strict bool) MigrationServiceOption {
	return func(s *migrationService) {
		s.strictFinalize = strict
	}
}

// WithReplayGuard makes ProcessBatch refuse offsets behind the persisted cursor
func WithReplayGuard(enabled bool) MigrationServiceOption {
	return func(s *migrationService) {
		s.replayGuard = enabled
	}
}

// WithMigrationPriceCache adds the cache invalidated on finalize
func WithMigrationPriceCache(cache portsrepo.PriceCache) MigrationServiceOption {
	return func(s *migrationService) {
		s.cache = cache
	}
}

// WithMigrationMetrics adds Prometheus instrumentation
func WithMigrationMetrics(metrics *observability.Metrics) MigrationServiceOption {
	return func(s *migrationService) {
		s.metrics = metrics
	}
}

// WithMigrationEngine replaces the default conversion engine
func WithMigrationEngine(engine *conversion.Engine) MigrationServiceOption {
	return func(s *migrationService) {
		s.engine = engine
	}
}

// WithMigrationClock replaces time.Now for warning timestamps
func WithMigrationClock(now func() time.Time) MigrationServiceOption {
	return func(s *migrationService) {
		s.now = now
	}
}

// NewMigrationService creates a new migration service with the provided options
func NewMigrationService(catalog portsrepo.CatalogRepositoryFacade, settings portsrepo.SettingsRepositoryFacade, options ...MigrationServiceOption) portssvc.MigrationSvcFacade {
	svc := &migrationService{
		catalog:   catalog,
		settings:  settings,
		engine:    conversion.NewEngine(),
		batchSize: domain.DefaultBatchSize,
		now:       time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.MigrationSvcFacade = (*migrationService)(nil)

func (s *migrationService) Start(ctx context.Context) (int, error) {
	if err := s.AuthorizeAdmin(ctx); err != nil {
		return 0, err
	}

	raw, err := s.settings.GetSetting(ctx, domain.SettingStoreCurrency)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, apperrors.NewPreconditionError("store currency is not configured")
		}
		s.LogError(ctx, err, "Failed to read store currency")
		return 0, fmt.Errorf("failed to read store currency: %w", err)
	}
	if code, err := domain.ParseCurrencyCode(raw); err != nil || code != domain.BGN {
		return 0, apperrors.NewPreconditionError(fmt.Sprintf("store currency must be %s to migrate, got %q", domain.BGN, raw))
	}

	total, err := s.catalog.CountProducts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	err = s.settings.ApplySettings(ctx, map[string]string{
		domain.SettingMigrationInProgress: domain.SettingYes,
		domain.SettingMigrationOffset:     "0",
		domain.SettingMigrationTotal:      strconv.Itoa(total),
	}, []string{domain.SettingMigrationLastError})
	if err != nil {
		s.LogError(ctx, err, "Failed to persist migration state")
		return 0, fmt.Errorf("failed to start migration: %w", err)
	}

	s.metrics.MigrationStarted(total)
	s.LogInfo(ctx, "Migration started", slog.Int("total", total))
	return total, nil
}

func (s *migrationService) Status(ctx context.Context) (*domain.MigrationState, error) {
	if err := s.AuthorizeAdmin(ctx); err != nil {
		return nil, err
	}
	return s.readState(ctx)
}

func (s *migrationService) ProcessBatch(ctx context.Context, offset int) (*domain.BatchResult, error) {
	if err := s.AuthorizeAdmin(ctx); err != nil {
		return nil, err
	}
	if offset < 0 {
		return nil, apperrors.NewValidationError("offset must not be negative")
	}
	state, err := s.readState(ctx)
	if err != nil {
		return nil, err
	}
	if !state.InProgress {
		return nil, apperrors.NewPreconditionError("no migration in progress")
	}
	if s.replayGuard && offset < state.Offset {
		return nil, apperrors.NewPreconditionError(fmt.Sprintf("offset %d is behind the persisted offset %d", offset, state.Offset))
	}
	return s.processBatch(ctx, state, offset)
}

func (s *migrationService) Resume(ctx context.Context) (*domain.BatchResult, error) {
	if err := s.AuthorizeAdmin(ctx); err != nil {
		return nil, err
	}
	state, err := s.readState(ctx)
	if err != nil {
		return nil, err
	}
	if !state.InProgress {
		return nil, apperrors.NewPreconditionError("no migration in progress")
	}
	s.LogInfo(ctx, "Resuming migration", slog.Int("offset", state.Offset), slog.Int("total", state.Total))
	return s.processBatch(ctx, state, state.Offset)
}

func (s *migrationService) processBatch(ctx context.Context, state *domain.MigrationState, offset int) (*domain.BatchResult, error) {
	started := time.Now()
	logger := s.GetLogger(ctx).With(slog.Int("offset", offset), slog.Int("total", state.Total))

	if offset > state.Total {
		// the catalog shrank or the caller sent a stale offset
		if err := s.persistOffset(ctx, state.Total); err != nil {
			return nil, err
		}
		msg := fmt.Sprintf("offset %d is beyond the %d products counted at start, clamped to %d", offset, state.Total, state.Total)
		logger.Warn("Migration offset clamped")
		result := &domain.BatchResult{
			Offset:   state.Total,
			HasMore:  false,
			Clamped:  true,
			Warnings: []domain.EntityWarning{{Message: msg, Time: s.now()}},
		}
		s.metrics.ObserveBatch(0, 1, result.Offset, true, started)
		return result, nil
	}

	// products added after Start are not part of this migration
	var ids []int64
	if limit := min(s.batchSize, state.Total-offset); limit > 0 {
		var err error
		ids, err = s.catalog.ListProductIDs(ctx, offset, limit)
		if err != nil {
			logger.Error("Failed to list products for batch", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to load migration batch: %w", err)
		}
	}

	result := &domain.BatchResult{Offset: offset, Warnings: []domain.EntityWarning{}}
	if limit := min(s.batchSize, state.Total-offset); len(ids) < limit {
		// products were deleted since Start, the catalog now ends at this page
		total := offset + len(ids)
		if err := s.persistTotal(ctx, total); err != nil {
			return nil, err
		}
		msg := fmt.Sprintf("catalog ended at %d of the %d products counted at start, total clamped to %d", total, state.Total, total)
		logger.Warn("Migration total clamped", slog.Int("current_total", total))
		result.Clamped = true
		result.Warnings = append(result.Warnings, domain.EntityWarning{Message: msg, Time: s.now()})
		state.Total = total
	}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			logger.Warn("Migration batch interrupted", slog.Int("persisted_offset", result.Offset))
			return nil, fmt.Errorf("migration batch interrupted at offset %d: %w", result.Offset, err)
		}

		if convErr := s.migrateProduct(ctx, id); convErr != nil {
			warning := domain.EntityWarning{EntityID: id, Message: convErr.Error(), Time: s.now()}
			result.Warnings = append(result.Warnings, warning)
			logger.Warn("Product conversion failed", slog.Int64("product_id", id), slog.String("error", convErr.Error()))
			if err := s.persistLastError(ctx, warning); err != nil {
				return nil, err
			}
		}

		// the cursor moves past the product whether or not it converted
		if err := s.persistOffset(ctx, result.Offset+1); err != nil {
			return nil, err
		}
		result.Offset++
		result.Processed++
	}
	result.HasMore = result.Processed == s.batchSize

	s.metrics.ObserveBatch(result.Processed, len(result.Warnings), result.Offset, result.Clamped, started)
	logger.Info("Migration batch processed",
		slog.Int("processed", result.Processed),
		slog.Int("warnings", len(result.Warnings)),
		slog.Bool("has_more", result.HasMore))
	return result, nil
}

// migrateProduct converts one top-level product and its variations. Panics
// from the catalog are turned into errors so one product cannot abort a batch.
func (s *migrationService) migrateProduct(ctx context.Context, id int64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while converting product %d: %v", id, r)
		}
	}()

	product, err := s.catalog.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("product %d not found", id)
		}
		return fmt.Errorf("failed to load product %d: %w", id, err)
	}
	if err := s.convertAndSave(ctx, product); err != nil {
		return err
	}
	if !product.IsVariable() {
		return nil
	}

	for _, variationID := range product.Variations {
		variation, err := s.catalog.FindProductByID(ctx, variationID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				s.LogDebug(ctx, "Skipping missing variation", slog.Int64("product_id", id), slog.Int64("variation_id", variationID))
				continue
			}
			return fmt.Errorf("failed to load variation %d of product %d: %w", variationID, id, err)
		}
		if err := s.convertAndSave(ctx, variation); err != nil {
			return err
		}
	}
	if err := s.catalog.SyncVariablePriceRange(ctx, id); err != nil {
		return fmt.Errorf("failed to sync price range of product %d: %w", id, err)
	}
	return nil
}

func (s *migrationService) convertAndSave(ctx context.Context, product *domain.Product) error {
	regular, err := s.convertPrice(product.RegularPrice)
	if err != nil {
		return fmt.Errorf("product %d regular price: %w", product.ProductID, err)
	}
	sale, err := s.convertPrice(product.SalePrice)
	if err != nil {
		return fmt.Errorf("product %d sale price: %w", product.ProductID, err)
	}
	product.RegularPrice = regular
	product.SalePrice = sale

	if err := s.catalog.SaveProduct(ctx, *product); err != nil {
		return fmt.Errorf("failed to save product %d: %w", product.ProductID, err)
	}
	s.metrics.ProductConverted(string(product.Type))
	return nil
}

// convertPrice leaves unset and zero prices untouched.
func (s *migrationService) convertPrice(price *decimal.Decimal) (*decimal.Decimal, error) {
	if price == nil || price.IsZero() {
		return price, nil
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("invalid price %s", price.String())
	}
	converted := s.engine.LevToEuro(*price)
	return &converted, nil
}

func (s *migrationService) persistOffset(ctx context.Context, offset int) error {
	if err := s.settings.SetSetting(ctx, domain.SettingMigrationOffset, strconv.Itoa(offset)); err != nil {
		s.LogError(ctx, err, "Failed to persist migration offset", slog.Int("offset", offset))
		return fmt.Errorf("failed to persist migration offset %d: %w", offset, err)
	}
	return nil
}

func (s *migrationService) persistTotal(ctx context.Context, total int) error {
	if err := s.settings.SetSetting(ctx, domain.SettingMigrationTotal, strconv.Itoa(total)); err != nil {
		s.LogError(ctx, err, "Failed to persist migration total", slog.Int("total", total))
		return fmt.Errorf("failed to persist migration total %d: %w", total, err)
	}
	return nil
}

func (s *migrationService) persistLastError(ctx context.Context, warning domain.EntityWarning) error {
	payload, err := json.Marshal(domain.MigrationError{EntityID: warning.EntityID, Message: warning.Message, Time: warning.Time})
	if err != nil {
		return fmt.Errorf("failed to encode migration error: %w", err)
	}
	if err := s.settings.SetSetting(ctx, domain.SettingMigrationLastError, string(payload)); err != nil {
		s.LogError(ctx, err, "Failed to persist migration error", slog.Int64("product_id", warning.EntityID))
		return fmt.Errorf("failed to persist migration error: %w", err)
	}
	return nil
}

func (s *migrationService) Finalize(ctx context.Context) error {
	if err := s.AuthorizeAdmin(ctx); err != nil {
		return err
	}
	if s.strictFinalize {
		state, err := s.readState(ctx)
		if err != nil {
			return err
		}
		if state.Status() != domain.MigrationComplete {
			return apperrors.NewPreconditionError(fmt.Sprintf("migration is %s at %d of %d products", state.Status(), state.Offset, state.Total))
		}
	}

	err := s.settings.ApplySettings(ctx,
		map[string]string{domain.SettingStoreCurrency: string(domain.EUR)},
		domain.MigrationSettingKeys)
	if err != nil {
		s.LogError(ctx, err, "Failed to finalize migration")
		return fmt.Errorf("failed to finalize migration: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			// entries are keyed by store currency, so stale ones are never read for EUR
			s.LogError(ctx, err, "Failed to invalidate price cache after finalize")
		}
	}

	s.metrics.MigrationEnded("finalize")
	s.LogInfo(ctx, "Migration finalized, store currency is now EUR")
	return nil
}

func (s *migrationService) Reset(ctx context.Context) error {
	if err := s.AuthorizeAdmin(ctx); err != nil {
		return err
	}
	if err := s.settings.DeleteSettings(ctx, domain.MigrationSettingKeys...); err != nil {
		s.LogError(ctx, err, "Failed to reset migration")
		return fmt.Errorf("failed to reset migration: %w", err)
	}
	s.metrics.MigrationEnded("reset")
	s.LogInfo(ctx, "Migration state reset")
	return nil
}

// readState loads the persisted migration bookkeeping. Missing keys read as an
// idle migration.
func (s *migrationService) readState(ctx context.Context) (*domain.MigrationState, error) {
	values, err := s.settings.GetSettings(ctx, domain.MigrationSettingKeys...)
	if err != nil {
		s.LogError(ctx, err, "Failed to read migration state")
		return nil, fmt.Errorf("failed to read migration state: %w", err)
	}

	state := &domain.MigrationState{InProgress: values[domain.SettingMigrationInProgress] == domain.SettingYes}
	if state.Offset, err = atoiSetting(values, domain.SettingMigrationOffset); err != nil {
		return nil, err
	}
	if state.Total, err = atoiSetting(values, domain.SettingMigrationTotal); err != nil {
		return nil, err
	}
	if raw := values[domain.SettingMigrationLastError]; raw != "" {
		var lastErr domain.MigrationError
		if err := json.Unmarshal([]byte(raw), &lastErr); err != nil {
			s.LogWarn(ctx, "Ignoring unreadable migration error", slog.String("error", err.Error()))
		} else {
			state.LastError = &lastErr
		}
	}
	return state, nil
}

func atoiSetting(values map[string]string, key string) (int, error) {
	raw, ok := values[key]
	if !ok || raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperrors.NewAppError(http.StatusInternalServerError, fmt.Sprintf("corrupt migration setting %s=%q", key, raw), err)
	}
	return n, nil
}
