package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/dual_price_app/internal/apperrors"
	"github.com/SscSPs/dual_price_app/internal/core/domain"
	portsrepo "github.com/SscSPs/dual_price_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/dual_price_app/internal/core/ports/services"
	"github.com/SscSPs/dual_price_app/internal/dto"
	"github.com/go-playground/validator/v10"
)

// settingsService implements the SettingsSvcFacade interface
type settingsService struct {
	BaseService
	repo     portsrepo.SettingsRepositoryFacade
	validate *validator.Validate
}

// SettingsServiceOption is a functional option for configuring the settings service
type SettingsServiceOption func(*settingsService)

// WithSettingsAuthorizer adds the authorizer guarding settings writes
func WithSettingsAuthorizer(authorizer portssvc.Authorizer) SettingsServiceOption {
	return func(s *settingsService) {
		s.Authorizer = authorizer
	}
}

// NewSettingsService creates a new settings service with the provided options
func NewSettingsService(repo portsrepo.SettingsRepositoryFacade, options ...SettingsServiceOption) portssvc.SettingsSvcFacade {
	svc := &settingsService{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

// storeSettingKeys are read in one round trip by GetSettings.
var storeSettingKeys = func() []string {
	keys := []string{
		domain.SettingStoreCurrency,
		domain.SettingDualPriceEnabled,
		domain.SettingPosition,
		domain.SettingFormat,
		domain.SettingLevRounding,
		domain.SettingSiteLocale,
	}
	for _, ctx := range domain.AllAnnotationContexts {
		keys = append(keys, domain.ShowSettingKey(ctx))
	}
	return keys
}()

func (s *settingsService) GetSettings(ctx context.Context) (*domain.StoreSettings, error) {
	values, err := s.repo.GetSettings(ctx, storeSettingKeys...)
	if err != nil {
		s.LogError(ctx, err, "Failed to read store settings")
		return nil, fmt.Errorf("failed to read store settings: %w", err)
	}
	settings := parseStoreSettings(values)
	return &settings, nil
}

// parseStoreSettings applies installation defaults to missing or unknown values.
func parseStoreSettings(values map[string]string) domain.StoreSettings {
	settings := domain.StoreSettings{
		StoreCurrency: domain.CurrencyCode(values[domain.SettingStoreCurrency]),
		Enabled:       values[domain.SettingDualPriceEnabled] != domain.SettingNo,
		Display:       domain.DefaultDisplayOptions(),
		Rounding:      domain.RoundingSmart,
		SiteLocale:    values[domain.SettingSiteLocale],
		Contexts:      make(map[domain.AnnotationContext]bool, len(domain.AllAnnotationContexts)),
	}
	if code, err := domain.ParseCurrencyCode(values[domain.SettingStoreCurrency]); err == nil {
		settings.StoreCurrency = code
		settings.Supported = true
	}
	if domain.Position(values[domain.SettingPosition]) == domain.PositionLeft {
		settings.Display.Position = domain.PositionLeft
	}
	if domain.Format(values[domain.SettingFormat]) == domain.FormatDivider {
		settings.Display.Format = domain.FormatDivider
	}
	if domain.RoundingPolicy(values[domain.SettingLevRounding]) == domain.RoundingExact {
		settings.Rounding = domain.RoundingExact
	}
	for _, c := range domain.AllAnnotationContexts {
		settings.Contexts[c] = values[domain.ShowSettingKey(c)] != domain.SettingNo
	}
	return settings
}

func (s *settingsService) StoreCurrency(ctx context.Context) (domain.CurrencyCode, error) {
	raw, err := s.repo.GetSetting(ctx, domain.SettingStoreCurrency)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.NewPreconditionError("store currency is not configured")
		}
		s.LogError(ctx, err, "Failed to read store currency")
		return "", fmt.Errorf("failed to read store currency: %w", err)
	}
	code, err := domain.ParseCurrencyCode(raw)
	if err != nil {
		return "", apperrors.NewPreconditionError(err.Error())
	}
	return code, nil
}

func (s *settingsService) UpdateDisplay(ctx context.Context, req dto.UpdateDisplaySettingsRequest) (*domain.StoreSettings, error) {
	if err := s.AuthorizeAdmin(ctx); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	values := make(map[string]string)
	if req.Enabled != nil {
		values[domain.SettingDualPriceEnabled] = yesNo(*req.Enabled)
	}
	if req.Position != nil {
		values[domain.SettingPosition] = string(*req.Position)
	}
	if req.Format != nil {
		values[domain.SettingFormat] = string(*req.Format)
	}
	if req.Rounding != nil {
		values[domain.SettingLevRounding] = string(*req.Rounding)
	}
	if req.Locale != nil {
		values[domain.SettingSiteLocale] = *req.Locale
	}
	for c, show := range req.Contexts {
		if !c.Valid() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown display context %q", c))
		}
		values[domain.ShowSettingKey(c)] = yesNo(show)
	}

	if len(values) > 0 {
		if err := s.repo.SetSettings(ctx, values); err != nil {
			s.LogError(ctx, err, "Failed to update display settings")
			return nil, fmt.Errorf("failed to update display settings: %w", err)
		}
		s.LogInfo(ctx, "Display settings updated", slog.Int("keys", len(values)))
	}
	return s.GetSettings(ctx)
}

func (s *settingsService) SetStoreCurrency(ctx context.Context, code domain.CurrencyCode) error {
	if err := s.AuthorizeAdmin(ctx); err != nil {
		return err
	}
	if _, err := domain.ParseCurrencyCode(string(code)); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	if err := s.repo.SetSetting(ctx, domain.SettingStoreCurrency, string(code)); err != nil {
		s.LogError(ctx, err, "Failed to set store currency", slog.String("currency", string(code)))
		return fmt.Errorf("failed to set store currency: %w", err)
	}
	s.LogInfo(ctx, "Store currency changed", slog.String("currency", string(code)))
	return nil
}

func yesNo(v bool) string {
	if v {
		return domain.SettingYes
	}
	return domain.SettingNo
}
