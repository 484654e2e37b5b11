package services

import (
	"context"

	"github.com/SscSPs/dual_price_app/internal/core/domain"
	"github.com/SscSPs/dual_price_app/internal/dto"
)

// SettingsReaderSvc defines read operations for store settings
type SettingsReaderSvc interface {
	// GetSettings returns the typed settings, applying defaults for missing keys.
	GetSettings(ctx context.Context) (*domain.StoreSettings, error)

	// StoreCurrency returns the store currency. Unsupported currencies yield
	// apperrors.ErrPrecondition.
	StoreCurrency(ctx context.Context) (domain.CurrencyCode, error)
}

// SettingsWriterSvc defines write operations for store settings
type SettingsWriterSvc interface {
	// UpdateDisplay applies a partial update of the display settings.
	UpdateDisplay(ctx context.Context, req dto.UpdateDisplaySettingsRequest) (*domain.StoreSettings, error)

	// SetStoreCurrency changes the store currency.
	SetStoreCurrency(ctx context.Context, code domain.CurrencyCode) error
}

// SettingsSvcFacade combines all settings-related service interfaces
type SettingsSvcFacade interface {
	SettingsReaderSvc
	SettingsWriterSvc
}
