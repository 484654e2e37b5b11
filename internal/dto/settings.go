package dto

import (
	"github.com/SscSPs/dual_price_app/internal/core/domain"
)

// UpdateDisplaySettingsRequest defines a partial update of the display settings.
// Omitted fields keep their stored value.
type UpdateDisplaySettingsRequest struct {
	Enabled  *bool                             `json:"enabled"`
	Position *domain.Position                  `json:"position" validate:"omitempty,oneof=left right"`
	Format   *domain.Format                    `json:"format" validate:"omitempty,oneof=brackets divider"`
	Rounding *domain.RoundingPolicy            `json:"rounding" validate:"omitempty,oneof=exact smart"`
	Locale   *string                           `json:"siteLocale" validate:"omitempty,min=2,max=16"`
	Contexts map[domain.AnnotationContext]bool `json:"contexts"`
}

// SettingsResponse defines the stored settings and whether dual display is active.
type SettingsResponse struct {
	domain.StoreSettings
	DisplayActive bool `json:"displayActive"`
}

// ToSettingsResponse converts domain.StoreSettings to SettingsResponse DTO
func ToSettingsResponse(settings *domain.StoreSettings) SettingsResponse {
	return SettingsResponse{StoreSettings: *settings, DisplayActive: settings.DisplayActive()}
}

// SetStoreCurrencyRequest defines the currency the store prices its catalog in.
type SetStoreCurrencyRequest struct {
	Currency string `json:"currency" binding:"required,len=3"`
}
