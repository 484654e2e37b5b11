package domain

import "strings"

// Setting keys of the store's key-value settings table.
const (
	SettingStoreCurrency    = "store_currency"
	SettingDualPriceEnabled = "dual_price_enabled"
	SettingPosition         = "secondary_position"
	SettingFormat           = "secondary_format"
	SettingLevRounding      = "lev_rounding"
	SettingSiteLocale       = "site_locale"

	SettingMigrationInProgress = "migration_in_progress"
	SettingMigrationOffset     = "migration_offset"
	SettingMigrationTotal      = "migration_total"
	SettingMigrationLastError  = "migration_last_error"
)

// MigrationSettingKeys are removed together on finalize and reset.
var MigrationSettingKeys = []string{
	SettingMigrationInProgress,
	SettingMigrationOffset,
	SettingMigrationTotal,
	SettingMigrationLastError,
}

// ShowSettingKey is the toggle key of an annotation context.
func ShowSettingKey(ctx AnnotationContext) string {
	return "show_" + string(ctx)
}

// Boolean setting values.
const (
	SettingYes = "yes"
	SettingNo  = "no"
)

// CapabilityManageOptions is required for every migration and settings write.
const CapabilityManageOptions = "manage_options"

// StoreSettings is the typed view of the settings relevant to dual pricing.
type StoreSettings struct {
	StoreCurrency CurrencyCode               `json:"storeCurrency"`
	Supported     bool                       `json:"supported"`
	Enabled       bool                       `json:"enabled"`
	Display       DisplayOptions             `json:"display"`
	Rounding      RoundingPolicy             `json:"rounding"`
	SiteLocale    string                     `json:"siteLocale"`
	Contexts      map[AnnotationContext]bool `json:"contexts"`
}

// ShowContext reports whether ctx is toggled on. Contexts without a stored
// toggle are shown.
func (s StoreSettings) ShowContext(ctx AnnotationContext) bool {
	show, ok := s.Contexts[ctx]
	return !ok || show
}

// DisplayActive reports whether secondary amounts should be rendered at all:
// always for a lev store, and for a euro store only on a Bulgarian site.
func (s StoreSettings) DisplayActive() bool {
	if !s.Supported || !s.Enabled {
		return false
	}
	if s.StoreCurrency == BGN {
		return true
	}
	return strings.HasPrefix(strings.ToLower(s.SiteLocale), "bg")
}

// ProductPrice is a product's active price in both currencies.
type ProductPrice struct {
	ProductID         int64        `json:"productId"`
	Price             string       `json:"price"`
	Currency          CurrencyCode `json:"currency"`
	SecondaryPrice    string       `json:"secondaryPrice"`
	SecondaryCurrency CurrencyCode `json:"secondaryCurrency"`
	OnSale            bool         `json:"onSale"`
}
