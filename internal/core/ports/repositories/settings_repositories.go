package repositories

import (
	"context"
)

// SettingsReader defines read operations for the key-value settings store
type SettingsReader interface {
	// GetSetting retrieves a single value. Missing keys return apperrors.ErrNotFound.
	GetSetting(ctx context.Context, key string) (string, error)

	// GetSettings retrieves the values present for keys. Missing keys are absent from the map.
	GetSettings(ctx context.Context, keys ...string) (map[string]string, error)
}

// SettingsWriter defines write operations for the key-value settings store
type SettingsWriter interface {
	// SetSetting creates or overwrites a single value.
	SetSetting(ctx context.Context, key, value string) error

	// SetSettings writes all values in one transaction.
	SetSettings(ctx context.Context, values map[string]string) error

	// DeleteSettings removes keys. Keys that do not exist are ignored.
	DeleteSettings(ctx context.Context, keys ...string) error

	// ApplySettings writes values and removes keys in one transaction.
	ApplySettings(ctx context.Context, values map[string]string, remove []string) error
}

// SettingsRepositoryFacade combines all settings-related repository interfaces
type SettingsRepositoryFacade interface {
	SettingsReader
	SettingsWriter
}
