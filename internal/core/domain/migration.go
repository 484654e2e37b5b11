package domain

import "time"

// DefaultBatchSize is the number of products handled per batch call.
const DefaultBatchSize = 50

// MigrationStatus is derived from the persisted MigrationState.
type MigrationStatus string

const (
	MigrationIdle        MigrationStatus = "IDLE"
	MigrationRunning     MigrationStatus = "RUNNING"
	MigrationErrorPaused MigrationStatus = "ERROR_PAUSED"
	MigrationComplete    MigrationStatus = "COMPLETE"
)

// MigrationError records the last product that failed to convert.
type MigrationError struct {
	EntityID int64     `json:"product_id"`
	Message  string    `json:"message"`
	Time     time.Time `json:"time"`
}

// MigrationState is the durable resume bookkeeping of a BGN to EUR migration.
// Offset is the index of the next unprocessed product.
type MigrationState struct {
	InProgress bool            `json:"inProgress"`
	Offset     int             `json:"offset"`
	Total      int             `json:"total"`
	LastError  *MigrationError `json:"lastError,omitempty"`
}

// Status derives the state machine position from the persisted fields.
func (s MigrationState) Status() MigrationStatus {
	switch {
	case !s.InProgress:
		return MigrationIdle
	case s.Offset >= s.Total:
		return MigrationComplete
	case s.LastError != nil:
		return MigrationErrorPaused
	default:
		return MigrationRunning
	}
}

// EntityWarning is a per-product failure collected during a batch.
type EntityWarning struct {
	EntityID int64     `json:"productId"`
	Message  string    `json:"message"`
	Time     time.Time `json:"time"`
}

// BatchResult is returned from one batch invocation.
type BatchResult struct {
	Processed int             `json:"processed"`
	HasMore   bool            `json:"hasMore"`
	Offset    int             `json:"offset"`
	Clamped   bool            `json:"clamped,omitempty"`
	Warnings  []EntityWarning `json:"warnings,omitempty"`
}
