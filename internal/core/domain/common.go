package domain

import "time"

// AuditFields holds the catalog timestamps carried by persisted entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
