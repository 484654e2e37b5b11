package models

import "time"

// Setting is one row of the key-value settings table.
type Setting struct {
	Key           string    `db:"key"`
	Value         string    `db:"value"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}
