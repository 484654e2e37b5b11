package dto

import (
	"time"

	"github.com/SscSPs/dual_price_app/internal/core/domain"
)

// StartMigrationResponse carries the number of products the migration will visit.
type StartMigrationResponse struct {
	Count int `json:"count"`
}

// ProcessBatchRequest defines the offset a batch starts from.
type ProcessBatchRequest struct {
	Offset *int `json:"offset" binding:"required,min=0"`
}

// WarningResponse is a product that could not be converted.
type WarningResponse struct {
	ProductID int64     `json:"productId"`
	Message   string    `json:"message"`
	Time      time.Time `json:"time"`
}

// BatchResponse defines the result of one batch.
type BatchResponse struct {
	Processed int               `json:"processed"`
	HasMore   bool              `json:"hasMore"`
	Offset    int               `json:"offset"`
	Clamped   bool              `json:"clamped,omitempty"`
	Warnings  []WarningResponse `json:"warnings"`
}

// MigrationErrorResponse is the last recorded product failure.
type MigrationErrorResponse struct {
	ProductID int64     `json:"productId"`
	Message   string    `json:"message"`
	Time      time.Time `json:"time"`
}

// MigrationStatusResponse defines the persisted migration progress.
type MigrationStatusResponse struct {
	Status     domain.MigrationStatus  `json:"status"`
	InProgress bool                    `json:"inProgress"`
	Offset     int                     `json:"offset"`
	Total      int                     `json:"total"`
	Percent    int                     `json:"percent"`
	LastError  *MigrationErrorResponse `json:"lastError,omitempty"`
}

// ToBatchResponse converts a domain.BatchResult to BatchResponse DTO
func ToBatchResponse(result *domain.BatchResult) BatchResponse {
	warnings := make([]WarningResponse, len(result.Warnings))
	for i, w := range result.Warnings {
		warnings[i] = WarningResponse{ProductID: w.EntityID, Message: w.Message, Time: w.Time}
	}
	return BatchResponse{
		Processed: result.Processed,
		HasMore:   result.HasMore,
		Offset:    result.Offset,
		Clamped:   result.Clamped,
		Warnings:  warnings,
	}
}

// ToMigrationStatusResponse converts a domain.MigrationState to MigrationStatusResponse DTO
func ToMigrationStatusResponse(state *domain.MigrationState) MigrationStatusResponse {
	res := MigrationStatusResponse{
		Status:     state.Status(),
		InProgress: state.InProgress,
		Offset:     state.Offset,
		Total:      state.Total,
	}
	if state.Total > 0 {
		res.Percent = min(100, state.Offset*100/state.Total)
	} else if state.InProgress {
		res.Percent = 100
	}
	if state.LastError != nil {
		res.LastError = &MigrationErrorResponse{
			ProductID: state.LastError.EntityID,
			Message:   state.LastError.Message,
			Time:      state.LastError.Time,
		}
	}
	return res
}
