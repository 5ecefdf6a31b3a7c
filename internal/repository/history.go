package repository

import (
	"context"

	"soil-advisor/internal/domain"
)

// HistoryRepository defines the append-only prediction history log.
type HistoryRepository interface {
	// Append stores one new history record. No dedup, no size cap.
	Append(ctx context.Context, record *domain.PredictionRecord) error

	// ListByUsername returns all records for exactly that username in
	// insertion order.
	ListByUsername(ctx context.Context, username string) ([]domain.PredictionRecord, error)
}
