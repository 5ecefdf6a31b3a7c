package gormpersistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"soil-advisor/internal/domain"
)

// GormHistoryRepository is the GORM implementation of
// repository.HistoryRepository.
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a GormHistoryRepository.
func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	if db == nil {
		panic("database connection cannot be nil for GormHistoryRepository")
	}
	return &GormHistoryRepository{db: db}
}

// Append inserts one history record.
func (r *GormHistoryRepository) Append(ctx context.Context, record *domain.PredictionRecord) error {
	err := r.db.WithContext(ctx).Create(record).Error
	if err != nil {
		return fmt.Errorf("gorm: append history record for %q: %w", record.Username, err)
	}
	return nil
}

// ListByUsername returns the user's records in insertion (primary key) order.
func (r *GormHistoryRepository) ListByUsername(ctx context.Context, username string) ([]domain.PredictionRecord, error) {
	var records []domain.PredictionRecord
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("id asc").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list history for %q: %w", username, err)
	}
	return records, nil
}
