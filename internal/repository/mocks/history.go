package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"soil-advisor/internal/domain"
)

// HistoryRepository is a mock implementation of repository.HistoryRepository.
type HistoryRepository struct {
	mock.Mock
}

func (m *HistoryRepository) Append(ctx context.Context, record *domain.PredictionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *HistoryRepository) ListByUsername(ctx context.Context, username string) ([]domain.PredictionRecord, error) {
	args := m.Called(ctx, username)
	if r := args.Get(0); r != nil {
		return r.([]domain.PredictionRecord), args.Error(1)
	}
	return nil, args.Error(1)
}
