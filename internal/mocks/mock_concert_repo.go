package mocks

import (
	"context"
	"time"

	"github.com/stagefront/concert-reservation-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockConcertRepo struct {
	mock.Mock
}

func (m *MockConcertRepo) FindPerformance(ctx context.Context, concertID int64, date time.Time) (domain.PerformanceID, error) {
	args := m.Called(ctx, concertID, date)
	return args.Get(0).(domain.PerformanceID), args.Error(1)
}

func (m *MockConcertRepo) SeatInventory(ctx context.Context, perf domain.PerformanceID) ([]domain.SeatInfo, error) {
	args := m.Called(ctx, perf)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.SeatInfo), args.Error(1)
}

func (m *MockConcertRepo) PerformancesByDate(ctx context.Context, date time.Time) ([]domain.PerformanceID, error) {
	args := m.Called(ctx, date)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.PerformanceID), args.Error(1)
}
