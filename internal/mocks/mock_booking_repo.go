package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stagefront/concert-reservation-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) GetAllByUserID(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) BookedSeats(ctx context.Context, perf domain.PerformanceID) ([]domain.BookedSeat, error) {
	args := m.Called(ctx, perf)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.BookedSeat), args.Error(1)
}
