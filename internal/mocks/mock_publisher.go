package mocks

import (
	"context"

	"github.com/stagefront/concert-reservation-system/internal/queue"
	"github.com/stretchr/testify/mock"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishBookingConfirmed(ctx context.Context, event queue.BookingConfirmedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
