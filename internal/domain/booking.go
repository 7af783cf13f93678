package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Booking records that one user holds a non-empty set of seats for a single
// performance. Bookings are created atomically with their seats' booked flags
// and only ever deleted as a unit.
type Booking struct {
	ID        uuid.UUID
	UserID    int64
	ConcertID int64
	Date      time.Time
	Seats     []Seat
	CreatedAt time.Time
}

// BookedSeat pairs a seat label with the booking that holds it. Used to
// rebuild the in-memory ledger from persisted state on startup.
type BookedSeat struct {
	Label     string
	BookingID uuid.UUID
}

type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetAllByUserID(ctx context.Context, userID int64) ([]Booking, error)
	BookedSeats(ctx context.Context, perf PerformanceID) ([]BookedSeat, error)
}
