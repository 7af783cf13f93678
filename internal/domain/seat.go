package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SeatStatus filters seat listings by booked state.
type SeatStatus string

const (
	SeatStatusBooked   SeatStatus = "Booked"
	SeatStatusUnbooked SeatStatus = "Unbooked"
	SeatStatusAny      SeatStatus = "Any"
)

func (s SeatStatus) Valid() bool {
	switch s {
	case SeatStatusBooked, SeatStatusUnbooked, SeatStatusAny:
		return true
	}
	return false
}

// Seat is a point-in-time view of one seat of a performance. A seat is booked
// iff it is referenced by exactly one live booking; BookingID is the zero UUID
// while the seat is free.
type Seat struct {
	Label     string
	Price     decimal.Decimal
	Booked    bool
	BookingID uuid.UUID
}

// Matches reports whether the seat passes the given status filter.
func (s Seat) Matches(status SeatStatus) bool {
	switch status {
	case SeatStatusBooked:
		return s.Booked
	case SeatStatusUnbooked:
		return !s.Booked
	default:
		return true
	}
}
