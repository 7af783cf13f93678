// Package queue defines the messages published to the broker and the
// publisher that emits them.
package queue

import "time"

// BookingConfirmedEvent is published after a booking has been committed. It
// carries enough for downstream consumers (analytics, ops dashboards) to act
// without querying the primary store.
type BookingConfirmedEvent struct {
	BookingID      string    `json:"booking_id"`
	UserID         int64     `json:"user_id"`
	ConcertID      int64     `json:"concert_id"`
	Date           time.Time `json:"date"`
	SeatLabels     []string  `json:"seats"`
	RemainingSeats int       `json:"remaining_seats"`
	ConfirmedAt    time.Time `json:"confirmed_at"`
}
