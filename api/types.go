// Package api holds the request and response types of the HTTP boundary.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type AlreadyLoggedInResponse struct {
	Message string `json:"message"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type BookingRequest struct {
	ConcertId  int64     `json:"concertId" validate:"required,min=1"`
	Date       time.Time `json:"date" validate:"required"`
	SeatLabels []string  `json:"seatLabels" validate:"dive,seat_label"`
}

type BookedSeat struct {
	Label string          `json:"label"`
	Price decimal.Decimal `json:"price"`
}

type BookingResponse struct {
	BookingId string       `json:"bookingId"`
	ConcertId int64        `json:"concertId"`
	Date      time.Time    `json:"date"`
	Seats     []BookedSeat `json:"seats"`
	CreatedAt time.Time    `json:"createdAt"`
}

type Seat struct {
	Label  string          `json:"label"`
	Price  decimal.Decimal `json:"price"`
	Booked bool            `json:"booked"`
}

type SeatListResponse struct {
	Date  time.Time `json:"date"`
	Seats []Seat    `json:"seats"`
}

// SubscriptionRequest registers interest in a performance nearing capacity.
// Exactly one of PercentageBooked and RemainingSeatsThreshold must be set.
type SubscriptionRequest struct {
	ConcertId               int64     `json:"concertId" validate:"required,min=1"`
	Date                    time.Time `json:"date" validate:"required"`
	PercentageBooked        *int      `json:"percentageBooked,omitempty" validate:"omitempty,min=1,max=100"`
	RemainingSeatsThreshold *int      `json:"remainingSeatsThreshold,omitempty" validate:"omitempty,min=1"`
}

type SubscriptionResponse struct {
	RemainingSeats int `json:"remainingSeats"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}
