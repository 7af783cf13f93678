package domain

import "errors"

var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrPerformanceNotFound = errors.New("no performance scheduled for that concert and date")
	ErrSeatNotFound        = errors.New("seat label does not exist for that performance")
	ErrSeatUnavailable     = errors.New("seat(s) are already booked")
	ErrEmptySeatSelection  = errors.New("booking requires at least one seat")
	ErrDuplicateBooking    = errors.New("booking already exists")
)
