package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PerformanceID identifies one concert on one date. It is the key of every
// seat map, booking and capacity watcher, so the date is normalized to UTC
// to make it usable as a map key.
type PerformanceID struct {
	ConcertID int64
	Date      time.Time
}

func NewPerformanceID(concertID int64, date time.Time) PerformanceID {
	return PerformanceID{
		ConcertID: concertID,
		Date:      date.UTC(),
	}
}

// SeatInfo is the catalog's static description of a seat, before any booking
// state is layered on top.
type SeatInfo struct {
	Label string
	Price decimal.Decimal
}

type ConcertRepository interface {
	FindPerformance(ctx context.Context, concertID int64, date time.Time) (PerformanceID, error)
	SeatInventory(ctx context.Context, perf PerformanceID) ([]SeatInfo, error)
	PerformancesByDate(ctx context.Context, date time.Time) ([]PerformanceID, error)
}
