package booking

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/stagefront/concert-reservation-system/internal/domain"
)

// CapacityListener is told the remaining-seat count of a performance after
// every successful booking. Implementations must not block: the coordinator
// calls it synchronously once the seat lock has been released, and booking
// throughput must not depend on slow subscribers.
type CapacityListener interface {
	CapacityChanged(perf domain.PerformanceID, remaining int)
}

// Coordinator validates booking requests against the catalog, performs the
// atomic multi-seat reservation on the ledger and persists the resulting
// booking record.
type Coordinator struct {
	ledger   *Ledger
	catalog  domain.ConcertRepository
	bookings domain.BookingRepository
	listener CapacityListener
	logger   *slog.Logger
}

func NewCoordinator(
	ledger *Ledger,
	catalog domain.ConcertRepository,
	bookings domain.BookingRepository,
	listener CapacityListener,
	logger *slog.Logger) *Coordinator {

	return &Coordinator{
		ledger:   ledger,
		catalog:  catalog,
		bookings: bookings,
		listener: listener,
		logger:   logger,
	}
}

// Book reserves the labeled seats of the given performance for the user. The
// reservation is strictly all-or-nothing: when any requested seat is taken
// the whole request fails with ErrSeatUnavailable and nothing changes.
// Overlapping requests for the same performance are serialized by the
// ledger's per-performance mutex; whichever reaches the ledger first wins.
func (c *Coordinator) Book(
	ctx context.Context,
	concertID int64,
	date time.Time,
	userID int64,
	labels []string) (*domain.Booking, error) {

	labels = dedupe(labels)
	if len(labels) == 0 {
		return nil, domain.ErrEmptySeatSelection
	}

	perf, err := c.catalog.FindPerformance(ctx, concertID, date)
	if err != nil {
		return nil, err
	}

	if err := c.EnsureLoaded(ctx, perf); err != nil {
		return nil, err
	}

	bookingID := uuid.New()

	seats, remaining, err := c.ledger.Reserve(perf, labels, bookingID)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ID:        bookingID,
		UserID:    userID,
		ConcertID: perf.ConcertID,
		Date:      perf.Date,
		Seats:     seats,
		CreatedAt: time.Now().UTC(),
	}

	if err := c.bookings.Create(ctx, booking); err != nil {
		c.ledger.Release(perf, bookingID)
		return nil, err
	}

	c.logger.Info(
		"booking created",
		"booking_id", booking.ID,
		"concert_id", perf.ConcertID,
		"seats", len(seats),
		"remaining", remaining,
	)

	// The seat lock is already released; a slow listener cannot stall the
	// next booking for this performance.
	if c.listener != nil {
		c.listener.CapacityChanged(perf, remaining)
	}

	return booking, nil
}

// EnsureLoaded lazily hydrates the ledger for a performance from the
// catalog's seat inventory and the seats of already-persisted bookings.
func (c *Coordinator) EnsureLoaded(ctx context.Context, perf domain.PerformanceID) error {
	if c.ledger.Loaded(perf) {
		return nil
	}

	inventory, err := c.catalog.SeatInventory(ctx, perf)
	if err != nil {
		return err
	}

	booked, err := c.bookings.BookedSeats(ctx, perf)
	if err != nil {
		return err
	}

	c.ledger.Load(perf, inventory, booked)

	return nil
}

func dedupe(labels []string) []string {
	seen := make(map[string]bool, len(labels))
	out := labels[:0]

	for _, label := range labels {
		if label == "" || seen[label] {
			continue
		}

		seen[label] = true
		out = append(out, label)
	}

	return out
}
