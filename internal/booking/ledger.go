package booking

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stagefront/concert-reservation-system/internal/domain"
)

// Ledger is the authoritative in-memory record of seat state. Every
// performance carries its own mutex, so bookings for different performances
// never contend; bookings for the same performance serialize only for the
// check-and-flip of seat flags, never for notification delivery.
type Ledger struct {
	mu           sync.RWMutex
	performances map[domain.PerformanceID]*performance
}

type performance struct {
	mu    sync.Mutex
	seats map[string]*seatState
}

type seatState struct {
	price     decimal.Decimal
	bookingID uuid.UUID // zero while the seat is free
}

func NewLedger() *Ledger {
	return &Ledger{
		performances: make(map[domain.PerformanceID]*performance),
	}
}

// Load registers a performance's seat inventory together with any seats
// already held by persisted bookings. Loading a performance that is already
// known is a no-op, so concurrent lazy hydration is safe: the first loader
// wins and later reservations are never overwritten by stale snapshots.
func (l *Ledger) Load(perf domain.PerformanceID, inventory []domain.SeatInfo, booked []domain.BookedSeat) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.performances[perf]; ok {
		return
	}

	seats := make(map[string]*seatState, len(inventory))
	for _, s := range inventory {
		seats[s.Label] = &seatState{price: s.Price}
	}

	for _, b := range booked {
		if seat, ok := seats[b.Label]; ok {
			seat.bookingID = b.BookingID
		}
	}

	l.performances[perf] = &performance{seats: seats}
}

func (l *Ledger) Loaded(perf domain.PerformanceID) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, ok := l.performances[perf]

	return ok
}

func (l *Ledger) get(perf domain.PerformanceID) (*performance, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	p, ok := l.performances[perf]

	return p, ok
}

// Reserve books every named seat for bookingID in one atomic step. If any
// label is unknown or any seat is already booked, no seat is touched. On
// success it returns the booked seats and the count of seats still unbooked
// for the performance, taken inside the same critical section so callers
// never need a second, racy query.
func (l *Ledger) Reserve(perf domain.PerformanceID, labels []string, bookingID uuid.UUID) ([]domain.Seat, int, error) {
	p, ok := l.get(perf)
	if !ok {
		return nil, 0, domain.ErrPerformanceNotFound
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, label := range labels {
		seat, ok := p.seats[label]
		if !ok {
			return nil, 0, domain.ErrSeatNotFound
		}

		if seat.bookingID != uuid.Nil {
			return nil, 0, domain.ErrSeatUnavailable
		}
	}

	booked := make([]domain.Seat, 0, len(labels))

	for _, label := range labels {
		seat := p.seats[label]
		seat.bookingID = bookingID

		booked = append(booked, domain.Seat{
			Label:     label,
			Price:     seat.price,
			Booked:    true,
			BookingID: bookingID,
		})
	}

	sort.Slice(booked, func(i, j int) bool { return booked[i].Label < booked[j].Label })

	return booked, p.remaining(), nil
}

// Release frees every seat held by bookingID. Releasing a booking that holds
// no seats is a no-op.
func (l *Ledger) Release(perf domain.PerformanceID, bookingID uuid.UUID) {
	p, ok := l.get(perf)
	if !ok {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, seat := range p.seats {
		if seat.bookingID == bookingID {
			seat.bookingID = uuid.Nil
		}
	}
}

// RemainingCount reports how many seats of the performance are unbooked,
// consistent with the latest completed Reserve or Release.
func (l *Ledger) RemainingCount(perf domain.PerformanceID) (int, error) {
	p, ok := l.get(perf)
	if !ok {
		return 0, domain.ErrPerformanceNotFound
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.remaining(), nil
}

// Snapshot returns the performance's seats sorted by label. The snapshot is
// taken under the performance mutex, so it never exposes a half-applied
// reservation.
func (l *Ledger) Snapshot(perf domain.PerformanceID) ([]domain.Seat, error) {
	p, ok := l.get(perf)
	if !ok {
		return nil, domain.ErrPerformanceNotFound
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	seats := make([]domain.Seat, 0, len(p.seats))

	for label, seat := range p.seats {
		seats = append(seats, domain.Seat{
			Label:     label,
			Price:     seat.price,
			Booked:    seat.bookingID != uuid.Nil,
			BookingID: seat.bookingID,
		})
	}

	sort.Slice(seats, func(i, j int) bool { return seats[i].Label < seats[j].Label })

	return seats, nil
}

// remaining must be called with the performance mutex held.
func (p *performance) remaining() int {
	count := 0

	for _, seat := range p.seats {
		if seat.bookingID == uuid.Nil {
			count++
		}
	}

	return count
}
