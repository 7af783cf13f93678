package notify

import (
	"log/slog"

	"github.com/stagefront/concert-reservation-system/internal/domain"
)

// Dispatcher resolves watchers after every successful booking. It implements
// the coordinator's CapacityListener contract.
type Dispatcher struct {
	registry *Registry
	logger   *slog.Logger
}

func NewDispatcher(registry *Registry, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		logger:   logger,
	}
}

// CapacityChanged delivers remaining to every watcher on the performance
// whose threshold is strictly greater than it, removing each watcher in the
// same locked step as the delivery. The value delivered is the one supplied
// by the booking that triggered the call; back-to-back bookings are processed
// independently and a watcher retired by the first pass is absent from the
// second. Never blocks: each done channel is buffered for its single send.
func (d *Dispatcher) CapacityChanged(perf domain.PerformanceID, remaining int) {
	d.registry.mu.Lock()
	defer d.registry.mu.Unlock()

	for _, sub := range d.registry.byPerf[perf] {
		if remaining >= sub.Threshold {
			continue
		}

		d.registry.remove(sub)
		sub.done <- Notification{RemainingSeats: remaining}
		close(sub.done)

		d.logger.Info(
			"capacity notification delivered",
			"subscription_id", sub.ID,
			"concert_id", perf.ConcertID,
			"threshold", sub.Threshold,
			"remaining", remaining,
		)
	}
}
