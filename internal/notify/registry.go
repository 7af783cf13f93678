// Package notify implements the capacity-subscription engine: clients
// register interest in a performance with a remaining-seat threshold and are
// resolved exactly once when a booking pushes the remaining count below it.
package notify

import (
	"sync"

	"github.com/google/uuid"
	"github.com/stagefront/concert-reservation-system/internal/domain"
)

// Notification carries the remaining-seat count delivered to a watcher.
type Notification struct {
	RemainingSeats int
}

// Subscription is one registered watcher. Its channel acts as a one-shot
// completion handle: the dispatcher resolves it with a Notification, or
// cancellation closes it without a value. Either way it is closed exactly
// once and the subscription is gone from the registry by then.
type Subscription struct {
	ID          uuid.UUID
	Performance domain.PerformanceID
	Threshold   int

	done chan Notification
}

// Done returns the completion channel. Receivers must check the ok flag: a
// closed channel without a value means the subscription was cancelled.
func (s *Subscription) Done() <-chan Notification {
	return s.done
}

// Registry tracks pending watchers keyed by performance. A single mutex
// guards registration, cancellation and the dispatcher's scan-and-remove;
// remove-and-resolve is one atomic step, so a watcher can never be resolved
// twice and a cancelled watcher is never delivered to.
type Registry struct {
	mu     sync.Mutex
	subs   map[uuid.UUID]*Subscription
	byPerf map[domain.PerformanceID]map[uuid.UUID]*Subscription
}

func NewRegistry() *Registry {
	return &Registry{
		subs:   make(map[uuid.UUID]*Subscription),
		byPerf: make(map[domain.PerformanceID]map[uuid.UUID]*Subscription),
	}
}

// Register stores a new watcher and returns it. Watchers for the same
// performance are independent, even with equal thresholds; each is retired
// on its own. Callers validate the performance before registering so an
// invalid subscription never enters the registry.
func (r *Registry) Register(perf domain.PerformanceID, threshold int) *Subscription {
	sub := &Subscription{
		ID:          uuid.New(),
		Performance: perf,
		Threshold:   threshold,
		done:        make(chan Notification, 1),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	perfSubs := r.byPerf[perf]
	if perfSubs == nil {
		perfSubs = make(map[uuid.UUID]*Subscription)
		r.byPerf[perf] = perfSubs
	}

	perfSubs[sub.ID] = sub
	r.subs[sub.ID] = sub

	return sub
}

// Cancel removes a watcher and closes its channel without a value. This is
// the disconnect hook for the boundary layer; cancelling a watcher that was
// already delivered or never existed is a no-op.
func (r *Registry) Cancel(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := r.subs[id]
	if !ok {
		return
	}

	r.remove(sub)
	close(sub.done)
}

// CancelAll cancels every pending watcher. Used on shutdown so suspended
// callers unblock before the server drains.
func (r *Registry) CancelAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, sub := range r.subs {
		close(sub.done)
	}

	r.subs = make(map[uuid.UUID]*Subscription)
	r.byPerf = make(map[domain.PerformanceID]map[uuid.UUID]*Subscription)
}

// ActiveFor returns the watchers currently registered for a performance.
func (r *Registry) ActiveFor(perf domain.PerformanceID) []*Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs := make([]*Subscription, 0, len(r.byPerf[perf]))
	for _, sub := range r.byPerf[perf] {
		subs = append(subs, sub)
	}

	return subs
}

// Len reports the total number of pending watchers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.subs)
}

// remove must be called with the registry mutex held.
func (r *Registry) remove(sub *Subscription) {
	delete(r.subs, sub.ID)

	perfSubs := r.byPerf[sub.Performance]
	delete(perfSubs, sub.ID)

	if len(perfSubs) == 0 {
		delete(r.byPerf, sub.Performance)
	}
}
