package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/stagefront/concert-reservation-system/api"
	"github.com/stagefront/concert-reservation-system/internal/domain"
)

// SubscribeConcertInfo registers a capacity watcher for a performance and
// suspends the request until a booking pushes the remaining seat count below
// the watcher's threshold. The response is written from the handler
// goroutine once the watcher resolves; if the client disconnects first the
// watcher is discarded.
func (app *Application) SubscribeConcertInfo(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.SubscriptionRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	if (input.PercentageBooked == nil) == (input.RemainingSeatsThreshold == nil) {
		app.badRequestResponse(w, r, fmt.Errorf("exactly one of percentageBooked and remainingSeatsThreshold must be set"))
		return
	}

	// Validate before registering so a rejected subscription never enters
	// the registry.
	perf, err := app.concertRepo.FindPerformance(r.Context(), input.ConcertId, input.Date)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPerformanceNotFound):
			app.badRequestResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.coordinator.EnsureLoaded(r.Context(), perf)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	threshold, err := app.resolveThreshold(perf, input)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	sub := app.registry.Register(perf, threshold)

	logger.Info(
		"capacity watcher registered",
		"subscription_id", sub.ID,
		"concert_id", perf.ConcertID,
		"threshold", threshold,
	)

	select {
	case n, ok := <-sub.Done():
		if !ok {
			// Cancelled during shutdown; the connection is being torn down.
			return
		}

		resp := api.SubscriptionResponse{
			RemainingSeats: n.RemainingSeats,
		}

		err = app.writeJSON(w, http.StatusOK, resp, nil)
		if err != nil {
			app.serverErrorResponse(w, r, err)
		}

	case <-r.Context().Done():
		app.registry.Cancel(sub.ID)
		logger.Info("capacity watcher cancelled by client disconnect", "subscription_id", sub.ID)
	}
}

// resolveThreshold converts a percentage-booked subscription into a
// remaining-seat threshold against the performance's total capacity. The
// dispatcher fires when remaining drops strictly below the threshold, so the
// threshold is one above the remaining count that corresponds to the
// requested percentage. A 100 percent subscription resolves when the
// performance sells out.
func (app *Application) resolveThreshold(perf domain.PerformanceID, input api.SubscriptionRequest) (int, error) {
	if input.RemainingSeatsThreshold != nil {
		return *input.RemainingSeatsThreshold, nil
	}

	snapshot, err := app.ledger.Snapshot(perf)
	if err != nil {
		return 0, err
	}

	total := len(snapshot)

	return total*(100-*input.PercentageBooked)/100 + 1, nil
}
