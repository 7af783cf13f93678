package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stagefront/concert-reservation-system/api"
	"github.com/stagefront/concert-reservation-system/internal/domain"
)

// GetSeatsByDate lists the seats of every performance on the given date,
// optionally filtered by booked status. Seat state comes from the in-memory
// ledger so a listing is consistent with concurrent bookings.
func (app *Application) GetSeatsByDate(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse(time.RFC3339, chi.URLParam(r, "date"))
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("date must be a valid RFC 3339 timestamp"))
		return
	}

	status := domain.SeatStatusAny
	if s := r.URL.Query().Get("status"); s != "" {
		status = domain.SeatStatus(s)
		if !status.Valid() {
			app.badRequestResponse(w, r, fmt.Errorf("status must be one of Booked, Unbooked, Any"))
			return
		}
	}

	performances, err := app.concertRepo.PerformancesByDate(r.Context(), date)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	seats := []api.Seat{}

	for _, perf := range performances {
		err = app.coordinator.EnsureLoaded(r.Context(), perf)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}

		snapshot, err := app.ledger.Snapshot(perf)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}

		for _, seat := range snapshot {
			if !seat.Matches(status) {
				continue
			}

			seats = append(seats, api.Seat{
				Label:  seat.Label,
				Price:  seat.Price,
				Booked: seat.Booked,
			})
		}
	}

	resp := api.SeatListResponse{
		Date:  date,
		Seats: seats,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
