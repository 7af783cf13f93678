package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stagefront/concert-reservation-system/api"
	"github.com/stagefront/concert-reservation-system/internal/domain"
	"github.com/stagefront/concert-reservation-system/internal/queue"
)

func (app *Application) CreateBooking(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.BookingRequest

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

	userID := app.contextGetUserID(r)

	booking, err := app.coordinator.Book(r.Context(), input.ConcertId, input.Date, userID, input.SeatLabels)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptySeatSelection),
			errors.Is(err, domain.ErrPerformanceNotFound):
			app.badRequestResponse(w, r, err)
		case errors.Is(err, domain.ErrSeatNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrSeatUnavailable):
			logger.Warn("booking rejected, requested seats already taken", "concert_id", input.ConcertId)
			app.forbiddenResponse(w, r, ErrSeatsTaken)
		default:
			logger.Error("failed to create booking", "error", err)
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	go func(ctx context.Context) {
		// new logger for this goroutine, inheriting context from the request
		// important for tracing across async boundaries
		gLogger := app.contextGetLogger(r.WithContext(ctx))

		defer func() {
			if err := recover(); err != nil {
				gLogger.Error("panic occurred during booking follow-up", "panic", err)
			}
		}()

		app.publishBookingConfirmed(ctx, gLogger, booking)
		app.sendBookingConfirmation(ctx, gLogger, booking)
	}(context.WithoutCancel(r.Context()))

	headers := http.Header{
		"Location": []string{fmt.Sprintf("/bookings/%s", booking.ID)},
	}

	err = app.writeJSON(w, http.StatusCreated, toBookingResponse(booking), headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	userID := app.contextGetUserID(r)

	bookings, err := app.bookingRepo.GetAllByUserID(r.Context(), userID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]api.BookingResponse, 0, len(bookings))
	for i := range bookings {
		resp = append(resp, toBookingResponse(&bookings[i]))
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	booking, err := app.bookingRepo.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if booking.UserID != app.contextGetUserID(r) {
		app.forbiddenResponse(w, r, ErrForbiddenAccess)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toBookingResponse(booking), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) publishBookingConfirmed(ctx context.Context, logger *slog.Logger, booking *domain.Booking) {
	if app.publisher == nil {
		return
	}

	labels := make([]string, 0, len(booking.Seats))
	for _, seat := range booking.Seats {
		labels = append(labels, seat.Label)
	}

	perf := domain.NewPerformanceID(booking.ConcertID, booking.Date)

	remaining, err := app.ledger.RemainingCount(perf)
	if err != nil {
		remaining = 0
	}

	event := queue.BookingConfirmedEvent{
		BookingID:      booking.ID.String(),
		UserID:         booking.UserID,
		ConcertID:      booking.ConcertID,
		Date:           booking.Date,
		SeatLabels:     labels,
		RemainingSeats: remaining,
		ConfirmedAt:    time.Now().UTC(),
	}

	err = app.publisher.PublishBookingConfirmed(ctx, event)
	if err != nil {
		logger.Error("failed to publish booking confirmed event", "error", err)
	}
}

func (app *Application) sendBookingConfirmation(ctx context.Context, logger *slog.Logger, booking *domain.Booking) {
	user, err := app.userRepo.GetByID(ctx, booking.UserID)
	if err != nil {
		logger.Error("failed to load user for booking confirmation mail", "error", err)
		return
	}

	labels := make([]string, 0, len(booking.Seats))
	for _, seat := range booking.Seats {
		labels = append(labels, seat.Label)
	}

	data := map[string]any{
		"username":  user.Username,
		"bookingID": booking.ID.String(),
		"concertID": booking.ConcertID,
		"date":      booking.Date.Format(time.RFC3339),
		"seats":     labels,
	}

	err = app.mailer.Send(user.Email, "booking_confirmation.tmpl", data)
	if err != nil {
		logger.Error("failed to send booking confirmation email", "error", err)
	}
}

func toBookingResponse(booking *domain.Booking) api.BookingResponse {
	seats := make([]api.BookedSeat, 0, len(booking.Seats))
	for _, seat := range booking.Seats {
		seats = append(seats, api.BookedSeat{
			Label: seat.Label,
			Price: seat.Price,
		})
	}

	return api.BookingResponse{
		BookingId: booking.ID.String(),
		ConcertId: booking.ConcertID,
		Date:      booking.Date,
		Seats:     seats,
		CreatedAt: booking.CreatedAt,
	}
}
