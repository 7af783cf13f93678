package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stagefront/concert-reservation-system/internal/domain"
)

// PostgresBookingRepository is the ledger's durability strategy. The
// in-memory ledger is authoritative; rows here exist so state survives a
// restart, and the unique constraint on booking_seats is a backstop, not the
// serialization mechanism.
type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

func (p *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO bookings (id, user_id, concert_id, date, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`

		_, err := tx.Exec(
			ctx,
			query,
			booking.ID,
			booking.UserID,
			booking.ConcertID,
			booking.Date,
			booking.CreatedAt,
		)
		if err != nil {
			return mapBookingError(err)
		}

		rows := make([][]any, 0, len(booking.Seats))
		for _, seat := range booking.Seats {
			rows = append(rows, []any{
				booking.ID,
				booking.ConcertID,
				booking.Date,
				seat.Label,
			})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"booking_seats"},
			[]string{"booking_id", "concert_id", "date", "label"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return mapBookingError(err)
		}

		return nil
	})
}

func (p *PostgresBookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	query := `
		SELECT id, user_id, concert_id, date, created_at
		FROM bookings
		WHERE id = $1
	`

	var booking domain.Booking

	err := p.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ConcertID,
		&booking.Date,
		&booking.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	booking.Seats, err = p.seatsOf(ctx, id)
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func (p *PostgresBookingRepository) GetAllByUserID(ctx context.Context, userID int64) ([]domain.Booking, error) {
	query := `
		SELECT id, user_id, concert_id, date, created_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at, id
	`

	rows, err := p.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking

		err = rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.ConcertID,
			&booking.Date,
			&booking.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		bookings = append(bookings, booking)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	for i := range bookings {
		bookings[i].Seats, err = p.seatsOf(ctx, bookings[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return bookings, nil
}

func (p *PostgresBookingRepository) BookedSeats(
	ctx context.Context,
	perf domain.PerformanceID) ([]domain.BookedSeat, error) {

	query := `
		SELECT label, booking_id
		FROM booking_seats
		WHERE concert_id = $1 AND date = $2
	`

	rows, err := p.db.Query(ctx, query, perf.ConcertID, perf.Date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	booked := make([]domain.BookedSeat, 0)

	for rows.Next() {
		var seat domain.BookedSeat

		err = rows.Scan(&seat.Label, &seat.BookingID)
		if err != nil {
			return nil, err
		}

		booked = append(booked, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return booked, nil
}

func (p *PostgresBookingRepository) seatsOf(ctx context.Context, bookingID uuid.UUID) ([]domain.Seat, error) {
	query := `
		SELECT bs.label, s.price
		FROM booking_seats bs
		JOIN seats s
			ON s.concert_id = bs.concert_id
			AND s.date = bs.date
			AND s.label = bs.label
		WHERE bs.booking_id = $1
		ORDER BY bs.label
	`

	rows, err := p.db.Query(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seats []domain.Seat

	for rows.Next() {
		seat := domain.Seat{Booked: true, BookingID: bookingID}

		err = rows.Scan(&seat.Label, &seat.Price)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

func mapBookingError(err error) error {
	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		if pgErr.ConstraintName == "bookings_pkey" {
			return domain.ErrDuplicateBooking
		}

		return domain.ErrSeatUnavailable
	}

	return err
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}
