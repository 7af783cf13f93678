package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stagefront/concert-reservation-system/internal/domain"
)

// PostgresConcertRepository is the read-only catalog collaborator. The
// booking core never writes through it.
type PostgresConcertRepository struct {
	db *pgxpool.Pool
}

func NewPostgresConcertRepository(db *pgxpool.Pool) *PostgresConcertRepository {
	return &PostgresConcertRepository{
		db: db,
	}
}

func (p *PostgresConcertRepository) FindPerformance(
	ctx context.Context,
	concertID int64,
	date time.Time) (domain.PerformanceID, error) {

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM concert_dates
			WHERE concert_id = $1 AND date = $2
		)
	`

	var exists bool

	err := p.db.QueryRow(ctx, query, concertID, date.UTC()).Scan(&exists)
	if err != nil {
		return domain.PerformanceID{}, err
	}

	if !exists {
		return domain.PerformanceID{}, domain.ErrPerformanceNotFound
	}

	return domain.NewPerformanceID(concertID, date), nil
}

func (p *PostgresConcertRepository) SeatInventory(
	ctx context.Context,
	perf domain.PerformanceID) ([]domain.SeatInfo, error) {

	query := `
		SELECT label, price
		FROM seats
		WHERE concert_id = $1 AND date = $2
		ORDER BY label
	`

	rows, err := p.db.Query(ctx, query, perf.ConcertID, perf.Date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inventory []domain.SeatInfo

	for rows.Next() {
		var seat domain.SeatInfo

		err = rows.Scan(&seat.Label, &seat.Price)
		if err != nil {
			return nil, err
		}

		inventory = append(inventory, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return inventory, nil
}

func (p *PostgresConcertRepository) PerformancesByDate(
	ctx context.Context,
	date time.Time) ([]domain.PerformanceID, error) {

	query := `
		SELECT concert_id
		FROM concert_dates
		WHERE date = $1
		ORDER BY concert_id
	`

	rows, err := p.db.Query(ctx, query, date.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var performances []domain.PerformanceID

	for rows.Next() {
		var concertID int64

		err = rows.Scan(&concertID)
		if err != nil {
			return nil, err
		}

		performances = append(performances, domain.NewPerformanceID(concertID, date))
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return performances, nil
}
