package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skyfarehq/skyfare/internal/domain"
)

type StatsRepository interface {
	CountFlights(ctx context.Context) (int64, error)
	CountBookings(ctx context.Context) (int64, error)
	// SumRevenueCents sums amounts over non-cancelled bookings only.
	SumRevenueCents(ctx context.Context) (int64, error)
	// CountUpcomingFlights counts Scheduled flights departing on or after
	// the given date.
	CountUpcomingFlights(ctx context.Context, from time.Time) (int64, error)
}

type PGStatsRepository struct {
	db *pgxpool.Pool
}

func NewStatsRepository(db *pgxpool.Pool) StatsRepository {
	return &PGStatsRepository{db: db}
}

func (r *PGStatsRepository) CountFlights(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM flights`).Scan(&n)
	return n, err
}

func (r *PGStatsRepository) CountBookings(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&n)
	return n, err
}

func (r *PGStatsRepository) SumRevenueCents(ctx context.Context) (int64, error) {
	var sum int64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(total_amount_cents), 0) FROM bookings WHERE booking_status <> $1`,
		domain.BookingStatusCancelled).Scan(&sum)
	return sum, err
}

func (r *PGStatsRepository) CountUpcomingFlights(ctx context.Context, from time.Time) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM flights WHERE flight_date >= $1 AND status = $2`,
		from, domain.FlightStatusScheduled).Scan(&n)
	return n, err
}

var _ StatsRepository = (*PGStatsRepository)(nil)
