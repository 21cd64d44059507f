package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skyfarehq/skyfare/internal/domain"
)

type AircraftRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Aircraft, error)
	List(ctx context.Context) ([]domain.Aircraft, error)
	Create(ctx context.Context, aircraft *domain.Aircraft) error
}

type PGAircraftRepository struct {
	db *pgxpool.Pool
}

func NewAircraftRepository(db *pgxpool.Pool) AircraftRepository {
	return &PGAircraftRepository{db: db}
}

func (r *PGAircraftRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Aircraft, error) {
	row := r.db.QueryRow(ctx, `SELECT id, model, total_seats, seat_map, created_at FROM aircraft WHERE id=$1`, id)
	var a domain.Aircraft
	var seatMap []byte
	if err := row.Scan(&a.ID, &a.Model, &a.TotalSeats, &seatMap, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAircraftNotFound
		}
		return nil, err
	}
	a.SeatMap = seatMap
	return &a, nil
}

func (r *PGAircraftRepository) List(ctx context.Context) ([]domain.Aircraft, error) {
	rows, err := r.db.Query(ctx, `SELECT id, model, total_seats, seat_map, created_at FROM aircraft ORDER BY model`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fleet := make([]domain.Aircraft, 0)
	for rows.Next() {
		var a domain.Aircraft
		var seatMap []byte
		if err := rows.Scan(&a.ID, &a.Model, &a.TotalSeats, &seatMap, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.SeatMap = seatMap
		fleet = append(fleet, a)
	}
	return fleet, rows.Err()
}

func (r *PGAircraftRepository) Create(ctx context.Context, aircraft *domain.Aircraft) error {
	var seatMap any
	if len(aircraft.SeatMap) > 0 {
		seatMap = []byte(aircraft.SeatMap)
	}
	return r.db.QueryRow(ctx, `INSERT INTO aircraft (id, model, total_seats, seat_map)
		VALUES ($1, $2, $3, $4) RETURNING created_at`,
		aircraft.ID, aircraft.Model, aircraft.TotalSeats, seatMap).
		Scan(&aircraft.CreatedAt)
}

var _ AircraftRepository = (*PGAircraftRepository)(nil)
