package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skyfarehq/skyfare/internal/domain"
)

type AirportRepository interface {
	List(ctx context.Context) ([]domain.Airport, error)
	GetByCode(ctx context.Context, iata string) (*domain.Airport, error)
	Create(ctx context.Context, airport *domain.Airport) error
}

type PGAirportRepository struct {
	db *pgxpool.Pool
}

func NewAirportRepository(db *pgxpool.Pool) AirportRepository {
	return &PGAirportRepository{db: db}
}

func (r *PGAirportRepository) List(ctx context.Context) ([]domain.Airport, error) {
	rows, err := r.db.Query(ctx, `SELECT iata_code, name, city, country, timezone, created_at FROM airports ORDER BY iata_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.IATACode, &a.Name, &a.City, &a.Country, &a.Timezone, &a.CreatedAt); err != nil {
			return nil, err
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

func (r *PGAirportRepository) GetByCode(ctx context.Context, iata string) (*domain.Airport, error) {
	row := r.db.QueryRow(ctx, `SELECT iata_code, name, city, country, timezone, created_at FROM airports WHERE iata_code=$1`, iata)
	var a domain.Airport
	if err := row.Scan(&a.IATACode, &a.Name, &a.City, &a.Country, &a.Timezone, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAirportNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *PGAirportRepository) Create(ctx context.Context, airport *domain.Airport) error {
	err := r.db.QueryRow(ctx, `INSERT INTO airports (iata_code, name, city, country, timezone)
		VALUES ($1, $2, $3, $4, $5) RETURNING created_at`,
		airport.IATACode, airport.Name, airport.City, airport.Country, airport.Timezone).
		Scan(&airport.CreatedAt)
	if pgErrCode(err) == pgUniqueViolation {
		return domain.ErrDuplicate
	}
	return err
}

var _ AirportRepository = (*PGAirportRepository)(nil)
