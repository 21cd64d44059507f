package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skyfarehq/skyfare/internal/domain"
)

type RouteRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Route, error)
	List(ctx context.Context) ([]domain.Route, error)
	Create(ctx context.Context, route *domain.Route) error
}

type PGRouteRepository struct {
	db *pgxpool.Pool
}

func NewRouteRepository(db *pgxpool.Pool) RouteRepository {
	return &PGRouteRepository{db: db}
}

func (r *PGRouteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Route, error) {
	row := r.db.QueryRow(ctx, `SELECT id, origin, destination, distance_km, created_at FROM routes WHERE id=$1`, id)
	var rt domain.Route
	if err := row.Scan(&rt.ID, &rt.Origin, &rt.Destination, &rt.DistanceKM, &rt.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRouteNotFound
		}
		return nil, err
	}
	return &rt, nil
}

func (r *PGRouteRepository) List(ctx context.Context) ([]domain.Route, error) {
	rows, err := r.db.Query(ctx, `SELECT id, origin, destination, distance_km, created_at FROM routes ORDER BY origin, destination`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := make([]domain.Route, 0)
	for rows.Next() {
		var rt domain.Route
		if err := rows.Scan(&rt.ID, &rt.Origin, &rt.Destination, &rt.DistanceKM, &rt.CreatedAt); err != nil {
			return nil, err
		}
		routes = append(routes, rt)
	}
	return routes, rows.Err()
}

func (r *PGRouteRepository) Create(ctx context.Context, route *domain.Route) error {
	err := r.db.QueryRow(ctx, `INSERT INTO routes (id, origin, destination, distance_km)
		VALUES ($1, $2, $3, $4) RETURNING created_at`,
		route.ID, route.Origin, route.Destination, route.DistanceKM).
		Scan(&route.CreatedAt)
	return translateFKError(err)
}

var _ RouteRepository = (*PGRouteRepository)(nil)
