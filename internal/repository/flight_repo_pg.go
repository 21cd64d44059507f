package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skyfarehq/skyfare/internal/domain"
)

type FlightRepository interface {
	Search(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightDetails, error)
	ListAll(ctx context.Context) ([]domain.FlightDetails, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FlightDetails, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	SetStatus(ctx context.Context, id uuid.UUID, status domain.FlightStatus) (*domain.Flight, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

// flightDetailsColumns is the joined projection shared by Search, ListAll
// and GetByID. Order must match scanFlightDetails.
const flightDetailsColumns = `f.id, f.flight_no, f.route_id, f.aircraft_id, f.flight_date, f.departure_time, f.arrival_time,
	f.available_seats, f.base_fare_cents, f.status, f.created_at,
	r.id, r.origin, r.destination, r.distance_km, r.created_at,
	o.iata_code, o.name, o.city, o.country, o.timezone, o.created_at,
	d.iata_code, d.name, d.city, d.country, d.timezone, d.created_at,
	a.id, a.model, a.total_seats, a.seat_map, a.created_at`

const flightDetailsJoins = ` FROM flights f
	JOIN routes r ON r.id = f.route_id
	JOIN airports o ON o.iata_code = r.origin
	JOIN airports d ON d.iata_code = r.destination
	JOIN aircraft a ON a.id = f.aircraft_id`

func scanFlightDetails(row pgx.Row) (*domain.FlightDetails, error) {
	var fd domain.FlightDetails
	var seatMap []byte
	if err := row.Scan(
		&fd.ID, &fd.FlightNo, &fd.RouteID, &fd.AircraftID, &fd.FlightDate, &fd.DepartureTime, &fd.ArrivalTime,
		&fd.AvailableSeats, &fd.BaseFareCents, &fd.Status, &fd.CreatedAt,
		&fd.Route.ID, &fd.Route.Origin, &fd.Route.Destination, &fd.Route.DistanceKM, &fd.Route.CreatedAt,
		&fd.Origin.IATACode, &fd.Origin.Name, &fd.Origin.City, &fd.Origin.Country, &fd.Origin.Timezone, &fd.Origin.CreatedAt,
		&fd.Destination.IATACode, &fd.Destination.Name, &fd.Destination.City, &fd.Destination.Country, &fd.Destination.Timezone, &fd.Destination.CreatedAt,
		&fd.Aircraft.ID, &fd.Aircraft.Model, &fd.Aircraft.TotalSeats, &seatMap, &fd.Aircraft.CreatedAt,
	); err != nil {
		return nil, err
	}
	fd.Aircraft.SeatMap = seatMap
	return &fd, nil
}

// Search returns flights eligible for passenger booking: Scheduled with
// seats remaining, narrowed by every supplied filter.
func (r *PGFlightRepository) Search(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightDetails, error) {
	query := `SELECT ` + flightDetailsColumns + flightDetailsJoins +
		` WHERE f.status = 'Scheduled' AND f.available_seats > 0`

	args := make([]any, 0, 3)
	if filter.Origin != "" {
		args = append(args, filter.Origin)
		query += fmt.Sprintf(" AND r.origin = $%d", len(args))
	}
	if filter.Destination != "" {
		args = append(args, filter.Destination)
		query += fmt.Sprintf(" AND r.destination = $%d", len(args))
	}
	if filter.Date != nil {
		args = append(args, *filter.Date)
		query += fmt.Sprintf(" AND f.flight_date = $%d", len(args))
	}
	query += " ORDER BY f.flight_date, f.departure_time"

	return r.queryFlights(ctx, query, args...)
}

// ListAll returns every flight regardless of status, for the admin listing.
func (r *PGFlightRepository) ListAll(ctx context.Context) ([]domain.FlightDetails, error) {
	query := `SELECT ` + flightDetailsColumns + flightDetailsJoins +
		` ORDER BY f.flight_date, f.departure_time`
	return r.queryFlights(ctx, query)
}

func (r *PGFlightRepository) queryFlights(ctx context.Context, query string, args ...any) ([]domain.FlightDetails, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.FlightDetails, 0)
	for rows.Next() {
		fd, err := scanFlightDetails(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *fd)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.FlightDetails, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightDetailsColumns+flightDetailsJoins+` WHERE f.id=$1`, id)
	fd, err := scanFlightDetails(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrFlightNotFound
	}
	return fd, err
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	err := r.db.QueryRow(ctx, `INSERT INTO flights (id, flight_no, route_id, aircraft_id, flight_date, departure_time, arrival_time, available_seats, base_fare_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`,
		flight.ID, flight.FlightNo, flight.RouteID, flight.AircraftID, flight.FlightDate,
		flight.DepartureTime, flight.ArrivalTime, flight.AvailableSeats, flight.BaseFareCents, flight.Status).
		Scan(&flight.CreatedAt)
	return translateFKError(err)
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	cmd, err := r.db.Exec(ctx, `UPDATE flights SET flight_no=$1, flight_date=$2, departure_time=$3, arrival_time=$4, base_fare_cents=$5 WHERE id=$6`,
		flight.FlightNo, flight.FlightDate, flight.DepartureTime, flight.ArrivalTime, flight.BaseFareCents, flight.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

func (r *PGFlightRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.FlightStatus) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `UPDATE flights SET status=$1 WHERE id=$2
		RETURNING id, flight_no, route_id, aircraft_id, flight_date, departure_time, arrival_time, available_seats, base_fare_cents, status, created_at`,
		status, id)
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.FlightNo, &f.RouteID, &f.AircraftID, &f.FlightDate, &f.DepartureTime, &f.ArrivalTime,
		&f.AvailableSeats, &f.BaseFareCents, &f.Status, &f.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
