package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/skyfarehq/skyfare/internal/domain"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// translateFKError maps foreign-key violations on inserts to the missing
// referenced record.
func translateFKError(err error) error {
	if err == nil {
		return nil
	}
	if pgErrCode(err) != pgForeignKeyViolation {
		return err
	}
	var pgErr *pgconn.PgError
	errors.As(err, &pgErr)
	switch pgErr.ConstraintName {
	case "flights_route_id_fkey":
		return domain.ErrRouteNotFound
	case "flights_aircraft_id_fkey":
		return domain.ErrAircraftNotFound
	case "routes_origin_fkey", "routes_destination_fkey":
		return domain.ErrAirportNotFound
	case "bookings_flight_id_fkey":
		return domain.ErrFlightNotFound
	case "bookings_user_id_fkey":
		return domain.ErrUserNotFound
	}
	return err
}
