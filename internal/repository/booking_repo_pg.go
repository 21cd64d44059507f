package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skyfarehq/skyfare/internal/domain"
)

type BookingRepository interface {
	// Create inserts the booking and decrements the flight's seat counter in
	// one transaction. The decrement is conditional on a seat remaining, so
	// two concurrent requests for the last seat cannot both succeed.
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.BookingDetails, error)
	// Cancel flips a Confirmed booking to Cancelled and returns the seat to
	// the flight, in one transaction. Returns ErrInvalidBookingStatus when
	// the booking is not currently Confirmed.
	Cancel(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `b.id, b.pnr, b.user_id, b.flight_id, b.passenger_name, b.passenger_email, b.passenger_phone,
	b.seat_number, b.total_amount_cents, b.booking_status, b.payment_status, b.created_at`

func scanBooking(row pgx.Row, b *domain.Booking) error {
	return row.Scan(&b.ID, &b.PNR, &b.UserID, &b.FlightID, &b.PassengerName, &b.PassengerEmail, &b.PassengerPhone,
		&b.SeatNumber, &b.TotalAmountCents, &b.Status, &b.PaymentStatus, &b.CreatedAt)
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var available int
	err = tx.QueryRow(ctx, `UPDATE flights SET available_seats = available_seats - 1
		WHERE id=$1 AND status='Scheduled' AND available_seats > 0
		RETURNING available_seats`, booking.FlightID).Scan(&available)
	if errors.Is(err, pgx.ErrNoRows) {
		return r.classifyUnbookable(ctx, tx, booking.FlightID)
	}
	if err != nil {
		return err
	}

	if err := tx.QueryRow(ctx, `INSERT INTO bookings (id, pnr, user_id, flight_id, passenger_name, passenger_email, passenger_phone, seat_number, total_amount_cents, booking_status, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`,
		booking.ID, booking.PNR, booking.UserID, booking.FlightID,
		booking.PassengerName, booking.PassengerEmail, booking.PassengerPhone,
		booking.SeatNumber, booking.TotalAmountCents, booking.Status, booking.PaymentStatus).
		Scan(&booking.CreatedAt); err != nil {
		if pgErrCode(err) == pgUniqueViolation {
			return domain.ErrPNRConflict
		}
		return translateFKError(err)
	}

	return tx.Commit(ctx)
}

// classifyUnbookable tells a missing flight apart from a sold-out or
// non-Scheduled one after the conditional decrement matched no row.
func (r *PGBookingRepository) classifyUnbookable(ctx context.Context, tx pgx.Tx, flightID uuid.UUID) error {
	var status domain.FlightStatus
	var available int
	err := tx.QueryRow(ctx, `SELECT status, available_seats FROM flights WHERE id=$1`, flightID).Scan(&status, &available)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrFlightNotFound
	}
	if err != nil {
		return err
	}
	if status != domain.FlightStatusScheduled {
		return domain.ErrFlightNotBookable
	}
	return domain.ErrCapacityExceeded
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings b WHERE b.id=$1`, id)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// ListByUser returns the user's bookings newest first, each joined with its
// flight, route and airports.
func (r *PGBookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.BookingDetails, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+`, `+flightDetailsColumns+`
		FROM bookings b
		JOIN flights f ON f.id = b.flight_id
		JOIN routes r ON r.id = f.route_id
		JOIN airports o ON o.iata_code = r.origin
		JOIN airports d ON d.iata_code = r.destination
		JOIN aircraft a ON a.id = f.aircraft_id
		WHERE b.user_id=$1
		ORDER BY b.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.BookingDetails, 0)
	for rows.Next() {
		var bd domain.BookingDetails
		var seatMap []byte
		if err := rows.Scan(
			&bd.ID, &bd.PNR, &bd.UserID, &bd.FlightID, &bd.PassengerName, &bd.PassengerEmail, &bd.PassengerPhone,
			&bd.SeatNumber, &bd.TotalAmountCents, &bd.Status, &bd.PaymentStatus, &bd.CreatedAt,
			&bd.Flight.ID, &bd.Flight.FlightNo, &bd.Flight.RouteID, &bd.Flight.AircraftID, &bd.Flight.FlightDate,
			&bd.Flight.DepartureTime, &bd.Flight.ArrivalTime, &bd.Flight.AvailableSeats, &bd.Flight.BaseFareCents,
			&bd.Flight.Status, &bd.Flight.CreatedAt,
			&bd.Flight.Route.ID, &bd.Flight.Route.Origin, &bd.Flight.Route.Destination, &bd.Flight.Route.DistanceKM, &bd.Flight.Route.CreatedAt,
			&bd.Flight.Origin.IATACode, &bd.Flight.Origin.Name, &bd.Flight.Origin.City, &bd.Flight.Origin.Country, &bd.Flight.Origin.Timezone, &bd.Flight.Origin.CreatedAt,
			&bd.Flight.Destination.IATACode, &bd.Flight.Destination.Name, &bd.Flight.Destination.City, &bd.Flight.Destination.Country, &bd.Flight.Destination.Timezone, &bd.Flight.Destination.CreatedAt,
			&bd.Flight.Aircraft.ID, &bd.Flight.Aircraft.Model, &bd.Flight.Aircraft.TotalSeats, &seatMap, &bd.Flight.Aircraft.CreatedAt,
		); err != nil {
			return nil, err
		}
		bd.Flight.Aircraft.SeatMap = seatMap
		bookings = append(bookings, bd)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) Cancel(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `UPDATE bookings b SET booking_status=$1
		WHERE b.id=$2 AND b.booking_status=$3
		RETURNING `+bookingColumns, domain.BookingStatusCancelled, id, domain.BookingStatusConfirmed)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvalidBookingStatus
		}
		return nil, err
	}

	// Return the seat to inventory, never past the aircraft's capacity.
	if _, err := tx.Exec(ctx, `UPDATE flights f SET available_seats = f.available_seats + 1
		FROM aircraft a
		WHERE f.id=$1 AND a.id = f.aircraft_id AND f.available_seats < a.total_seats`, b.FlightID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
