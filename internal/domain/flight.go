package domain

import (
	"time"

	"github.com/google/uuid"
)

type FlightStatus string

const (
	FlightStatusScheduled FlightStatus = "Scheduled"
	FlightStatusCancelled FlightStatus = "Cancelled"
	FlightStatusCompleted FlightStatus = "Completed"
)

type Flight struct {
	ID             uuid.UUID    `json:"id"`
	FlightNo       string       `json:"flight_no"`
	RouteID        uuid.UUID    `json:"route_id"`
	AircraftID     uuid.UUID    `json:"aircraft_id"`
	FlightDate     time.Time    `json:"flight_date"`
	DepartureTime  string       `json:"departure_time"`
	ArrivalTime    string       `json:"arrival_time"`
	AvailableSeats int          `json:"available_seats"`
	BaseFareCents  int64        `json:"base_fare_cents"`
	Status         FlightStatus `json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
}

// FlightDetails is a flight joined with its route, both airports and the
// aircraft, as returned by search and lookups.
type FlightDetails struct {
	Flight
	Route       Route    `json:"route"`
	Origin      Airport  `json:"origin_airport"`
	Destination Airport  `json:"destination_airport"`
	Aircraft    Aircraft `json:"aircraft"`
}

// FlightFilter is a conjunction of optional search criteria. Zero values
// pass through.
type FlightFilter struct {
	Origin      string
	Destination string
	Date        *time.Time
}

// Bookable reports whether passengers may book this flight.
func (f *Flight) Bookable() bool {
	return f.Status == FlightStatusScheduled && f.AvailableSeats > 0
}

// Departure combines the flight date with the departure time-of-day.
// Airport time zones are ignored; the cancellation cutoff only needs
// minute-level precision.
func (f *Flight) Departure() time.Time {
	t, err := time.Parse("15:04", f.DepartureTime)
	if err != nil {
		return f.FlightDate
	}
	return time.Date(f.FlightDate.Year(), f.FlightDate.Month(), f.FlightDate.Day(),
		t.Hour(), t.Minute(), 0, 0, f.FlightDate.Location())
}
