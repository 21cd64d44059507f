package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusCompleted PaymentStatus = "Completed"
)

type Booking struct {
	ID               uuid.UUID     `json:"id"`
	PNR              string        `json:"pnr"`
	UserID           uuid.UUID     `json:"user_id"`
	FlightID         uuid.UUID     `json:"flight_id"`
	PassengerName    string        `json:"passenger_name"`
	PassengerEmail   string        `json:"passenger_email"`
	PassengerPhone   string        `json:"passenger_phone,omitempty"`
	SeatNumber       string        `json:"seat_number"`
	TotalAmountCents int64         `json:"total_amount_cents"`
	Status           BookingStatus `json:"booking_status"`
	PaymentStatus    PaymentStatus `json:"payment_status"`
	CreatedAt        time.Time     `json:"created_at"`
}

// BookingDetails is a booking enriched with its flight, route and airports.
type BookingDetails struct {
	Booking
	Flight FlightDetails `json:"flight"`
}
