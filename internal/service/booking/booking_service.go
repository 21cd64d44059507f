package booking

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/skyfarehq/skyfare/internal/domain"
	"github.com/skyfarehq/skyfare/internal/kafka"
	"github.com/skyfarehq/skyfare/internal/metrics"
	"github.com/skyfarehq/skyfare/internal/repository"
	"github.com/skyfarehq/skyfare/pkg/logger"
	"go.uber.org/zap"
)

// pnrAttempts bounds regenerate-and-retry on a reference-code collision.
const pnrAttempts = 3

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	ListBookingsForUser(ctx context.Context, userID uuid.UUID) ([]domain.BookingDetails, error)
	CancelBooking(ctx context.Context, bookingID, requesterID uuid.UUID, requesterRole domain.Role) (*domain.Booking, error)
}

type Cache interface {
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	cancellationCutoff time.Duration
	metrics            *metrics.Registry
	log                *zap.Logger
}

// CreateBookingInput carries a booking request. UserID comes from the
// verified session, never from the request body.
type CreateBookingInput struct {
	UserID         uuid.UUID
	FlightID       uuid.UUID
	PassengerName  string
	PassengerEmail string
	PassengerPhone string
	SeatNumber     string
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithCancellationCutoff forbids cancelling a booking closer than d to
// departure. Zero disables the cutoff.
func WithCancellationCutoff(d time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		s.cancellationCutoff = d
	}
}

func WithMetrics(reg *metrics.Registry) BookingServiceOption {
	return func(s *BookingService) {
		s.metrics = reg
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	cache Cache,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		flights:      flights,
		cache:        cache,
		producer:     producer,
		bookingTopic: bookingTopic,
		log:          logger.WithComponent("booking"),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking books a seat on a Scheduled flight. Payment is simulated
// as instant success, so the booking lands Confirmed/Completed. The seat
// decrement and the insert commit in one transaction; a sold-out flight
// fails with ErrCapacityExceeded even under concurrent requests.
//
// A seat number, when omitted, is assigned as row 1-30 plus column A-F
// without checking seats already sold on the flight. That mirrors the
// behavior this service replaced and is a known limitation.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}
	if flight.Status != domain.FlightStatusScheduled {
		return nil, domain.ErrFlightNotBookable
	}
	if flight.AvailableSeats <= 0 {
		return nil, domain.ErrCapacityExceeded
	}

	seat := input.SeatNumber
	if seat == "" {
		seat = assignSeat()
	}

	var booking *domain.Booking
	var createErr error
	for attempt := 0; attempt < pnrAttempts; attempt++ {
		pnr, err := domain.NewPNR()
		if err != nil {
			return nil, fmt.Errorf("generate pnr: %w", err)
		}

		booking = &domain.Booking{
			ID:               uuid.New(),
			PNR:              pnr,
			UserID:           input.UserID,
			FlightID:         input.FlightID,
			PassengerName:    input.PassengerName,
			PassengerEmail:   input.PassengerEmail,
			PassengerPhone:   input.PassengerPhone,
			SeatNumber:       seat,
			TotalAmountCents: flight.BaseFareCents,
			Status:           domain.BookingStatusConfirmed,
			PaymentStatus:    domain.PaymentStatusCompleted,
		}

		createErr = s.bookings.Create(ctx, booking)
		if createErr == nil {
			break
		}
		if errors.Is(createErr, domain.ErrPNRConflict) {
			s.log.Warn("pnr collision, regenerating", zap.String("pnr", pnr))
			continue
		}
		return nil, createErr
	}
	if createErr != nil {
		return nil, fmt.Errorf("allocate booking reference: %w", createErr)
	}

	if s.metrics != nil {
		s.metrics.BookingsCreatedTotal.Inc()
	}
	s.invalidateFlights(ctx)
	s.publish(ctx, kafka.EventBookingCreated, booking)

	return booking, nil
}

// ListBookingsForUser returns the user's bookings newest first, enriched
// with flight, route and airport details. No bookings is an empty slice,
// not an error.
func (s *BookingService) ListBookingsForUser(ctx context.Context, userID uuid.UUID) ([]domain.BookingDetails, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// CancelBooking transitions a Confirmed booking to Cancelled and returns
// the seat to the flight's inventory. Cancelling an already-Cancelled
// booking is a no-op returning the current state. Only the booking's owner
// or an admin may cancel.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID, requesterID uuid.UUID, requesterRole domain.Role) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if current.UserID != requesterID && requesterRole != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if current.Status == domain.BookingStatusCancelled {
		return current, nil
	}

	if s.cancellationCutoff > 0 {
		flight, err := s.flights.GetByID(ctx, current.FlightID)
		if err != nil {
			return nil, err
		}
		if time.Until(flight.Departure()) < s.cancellationCutoff {
			return nil, domain.ErrCancellationWindowClosed
		}
	}

	updated, err := s.bookings.Cancel(ctx, bookingID)
	if errors.Is(err, domain.ErrInvalidBookingStatus) {
		// Lost a race with another cancel; the terminal state is the same.
		latest, getErr := s.bookings.GetByID(ctx, bookingID)
		if getErr == nil && latest.Status == domain.BookingStatusCancelled {
			return latest, nil
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BookingsCancelledTotal.Inc()
	}
	s.invalidateFlights(ctx)
	s.publish(ctx, kafka.EventBookingCancelled, updated)

	return updated, nil
}

func validateCreateInput(input CreateBookingInput) error {
	if input.FlightID == uuid.Nil {
		return domain.NewValidationError("flight_id", "required")
	}
	if input.PassengerName == "" {
		return domain.NewValidationError("passenger_name", "required")
	}
	if input.PassengerEmail == "" {
		return domain.NewValidationError("passenger_email", "required")
	}
	if _, err := mail.ParseAddress(input.PassengerEmail); err != nil {
		return domain.NewValidationError("passenger_email", "malformed address")
	}
	return nil
}

// assignSeat picks a random seat: row 1-30, column A-F.
func assignSeat() string {
	row := rand.IntN(30) + 1
	col := rune('A' + rand.IntN(6))
	return fmt.Sprintf("%d%c", row, col)
}

func (s *BookingService) invalidateFlights(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.log.Warn("failed to invalidate flights cache", zap.Error(err))
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:             eventType,
		BookingID:        booking.ID,
		PNR:              booking.PNR,
		FlightID:         booking.FlightID,
		UserID:           booking.UserID,
		PassengerEmail:   booking.PassengerEmail,
		SeatNumber:       booking.SeatNumber,
		Status:           string(booking.Status),
		TotalAmountCents: booking.TotalAmountCents,
		CreatedAt:        booking.CreatedAt,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.PNR, event); err != nil {
		s.log.Warn("failed to publish booking event", zap.String("type", eventType), zap.Error(err))
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.PNR, event); err != nil {
			s.log.Warn("failed to publish notification event", zap.String("type", eventType), zap.Error(err))
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
