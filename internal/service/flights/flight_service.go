package flights

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/skyfarehq/skyfare/internal/domain"
	"github.com/skyfarehq/skyfare/internal/metrics"
	"github.com/skyfarehq/skyfare/internal/repository"
	"github.com/skyfarehq/skyfare/pkg/logger"
	"go.uber.org/zap"
)

type FlightUseCase interface {
	Search(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightDetails, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FlightDetails, error)
	ListAll(ctx context.Context) ([]domain.FlightDetails, error)
	Create(ctx context.Context, input CreateFlightInput) (*domain.FlightDetails, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateFlightInput) (*domain.FlightDetails, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.FlightStatus) (*domain.Flight, error)
}

// Cache holds the unfiltered eligible flight list. Filtered searches
// always hit the store.
type Cache interface {
	GetFlights(ctx context.Context) ([]domain.FlightDetails, error)
	SetFlights(ctx context.Context, flights []domain.FlightDetails) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	flights  repository.FlightRepository
	routes   repository.RouteRepository
	aircraft repository.AircraftRepository
	cache    Cache
	metrics  *metrics.Registry
	log      *zap.Logger
}

type CreateFlightInput struct {
	FlightNo      string
	RouteID       uuid.UUID
	AircraftID    uuid.UUID
	FlightDate    time.Time
	DepartureTime string
	ArrivalTime   string
	BaseFareCents int64
}

// UpdateFlightInput carries a partial update; nil fields keep the
// current value. Seats change through the booking flow and status
// through SetStatus, not here.
type UpdateFlightInput struct {
	FlightNo      *string
	FlightDate    *time.Time
	DepartureTime *string
	ArrivalTime   *string
	BaseFareCents *int64
}

type FlightServiceOption func(*FlightService)

func WithMetrics(reg *metrics.Registry) FlightServiceOption {
	return func(s *FlightService) {
		s.metrics = reg
	}
}

func NewFlightService(
	flights repository.FlightRepository,
	routes repository.RouteRepository,
	aircraft repository.AircraftRepository,
	cache Cache,
	opts ...FlightServiceOption,
) *FlightService {
	service := &FlightService{
		flights:  flights,
		routes:   routes,
		aircraft: aircraft,
		cache:    cache,
		log:      logger.WithComponent("flights"),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Search returns bookable flights matching the filter, soonest departure
// first. The unfiltered list is served from cache when available.
func (s *FlightService) Search(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightDetails, error) {
	unfiltered := filter.Origin == "" && filter.Destination == "" && filter.Date == nil

	if unfiltered && s.cache != nil {
		cached, err := s.cache.GetFlights(ctx)
		if err != nil {
			s.log.Warn("flights cache read failed", zap.Error(err))
		} else if cached != nil {
			s.recordCache(true)
			return cached, nil
		} else {
			s.recordCache(false)
		}
	}

	results, err := s.flights.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	if unfiltered && s.cache != nil {
		if err := s.cache.SetFlights(ctx, results); err != nil {
			s.log.Warn("flights cache write failed", zap.Error(err))
		}
	}
	return results, nil
}

func (s *FlightService) GetByID(ctx context.Context, id uuid.UUID) (*domain.FlightDetails, error) {
	return s.flights.GetByID(ctx, id)
}

// ListAll returns every flight regardless of status, for the admin view.
func (s *FlightService) ListAll(ctx context.Context) ([]domain.FlightDetails, error) {
	return s.flights.ListAll(ctx)
}

// Create schedules a new flight. Available seats start at the aircraft's
// full capacity.
func (s *FlightService) Create(ctx context.Context, input CreateFlightInput) (*domain.FlightDetails, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	if _, err := s.routes.GetByID(ctx, input.RouteID); err != nil {
		return nil, err
	}
	aircraft, err := s.aircraft.GetByID(ctx, input.AircraftID)
	if err != nil {
		return nil, err
	}

	flight := &domain.Flight{
		ID:             uuid.New(),
		FlightNo:       input.FlightNo,
		RouteID:        input.RouteID,
		AircraftID:     input.AircraftID,
		FlightDate:     input.FlightDate,
		DepartureTime:  input.DepartureTime,
		ArrivalTime:    input.ArrivalTime,
		AvailableSeats: aircraft.TotalSeats,
		BaseFareCents:  input.BaseFareCents,
		Status:         domain.FlightStatusScheduled,
	}
	if err := s.flights.Create(ctx, flight); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.log.Info("flight scheduled",
		zap.String("flight_no", flight.FlightNo),
		zap.String("flight_id", flight.ID.String()),
	)
	return s.flights.GetByID(ctx, flight.ID)
}

// Update changes schedule fields on an existing flight.
func (s *FlightService) Update(ctx context.Context, id uuid.UUID, input UpdateFlightInput) (*domain.FlightDetails, error) {
	current, err := s.flights.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	flight := current.Flight
	if input.FlightNo != nil {
		if *input.FlightNo == "" {
			return nil, domain.NewValidationError("flight_no", "required")
		}
		flight.FlightNo = *input.FlightNo
	}
	if input.FlightDate != nil {
		flight.FlightDate = *input.FlightDate
	}
	if input.DepartureTime != nil {
		if !validTimeOfDay(*input.DepartureTime) {
			return nil, domain.NewValidationError("departure_time", "must be HH:MM")
		}
		flight.DepartureTime = *input.DepartureTime
	}
	if input.ArrivalTime != nil {
		if !validTimeOfDay(*input.ArrivalTime) {
			return nil, domain.NewValidationError("arrival_time", "must be HH:MM")
		}
		flight.ArrivalTime = *input.ArrivalTime
	}
	if input.BaseFareCents != nil {
		if *input.BaseFareCents < 0 {
			return nil, domain.NewValidationError("base_fare_cents", "must not be negative")
		}
		flight.BaseFareCents = *input.BaseFareCents
	}

	if err := s.flights.Update(ctx, &flight); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return s.flights.GetByID(ctx, id)
}

// SetStatus moves a flight between Scheduled, Cancelled and Completed.
// Existing bookings are untouched; cancelling them is a separate,
// explicit action.
func (s *FlightService) SetStatus(ctx context.Context, id uuid.UUID, status domain.FlightStatus) (*domain.Flight, error) {
	switch status {
	case domain.FlightStatusScheduled, domain.FlightStatusCancelled, domain.FlightStatusCompleted:
	default:
		return nil, domain.NewValidationError("status", "unknown flight status")
	}

	flight, err := s.flights.SetStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.log.Info("flight status changed",
		zap.String("flight_id", id.String()),
		zap.String("status", string(status)),
	)
	return flight, nil
}

func validateCreateInput(input CreateFlightInput) error {
	if input.FlightNo == "" {
		return domain.NewValidationError("flight_no", "required")
	}
	if input.RouteID == uuid.Nil {
		return domain.NewValidationError("route_id", "required")
	}
	if input.AircraftID == uuid.Nil {
		return domain.NewValidationError("aircraft_id", "required")
	}
	if input.FlightDate.IsZero() {
		return domain.NewValidationError("flight_date", "required")
	}
	if !validTimeOfDay(input.DepartureTime) {
		return domain.NewValidationError("departure_time", "must be HH:MM")
	}
	if !validTimeOfDay(input.ArrivalTime) {
		return domain.NewValidationError("arrival_time", "must be HH:MM")
	}
	if input.BaseFareCents < 0 {
		return domain.NewValidationError("base_fare_cents", "must not be negative")
	}
	return nil
}

func validTimeOfDay(v string) bool {
	_, err := time.Parse("15:04", v)
	return err == nil
}

func (s *FlightService) recordCache(hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.CacheHitsTotal.WithLabelValues("flights").Inc()
	} else {
		s.metrics.CacheMissesTotal.WithLabelValues("flights").Inc()
	}
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.log.Warn("failed to invalidate flights cache", zap.Error(err))
	}
}

var _ FlightUseCase = (*FlightService)(nil)
