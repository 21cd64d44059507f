package catalog

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/skyfarehq/skyfare/internal/domain"
	"github.com/skyfarehq/skyfare/internal/metrics"
	"github.com/skyfarehq/skyfare/internal/repository"
	"github.com/skyfarehq/skyfare/pkg/logger"
	"go.uber.org/zap"
)

type CatalogUseCase interface {
	ListAirports(ctx context.Context) ([]domain.Airport, error)
	ListAircraft(ctx context.Context) ([]domain.Aircraft, error)
	ListRoutes(ctx context.Context) ([]domain.Route, error)
	CreateAirport(ctx context.Context, input CreateAirportInput) (*domain.Airport, error)
	CreateAircraft(ctx context.Context, input CreateAircraftInput) (*domain.Aircraft, error)
	CreateRoute(ctx context.Context, input CreateRouteInput) (*domain.Route, error)
}

// AirportCache keeps the airport list in process memory; the list is
// small and changes only when an admin adds a row.
type AirportCache interface {
	Get() ([]domain.Airport, bool)
	Set(airports []domain.Airport)
	Invalidate()
}

type CatalogService struct {
	airports repository.AirportRepository
	aircraft repository.AircraftRepository
	routes   repository.RouteRepository
	cache    AirportCache
	metrics  *metrics.Registry
	log      *zap.Logger
}

type CreateAirportInput struct {
	IATACode string
	Name     string
	City     string
	Country  string
	Timezone string
}

type CreateAircraftInput struct {
	Model      string
	TotalSeats int
	SeatMap    json.RawMessage
}

type CreateRouteInput struct {
	Origin      string
	Destination string
	DistanceKM  int
}

type CatalogServiceOption func(*CatalogService)

func WithMetrics(reg *metrics.Registry) CatalogServiceOption {
	return func(s *CatalogService) {
		s.metrics = reg
	}
}

func NewCatalogService(
	airports repository.AirportRepository,
	aircraft repository.AircraftRepository,
	routes repository.RouteRepository,
	cache AirportCache,
	opts ...CatalogServiceOption,
) *CatalogService {
	service := &CatalogService{
		airports: airports,
		aircraft: aircraft,
		routes:   routes,
		cache:    cache,
		log:      logger.WithComponent("catalog"),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *CatalogService) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	if s.cache != nil {
		if airports, ok := s.cache.Get(); ok {
			s.recordCache(true)
			return airports, nil
		}
		s.recordCache(false)
	}

	airports, err := s.airports.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(airports)
	}
	return airports, nil
}

func (s *CatalogService) ListAircraft(ctx context.Context) ([]domain.Aircraft, error) {
	return s.aircraft.List(ctx)
}

func (s *CatalogService) ListRoutes(ctx context.Context) ([]domain.Route, error) {
	return s.routes.List(ctx)
}

func (s *CatalogService) CreateAirport(ctx context.Context, input CreateAirportInput) (*domain.Airport, error) {
	code := strings.ToUpper(strings.TrimSpace(input.IATACode))
	if !validIATA(code) {
		return nil, domain.NewValidationError("iata_code", "must be three letters")
	}
	if input.Name == "" {
		return nil, domain.NewValidationError("name", "required")
	}
	if input.City == "" {
		return nil, domain.NewValidationError("city", "required")
	}
	if input.Country == "" {
		return nil, domain.NewValidationError("country", "required")
	}
	if input.Timezone == "" {
		return nil, domain.NewValidationError("timezone", "required")
	}

	airport := &domain.Airport{
		IATACode: code,
		Name:     input.Name,
		City:     input.City,
		Country:  input.Country,
		Timezone: input.Timezone,
	}
	if err := s.airports.Create(ctx, airport); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate()
	}
	s.log.Info("airport added", zap.String("iata_code", airport.IATACode))
	return airport, nil
}

func (s *CatalogService) CreateAircraft(ctx context.Context, input CreateAircraftInput) (*domain.Aircraft, error) {
	if input.Model == "" {
		return nil, domain.NewValidationError("model", "required")
	}
	if input.TotalSeats <= 0 {
		return nil, domain.NewValidationError("total_seats", "must be positive")
	}
	if len(input.SeatMap) > 0 && !json.Valid(input.SeatMap) {
		return nil, domain.NewValidationError("seat_map", "must be valid JSON")
	}

	aircraft := &domain.Aircraft{
		ID:         uuid.New(),
		Model:      input.Model,
		TotalSeats: input.TotalSeats,
		SeatMap:    input.SeatMap,
	}
	if err := s.aircraft.Create(ctx, aircraft); err != nil {
		return nil, err
	}

	s.log.Info("aircraft added", zap.String("model", aircraft.Model), zap.Int("total_seats", aircraft.TotalSeats))
	return aircraft, nil
}

// CreateRoute links two existing airports. A route from an airport to
// itself is rejected.
func (s *CatalogService) CreateRoute(ctx context.Context, input CreateRouteInput) (*domain.Route, error) {
	origin := strings.ToUpper(strings.TrimSpace(input.Origin))
	destination := strings.ToUpper(strings.TrimSpace(input.Destination))
	if !validIATA(origin) {
		return nil, domain.NewValidationError("origin", "must be three letters")
	}
	if !validIATA(destination) {
		return nil, domain.NewValidationError("destination", "must be three letters")
	}
	if origin == destination {
		return nil, domain.NewValidationError("destination", "must differ from origin")
	}
	if input.DistanceKM <= 0 {
		return nil, domain.NewValidationError("distance_km", "must be positive")
	}

	route := &domain.Route{
		ID:          uuid.New(),
		Origin:      origin,
		Destination: destination,
		DistanceKM:  input.DistanceKM,
	}
	if err := s.routes.Create(ctx, route); err != nil {
		return nil, err
	}

	s.log.Info("route added",
		zap.String("origin", route.Origin),
		zap.String("destination", route.Destination),
	)
	return route, nil
}

func validIATA(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func (s *CatalogService) recordCache(hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.CacheHitsTotal.WithLabelValues("airports").Inc()
	} else {
		s.metrics.CacheMissesTotal.WithLabelValues("airports").Inc()
	}
}

var _ CatalogUseCase = (*CatalogService)(nil)
