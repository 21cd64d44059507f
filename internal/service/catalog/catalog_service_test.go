package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/skyfarehq/skyfare/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAirportRepository struct {
	mock.Mock
}

func (m *MockAirportRepository) List(ctx context.Context) ([]domain.Airport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *MockAirportRepository) GetByCode(ctx context.Context, iata string) (*domain.Airport, error) {
	args := m.Called(ctx, iata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airport), args.Error(1)
}

func (m *MockAirportRepository) Create(ctx context.Context, airport *domain.Airport) error {
	args := m.Called(ctx, airport)
	return args.Error(0)
}

type MockAircraftRepository struct {
	mock.Mock
}

func (m *MockAircraftRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Aircraft, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Aircraft), args.Error(1)
}

func (m *MockAircraftRepository) List(ctx context.Context) ([]domain.Aircraft, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Aircraft), args.Error(1)
}

func (m *MockAircraftRepository) Create(ctx context.Context, aircraft *domain.Aircraft) error {
	args := m.Called(ctx, aircraft)
	return args.Error(0)
}

type MockRouteRepository struct {
	mock.Mock
}

func (m *MockRouteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

func (m *MockRouteRepository) List(ctx context.Context) ([]domain.Route, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Route), args.Error(1)
}

func (m *MockRouteRepository) Create(ctx context.Context, route *domain.Route) error {
	args := m.Called(ctx, route)
	return args.Error(0)
}

type MockAirportCache struct {
	mock.Mock
}

func (m *MockAirportCache) Get() ([]domain.Airport, bool) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]domain.Airport), args.Bool(1)
}

func (m *MockAirportCache) Set(airports []domain.Airport) {
	m.Called(airports)
}

func (m *MockAirportCache) Invalidate() {
	m.Called()
}

func TestListAirports_CacheHit(t *testing.T) {
	mockAirports := &MockAirportRepository{}
	mockCache := &MockAirportCache{}

	service := NewCatalogService(mockAirports, &MockAircraftRepository{}, &MockRouteRepository{}, mockCache)

	cached := []domain.Airport{{IATACode: "SVO", Name: "Sheremetyevo", City: "Moscow", Country: "Russia"}}
	mockCache.On("Get").Return(cached, true).Once()

	got, err := service.ListAirports(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, cached, got)
	mockAirports.AssertNotCalled(t, "List", mock.Anything)
}

func TestListAirports_CacheMissFillsCache(t *testing.T) {
	mockAirports := &MockAirportRepository{}
	mockCache := &MockAirportCache{}

	service := NewCatalogService(mockAirports, &MockAircraftRepository{}, &MockRouteRepository{}, mockCache)

	ctx := context.Background()
	fresh := []domain.Airport{{IATACode: "LED"}}
	mockCache.On("Get").Return(nil, false).Once()
	mockAirports.On("List", ctx).Return(fresh, nil).Once()
	mockCache.On("Set", fresh).Once()

	got, err := service.ListAirports(ctx)

	assert.NoError(t, err)
	assert.Equal(t, fresh, got)
	mockCache.AssertExpectations(t)
}

func TestCreateAirport_NormalizesCodeAndInvalidatesCache(t *testing.T) {
	mockAirports := &MockAirportRepository{}
	mockCache := &MockAirportCache{}

	service := NewCatalogService(mockAirports, &MockAircraftRepository{}, &MockRouteRepository{}, mockCache)

	ctx := context.Background()
	mockAirports.On("Create", ctx, mock.MatchedBy(func(a *domain.Airport) bool {
		return a.IATACode == "JFK"
	})).Return(nil).Once()
	mockCache.On("Invalidate").Once()

	airport, err := service.CreateAirport(ctx, CreateAirportInput{
		IATACode: " jfk ",
		Name:     "John F. Kennedy International",
		City:     "New York",
		Country:  "USA",
		Timezone: "America/New_York",
	})

	assert.NoError(t, err)
	assert.Equal(t, "JFK", airport.IATACode)
	mockCache.AssertExpectations(t)
}

func TestCreateAirport_ValidationErrors(t *testing.T) {
	service := NewCatalogService(&MockAirportRepository{}, &MockAircraftRepository{}, &MockRouteRepository{}, nil)
	ctx := context.Background()

	valid := CreateAirportInput{IATACode: "SVO", Name: "Sheremetyevo", City: "Moscow", Country: "Russia", Timezone: "Europe/Moscow"}

	cases := []struct {
		name   string
		mutate func(*CreateAirportInput)
	}{
		{"code too short", func(i *CreateAirportInput) { i.IATACode = "SV" }},
		{"code with digits", func(i *CreateAirportInput) { i.IATACode = "S1O" }},
		{"missing name", func(i *CreateAirportInput) { i.Name = "" }},
		{"missing city", func(i *CreateAirportInput) { i.City = "" }},
		{"missing country", func(i *CreateAirportInput) { i.Country = "" }},
		{"missing timezone", func(i *CreateAirportInput) { i.Timezone = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := valid
			tc.mutate(&input)

			airport, err := service.CreateAirport(ctx, input)

			assert.Nil(t, airport)
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestCreateAirport_DuplicateCode(t *testing.T) {
	mockAirports := &MockAirportRepository{}
	service := NewCatalogService(mockAirports, &MockAircraftRepository{}, &MockRouteRepository{}, nil)

	ctx := context.Background()
	mockAirports.On("Create", ctx, mock.Anything).Return(domain.ErrDuplicate).Once()

	airport, err := service.CreateAirport(ctx, CreateAirportInput{
		IATACode: "SVO", Name: "Sheremetyevo", City: "Moscow", Country: "Russia", Timezone: "Europe/Moscow",
	})

	assert.Nil(t, airport)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateAircraft_Success(t *testing.T) {
	mockAircraft := &MockAircraftRepository{}
	service := NewCatalogService(&MockAirportRepository{}, mockAircraft, &MockRouteRepository{}, nil)

	ctx := context.Background()
	mockAircraft.On("Create", ctx, mock.MatchedBy(func(a *domain.Aircraft) bool {
		return a.Model == "A320" && a.TotalSeats == 180 && a.ID != uuid.Nil
	})).Return(nil).Once()

	aircraft, err := service.CreateAircraft(ctx, CreateAircraftInput{Model: "A320", TotalSeats: 180})

	assert.NoError(t, err)
	assert.Equal(t, "A320", aircraft.Model)
	mockAircraft.AssertExpectations(t)
}

func TestCreateAircraft_ValidationErrors(t *testing.T) {
	service := NewCatalogService(&MockAirportRepository{}, &MockAircraftRepository{}, &MockRouteRepository{}, nil)
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateAircraftInput
	}{
		{"missing model", CreateAircraftInput{TotalSeats: 180}},
		{"zero seats", CreateAircraftInput{Model: "A320"}},
		{"negative seats", CreateAircraftInput{Model: "A320", TotalSeats: -4}},
		{"broken seat map", CreateAircraftInput{Model: "A320", TotalSeats: 180, SeatMap: []byte("{not json")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			aircraft, err := service.CreateAircraft(ctx, tc.input)

			assert.Nil(t, aircraft)
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestCreateRoute_Success(t *testing.T) {
	mockRoutes := &MockRouteRepository{}
	service := NewCatalogService(&MockAirportRepository{}, &MockAircraftRepository{}, mockRoutes, nil)

	ctx := context.Background()
	mockRoutes.On("Create", ctx, mock.MatchedBy(func(r *domain.Route) bool {
		return r.Origin == "SVO" && r.Destination == "LED" && r.DistanceKM == 634
	})).Return(nil).Once()

	route, err := service.CreateRoute(ctx, CreateRouteInput{Origin: "svo", Destination: "led", DistanceKM: 634})

	assert.NoError(t, err)
	assert.Equal(t, "SVO", route.Origin)
	assert.Equal(t, "LED", route.Destination)
}

func TestCreateRoute_SameOriginAndDestination(t *testing.T) {
	service := NewCatalogService(&MockAirportRepository{}, &MockAircraftRepository{}, &MockRouteRepository{}, nil)

	route, err := service.CreateRoute(context.Background(), CreateRouteInput{Origin: "SVO", Destination: "svo", DistanceKM: 1})

	assert.Nil(t, route)
	assert.True(t, domain.IsValidation(err))
}

func TestCreateRoute_UnknownAirport(t *testing.T) {
	mockRoutes := &MockRouteRepository{}
	service := NewCatalogService(&MockAirportRepository{}, &MockAircraftRepository{}, mockRoutes, nil)

	ctx := context.Background()
	mockRoutes.On("Create", ctx, mock.Anything).Return(domain.ErrAirportNotFound).Once()

	route, err := service.CreateRoute(ctx, CreateRouteInput{Origin: "SVO", Destination: "XXX", DistanceKM: 100})

	assert.Nil(t, route)
	assert.ErrorIs(t, err, domain.ErrAirportNotFound)
}
