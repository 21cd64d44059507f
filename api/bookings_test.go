package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skyfarehq/skyfare/internal/domain"
	"github.com/skyfarehq/skyfare/internal/service/booking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, input booking.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListBookingsForUser(ctx context.Context, userID uuid.UUID) ([]domain.BookingDetails, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingDetails), args.Error(1)
}

func (m *MockBookingUseCase) CancelBooking(ctx context.Context, bookingID, requesterID uuid.UUID, requesterRole domain.Role) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, requesterID, requesterRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func authedContext(w *httptest.ResponseRecorder, userID uuid.UUID, role domain.Role) (*gin.Context, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	c, engine := gin.CreateTestContext(w)
	c.Set(ctxUserID, userID)
	c.Set(ctxRole, role)
	return c, engine
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	userID := uuid.New()
	flightID := uuid.New()

	w := httptest.NewRecorder()
	c, _ := authedContext(w, userID, domain.RolePassenger)

	body, _ := json.Marshal(createBookingRequest{
		FlightID:       flightID,
		PassengerName:  "Ada Lovelace",
		PassengerEmail: "ada@example.com",
		SeatNumber:     "12C",
	})
	c.Request = httptest.NewRequest("POST", "/api/v1/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	created := &domain.Booking{
		ID:       uuid.New(),
		PNR:      "A1B2C3",
		UserID:   userID,
		FlightID: flightID,
		Status:   domain.BookingStatusConfirmed,
	}
	mockService.On("CreateBooking", c.Request.Context(), booking.CreateBookingInput{
		UserID:         userID,
		FlightID:       flightID,
		PassengerName:  "Ada Lovelace",
		PassengerEmail: "ada@example.com",
		SeatNumber:     "12C",
	}).Return(created, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "A1B2C3")
	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_capacityExceededMapsToConflict(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	w := httptest.NewRecorder()
	c, _ := authedContext(w, uuid.New(), domain.RolePassenger)

	body, _ := json.Marshal(createBookingRequest{
		FlightID:       uuid.New(),
		PassengerName:  "Ada Lovelace",
		PassengerEmail: "ada@example.com",
	})
	c.Request = httptest.NewRequest("POST", "/api/v1/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("CreateBooking", c.Request.Context(), mock.Anything).
		Return(nil, domain.ErrCapacityExceeded)

	handler.create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBookingHandler_create_validationMapsToUnprocessable(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	w := httptest.NewRecorder()
	c, _ := authedContext(w, uuid.New(), domain.RolePassenger)

	body, _ := json.Marshal(createBookingRequest{FlightID: uuid.New()})
	c.Request = httptest.NewRequest("POST", "/api/v1/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("CreateBooking", c.Request.Context(), mock.Anything).
		Return(nil, domain.NewValidationError("passenger_name", "required"))

	handler.create(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestBookingHandler_list(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	userID := uuid.New()
	w := httptest.NewRecorder()
	c, _ := authedContext(w, userID, domain.RolePassenger)
	c.Request = httptest.NewRequest("GET", "/api/v1/bookings", nil)

	bookings := []domain.BookingDetails{
		{Booking: domain.Booking{ID: uuid.New(), UserID: userID, PNR: "XY12AB"}},
	}
	mockService.On("ListBookingsForUser", c.Request.Context(), userID).Return(bookings, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "XY12AB")
	mockService.AssertExpectations(t)
}

func TestBookingHandler_cancel(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	userID := uuid.New()
	bookingID := uuid.New()

	w := httptest.NewRecorder()
	c, _ := authedContext(w, userID, domain.RolePassenger)
	c.Params = gin.Params{{Key: "id", Value: bookingID.String()}}
	c.Request = httptest.NewRequest("PATCH", "/api/v1/bookings/"+bookingID.String()+"/cancel", nil)

	cancelled := &domain.Booking{ID: bookingID, UserID: userID, Status: domain.BookingStatusCancelled}
	mockService.On("CancelBooking", c.Request.Context(), bookingID, userID, domain.RolePassenger).
		Return(cancelled, nil)

	handler.cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Cancelled")
	mockService.AssertExpectations(t)
}

func TestBookingHandler_cancel_forbidden(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	userID := uuid.New()
	bookingID := uuid.New()

	w := httptest.NewRecorder()
	c, _ := authedContext(w, userID, domain.RolePassenger)
	c.Params = gin.Params{{Key: "id", Value: bookingID.String()}}
	c.Request = httptest.NewRequest("PATCH", "/api/v1/bookings/"+bookingID.String()+"/cancel", nil)

	mockService.On("CancelBooking", c.Request.Context(), bookingID, userID, domain.RolePassenger).
		Return(nil, domain.ErrForbidden)

	handler.cancel(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBookingHandler_cancel_badID(t *testing.T) {
	handler := NewBookingHandler(&MockBookingUseCase{})

	w := httptest.NewRecorder()
	c, _ := authedContext(w, uuid.New(), domain.RolePassenger)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
	c.Request = httptest.NewRequest("PATCH", "/api/v1/bookings/not-a-uuid/cancel", nil)

	handler.cancel(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
