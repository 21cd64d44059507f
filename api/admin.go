package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skyfarehq/skyfare/internal/domain"
	"github.com/skyfarehq/skyfare/internal/service/admin"
	"github.com/skyfarehq/skyfare/internal/service/flights"
)

// AdminHandler serves the dashboard and flight inventory management.
type AdminHandler struct {
	stats   admin.StatsUseCase
	flights flights.FlightUseCase
}

type createFlightRequest struct {
	FlightNo      string    `json:"flight_no"`
	RouteID       uuid.UUID `json:"route_id"`
	AircraftID    uuid.UUID `json:"aircraft_id"`
	FlightDate    string    `json:"flight_date"`
	DepartureTime string    `json:"departure_time"`
	ArrivalTime   string    `json:"arrival_time"`
	BaseFareCents int64     `json:"base_fare_cents"`
}

type updateFlightRequest struct {
	FlightNo      *string `json:"flight_no"`
	FlightDate    *string `json:"flight_date"`
	DepartureTime *string `json:"departure_time"`
	ArrivalTime   *string `json:"arrival_time"`
	BaseFareCents *int64  `json:"base_fare_cents"`
}

type setFlightStatusRequest struct {
	Status string `json:"status"`
}

func NewAdminHandler(stats admin.StatsUseCase, flights flights.FlightUseCase) *AdminHandler {
	return &AdminHandler{stats: stats, flights: flights}
}

// Register mounts the admin routes; the group must carry RequireAuth and
// RequireAdmin.
func (h *AdminHandler) Register(router *gin.RouterGroup) {
	router.GET("/stats", h.dashboardStats)
	router.GET("/flights", h.listFlights)
	router.POST("/flights", h.createFlight)
	router.PATCH("/flights/:id", h.updateFlight)
	router.PATCH("/flights/:id/status", h.setFlightStatus)
}

func (h *AdminHandler) dashboardStats(c *gin.Context) {
	stats, err := h.stats.DashboardStats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// listFlights returns every flight regardless of status or availability.
func (h *AdminHandler) listFlights(c *gin.Context) {
	all, err := h.flights.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, all)
}

func (h *AdminHandler) createFlight(c *gin.Context) {
	var req createFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	flightDate, err := time.Parse("2006-01-02", req.FlightDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "flight_date must be YYYY-MM-DD"})
		return
	}

	created, err := h.flights.Create(c.Request.Context(), flights.CreateFlightInput{
		FlightNo:      req.FlightNo,
		RouteID:       req.RouteID,
		AircraftID:    req.AircraftID,
		FlightDate:    flightDate,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		BaseFareCents: req.BaseFareCents,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *AdminHandler) updateFlight(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flight id"})
		return
	}

	var req updateFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	input := flights.UpdateFlightInput{
		FlightNo:      req.FlightNo,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		BaseFareCents: req.BaseFareCents,
	}
	if req.FlightDate != nil {
		flightDate, err := time.Parse("2006-01-02", *req.FlightDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "flight_date must be YYYY-MM-DD"})
			return
		}
		input.FlightDate = &flightDate
	}

	updated, err := h.flights.Update(c.Request.Context(), id, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *AdminHandler) setFlightStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flight id"})
		return
	}

	var req setFlightStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	flight, err := h.flights.SetStatus(c.Request.Context(), id, domain.FlightStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}
