package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skyfarehq/skyfare/internal/service/catalog"
)

type CatalogHandler struct {
	service catalog.CatalogUseCase
}

type createAirportRequest struct {
	IATACode string `json:"iata_code"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Timezone string `json:"timezone"`
}

type createAircraftRequest struct {
	Model      string          `json:"model"`
	TotalSeats int             `json:"total_seats"`
	SeatMap    json.RawMessage `json:"seat_map"`
}

type createRouteRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	DistanceKM  int    `json:"distance_km"`
}

func NewCatalogHandler(service catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// Register mounts the public reference-data routes.
func (h *CatalogHandler) Register(router *gin.RouterGroup) {
	router.GET("/airports", h.listAirports)
}

// RegisterAdmin mounts inventory management; the group must carry
// RequireAuth and RequireAdmin.
func (h *CatalogHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.POST("/airports", h.createAirport)
	router.GET("/aircraft", h.listAircraft)
	router.POST("/aircraft", h.createAircraft)
	router.GET("/routes", h.listRoutes)
	router.POST("/routes", h.createRoute)
}

func (h *CatalogHandler) listAirports(c *gin.Context) {
	airports, err := h.service.ListAirports(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, airports)
}

func (h *CatalogHandler) listAircraft(c *gin.Context) {
	fleet, err := h.service.ListAircraft(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, fleet)
}

func (h *CatalogHandler) listRoutes(c *gin.Context) {
	routes, err := h.service.ListRoutes(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

func (h *CatalogHandler) createAirport(c *gin.Context) {
	var req createAirportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	airport, err := h.service.CreateAirport(c.Request.Context(), catalog.CreateAirportInput{
		IATACode: req.IATACode,
		Name:     req.Name,
		City:     req.City,
		Country:  req.Country,
		Timezone: req.Timezone,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, airport)
}

func (h *CatalogHandler) createAircraft(c *gin.Context) {
	var req createAircraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	aircraft, err := h.service.CreateAircraft(c.Request.Context(), catalog.CreateAircraftInput{
		Model:      req.Model,
		TotalSeats: req.TotalSeats,
		SeatMap:    req.SeatMap,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, aircraft)
}

func (h *CatalogHandler) createRoute(c *gin.Context) {
	var req createRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	route, err := h.service.CreateRoute(c.Request.Context(), catalog.CreateRouteInput{
		Origin:      req.Origin,
		Destination: req.Destination,
		DistanceKM:  req.DistanceKM,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, route)
}
