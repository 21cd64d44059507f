package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/skyfarehq/skyfare/internal/metrics"
	"github.com/skyfarehq/skyfare/internal/service/admin"
	"github.com/skyfarehq/skyfare/internal/service/auth"
	"github.com/skyfarehq/skyfare/internal/service/booking"
	"github.com/skyfarehq/skyfare/internal/service/catalog"
	"github.com/skyfarehq/skyfare/internal/service/flights"
)

// Services bundles everything the HTTP surface depends on.
type Services struct {
	Auth     auth.AuthUseCase
	Flights  flights.FlightUseCase
	Bookings booking.BookingUseCase
	Catalog  catalog.CatalogUseCase
	Stats    admin.StatsUseCase
	Metrics  *metrics.Registry
}

// NewRouter wires all handlers under /api/v1 plus the operational
// endpoints.
func NewRouter(s Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if s.Metrics != nil {
		router.Use(s.Metrics.GinMiddleware())
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := NewAuthHandler(s.Auth)
	flightHandler := NewFlightHandler(s.Flights)
	bookingHandler := NewBookingHandler(s.Bookings)
	catalogHandler := NewCatalogHandler(s.Catalog)
	adminHandler := NewAdminHandler(s.Stats, s.Flights)

	v1 := router.Group("/api/v1")

	authHandler.Register(v1.Group("/auth"))
	flightHandler.Register(v1.Group("/flights"))
	catalogHandler.Register(v1)

	authed := v1.Group("")
	authed.Use(RequireAuth(s.Auth))
	authHandler.RegisterProtected(authed.Group("/auth"))
	bookingHandler.Register(authed.Group("/bookings"))

	adminGroup := authed.Group("/admin")
	adminGroup.Use(RequireAdmin())
	adminHandler.Register(adminGroup)
	catalogHandler.RegisterAdmin(adminGroup)

	return router
}
