package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skyfarehq/skyfare/api"
	"github.com/skyfarehq/skyfare/config"
	"github.com/skyfarehq/skyfare/internal/bootstrap"
	"github.com/skyfarehq/skyfare/internal/cache"
	"github.com/skyfarehq/skyfare/internal/kafka"
	"github.com/skyfarehq/skyfare/internal/metrics"
	"github.com/skyfarehq/skyfare/internal/repository"
	"github.com/skyfarehq/skyfare/internal/service/admin"
	"github.com/skyfarehq/skyfare/internal/service/auth"
	"github.com/skyfarehq/skyfare/internal/service/booking"
	"github.com/skyfarehq/skyfare/internal/service/catalog"
	"github.com/skyfarehq/skyfare/internal/service/flights"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)
	defer redisCache.Close()
	airportCache := cache.NewAirportCache(time.Duration(cfg.Booking.AirportsCacheTTL) * time.Second)

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	registry := metrics.NewRegistry()

	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	airportRepo := repository.NewAirportRepository(pool)
	aircraftRepo := repository.NewAircraftRepository(pool)
	routeRepo := repository.NewRouteRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	statsRepo := repository.NewStatsRepository(pool)

	flightService := flights.NewFlightService(flightRepo, routeRepo, aircraftRepo, redisCache,
		flights.WithMetrics(registry))
	bookingService := booking.NewBookingService(
		bookingRepo,
		flightRepo,
		redisCache,
		producer,
		cfg.Kafka.BookingTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithCancellationCutoff(time.Duration(cfg.Booking.CancellationCutoffMinutes)*time.Minute),
		booking.WithMetrics(registry),
	)
	catalogService := catalog.NewCatalogService(airportRepo, aircraftRepo, routeRepo, airportCache,
		catalog.WithMetrics(registry))
	statsService := admin.NewStatsService(statsRepo)
	authService := auth.NewAuthService(userRepo, cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute, cfg.Auth.BcryptCost)

	services := api.Services{
		Auth:     authService,
		Flights:  flightService,
		Bookings: bookingService,
		Catalog:  catalogService,
		Stats:    statsService,
		Metrics:  registry,
	}

	if err := bootstrap.Run(ctx, cfg, services); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
