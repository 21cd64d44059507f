package admin

import (
	"context"
	"time"

	"github.com/skyfarehq/skyfare/internal/repository"
	"golang.org/x/sync/errgroup"
)

// DashboardStats is the admin landing-page summary. Revenue covers
// non-cancelled bookings only.
type DashboardStats struct {
	TotalFlights      int64 `json:"total_flights"`
	TotalBookings     int64 `json:"total_bookings"`
	TotalRevenueCents int64 `json:"total_revenue_cents"`
	UpcomingFlights   int64 `json:"upcoming_flights"`
}

type StatsUseCase interface {
	DashboardStats(ctx context.Context) (*DashboardStats, error)
}

type StatsService struct {
	stats repository.StatsRepository
	now   func() time.Time
}

func NewStatsService(stats repository.StatsRepository) *StatsService {
	return &StatsService{stats: stats, now: time.Now}
}

// DashboardStats runs the four aggregates concurrently and fails fast on
// the first error.
func (s *StatsService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var out DashboardStats

	today := s.now().Truncate(24 * time.Hour)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.stats.CountFlights(ctx)
		out.TotalFlights = n
		return err
	})
	g.Go(func() error {
		n, err := s.stats.CountBookings(ctx)
		out.TotalBookings = n
		return err
	})
	g.Go(func() error {
		sum, err := s.stats.SumRevenueCents(ctx)
		out.TotalRevenueCents = sum
		return err
	})
	g.Go(func() error {
		n, err := s.stats.CountUpcomingFlights(ctx, today)
		out.UpcomingFlights = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

var _ StatsUseCase = (*StatsService)(nil)
