package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/skyfarehq/skyfare/internal/domain"
)

const airportsKey = "airports"

// AirportCache keeps the airport list in process memory. Airports are
// immutable reference data, so a short TTL is only needed to pick up
// admin-created rows.
type AirportCache struct {
	c *gocache.Cache
}

func NewAirportCache(ttl time.Duration) *AirportCache {
	return &AirportCache{c: gocache.New(ttl, 2*ttl)}
}

func (a *AirportCache) Get() ([]domain.Airport, bool) {
	v, ok := a.c.Get(airportsKey)
	if !ok {
		return nil, false
	}
	airports, ok := v.([]domain.Airport)
	return airports, ok
}

func (a *AirportCache) Set(airports []domain.Airport) {
	a.c.SetDefault(airportsKey, airports)
}

func (a *AirportCache) Invalidate() {
	a.c.Delete(airportsKey)
}
