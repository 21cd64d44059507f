package domain

import (
	"time"

	"github.com/google/uuid"
)

// Route connects two airports by their IATA codes. Origin and destination
// must differ.
type Route struct {
	ID          uuid.UUID `json:"id"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	DistanceKM  int       `json:"distance_km"`
	CreatedAt   time.Time `json:"created_at"`
}
