package domain

import "time"

// Airport is immutable reference data keyed by its IATA code.
type Airport struct {
	IATACode  string    `json:"iata_code"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
}
