package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Aircraft struct {
	ID         uuid.UUID       `json:"id"`
	Model      string          `json:"model"`
	TotalSeats int             `json:"total_seats"`
	SeatMap    json.RawMessage `json:"seat_map,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
