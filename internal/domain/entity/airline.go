package entity

import (
	"time"
)

// Airline is a carrier row from the airline reference table, used to
// resolve IATA carrier codes into display names
type Airline struct {
	ID        uint
	Code      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
