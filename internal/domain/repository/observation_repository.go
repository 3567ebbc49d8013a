package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/amenegatti1/flight-price-monitor/internal/domain/entity"
)

// ObservationRepository defines the interface for the append-only
// observation store
type ObservationRepository interface {
	// Append stores one immutable observation row
	Append(ctx context.Context, obs *entity.FlightObservation) error

	// MostRecentPrice returns the price of the most recently checked prior
	// observation for (flightNumber, departureDate, cabin), or nil when the
	// flight has never been observed. Ties on checkedAt resolve to the row
	// inserted last.
	MostRecentPrice(ctx context.Context, flightNumber, departureDate string, cabin entity.Cabin) (*decimal.Decimal, error)
}
