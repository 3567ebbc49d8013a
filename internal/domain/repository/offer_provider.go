package repository

import (
	"context"

	"github.com/amenegatti1/flight-price-monitor/internal/domain/entity"
)

// OfferProvider defines the interface for the flight-offer search provider.
// Implementations authenticate lazily and reuse the token across all
// sub-queries of a pass.
type OfferProvider interface {
	// SearchOffers returns raw offers for one (origin, destination, date)
	// sub-query, in provider order. travelClass is an optional cabin
	// override; empty means all cabins.
	SearchOffers(ctx context.Context, origin, destination, date, travelClass string) ([]entity.FlightOffer, error)

	// PriceAnalysis returns the historical price distribution for a route
	// and date, or the unavailable sentinel when the provider has no data.
	PriceAnalysis(ctx context.Context, origin, destination, date string) (entity.PriceAnalysis, error)
}
