// internal/usecase/offer_normalizer.go
package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/amenegatti1/flight-price-monitor/internal/domain/entity"
	"github.com/amenegatti1/flight-price-monitor/pkg/airlines"
)

// OfferNormalizer maps raw provider offers into canonical FlightRecords.
// Only the first segment of the first itinerary determines identity;
// connections and return legs are ignored.
type OfferNormalizer struct {
	airlines *airlines.Resolver
}

// NewOfferNormalizer creates a new offer normalizer
func NewOfferNormalizer(resolver *airlines.Resolver) *OfferNormalizer {
	return &OfferNormalizer{
		airlines: resolver,
	}
}

// Normalize transforms one raw offer into a FlightRecord. It is a pure
// transform apart from the airline-name lookup; the same offer always
// yields the same record. A missing required field returns
// MalformedOfferError.
func (n *OfferNormalizer) Normalize(ctx context.Context, offer entity.FlightOffer, departureDate string) (entity.FlightRecord, error) {
	if len(offer.Itineraries) == 0 || len(offer.Itineraries[0].Segments) == 0 {
		return entity.FlightRecord{}, &entity.MalformedOfferError{OfferID: offer.ID, Field: "itinerary segment"}
	}

	itinerary := offer.Itineraries[0]
	segment := itinerary.Segments[0]

	if segment.CarrierCode == "" || segment.Number == "" {
		return entity.FlightRecord{}, &entity.MalformedOfferError{OfferID: offer.ID, Field: "flight number parts"}
	}

	if offer.Price.Total == "" {
		return entity.FlightRecord{}, &entity.MalformedOfferError{OfferID: offer.ID, Field: "price total"}
	}
	price, err := decimal.NewFromString(offer.Price.Total)
	if err != nil {
		return entity.FlightRecord{}, &entity.MalformedOfferError{OfferID: offer.ID, Field: "price total"}
	}

	cabin := entity.CabinNA
	fareClass := "N/A"
	if len(offer.TravelerPricings) > 0 && len(offer.TravelerPricings[0].FareDetailsBySegment) > 0 {
		fareDetail := offer.TravelerPricings[0].FareDetailsBySegment[0]
		if fareDetail.Cabin != "" {
			cabin = entity.Cabin(strings.ToUpper(fareDetail.Cabin))
		}
		if fareDetail.Class != "" {
			fareClass = fareDetail.Class
		}
	}

	aircraft := segment.Aircraft.Code
	if aircraft == "" {
		aircraft = "N/A"
	}

	duration := itinerary.Duration
	if duration == "" {
		duration = segment.Duration
	}
	if duration == "" {
		duration = "N/A"
	}

	seats := offer.NumberOfBookableSeats

	return entity.FlightRecord{
		FlightNumber:   segment.CarrierCode + segment.Number,
		CarrierCode:    segment.CarrierCode,
		DepartureDate:  departureDate,
		Cabin:          cabin,
		Price:          price,
		Currency:       offer.Price.Currency,
		SeatsAvailable: seats,
		SeatsKnown:     seats > 0,
		FareClass:      fareClass,
		AircraftCode:   aircraft,
		DepartureTime:  segment.Departure.At,
		ArrivalTime:    segment.Arrival.At,
		Duration:       duration,
		Stops:          len(itinerary.Segments) - 1,
		AirlineName:    n.airlines.Resolve(ctx, segment.CarrierCode),
	}, nil
}
