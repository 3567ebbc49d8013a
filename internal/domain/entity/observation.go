// internal/domain/entity/observation.go
package entity

import (
	"time"
)

// FlightObservation is one immutable persisted row: a FlightRecord as seen
// at CheckedAt, with the pass's historical analysis denormalized onto it.
// Observations are append-only and never updated or deleted.
type FlightObservation struct {
	ID            string    `bson:"_id,omitempty"`
	CheckedAt     time.Time `bson:"checkedAt"`
	DepartureDate string    `bson:"departureDate"`
	FlightNumber  string    `bson:"flightNumber"`
	AirlineName   string    `bson:"airlineName"`
	Price         string    `bson:"price"` // decimal string, exact
	SeatsLeft     int       `bson:"seatsLeft"`
	Currency      string    `bson:"currency"`
	FareClass     string    `bson:"fareClass"`
	Aircraft      string    `bson:"aircraft"`
	Cabin         string    `bson:"cabin"`
	DepartureTime string    `bson:"departureTime"`
	ArrivalTime   string    `bson:"arrivalTime"`
	Duration      string    `bson:"flightDuration"`
	PriceQuartile string    `bson:"priceQuartile"`
	HistoricalMin string    `bson:"historicalMin,omitempty"`
	HistoricalMax string    `bson:"historicalMax,omitempty"`
}
