// internal/domain/entity/flight_record.go
package entity

import (
	"github.com/shopspring/decimal"
)

// Cabin is the provider's cabin category for a fare
type Cabin string

const (
	CabinEconomy        Cabin = "ECONOMY"
	CabinPremiumEconomy Cabin = "PREMIUM_ECONOMY"
	CabinBusiness       Cabin = "BUSINESS"
	CabinFirst          Cabin = "FIRST"
	CabinNA             Cabin = "N/A"
)

// FlightRecord is one canonical observation of a bookable flight for a
// given search pass. Identity within a pass is (FlightNumber, Cabin).
type FlightRecord struct {
	FlightNumber  string // carrier code + flight number, e.g. "TR5"
	CarrierCode   string
	DepartureDate string // YYYY-MM-DD
	Cabin         Cabin

	Price    decimal.Decimal
	Currency string
	// SeatsAvailable is 0 when the provider did not report a bookable-seat
	// count; SeatsKnown distinguishes a true zero from "not reported".
	SeatsAvailable int
	SeatsKnown     bool
	FareClass      string

	AircraftCode  string
	DepartureTime string
	ArrivalTime   string
	Duration      string // ISO-8601 duration or "N/A"
	Stops         int

	AirlineName   string
	PreviousPrice *decimal.Decimal
	PriceDelta    *decimal.Decimal // price - previous, nil when no history
}

// Key returns the dedup/history identity of the record
func (r *FlightRecord) Key() string {
	return r.FlightNumber + ":" + string(r.Cabin)
}
