// internal/domain/entity/offer.go
package entity

// FlightOffer is one raw offer as returned by the flight-offers search API.
// Only the fields the monitor reads are modeled; the provider returns more.
type FlightOffer struct {
	ID                    string            `json:"id"`
	NumberOfBookableSeats int               `json:"numberOfBookableSeats"`
	Itineraries           []Itinerary       `json:"itineraries"`
	Price                 OfferPrice        `json:"price"`
	TravelerPricings      []TravelerPricing `json:"travelerPricings"`
}

// Itinerary is one direction of a journey, made of one or more segments
type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

// Segment is a single flight leg
type Segment struct {
	Departure   FlightEndpoint `json:"departure"`
	Arrival     FlightEndpoint `json:"arrival"`
	CarrierCode string         `json:"carrierCode"`
	Number      string         `json:"number"`
	Aircraft    Aircraft       `json:"aircraft"`
	Duration    string         `json:"duration"`
}

// FlightEndpoint is a departure or arrival point with its local timestamp
type FlightEndpoint struct {
	IataCode string `json:"iataCode"`
	Terminal string `json:"terminal"`
	At       string `json:"at"`
}

// Aircraft identifies the equipment type
type Aircraft struct {
	Code string `json:"code"`
}

// OfferPrice is the offer's price block
type OfferPrice struct {
	Currency string `json:"currency"`
	Total    string `json:"total"`
}

// TravelerPricing carries per-traveler fare details
type TravelerPricing struct {
	FareDetailsBySegment []FareDetails `json:"fareDetailsBySegment"`
}

// FareDetails is the fare detail for one segment of one traveler
type FareDetails struct {
	Cabin     string `json:"cabin"`
	Class     string `json:"class"`
	FareBasis string `json:"fareBasis"`
}
