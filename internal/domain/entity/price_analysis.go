package entity

import (
	"github.com/shopspring/decimal"
)

// Quartile is the categorical placement of a price within the route's
// historical distribution
type Quartile string

const (
	QuartileMinimum Quartile = "MINIMUM"
	QuartileFirst   Quartile = "FIRST"
	QuartileSecond  Quartile = "SECOND"
	QuartileThird   Quartile = "THIRD"
	QuartileFourth  Quartile = "FOURTH"
	QuartileMaximum Quartile = "MAXIMUM"
	QuartileNA      Quartile = "N/A"
)

// PriceAnalysis holds the provider's historical price distribution for one
// (route, date). When Available is false the numeric fields are zero and
// must not be read.
type PriceAnalysis struct {
	Available     bool
	Minimum       decimal.Decimal
	FirstQuartile decimal.Decimal
	Median        decimal.Decimal
	ThirdQuartile decimal.Decimal
	Maximum       decimal.Decimal
}

// Unavailable is the sentinel used when the provider has no data or the
// lookup failed.
func UnavailablePriceAnalysis() PriceAnalysis {
	return PriceAnalysis{Available: false}
}

// Classify places a price within the historical bands. Band boundaries are
// inclusive on the low side, so a price exactly on the median classifies
// as SECOND.
func (a PriceAnalysis) Classify(price decimal.Decimal) Quartile {
	if !a.Available {
		return QuartileNA
	}
	switch {
	case price.LessThanOrEqual(a.Minimum):
		return QuartileMinimum
	case price.LessThanOrEqual(a.FirstQuartile):
		return QuartileFirst
	case price.LessThanOrEqual(a.Median):
		return QuartileSecond
	case price.LessThanOrEqual(a.ThirdQuartile):
		return QuartileThird
	case price.LessThan(a.Maximum):
		return QuartileFourth
	default:
		return QuartileMaximum
	}
}
