// internal/usecase/alert_evaluator.go
package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/amenegatti1/flight-price-monitor/internal/domain/entity"
	"github.com/amenegatti1/flight-price-monitor/internal/domain/repository"
	"github.com/amenegatti1/flight-price-monitor/pkg/logger"
)

// AlertThresholds are the pass-wide alert predicates. All boundaries are
// inclusive.
type AlertThresholds struct {
	MaxPriceAlert      decimal.Decimal
	MinSeatsAlert      int
	TargetFlightNumber string
}

// AlertEvaluator annotates records with price history and alert tags
type AlertEvaluator struct {
	observations repository.ObservationRepository
	logger       logger.Logger
}

// NewAlertEvaluator creates a new alert evaluator
func NewAlertEvaluator(observations repository.ObservationRepository, logger logger.Logger) *AlertEvaluator {
	return &AlertEvaluator{
		observations: observations,
		logger:       logger,
	}
}

// Evaluate looks up the most recent stored price for the record's
// (flight, date, cabin) key, computes the delta and evaluates the alert
// predicates. A failed history lookup degrades to "no prior observation".
func (e *AlertEvaluator) Evaluate(ctx context.Context, record entity.FlightRecord, analysis entity.PriceAnalysis, thresholds AlertThresholds) entity.EvaluatedRecord {
	previous, err := e.observations.MostRecentPrice(ctx, record.FlightNumber, record.DepartureDate, record.Cabin)
	if err != nil {
		e.logger.Warn("History lookup failed, treating as first observation",
			"flightNumber", record.FlightNumber,
			"departureDate", record.DepartureDate,
			"cabin", record.Cabin,
			"error", err)
		previous = nil
	}

	record.PreviousPrice = previous
	if previous != nil {
		delta := record.Price.Sub(*previous)
		record.PriceDelta = &delta
	}

	var tags []entity.AlertTag
	if record.Price.LessThanOrEqual(thresholds.MaxPriceAlert) {
		tags = append(tags, entity.AlertPrice)
	}
	// Seats 0 means "not reported" in provider data but still satisfies the
	// threshold; SeatsKnown is carried on the record so callers can tell
	// the cases apart.
	if record.SeatsAvailable <= thresholds.MinSeatsAlert {
		tags = append(tags, entity.AlertLowSeats)
	}
	if thresholds.TargetFlightNumber != "" && record.FlightNumber == thresholds.TargetFlightNumber {
		tags = append(tags, entity.AlertTargetMatch)
	}
	if analysis.Available && record.Price.LessThanOrEqual(analysis.Median) {
		tags = append(tags, entity.AlertBelowMedian)
	}

	return entity.EvaluatedRecord{
		Record:   record,
		Quartile: analysis.Classify(record.Price),
		Alerts:   tags,
	}
}
