package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amenegatti1/flight-price-monitor/internal/domain/entity"
	"github.com/amenegatti1/flight-price-monitor/pkg/logger"
)

// fakeObservationRepo is an in-memory ObservationRepository. Monitor tests
// append from concurrent per-date goroutines, so writes lock.
type fakeObservationRepo struct {
	mu        sync.Mutex
	prices    map[string]decimal.Decimal
	appended  []*entity.FlightObservation
	lookupErr error
	appendErr error
}

func newFakeObservationRepo() *fakeObservationRepo {
	return &fakeObservationRepo{prices: make(map[string]decimal.Decimal)}
}

func (f *fakeObservationRepo) setPrice(flight, date string, cabin entity.Cabin, price string) {
	f.prices[flight+":"+date+":"+string(cabin)] = decimal.RequireFromString(price)
}

func (f *fakeObservationRepo) Append(ctx context.Context, obs *entity.FlightObservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, obs)
	return nil
}

func (f *fakeObservationRepo) MostRecentPrice(ctx context.Context, flightNumber, departureDate string, cabin entity.Cabin) (*decimal.Decimal, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	if price, ok := f.prices[flightNumber+":"+departureDate+":"+string(cabin)]; ok {
		return &price, nil
	}
	return nil, nil
}

func evaluatorWith(repo *fakeObservationRepo) *AlertEvaluator {
	return NewAlertEvaluator(repo, logger.NewNop())
}

func defaultThresholds() AlertThresholds {
	return AlertThresholds{
		MaxPriceAlert: decimal.RequireFromString("1200.00"),
		MinSeatsAlert: 2,
	}
}

func evalRecord(flight string, price string, seats int) entity.FlightRecord {
	return entity.FlightRecord{
		FlightNumber:   flight,
		DepartureDate:  "2026-02-16",
		Cabin:          entity.CabinEconomy,
		Price:          decimal.RequireFromString(price),
		SeatsAvailable: seats,
		SeatsKnown:     seats > 0,
	}
}

func TestEvaluate_PriceAlertBoundaryInclusive(t *testing.T) {
	e := evaluatorWith(newFakeObservationRepo())
	analysis := entity.UnavailablePriceAnalysis()

	onBoundary := e.Evaluate(context.Background(), evalRecord("TR18", "1200.00", 9), analysis, defaultThresholds())
	assert.True(t, onBoundary.Has(entity.AlertPrice))

	aboveBoundary := e.Evaluate(context.Background(), evalRecord("TR18", "1200.01", 9), analysis, defaultThresholds())
	assert.False(t, aboveBoundary.Has(entity.AlertPrice))
}

func TestEvaluate_LowSeatsBoundaryInclusive(t *testing.T) {
	e := evaluatorWith(newFakeObservationRepo())
	analysis := entity.UnavailablePriceAnalysis()
	thresholds := AlertThresholds{MaxPriceAlert: decimal.RequireFromString("100"), MinSeatsAlert: 3}

	ev := e.Evaluate(context.Background(), evalRecord("TR18", "650", 3), analysis, thresholds)
	assert.True(t, ev.Has(entity.AlertLowSeats))

	ev = e.Evaluate(context.Background(), evalRecord("TR18", "650", 4), analysis, thresholds)
	assert.False(t, ev.Has(entity.AlertLowSeats))
}

func TestEvaluate_UnknownSeatsStillFiresLowSeats(t *testing.T) {
	// Seats 0 means "not reported" but satisfies the threshold; the
	// SeatsKnown flag is the reader's escape hatch.
	e := evaluatorWith(newFakeObservationRepo())

	ev := e.Evaluate(context.Background(), evalRecord("TR18", "650", 0), entity.UnavailablePriceAnalysis(), defaultThresholds())
	assert.True(t, ev.Has(entity.AlertLowSeats))
	assert.False(t, ev.Record.SeatsKnown)
}

func TestEvaluate_TargetMatch(t *testing.T) {
	e := evaluatorWith(newFakeObservationRepo())
	thresholds := defaultThresholds()
	thresholds.TargetFlightNumber = "TK168"

	ev := e.Evaluate(context.Background(), evalRecord("TK168", "1300", 9), entity.UnavailablePriceAnalysis(), thresholds)
	assert.True(t, ev.Has(entity.AlertTargetMatch))

	ev = e.Evaluate(context.Background(), evalRecord("TK16", "1300", 9), entity.UnavailablePriceAnalysis(), thresholds)
	assert.False(t, ev.Has(entity.AlertTargetMatch))
}

func TestEvaluate_BelowMedianOnlyWhenAnalysisAvailable(t *testing.T) {
	e := evaluatorWith(newFakeObservationRepo())
	analysis := entity.PriceAnalysis{
		Available:     true,
		Minimum:       decimal.RequireFromString("400"),
		FirstQuartile: decimal.RequireFromString("550"),
		Median:        decimal.RequireFromString("780"),
		ThirdQuartile: decimal.RequireFromString("990"),
		Maximum:       decimal.RequireFromString("1500"),
	}

	ev := e.Evaluate(context.Background(), evalRecord("TR18", "780", 9), analysis, defaultThresholds())
	assert.True(t, ev.Has(entity.AlertBelowMedian))
	assert.Equal(t, entity.QuartileSecond, ev.Quartile)

	ev = e.Evaluate(context.Background(), evalRecord("TR18", "780.01", 9), analysis, defaultThresholds())
	assert.False(t, ev.Has(entity.AlertBelowMedian))
	assert.Equal(t, entity.QuartileThird, ev.Quartile)

	ev = e.Evaluate(context.Background(), evalRecord("TR18", "500", 9), entity.UnavailablePriceAnalysis(), defaultThresholds())
	assert.False(t, ev.Has(entity.AlertBelowMedian))
	assert.Equal(t, entity.QuartileNA, ev.Quartile)
}

func TestEvaluate_PriceDeltaAgainstMostRecentPrice(t *testing.T) {
	repo := newFakeObservationRepo()
	repo.setPrice("TR18", "2026-02-16", entity.CabinEconomy, "500.00")
	e := evaluatorWith(repo)

	ev := e.Evaluate(context.Background(), evalRecord("TR18", "450.00", 9), entity.UnavailablePriceAnalysis(), defaultThresholds())

	require.NotNil(t, ev.Record.PreviousPrice)
	require.NotNil(t, ev.Record.PriceDelta)
	assert.Equal(t, "500", ev.Record.PreviousPrice.String())
	assert.Equal(t, "-50", ev.Record.PriceDelta.String())
}

func TestEvaluate_NoHistoryMeansNilDelta(t *testing.T) {
	e := evaluatorWith(newFakeObservationRepo())

	ev := e.Evaluate(context.Background(), evalRecord("TR18", "450.00", 9), entity.UnavailablePriceAnalysis(), defaultThresholds())

	assert.Nil(t, ev.Record.PreviousPrice)
	assert.Nil(t, ev.Record.PriceDelta)
}

func TestEvaluate_LookupErrorDegradesToFirstObservation(t *testing.T) {
	repo := newFakeObservationRepo()
	repo.lookupErr = &entity.LookupError{Key: "TR18", Err: errors.New("connection reset")}
	e := evaluatorWith(repo)

	ev := e.Evaluate(context.Background(), evalRecord("TR18", "450.00", 9), entity.UnavailablePriceAnalysis(), defaultThresholds())

	assert.Nil(t, ev.Record.PreviousPrice)
	assert.Nil(t, ev.Record.PriceDelta)
	assert.True(t, ev.Has(entity.AlertPrice))
}
