package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amenegatti1/flight-price-monitor/internal/domain/entity"
	"github.com/amenegatti1/flight-price-monitor/pkg/airlines"
	"github.com/amenegatti1/flight-price-monitor/pkg/logger"
	"github.com/amenegatti1/flight-price-monitor/pkg/metrics"
)

// prometheus collectors register globally, so the package shares one set
var testMetrics = metrics.NewMetrics("flightwatch_test")

type fakeProvider struct {
	mu        sync.Mutex
	offers    map[string][]entity.FlightOffer
	analysis  map[string]entity.PriceAnalysis
	searchErr error
	searches  []string
}

func (f *fakeProvider) SearchOffers(ctx context.Context, origin, destination, date, travelClass string) ([]entity.FlightOffer, error) {
	f.mu.Lock()
	f.searches = append(f.searches, date+"/"+travelClass)
	f.mu.Unlock()
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.offers[date], nil
}

func (f *fakeProvider) PriceAnalysis(ctx context.Context, origin, destination, date string) (entity.PriceAnalysis, error) {
	if analysis, ok := f.analysis[date]; ok {
		return analysis, nil
	}
	return entity.UnavailablePriceAnalysis(), nil
}

type fakeNotifier struct {
	subjects []string
	bodies   []string
	err      error
}

func (f *fakeNotifier) Send(ctx context.Context, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	f.bodies = append(f.bodies, body)
	return nil
}

// fakeFormatter summarizes the results so tests can assert on the pipeline
// output without coupling to report wording
type fakeFormatter struct{}

func (fakeFormatter) Format(origin, destination string, results []DateResult, thresholds AlertThresholds) string {
	total := 0
	for i := range results {
		total += len(results[i].Records)
	}
	return fmt.Sprintf("%s-%s dates=%d records=%d", origin, destination, len(results), total)
}

func testOffer(flight, carrier, number, cabin, price string, seats int) entity.FlightOffer {
	offer := sampleOffer()
	offer.ID = flight
	offer.NumberOfBookableSeats = seats
	offer.Itineraries[0].Segments[0].CarrierCode = carrier
	offer.Itineraries[0].Segments[0].Number = number
	offer.Price.Total = price
	offer.TravelerPricings[0].FareDetailsBySegment[0].Cabin = cabin
	return offer
}

func newTestMonitor(provider *fakeProvider, repo *fakeObservationRepo, notifier *fakeNotifier) *Monitor {
	resolver := airlines.NewStaticResolver(nil)
	return NewMonitor(
		provider,
		repo,
		notifier,
		NewOfferNormalizer(resolver),
		NewAlertEvaluator(repo, logger.NewNop()),
		fakeFormatter{},
		testMetrics,
		logger.NewNop(),
	)
}

func baseParams(dates ...string) PassParams {
	ceiling := decimal.RequireFromString("700")
	return PassParams{
		Origin:      "SIN",
		Destination: "MEL",
		Dates:       dates,
		Policy:      FilterPolicy{MaxPrice: &ceiling, ExemptCarrier: "JQ"},
		Thresholds: AlertThresholds{
			MaxPriceAlert: decimal.RequireFromString("660"),
			MinSeatsAlert: 2,
		},
	}
}

func TestRunPass_FullPipeline(t *testing.T) {
	provider := &fakeProvider{
		offers: map[string][]entity.FlightOffer{
			"2026-02-16": {
				testOffer("a", "TH", "168", "ECONOMY", "650.00", 2), // kept, alerts
				testOffer("b", "TH", "168", "ECONOMY", "680.00", 2), // duplicate key, dropped
				testOffer("c", "SQ", "227", "ECONOMY", "900.00", 9), // over ceiling, dropped
				testOffer("d", "JQ", "610", "BUSINESS", "2000.00", 9), // exempt, kept
				{ID: "e"}, // malformed, skipped
			},
		},
	}
	repo := newFakeObservationRepo()
	notifier := &fakeNotifier{}
	monitor := newTestMonitor(provider, repo, notifier)

	result, err := monitor.RunPass(context.Background(), baseParams("2026-02-16"))
	require.NoError(t, err)

	// One observation per surviving record, cheapest first
	require.Len(t, repo.appended, 2)
	assert.Equal(t, "TH168", repo.appended[0].FlightNumber)
	assert.Equal(t, "650", repo.appended[0].Price)
	assert.Equal(t, "JQ610", repo.appended[1].FlightNumber)

	assert.True(t, result.Triggered)
	assert.Equal(t, 1, result.AlertCount)
	assert.Equal(t, "SIN-MEL dates=1 records=2", result.Report)

	require.Len(t, notifier.subjects, 1)
	assert.Equal(t, "✈️ Flight Price / Seat Alert", notifier.subjects[0])
}

func TestRunPass_ProviderErrorAbortsPass(t *testing.T) {
	provider := &fakeProvider{
		searchErr: &entity.ProviderRequestError{Op: "searchOffers", Err: errors.New("status 500")},
	}
	repo := newFakeObservationRepo()
	notifier := &fakeNotifier{}
	monitor := newTestMonitor(provider, repo, notifier)

	_, err := monitor.RunPass(context.Background(), baseParams("2026-02-16", "2026-02-17"))

	var providerErr *entity.ProviderRequestError
	require.ErrorAs(t, err, &providerErr)
	assert.Empty(t, repo.appended)
	assert.Empty(t, notifier.subjects)
}

func TestRunPass_NotificationFailureIsNotFatal(t *testing.T) {
	provider := &fakeProvider{
		offers: map[string][]entity.FlightOffer{
			"2026-02-16": {testOffer("a", "TH", "168", "ECONOMY", "650.00", 2)},
		},
	}
	repo := newFakeObservationRepo()
	notifier := &fakeNotifier{err: &entity.NotificationError{Err: errors.New("smtp down")}}
	monitor := newTestMonitor(provider, repo, notifier)

	result, err := monitor.RunPass(context.Background(), baseParams("2026-02-16"))

	require.NoError(t, err)
	assert.True(t, result.Triggered)
	assert.Len(t, repo.appended, 1)
}

func TestRunPass_NoAlertsNoNotification(t *testing.T) {
	provider := &fakeProvider{
		offers: map[string][]entity.FlightOffer{
			"2026-02-16": {testOffer("a", "TH", "168", "ECONOMY", "680.00", 9)},
		},
	}
	repo := newFakeObservationRepo()
	notifier := &fakeNotifier{}
	monitor := newTestMonitor(provider, repo, notifier)

	result, err := monitor.RunPass(context.Background(), baseParams("2026-02-16"))

	require.NoError(t, err)
	assert.False(t, result.Triggered)
	assert.Empty(t, notifier.subjects)
}

func TestRunPass_NotifyAlwaysSendsSummary(t *testing.T) {
	provider := &fakeProvider{
		offers: map[string][]entity.FlightOffer{
			"2026-02-16": {testOffer("a", "TH", "168", "ECONOMY", "680.00", 9)},
		},
	}
	repo := newFakeObservationRepo()
	notifier := &fakeNotifier{}
	monitor := newTestMonitor(provider, repo, notifier)

	params := baseParams("2026-02-16")
	params.NotifyAlways = true

	result, err := monitor.RunPass(context.Background(), params)

	require.NoError(t, err)
	assert.False(t, result.Triggered)
	require.Len(t, notifier.subjects, 1)
	assert.Equal(t, "Flight Price Summary: SIN → MEL", notifier.subjects[0])
}

func TestRunPass_MultiDateAggregatesAlerts(t *testing.T) {
	provider := &fakeProvider{
		offers: map[string][]entity.FlightOffer{
			"2026-02-16": {testOffer("a", "TH", "168", "ECONOMY", "650.00", 1)},
			"2026-02-17": {testOffer("b", "TR", "18", "ECONOMY", "690.00", 9)},
		},
	}
	repo := newFakeObservationRepo()
	notifier := &fakeNotifier{}
	monitor := newTestMonitor(provider, repo, notifier)

	result, err := monitor.RunPass(context.Background(), baseParams("2026-02-16", "2026-02-17"))

	require.NoError(t, err)
	assert.True(t, result.Triggered)
	assert.Equal(t, 1, result.AlertCount)
	assert.Len(t, repo.appended, 2)
	assert.Equal(t, "SIN-MEL dates=2 records=2", result.Report)
}

func TestRunPass_TravelClassFanOutIsSequential(t *testing.T) {
	provider := &fakeProvider{offers: map[string][]entity.FlightOffer{}}
	repo := newFakeObservationRepo()
	monitor := newTestMonitor(provider, repo, &fakeNotifier{})

	params := baseParams("2026-02-16")
	params.TravelClasses = []string{"ECONOMY", "BUSINESS"}

	_, err := monitor.RunPass(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, []string{"2026-02-16/ECONOMY", "2026-02-16/BUSINESS"}, provider.searches)
}

func TestRunPass_AppendErrorAbortsPass(t *testing.T) {
	provider := &fakeProvider{
		offers: map[string][]entity.FlightOffer{
			"2026-02-16": {testOffer("a", "TH", "168", "ECONOMY", "650.00", 2)},
		},
	}
	repo := newFakeObservationRepo()
	repo.appendErr = errors.New("write concern failed")
	monitor := newTestMonitor(provider, repo, &fakeNotifier{})

	_, err := monitor.RunPass(context.Background(), baseParams("2026-02-16"))
	require.Error(t, err)
}
