// internal/usecase/monitor.go
package usecase

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/amenegatti1/flight-price-monitor/internal/domain/entity"
	"github.com/amenegatti1/flight-price-monitor/internal/domain/repository"
	"github.com/amenegatti1/flight-price-monitor/pkg/logger"
	"github.com/amenegatti1/flight-price-monitor/pkg/metrics"
)

// PassParams is the immutable configuration for one monitoring pass
type PassParams struct {
	Origin        string
	Destination   string
	Dates         []string
	TravelClasses []string // cabin overrides; empty = one unrestricted sub-query per date
	Policy        FilterPolicy
	Thresholds    AlertThresholds
	NotifyAlways  bool
}

// DateResult is the evaluated record set for one departure date
type DateResult struct {
	Date     string
	Records  []entity.EvaluatedRecord
	Analysis entity.PriceAnalysis
}

// AlertCount returns the number of records with a triggered alert condition
func (r *DateResult) AlertCount() int {
	count := 0
	for i := range r.Records {
		if r.Records[i].Triggered() {
			count++
		}
	}
	return count
}

// PassResult summarizes one completed pass
type PassResult struct {
	Report     string
	AlertCount int
	Triggered  bool
}

// ReportFormatter renders an evaluated pass into a plain-text report
type ReportFormatter interface {
	Format(origin, destination string, results []DateResult, thresholds AlertThresholds) string
}

// Monitor runs monitoring passes: fetch, normalize, dedup, evaluate,
// persist, report, notify. Dates within a pass run concurrently; classes
// within a date run in order so dedup keeps the cheaper cabin's first hit.
type Monitor struct {
	provider     repository.OfferProvider
	observations repository.ObservationRepository
	notifier     repository.NotifierRepository
	normalizer   *OfferNormalizer
	evaluator    *AlertEvaluator
	formatter    ReportFormatter
	metrics      *metrics.Metrics
	logger       logger.Logger
}

// NewMonitor creates a new monitor
func NewMonitor(
	provider repository.OfferProvider,
	observations repository.ObservationRepository,
	notifier repository.NotifierRepository,
	normalizer *OfferNormalizer,
	evaluator *AlertEvaluator,
	formatter ReportFormatter,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *Monitor {
	return &Monitor{
		provider:     provider,
		observations: observations,
		notifier:     notifier,
		normalizer:   normalizer,
		evaluator:    evaluator,
		formatter:    formatter,
		metrics:      metrics,
		logger:       logger,
	}
}

// RunPass executes one full monitoring pass. Provider and authentication
// failures abort the pass and are returned typed; malformed offers are
// skipped; notification failures are logged and swallowed. Every surviving
// record is persisted exactly once before the pass returns.
func (m *Monitor) RunPass(ctx context.Context, params PassParams) (*PassResult, error) {
	started := time.Now()
	m.logger.Info("Starting monitoring pass",
		"origin", params.Origin,
		"destination", params.Destination,
		"dates", len(params.Dates))

	// Dates are independent sub-queries, so they fan out concurrently.
	// Output ordering follows the requested date list, not completion order.
	results := make([]DateResult, len(params.Dates))
	g, gctx := errgroup.WithContext(ctx)
	for i, date := range params.Dates {
		i, date := i, date
		g.Go(func() error {
			result, err := m.runDate(gctx, params, date)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		m.metrics.PassesFailed.Inc()
		return nil, err
	}

	alertCount := 0
	for i := range results {
		alertCount += results[i].AlertCount()
	}
	triggered := alertCount > 0

	report := m.formatter.Format(params.Origin, params.Destination, results, params.Thresholds)

	if triggered || params.NotifyAlways {
		subject := summarySubject(params.Origin, params.Destination)
		if triggered {
			subject = alertSubject
		}
		if err := m.notifier.Send(ctx, subject, report); err != nil {
			// Degraded: the pass itself succeeded
			m.metrics.ErrorsCount.WithLabelValues("notify").Inc()
			m.logger.Error("Failed to send notification", "error", err)
		} else {
			m.metrics.NotificationsSent.Inc()
		}
	}

	m.metrics.PassesCompleted.Inc()
	m.metrics.PassDuration.Observe(time.Since(started).Seconds())
	m.logger.Info("Monitoring pass completed",
		"dates", len(results),
		"alerts", alertCount,
		"duration", time.Since(started).String())

	return &PassResult{
		Report:     report,
		AlertCount: alertCount,
		Triggered:  triggered,
	}, nil
}

// runDate runs the sub-queries for one departure date and evaluates and
// persists the surviving records
func (m *Monitor) runDate(ctx context.Context, params PassParams, date string) (DateResult, error) {
	travelClasses := params.TravelClasses
	if len(travelClasses) == 0 {
		travelClasses = []string{""}
	}

	var offers []entity.FlightOffer
	for _, travelClass := range travelClasses {
		batch, err := m.provider.SearchOffers(ctx, params.Origin, params.Destination, date, travelClass)
		if err != nil {
			m.metrics.ErrorsCount.WithLabelValues("searchOffers").Inc()
			return DateResult{}, err
		}
		offers = append(offers, batch...)
	}

	analysis, err := m.provider.PriceAnalysis(ctx, params.Origin, params.Destination, date)
	if err != nil {
		// Analysis is decoration; a hard failure here still degrades
		m.metrics.ErrorsCount.WithLabelValues("priceAnalysis").Inc()
		m.logger.Warn("Price analysis failed", "date", date, "error", err)
		analysis = entity.UnavailablePriceAnalysis()
	}

	records := make([]entity.FlightRecord, 0, len(offers))
	for _, offer := range offers {
		record, err := m.normalizer.Normalize(ctx, offer, date)
		if err != nil {
			var malformed *entity.MalformedOfferError
			if errors.As(err, &malformed) {
				// One bad offer must not sink its siblings
				m.metrics.ErrorsCount.WithLabelValues("normalize").Inc()
				m.logger.Warn("Skipping malformed offer", "date", date, "error", err)
				continue
			}
			return DateResult{}, err
		}
		records = append(records, record)
	}
	m.metrics.OffersNormalized.Add(float64(len(records)))

	kept := DedupeAndFilter(records, params.Policy)
	m.metrics.RecordsKept.Add(float64(len(kept)))
	m.logger.Info("Filtered offers",
		"date", date,
		"raw", len(offers),
		"normalized", len(records),
		"kept", len(kept))

	evaluated := make([]entity.EvaluatedRecord, 0, len(kept))
	for _, record := range kept {
		ev := m.evaluator.Evaluate(ctx, record, analysis, params.Thresholds)
		if ev.Triggered() {
			m.metrics.AlertsTriggered.Inc()
		}

		if err := m.observations.Append(ctx, buildObservation(&ev, analysis)); err != nil {
			m.metrics.ErrorsCount.WithLabelValues("append").Inc()
			return DateResult{}, err
		}
		evaluated = append(evaluated, ev)
	}

	return DateResult{
		Date:     date,
		Records:  evaluated,
		Analysis: analysis,
	}, nil
}

// buildObservation denormalizes an evaluated record into one immutable
// storage row
func buildObservation(ev *entity.EvaluatedRecord, analysis entity.PriceAnalysis) *entity.FlightObservation {
	obs := &entity.FlightObservation{
		CheckedAt:     time.Now().UTC(),
		DepartureDate: ev.Record.DepartureDate,
		FlightNumber:  ev.Record.FlightNumber,
		AirlineName:   ev.Record.AirlineName,
		Price:         ev.Record.Price.String(),
		SeatsLeft:     ev.Record.SeatsAvailable,
		Currency:      ev.Record.Currency,
		FareClass:     ev.Record.FareClass,
		Aircraft:      ev.Record.AircraftCode,
		Cabin:         string(ev.Record.Cabin),
		DepartureTime: ev.Record.DepartureTime,
		ArrivalTime:   ev.Record.ArrivalTime,
		Duration:      ev.Record.Duration,
		PriceQuartile: string(ev.Quartile),
	}
	if analysis.Available {
		obs.HistoricalMin = analysis.Minimum.String()
		obs.HistoricalMax = analysis.Maximum.String()
	}
	return obs
}

const alertSubject = "✈️ Flight Price / Seat Alert"

func summarySubject(origin, destination string) string {
	return "Flight Price Summary: " + origin + " → " + destination
}
