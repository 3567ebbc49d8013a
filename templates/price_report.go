// templates/price_report.go
package templates

import (
	"fmt"
	"strings"
	"time"

	"github.com/amenegatti1/flight-price-monitor/internal/domain/entity"
	"github.com/amenegatti1/flight-price-monitor/internal/usecase"
)

// PriceReportFormatter renders evaluated pass results into the plain-text
// report sent to the console and the notification sink
type PriceReportFormatter struct{}

// NewPriceReportFormatter creates a new report formatter
func NewPriceReportFormatter() *PriceReportFormatter {
	return &PriceReportFormatter{}
}

// Format builds the full report: one section per departure date plus an
// aggregate section when more than one date was evaluated. It never
// returns an empty string.
func (f *PriceReportFormatter) Format(origin, destination string, results []usecase.DateResult, thresholds usecase.AlertThresholds) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Flight Price Report: %s → %s\n", origin, destination)
	fmt.Fprintf(&b, "Checked: %s\n", time.Now().UTC().Format(time.RFC3339))

	totalFlights := 0
	totalAlerts := 0
	datesWithAlerts := 0

	for i := range results {
		result := &results[i]
		b.WriteString("\n")
		f.writeDateSection(&b, result, thresholds)

		totalFlights += len(result.Records)
		alerts := result.AlertCount()
		totalAlerts += alerts
		if alerts > 0 {
			datesWithAlerts++
		}
	}

	if len(results) > 1 {
		b.WriteString("\n=== Summary ===\n")
		fmt.Fprintf(&b, "Dates checked: %d\n", len(results))
		fmt.Fprintf(&b, "Flights listed: %d\n", totalFlights)
		fmt.Fprintf(&b, "Alerts triggered: %d\n", totalAlerts)
		fmt.Fprintf(&b, "Dates with alerts: %d\n", datesWithAlerts)
	}

	b.WriteString("\nAlert conditions:\n")
	fmt.Fprintf(&b, "- Price ≤ %s\n", thresholds.MaxPriceAlert.StringFixed(2))
	fmt.Fprintf(&b, "- Seats ≤ %d\n", thresholds.MinSeatsAlert)

	return b.String()
}

// writeDateSection renders one departure date: header, optional historical
// block, the enumerated records and the date's alert count
func (f *PriceReportFormatter) writeDateSection(b *strings.Builder, result *usecase.DateResult, thresholds usecase.AlertThresholds) {
	fmt.Fprintf(b, "=== Departure %s ===\n", result.Date)

	if result.Analysis.Available {
		fmt.Fprintf(b, "Historical prices: min %s | median %s | max %s\n",
			result.Analysis.Minimum.StringFixed(2),
			result.Analysis.Median.StringFixed(2),
			result.Analysis.Maximum.StringFixed(2))
	}

	if len(result.Records) == 0 {
		f.writeNoFlights(b, result.Date)
		return
	}

	for i := range result.Records {
		f.writeRecord(b, i+1, &result.Records[i])
	}

	if thresholds.TargetFlightNumber != "" {
		found := false
		for i := range result.Records {
			if result.Records[i].Has(entity.AlertTargetMatch) {
				found = true
				break
			}
		}
		if found {
			fmt.Fprintf(b, "Target flight %s: found\n", thresholds.TargetFlightNumber)
		} else {
			fmt.Fprintf(b, "Target flight %s: not found\n", thresholds.TargetFlightNumber)
		}
	}

	fmt.Fprintf(b, "Alerts for this date: %d\n", result.AlertCount())
}

// writeRecord renders one evaluated record with its badges
func (f *PriceReportFormatter) writeRecord(b *strings.Builder, index int, ev *entity.EvaluatedRecord) {
	record := &ev.Record

	badges := make([]string, 0, 4)
	if ev.Has(entity.AlertPrice) {
		badges = append(badges, "[PRICE ALERT]")
	}
	if ev.Has(entity.AlertLowSeats) {
		badges = append(badges, "[LOW SEATS]")
	}
	if ev.Has(entity.AlertTargetMatch) {
		badges = append(badges, "[TARGET]")
	}
	if ev.Has(entity.AlertBelowMedian) {
		badges = append(badges, "[BELOW MEDIAN]")
	}

	fmt.Fprintf(b, "%2d. %s %s — %s — %s %s",
		index, record.FlightNumber, record.AirlineName, record.Cabin,
		record.Price.StringFixed(2), record.Currency)
	if len(badges) > 0 {
		b.WriteString(" " + strings.Join(badges, " "))
	}
	b.WriteString("\n")

	seats := fmt.Sprintf("%d", record.SeatsAvailable)
	if !record.SeatsKnown {
		seats = "unknown"
	}
	fmt.Fprintf(b, "    Seats: %s | Fare class: %s | Aircraft: %s | Stops: %d | Duration: %s\n",
		seats, record.FareClass, record.AircraftCode, record.Stops, record.Duration)
	fmt.Fprintf(b, "    Departs %s | Arrives %s\n", record.DepartureTime, record.ArrivalTime)

	if ev.Quartile != entity.QuartileNA {
		fmt.Fprintf(b, "    Price band: %s\n", ev.Quartile)
	}
	if record.PriceDelta != nil {
		direction := "up"
		if record.PriceDelta.IsNegative() {
			direction = "down"
		} else if record.PriceDelta.IsZero() {
			direction = "unchanged"
		}
		fmt.Fprintf(b, "    Price %s: %s (was %s)\n",
			direction, record.PriceDelta.StringFixed(2), record.PreviousPrice.StringFixed(2))
	}
}

// writeNoFlights explains an empty date instead of rendering nothing
func (f *PriceReportFormatter) writeNoFlights(b *strings.Builder, date string) {
	fmt.Fprintf(b, "No flights found for %s.\n", date)
	b.WriteString("Possible causes:\n")
	b.WriteString("- the provider returned no offers for this route and date\n")
	b.WriteString("- every offer exceeded the configured price ceiling\n")
	b.WriteString("- no offers remained in an eligible cabin\n")
	b.WriteString("- direct-only filtering removed all connecting offers\n")
}
