// internal/domain/entity/alert.go
package entity

// AlertTag marks a triggered alert predicate on an evaluated record
type AlertTag string

const (
	AlertPrice       AlertTag = "PRICE_ALERT"
	AlertLowSeats    AlertTag = "LOW_SEATS"
	AlertTargetMatch AlertTag = "TARGET_MATCH"
	AlertBelowMedian AlertTag = "BELOW_MEDIAN"
)

// EvaluatedRecord is a FlightRecord annotated with its historical-band
// classification and the set of alert predicates it triggered
type EvaluatedRecord struct {
	Record   FlightRecord
	Quartile Quartile
	Alerts   []AlertTag
}

// Has reports whether the given tag was triggered
func (e *EvaluatedRecord) Has(tag AlertTag) bool {
	for _, t := range e.Alerts {
		if t == tag {
			return true
		}
	}
	return false
}

// Triggered reports whether the record satisfies the pass-level alert
// condition. Only PRICE_ALERT and LOW_SEATS count; TARGET_MATCH and
// BELOW_MEDIAN are narrative annotations.
func (e *EvaluatedRecord) Triggered() bool {
	return e.Has(AlertPrice) || e.Has(AlertLowSeats)
}
