// internal/usecase/dedup_filter.go
package usecase

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/amenegatti1/flight-price-monitor/internal/domain/entity"
)

// FilterPolicy decides which records from one (route, date) batch survive.
// Non-exempt carriers may only contribute economy (or unclassified) fares;
// the exempt carrier may additionally contribute business fares, and those
// bypass the price ceiling entirely.
type FilterPolicy struct {
	MaxPrice      *decimal.Decimal // nil = no ceiling
	ExemptCarrier string
	DirectOnly    bool
}

// exempt reports whether the record rides the business-cabin exemption
func (p FilterPolicy) exempt(r *entity.FlightRecord) bool {
	return p.ExemptCarrier != "" && r.CarrierCode == p.ExemptCarrier && r.Cabin == entity.CabinBusiness
}

// eligible applies cabin eligibility and the price ceiling
func (p FilterPolicy) eligible(r *entity.FlightRecord) bool {
	if p.DirectOnly && r.Stops > 0 {
		return false
	}
	if p.exempt(r) {
		// no ceiling for exempt-cabin records
		return true
	}
	if r.Cabin != entity.CabinEconomy && r.Cabin != entity.CabinNA {
		return false
	}
	if p.MaxPrice != nil && r.Price.GreaterThan(*p.MaxPrice) {
		return false
	}
	return true
}

// DedupeAndFilter collapses duplicate (flight number, cabin) records, drops
// ineligible ones and sorts the survivors by ascending price. The first
// record seen for a key wins; later duplicates are dropped without price
// comparison. The sort is stable, so ties keep first-seen order. An empty
// result is valid.
func DedupeAndFilter(records []entity.FlightRecord, policy FilterPolicy) []entity.FlightRecord {
	seen := make(map[string]struct{}, len(records))
	kept := make([]entity.FlightRecord, 0, len(records))

	for _, record := range records {
		key := record.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if !policy.eligible(&record) {
			continue
		}
		kept = append(kept, record)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Price.LessThan(kept[j].Price)
	})

	return kept
}
