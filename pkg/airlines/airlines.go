package airlines

import (
	"context"

	"github.com/amenegatti1/flight-price-monitor/internal/domain/repository"
)

// defaultTable maps IATA carrier codes to display names. Codes not listed
// here resolve to themselves.
var defaultTable = map[string]string{
	"SQ": "Singapore Airlines",
	"TR": "Scoot",
	"JQ": "Jetstar",
	"QF": "Qantas",
	"VA": "Virgin Australia",
	"NZ": "Air New Zealand",
	"EK": "Emirates",
	"QR": "Qatar Airways",
	"EY": "Etihad Airways",
	"CX": "Cathay Pacific",
	"TG": "Thai Airways",
	"MH": "Malaysia Airlines",
	"GA": "Garuda Indonesia",
	"AK": "AirAsia",
	"D7": "AirAsia X",
	"VN": "Vietnam Airlines",
	"PR": "Philippine Airlines",
	"CI": "China Airlines",
	"BR": "EVA Air",
	"JL": "Japan Airlines",
	"NH": "All Nippon Airways",
	"KE": "Korean Air",
	"OZ": "Asiana Airlines",
	"TK": "Turkish Airlines",
	"BA": "British Airways",
	"LH": "Lufthansa",
	"AF": "Air France",
	"KL": "KLM",
}

// Resolver resolves carrier codes into airline names. The static table is
// the source of truth; an optional reference repository overrides it when
// the code is present there. Unknown codes resolve to the code itself,
// never an error.
type Resolver struct {
	table map[string]string
	repo  repository.AirlineRepository
}

// NewResolver creates a resolver backed by the built-in table. repo may be
// nil when no airline reference table is configured.
func NewResolver(repo repository.AirlineRepository) *Resolver {
	return &Resolver{
		table: defaultTable,
		repo:  repo,
	}
}

// NewStaticResolver creates a resolver with a custom table and no
// reference repository. Intended for tests.
func NewStaticResolver(table map[string]string) *Resolver {
	if table == nil {
		table = defaultTable
	}
	return &Resolver{table: table}
}

// Resolve returns the display name for a carrier code
func (r *Resolver) Resolve(ctx context.Context, code string) string {
	if r.repo != nil {
		if airline, err := r.repo.GetByCode(ctx, code); err == nil && airline.Name != "" {
			return airline.Name
		}
	}
	if name, ok := r.table[code]; ok {
		return name
	}
	return code
}
