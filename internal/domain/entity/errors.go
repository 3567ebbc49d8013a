// internal/domain/entity/errors.go
package entity

import (
	"fmt"
)

// AuthenticationError means the provider token request failed. Fatal for
// the current pass.
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// ProviderRequestError means a search or analysis call failed at the
// transport level. Fatal for the current pass.
type ProviderRequestError struct {
	Op  string // "searchOffers" or "priceAnalysis"
	Err error
}

func (e *ProviderRequestError) Error() string {
	return fmt.Sprintf("provider request %s failed: %v", e.Op, e.Err)
}

func (e *ProviderRequestError) Unwrap() error { return e.Err }

// MalformedOfferError means a raw offer is missing a required field. The
// offer is skipped; sibling offers in the same batch are unaffected.
type MalformedOfferError struct {
	OfferID string
	Field   string
}

func (e *MalformedOfferError) Error() string {
	return fmt.Sprintf("malformed offer %q: missing %s", e.OfferID, e.Field)
}

// NotificationError means the outbound notification could not be sent.
// Logged, never fatal to the pass.
type NotificationError struct {
	Err error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification failed: %v", e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }

// LookupError means a history read failed. Treated as "no prior price".
type LookupError struct {
	Key string
	Err error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("history lookup for %s failed: %v", e.Key, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }
