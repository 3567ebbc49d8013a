package repository

import (
	"context"
)

// NotifierRepository defines the interface for the outbound notification
// sink. Send failures are reported but never abort a pass.
type NotifierRepository interface {
	Send(ctx context.Context, subject, body string) error
}
