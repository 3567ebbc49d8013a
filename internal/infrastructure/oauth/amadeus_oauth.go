package oauth

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/amenegatti1/flight-price-monitor/pkg/logger"
)

// AmadeusOAuth handles the client-credentials handshake with the Amadeus
// token endpoint. One token source is shared across all sub-queries of a
// pass; the underlying client refreshes lazily when the token expires.
type AmadeusOAuth struct {
	config *clientcredentials.Config
	logger logger.Logger
}

// NewAmadeusOAuth creates a new Amadeus OAuth handler
func NewAmadeusOAuth(apiKey, apiSecret, baseURL string, logger logger.Logger) *AmadeusOAuth {
	config := &clientcredentials.Config{
		ClientID:     apiKey,
		ClientSecret: apiSecret,
		TokenURL:     baseURL + "/v1/security/oauth2/token",
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	return &AmadeusOAuth{
		config: config,
		logger: logger,
	}
}

// Client returns an HTTP client that injects and refreshes the bearer token
func (o *AmadeusOAuth) Client(ctx context.Context) *http.Client {
	return o.config.Client(ctx)
}

// Token fetches a token immediately. Used by the setup helper to verify
// credentials.
func (o *AmadeusOAuth) Token(ctx context.Context) (*oauth2.Token, error) {
	return o.config.Token(ctx)
}
