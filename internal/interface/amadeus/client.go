// internal/interface/amadeus/client.go
package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/oauth2"

	"github.com/amenegatti1/flight-price-monitor/internal/domain/entity"
	"github.com/amenegatti1/flight-price-monitor/internal/domain/repository"
	"github.com/amenegatti1/flight-price-monitor/pkg/logger"
)

// Client talks to the Amadeus self-service APIs. The injected HTTP client
// carries the client-credentials token and refreshes it as needed, so one
// handshake serves every sub-query of a pass.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	adults       int
	currencyCode string
	maxResults   int
	logger       logger.Logger
}

// NewClient creates a new Amadeus client
func NewClient(baseURL string, httpClient *http.Client, adults int, currencyCode string, maxResults int, logger logger.Logger) repository.OfferProvider {
	return &Client{
		baseURL:      baseURL,
		httpClient:   httpClient,
		adults:       adults,
		currencyCode: currencyCode,
		maxResults:   maxResults,
		logger:       logger,
	}
}

// SearchOffers fetches raw flight offers for one (origin, destination, date)
// sub-query. Offers are returned in provider order; callers rely on that
// ordering for dedup.
func (c *Client) SearchOffers(ctx context.Context, origin, destination, date, travelClass string) ([]entity.FlightOffer, error) {
	params := url.Values{}
	params.Set("originLocationCode", origin)
	params.Set("destinationLocationCode", destination)
	params.Set("departureDate", date)
	params.Set("adults", strconv.Itoa(c.adults))
	params.Set("currencyCode", c.currencyCode)
	params.Set("max", strconv.Itoa(c.maxResults))
	if travelClass != "" {
		params.Set("travelClass", travelClass)
	}

	endpoint := fmt.Sprintf("%s/v2/shopping/flight-offers?%s", c.baseURL, params.Encode())

	var response struct {
		Data []entity.FlightOffer `json:"data"`
	}
	if err := c.get(ctx, endpoint, &response); err != nil {
		return nil, wrapProviderError("searchOffers", err)
	}

	c.logger.Info("Fetched flight offers",
		"origin", origin,
		"destination", destination,
		"date", date,
		"travelClass", travelClass,
		"count", len(response.Data))

	return response.Data, nil
}

// PriceAnalysis fetches the historical price distribution for a route and
// date. Any failure degrades to the unavailable sentinel: the analysis is
// decoration, not a pass-critical input.
func (c *Client) PriceAnalysis(ctx context.Context, origin, destination, date string) (entity.PriceAnalysis, error) {
	params := url.Values{}
	params.Set("originIataCode", origin)
	params.Set("destinationIataCode", destination)
	params.Set("departureDate", date)
	params.Set("currencyCode", c.currencyCode)

	endpoint := fmt.Sprintf("%s/v1/analytics/itinerary-price-metrics?%s", c.baseURL, params.Encode())

	var response struct {
		Data []struct {
			PriceMetrics []struct {
				Amount          string `json:"amount"`
				QuartileRanking string `json:"quartileRanking"`
			} `json:"priceMetrics"`
		} `json:"data"`
	}
	if err := c.get(ctx, endpoint, &response); err != nil {
		c.logger.Warn("Price analysis unavailable",
			"origin", origin,
			"destination", destination,
			"date", date,
			"error", err)
		return entity.UnavailablePriceAnalysis(), nil
	}

	if len(response.Data) == 0 || len(response.Data[0].PriceMetrics) == 0 {
		return entity.UnavailablePriceAnalysis(), nil
	}

	analysis := entity.PriceAnalysis{Available: true}
	for _, metric := range response.Data[0].PriceMetrics {
		amount, err := decimal.NewFromString(metric.Amount)
		if err != nil {
			c.logger.Warn("Skipping unparseable price metric", "amount", metric.Amount)
			continue
		}
		switch metric.QuartileRanking {
		case "MINIMUM":
			analysis.Minimum = amount
		case "FIRST":
			analysis.FirstQuartile = amount
		case "MEDIUM":
			analysis.Median = amount
		case "THIRD":
			analysis.ThirdQuartile = amount
		case "MAXIMUM":
			analysis.Maximum = amount
		}
	}

	return analysis, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("amadeus returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// wrapProviderError classifies transport failures: a token endpoint
// rejection is an AuthenticationError, everything else a
// ProviderRequestError.
func wrapProviderError(op string, err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return &entity.AuthenticationError{Err: err}
	}
	return &entity.ProviderRequestError{Op: op, Err: err}
}
