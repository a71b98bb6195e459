package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// HTTPQuoter asks the upstream pricing service for an authoritative
// quote over plain HTTP.
type HTTPQuoter struct {
	baseURL string
	client  *http.Client
}

// NewHTTPQuoter builds a quoter for the given base URL. An empty base
// URL returns nil, disabling the remote hop entirely.
func NewHTTPQuoter(baseURL string, timeout time.Duration) *HTTPQuoter {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil
	}
	return &HTTPQuoter{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type remoteQuoteResponse struct {
	FinalPrice decimal.Decimal `json:"final_price"`
}

// Quote fetches GET {base}/api/products/{id}/price/{weight}.
func (q *HTTPQuoter) Quote(ctx context.Context, input ResolveInput) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/api/products/%s/price/%s", q.baseURL, input.ProductID, input.CaratWeight)
	if input.CaratPricingID != nil {
		endpoint += "?carat_pricing_id=" + url.QueryEscape(input.CaratPricingID.String())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("building quote request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := q.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("remote quote call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("remote quote status %d", resp.StatusCode)
	}

	var payload remoteQuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, fmt.Errorf("decoding quote response: %w", err)
	}
	if payload.FinalPrice.Sign() < 0 {
		return decimal.Zero, fmt.Errorf("remote quote returned negative price")
	}
	return payload.FinalPrice, nil
}
