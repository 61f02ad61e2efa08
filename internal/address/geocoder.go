package address

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/meridian/fund-console/internal/types"
)

// DefaultTimeout bounds a single geocoding request.
const DefaultTimeout = 10 * time.Second

// DefaultConfidenceThreshold is the cutoff below which a geocoder result is
// accepted but flagged for manual review rather than trusted outright.
const DefaultConfidenceThreshold = 0.8

// GeocodeError represents a failed geocoding call. The chain treats it as a
// signal to degrade, never as a fatal error.
type GeocodeError struct {
	Message string
	Cause   error
}

func (e *GeocodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("geocode error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("geocode error: %s", e.Message)
}

func (e *GeocodeError) Unwrap() error {
	return e.Cause
}

// GeocodeClient calls the external geocoding HTTP service. It implements
// Source as the highest-preference tier.
type GeocodeClient struct {
	baseURL    string
	apiKey     string
	threshold  float64
	httpClient *http.Client
}

// GeocodeOptions configures the client.
type GeocodeOptions struct {
	APIKey              string
	Timeout             time.Duration
	ConfidenceThreshold float64
}

// NewGeocodeClient creates a geocoding tier for the given service URL.
func NewGeocodeClient(baseURL string, opts GeocodeOptions) (*GeocodeClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &GeocodeError{Message: "invalid geocoder URL", Cause: err}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	threshold := opts.ConfidenceThreshold
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}
	return &GeocodeClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     opts.APIKey,
		threshold:  threshold,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *GeocodeClient) Name() string { return "geocoder" }

// geocodeResponse is the service's wire format: structured parts, optional
// coordinates, and a 0..1 confidence indicator.
type geocodeResponse struct {
	Line1      string   `json:"line1"`
	City       string   `json:"city"`
	State      string   `json:"state"`
	Zip        string   `json:"zip"`
	Country    string   `json:"country"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	Confidence float64  `json:"confidence"`
}

// TryNormalize sends the raw text to the service. A below-threshold result is
// still accepted, with NeedsReview set; an empty or failed response is an
// error so the chain can fall back to the regex tier.
func (c *GeocodeClient) TryNormalize(ctx context.Context, raw string) (*types.AddressNormalizationResult, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, &GeocodeError{Message: "empty address text"}
	}

	reqURL := fmt.Sprintf("%s/geocode?q=%s", c.baseURL, url.QueryEscape(raw))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &GeocodeError{Message: "failed to create request", Cause: err}
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &GeocodeError{Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &GeocodeError{Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &GeocodeError{Message: "failed to read response", Cause: err}
	}

	var gr geocodeResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return nil, &GeocodeError{Message: "failed to parse response", Cause: err}
	}

	// A response with no usable parts counts as a miss.
	if gr.City == "" && gr.Line1 == "" && gr.Zip == "" {
		return nil, &GeocodeError{Message: "empty geocoder result"}
	}

	return &types.AddressNormalizationResult{
		Method:      types.AddressMethodGeocoder,
		NeedsReview: gr.Confidence < c.threshold,
		Fields: types.AddressFields{
			Line1:     gr.Line1,
			City:      gr.City,
			State:     gr.State,
			Zip:       gr.Zip,
			Country:   gr.Country,
			Latitude:  gr.Latitude,
			Longitude: gr.Longitude,
		},
	}, nil
}
