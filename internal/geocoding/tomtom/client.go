// Package tomtom provides a client for the TomTom Search API
// (forward and reverse geocoding).
package tomtom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tripcast/tripcast/internal/geocoding"
	"github.com/tripcast/tripcast/internal/provider/resilience"
)

const (
	// ProviderName identifies this geocoding provider.
	ProviderName = "tomtom-search"

	// DefaultBaseURL is the TomTom Search API base URL.
	DefaultBaseURL = "https://api.tomtom.com"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 10 * time.Second

	// reverseGeocodeRadius limits reverse-geocode matches, in meters.
	reverseGeocodeRadius = 100
)

// HTTPDoer is an interface for executing HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the TomTom Search client.
type ClientConfig struct {
	// APIKey is the TomTom API key (required).
	APIKey string

	// BaseURL is the API base URL (optional, defaults to the TomTom API).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient HTTPDoer

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a TomTom Search API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewClient creates a new TomTom Search client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		clientCfg := resilience.DefaultClientConfig(ProviderName)
		clientCfg.Timeout = DefaultTimeout
		httpClient = resilience.NewClient(clientCfg)
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Geocode resolves a free-form query to the best-matching location.
func (c *Client) Geocode(ctx context.Context, query string) (*geocoding.Location, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("limit", "1")

	reqURL := fmt.Sprintf("%s/search/2/geocode/%s.json?%s",
		c.baseURL, url.PathEscape(query), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", geocoding.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleErrorResponse(resp)
	}

	var geoResp geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&geoResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(geoResp.Results) == 0 {
		return nil, fmt.Errorf("%w: %s", geocoding.ErrLocationNotFound, query)
	}

	result := geoResp.Results[0]
	loc := &geocoding.Location{
		Lat:     result.Position.Lat,
		Lng:     result.Position.Lon,
		Address: result.Address.FreeformAddress,
	}

	c.logger.Debug().
		Str("query", query).
		Float64("lat", loc.Lat).
		Float64("lng", loc.Lng).
		Msg("geocoded location")

	return loc, nil
}

// ReverseGeocode returns an address for coordinates. Any failure degrades to
// a coordinate string; missing addresses never abort route computation.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) string {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("returnSpeedLimit", "false")
	q.Set("radius", fmt.Sprintf("%d", reverseGeocodeRadius))

	reqURL := fmt.Sprintf("%s/search/2/reverseGeocode/%f,%f.json?%s",
		c.baseURL, lat, lng, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return geocoding.FallbackAddress(lat, lng)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).
			Float64("lat", lat).
			Float64("lng", lng).
			Msg("reverse geocode failed")
		return geocoding.FallbackAddress(lat, lng)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return geocoding.FallbackAddress(lat, lng)
	}

	var revResp reverseGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&revResp); err != nil {
		return geocoding.FallbackAddress(lat, lng)
	}

	if len(revResp.Addresses) == 0 {
		return geocoding.FallbackAddress(lat, lng)
	}

	addr := revResp.Addresses[0].Address
	parts := make([]string, 0, 3)
	if addr.StreetName != "" {
		parts = append(parts, addr.StreetName)
	}
	switch {
	case addr.Municipality != "":
		parts = append(parts, addr.Municipality)
	case addr.LocalName != "":
		parts = append(parts, addr.LocalName)
	}
	if addr.CountrySubdivision != "" {
		parts = append(parts, addr.CountrySubdivision)
	}

	if len(parts) == 0 {
		return geocoding.FallbackAddress(lat, lng)
	}
	return strings.Join(parts, ", ")
}

// handleErrorResponse maps TomTom Search error responses to domain errors.
func (c *Client) handleErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	switch resp.StatusCode {
	case http.StatusForbidden, http.StatusUnauthorized:
		return fmt.Errorf("%w: access denied by geocoding provider", geocoding.ErrInvalidAPIKey)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: rate limit exceeded", geocoding.ErrProviderUnavailable)
	}

	var apiErr errorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.DetailedError.Message != "" {
		return fmt.Errorf("%w: %s", geocoding.ErrProviderUnavailable, apiErr.DetailedError.Message)
	}
	return fmt.Errorf("%w: status %d", geocoding.ErrProviderUnavailable, resp.StatusCode)
}

// TomTom Search API response structures.

type geocodeResponse struct {
	Results []struct {
		Position struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"position"`
		Address struct {
			FreeformAddress string `json:"freeformAddress"`
		} `json:"address"`
	} `json:"results"`
}

type reverseGeocodeResponse struct {
	Addresses []struct {
		Address struct {
			StreetName         string `json:"streetName"`
			Municipality       string `json:"municipality"`
			LocalName          string `json:"localName"`
			CountrySubdivision string `json:"countrySubdivision"`
		} `json:"address"`
	} `json:"addresses"`
}

type errorResponse struct {
	DetailedError struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"detailedError"`
}
