// Package tomtom provides a client for the TomTom Traffic flow API.
package tomtom

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/tripcast/tripcast/internal/provider/resilience"
	"github.com/tripcast/tripcast/internal/traffic"
)

const (
	// ProviderName identifies this traffic provider.
	ProviderName = "tomtom-traffic"

	// DefaultBaseURL is the TomTom Traffic API base URL.
	DefaultBaseURL = "https://api.tomtom.com"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 10 * time.Second

	// flowZoom is the flow segment data zoom level.
	flowZoom = 10
)

// HTTPDoer is an interface for executing HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the TomTom Traffic client.
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

// Client is a TomTom Traffic API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewClient creates a new TomTom Traffic client.
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

// FlowAt returns traffic flow at a point. Failures degrade to UnknownFlow.
func (c *Client) FlowAt(ctx context.Context, lat, lng float64) *traffic.Flow {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("point", fmt.Sprintf("%f,%f", lat, lng))
	q.Set("unit", "KMPH")

	reqURL := fmt.Sprintf("%s/traffic/services/4/flowSegmentData/absolute/%d/json?%s",
		c.baseURL, flowZoom, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return traffic.UnknownFlow()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).
			Float64("lat", lat).
			Float64("lng", lng).
			Msg("traffic flow lookup failed")
		return traffic.UnknownFlow()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return traffic.UnknownFlow()
	}

	var flowResp flowSegmentResponse
	if err := json.NewDecoder(resp.Body).Decode(&flowResp); err != nil {
		return traffic.UnknownFlow()
	}

	data := flowResp.FlowSegmentData
	return &traffic.Flow{
		Condition:     traffic.Categorize(data.CurrentSpeed, data.FreeFlowSpeed),
		CurrentSpeed:  data.CurrentSpeed,
		FreeFlowSpeed: data.FreeFlowSpeed,
		Confidence:    data.Confidence,
	}
}

// TomTom Traffic API response structures.

type flowSegmentResponse struct {
	FlowSegmentData struct {
		CurrentSpeed  float64 `json:"currentSpeed"`
		FreeFlowSpeed float64 `json:"freeFlowSpeed"`
		Confidence    float64 `json:"confidence"`
	} `json:"flowSegmentData"`
}
