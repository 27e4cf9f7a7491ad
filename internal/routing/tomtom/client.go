// Package tomtom provides a client for the TomTom Routing API.
package tomtom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/tripcast/tripcast/internal/provider/resilience"
	"github.com/tripcast/tripcast/internal/routing"
)

const (
	// ProviderName identifies this routing provider.
	ProviderName = "tomtom-routing"

	// DefaultBaseURL is the TomTom Routing API base URL.
	DefaultBaseURL = "https://api.tomtom.com"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 15 * time.Second
)

// HTTPDoer is an interface for executing HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the TomTom Routing client.
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

// Client is a TomTom Routing API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewClient creates a new TomTom Routing client.
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

// GetDirections computes a route between two points.
func (c *Client) GetDirections(ctx context.Context, req routing.DirectionsRequest) (*routing.Route, error) {
	if err := routing.ValidateCoordinate(req.Origin); err != nil {
		return nil, fmt.Errorf("%w: origin", routing.ErrInvalidCoordinates)
	}
	if err := routing.ValidateCoordinate(req.Destination); err != nil {
		return nil, fmt.Errorf("%w: destination", routing.ErrInvalidCoordinates)
	}

	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("travelMode", string(req.Mode))
	q.Set("instructionsType", "coded")
	q.Set("computeBestOrder", "false")
	q.Set("routeRepresentation", "polyline")
	q.Set("computeTravelTimeFor", "all")
	q.Set("sectionType", "traffic")

	reqURL := fmt.Sprintf("%s/routing/1/calculateRoute/%f,%f:%f,%f/json?%s",
		c.baseURL,
		req.Origin.Lat, req.Origin.Lng,
		req.Destination.Lat, req.Destination.Lng,
		q.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	c.logger.Debug().
		Str("mode", string(req.Mode)).
		Float64("origin_lat", req.Origin.Lat).
		Float64("origin_lng", req.Origin.Lng).
		Float64("dest_lat", req.Destination.Lat).
		Float64("dest_lng", req.Destination.Lng).
		Msg("requesting route from TomTom")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", routing.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleErrorResponse(resp)
	}

	var routeResp calculateRouteResponse
	if err := json.NewDecoder(resp.Body).Decode(&routeResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(routeResp.Routes) == 0 {
		return nil, routing.ErrNoRouteFound
	}

	return c.toRoute(&routeResp.Routes[0], req), nil
}

// handleErrorResponse maps TomTom Routing error responses to domain errors.
func (c *Client) handleErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	switch resp.StatusCode {
	case http.StatusForbidden, http.StatusUnauthorized:
		return fmt.Errorf("%w: access denied by routing provider", routing.ErrInvalidAPIKey)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: rate limit exceeded", routing.ErrProviderUnavailable)
	}

	var apiErr errorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.DetailedError.Message != "" {
		if resp.StatusCode == http.StatusBadRequest {
			return fmt.Errorf("%w: %s", routing.ErrNoRouteFound, apiErr.DetailedError.Message)
		}
		return fmt.Errorf("%w: %s", routing.ErrProviderUnavailable, apiErr.DetailedError.Message)
	}
	return fmt.Errorf("%w: status %d", routing.ErrProviderUnavailable, resp.StatusCode)
}

// toRoute converts a TomTom route to the domain model. When the response
// carries no leg geometry, the route shape degrades to origin and destination.
func (c *Client) toRoute(r *tomtomRoute, req routing.DirectionsRequest) *routing.Route {
	route := &routing.Route{
		DurationSeconds: r.Summary.TravelTimeInSeconds,
		DistanceMeters:  r.Summary.LengthInMeters,
		FetchedAt:       time.Now(),
	}

	if len(r.Legs) > 0 && len(r.Legs[0].Points) > 0 {
		route.Geometry = make([]routing.Coordinate, 0, len(r.Legs[0].Points))
		for _, p := range r.Legs[0].Points {
			route.Geometry = append(route.Geometry, routing.Coordinate{
				Lat: p.Latitude,
				Lng: p.Longitude,
			})
		}
	} else {
		route.Geometry = []routing.Coordinate{req.Origin, req.Destination}
	}

	c.logger.Debug().
		Int("duration_s", route.DurationSeconds).
		Int("distance_m", route.DistanceMeters).
		Int("geometry_points", len(route.Geometry)).
		Msg("received route from TomTom")

	return route
}

// TomTom Routing API response structures.

type calculateRouteResponse struct {
	Routes []tomtomRoute `json:"routes"`
}

type tomtomRoute struct {
	Summary struct {
		LengthInMeters      int `json:"lengthInMeters"`
		TravelTimeInSeconds int `json:"travelTimeInSeconds"`
	} `json:"summary"`
	Legs []struct {
		Points []struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"points"`
	} `json:"legs"`
}

type errorResponse struct {
	DetailedError struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"detailedError"`
}
