// Package client provides an HTTP client for the Tripcast API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is where a locally running API server listens.
	DefaultBaseURL = "http://localhost:8001"

	defaultTimeout = 90 * time.Second

	// genericErrorMessage is shown when the server response carries no
	// usable detail message.
	genericErrorMessage = "Failed to calculate route. Please check your inputs and API keys."
)

// timeLayout matches the server's wire format for timestamps. Values are
// exchanged verbatim with no timezone conversion.
const timeLayout = "2006-01-02T15:04:05"

// HTTPDoer abstracts the underlying HTTP client for testing.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config configures a Client.
type Config struct {
	BaseURL    string
	HTTPClient HTTPDoer
	Logger     zerolog.Logger
}

// Client calls the Tripcast API.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// New creates a Tripcast API client.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger.With().Str("component", "api-client").Logger(),
	}
}

// RouteRequest holds the inputs for a route calculation.
type RouteRequest struct {
	Source        string
	Destination   string
	TransportMode string
	StartTime     time.Time
	TomTomAPIKey  string
	WeatherAPIKey string
}

// RoutePoint is one stop on the returned timeline.
type RoutePoint struct {
	PointType             string
	Address               string
	EstimatedTime         time.Time
	Lat                   float64
	Lng                   float64
	DistanceFromSource    float64
	DistanceToDestination float64
	Weather               *WeatherInfo
	RoadConditions        *RoadConditions
}

// WeatherInfo is the weather attached to a route point.
type WeatherInfo struct {
	Temperature  float64
	Condition    string
	Icon         string
	Humidity     int
	WindSpeed    float64
	Visibility   float64
	ForecastType string
}

// RoadConditions is the traffic state near a route point.
type RoadConditions struct {
	Condition     string
	Color         string
	CurrentSpeed  float64
	FreeFlowSpeed float64
}

// RouteResult is a calculated route with its annotated points.
type RouteResult struct {
	TotalDuration float64
	TotalDistance float64
	TransportMode string
	Points        []RoutePoint
}

// APIError is a non-2xx response whose detail message is safe to show to
// the user.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return e.Detail
}

// wire types mirror the server's JSON contract.

type routeRequestWire struct {
	Source        string `json:"source"`
	Destination   string `json:"destination"`
	TransportMode string `json:"transport_mode"`
	StartTime     string `json:"start_time"`
	TomTomAPIKey  string `json:"tomtom_api_key"`
	WeatherAPIKey string `json:"weather_api_key"`
}

type routeResponseWire struct {
	TotalDuration float64          `json:"total_duration"`
	TotalDistance float64          `json:"total_distance"`
	TransportMode string           `json:"transport_mode"`
	Points        []routePointWire `json:"points"`
}

type routePointWire struct {
	PointType             string              `json:"point_type"`
	Address               string              `json:"address"`
	EstimatedTime         string              `json:"estimated_time"`
	Lat                   float64             `json:"lat"`
	Lng                   float64             `json:"lng"`
	DistanceFromSource    float64             `json:"distance_from_source"`
	DistanceToDestination float64             `json:"distance_to_destination"`
	Weather               *weatherWire        `json:"weather,omitempty"`
	RoadConditions        *roadConditionsWire `json:"road_conditions,omitempty"`
}

type weatherWire struct {
	Temperature  float64 `json:"temperature"`
	Condition    string  `json:"condition"`
	Icon         string  `json:"icon"`
	Humidity     int     `json:"humidity"`
	WindSpeed    float64 `json:"wind_speed"`
	Visibility   float64 `json:"visibility"`
	ForecastType string  `json:"forecast_type"`
}

type roadConditionsWire struct {
	Condition     string  `json:"condition"`
	Color         string  `json:"color"`
	CurrentSpeed  float64 `json:"current_speed"`
	FreeFlowSpeed float64 `json:"free_flow_speed"`
}

type errorWire struct {
	Detail string `json:"detail"`
}

// CalculateRoute submits a route calculation and returns the annotated
// timeline. Non-2xx responses yield an *APIError whose Detail comes from
// the server when the body carries one, or a generic message otherwise.
func (c *Client) CalculateRoute(ctx context.Context, req RouteRequest) (*RouteResult, error) {
	body, err := json.Marshal(routeRequestWire{
		Source:        req.Source,
		Destination:   req.Destination,
		TransportMode: req.TransportMode,
		StartTime:     req.StartTime.Format(timeLayout),
		TomTomAPIKey:  req.TomTomAPIKey,
		WeatherAPIKey: req.WeatherAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/calculate-route", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error().Err(err).Msg("route request failed")
		return nil, &APIError{StatusCode: 0, Detail: genericErrorMessage}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.parseError(resp)
	}

	var wire routeResponseWire
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		c.logger.Error().Err(err).Msg("failed to decode route response")
		return nil, &APIError{StatusCode: resp.StatusCode, Detail: genericErrorMessage}
	}

	return fromWire(&wire), nil
}

func (c *Client) parseError(resp *http.Response) error {
	var wire errorWire
	detail := genericErrorMessage
	if err := json.NewDecoder(resp.Body).Decode(&wire); err == nil && wire.Detail != "" {
		detail = wire.Detail
	}
	c.logger.Warn().
		Int("status", resp.StatusCode).
		Str("detail", detail).
		Msg("route request rejected")
	return &APIError{StatusCode: resp.StatusCode, Detail: detail}
}

func fromWire(wire *routeResponseWire) *RouteResult {
	result := &RouteResult{
		TotalDuration: wire.TotalDuration,
		TotalDistance: wire.TotalDistance,
		TransportMode: wire.TransportMode,
		Points:        make([]RoutePoint, 0, len(wire.Points)),
	}

	for _, p := range wire.Points {
		point := RoutePoint{
			PointType:             p.PointType,
			Address:               p.Address,
			Lat:                   p.Lat,
			Lng:                   p.Lng,
			DistanceFromSource:    p.DistanceFromSource,
			DistanceToDestination: p.DistanceToDestination,
		}
		// A malformed timestamp leaves the zero time rather than
		// discarding the whole point.
		if t, err := time.Parse(timeLayout, p.EstimatedTime); err == nil {
			point.EstimatedTime = t
		}
		if p.Weather != nil {
			point.Weather = &WeatherInfo{
				Temperature:  p.Weather.Temperature,
				Condition:    p.Weather.Condition,
				Icon:         p.Weather.Icon,
				Humidity:     p.Weather.Humidity,
				WindSpeed:    p.Weather.WindSpeed,
				Visibility:   p.Weather.Visibility,
				ForecastType: p.Weather.ForecastType,
			}
		}
		if p.RoadConditions != nil {
			point.RoadConditions = &RoadConditions{
				Condition:     p.RoadConditions.Condition,
				Color:         p.RoadConditions.Color,
				CurrentSpeed:  p.RoadConditions.CurrentSpeed,
				FreeFlowSpeed: p.RoadConditions.FreeFlowSpeed,
			}
		}
		result.Points = append(result.Points, point)
	}

	return result
}
