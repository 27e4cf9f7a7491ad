// Package weatherapi provides a client for the WeatherAPI.com current and forecast APIs.
package weatherapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tripcast/tripcast/internal/provider/resilience"
	"github.com/tripcast/tripcast/internal/weather"
)

const (
	// ProviderName identifies this weather provider.
	ProviderName = "weatherapi"

	// DefaultBaseURL is the WeatherAPI.com base URL.
	DefaultBaseURL = "https://api.weatherapi.com/v1"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 10 * time.Second

	// maxForecastDays is the WeatherAPI forecast horizon.
	maxForecastDays = 10
)

// HTTPDoer is an interface for executing HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the WeatherAPI client.
type ClientConfig struct {
	// APIKey is the WeatherAPI key (required). Keys arrive with each route
	// request, so clients are constructed per request around a shared
	// resilient HTTP client.
	APIKey string

	// BaseURL is the API base URL (optional, defaults to WeatherAPI.com).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient HTTPDoer

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a WeatherAPI.com client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewClient creates a new WeatherAPI client.
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

// SampleAt returns a weather sample for a location at the target time.
// Targets at or before now use the current-conditions endpoint; future
// targets use the forecast endpoint and pick the closest forecast hour.
func (c *Client) SampleAt(ctx context.Context, lat, lng float64, target time.Time) (*weather.Sample, error) {
	if err := weather.ValidateCoordinates(lat, lng); err != nil {
		return nil, err
	}

	now := time.Now()
	if !target.After(now) {
		return c.current(ctx, lat, lng)
	}
	return c.forecast(ctx, lat, lng, target, now)
}

func (c *Client) current(ctx context.Context, lat, lng float64) (*weather.Sample, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("q", fmt.Sprintf("%f,%f", lat, lng))
	q.Set("aqi", "no")

	var resp currentResponse
	if err := c.get(ctx, "/current.json", q, &resp); err != nil {
		return nil, err
	}

	sample := toSample(resp.Current.conditionFields, weather.ForecastTypeCurrent)
	return sample, nil
}

func (c *Client) forecast(ctx context.Context, lat, lng float64, target, now time.Time) (*weather.Sample, error) {
	// WeatherAPI counts the current day as day 1.
	daysAhead := int(target.Sub(now).Hours()/24) + 1
	if daysAhead < 1 {
		daysAhead = 1
	}
	if daysAhead > maxForecastDays {
		daysAhead = maxForecastDays
	}

	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("q", fmt.Sprintf("%f,%f", lat, lng))
	q.Set("days", strconv.Itoa(daysAhead))
	q.Set("aqi", "no")
	q.Set("alerts", "no")

	var resp forecastResponse
	if err := c.get(ctx, "/forecast.json", q, &resp); err != nil {
		return nil, err
	}

	if len(resp.Forecast.ForecastDay) == 0 {
		return nil, weather.ErrNoDataForLocation
	}

	day := bestForecastDay(resp.Forecast.ForecastDay, target)

	if hour := closestHour(day.Hour, target); hour != nil {
		return toSample(hour.conditionFields, weather.ForecastTypeForecast), nil
	}

	// No hourly data; fall back to the day aggregate.
	return &weather.Sample{
		Temperature: day.Day.AvgTempC,
		Condition:   day.Day.Condition.Text,
		Icon:        day.Day.Condition.Icon,
		Humidity:    int(day.Day.AvgHumidity),
		WindSpeed:   day.Day.MaxWindKph,
		Visibility:  day.Day.AvgVisKm,
		Type:        weather.ForecastTypeForecast,
		FetchedAt:   time.Now(),
	}, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out interface{}) error {
	reqURL := c.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", weather.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.handleErrorResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// handleErrorResponse maps WeatherAPI error bodies to domain errors.
func (c *Client) handleErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var apiErr errorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s", weather.ErrInvalidAPIKey, apiErr.Error.Message)
		case http.StatusBadRequest:
			return fmt.Errorf("%w: %s", weather.ErrNoDataForLocation, apiErr.Error.Message)
		}
		return fmt.Errorf("%w: %s", weather.ErrProviderUnavailable, apiErr.Error.Message)
	}

	return fmt.Errorf("%w: status %d", weather.ErrProviderUnavailable, resp.StatusCode)
}

// bestForecastDay returns the forecast day matching the target date, or the
// last available day when the target is beyond the horizon.
func bestForecastDay(days []forecastDay, target time.Time) *forecastDay {
	targetDate := target.Format("2006-01-02")
	for i := range days {
		if days[i].Date == targetDate {
			return &days[i]
		}
	}
	return &days[len(days)-1]
}

// closestHour picks the hourly entry whose hour-of-day is closest to the target.
func closestHour(hours []hourForecast, target time.Time) *hourForecast {
	if len(hours) == 0 {
		return nil
	}

	targetHour := target.Hour()
	best := &hours[0]
	bestDelta := hourDelta(hours[0].Time, targetHour)

	for i := 1; i < len(hours); i++ {
		if d := hourDelta(hours[i].Time, targetHour); d < bestDelta {
			best = &hours[i]
			bestDelta = d
		}
	}
	return best
}

// hourDelta extracts the hour from a WeatherAPI time string
// ("2026-08-27 13:00") and returns its distance from the target hour.
func hourDelta(timeStr string, targetHour int) int {
	fields := strings.Fields(timeStr)
	if len(fields) != 2 {
		return 24
	}
	hourPart := strings.SplitN(fields[1], ":", 2)[0]
	hour, err := strconv.Atoi(hourPart)
	if err != nil {
		return 24
	}
	delta := hour - targetHour
	if delta < 0 {
		delta = -delta
	}
	return delta
}

func toSample(c conditionFields, ft weather.ForecastType) *weather.Sample {
	return &weather.Sample{
		Temperature: c.TempC,
		Condition:   c.Condition.Text,
		Icon:        c.Condition.Icon,
		Humidity:    c.Humidity,
		WindSpeed:   c.WindKph,
		Visibility:  c.VisKm,
		Type:        ft,
		FetchedAt:   time.Now(),
	}
}

// WeatherAPI response structures.

type condition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

// conditionFields are the fields shared by current conditions and hourly forecasts.
type conditionFields struct {
	TempC     float64   `json:"temp_c"`
	Condition condition `json:"condition"`
	Humidity  int       `json:"humidity"`
	WindKph   float64   `json:"wind_kph"`
	VisKm     float64   `json:"vis_km"`
}

type currentResponse struct {
	Current struct {
		conditionFields
		LastUpdated string `json:"last_updated"`
	} `json:"current"`
}

type hourForecast struct {
	conditionFields
	Time string `json:"time"`
}

type dayAggregate struct {
	AvgTempC    float64   `json:"avgtemp_c"`
	AvgHumidity float64   `json:"avghumidity"`
	MaxWindKph  float64   `json:"maxwind_kph"`
	AvgVisKm    float64   `json:"avgvis_km"`
	Condition   condition `json:"condition"`
}

type forecastDay struct {
	Date string         `json:"date"`
	Day  dayAggregate   `json:"day"`
	Hour []hourForecast `json:"hour"`
}

type forecastResponse struct {
	Forecast struct {
		ForecastDay []forecastDay `json:"forecastday"`
	} `json:"forecast"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
