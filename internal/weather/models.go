// Package weather provides point-in-time weather samples for route points.
package weather

import (
	"context"
	"errors"
	"time"
)

// Weather errors.
var (
	ErrProviderUnavailable = errors.New("weather provider unavailable")
	ErrNoDataForLocation   = errors.New("no weather data for location")
	ErrInvalidCoordinates  = errors.New("invalid coordinates")
	ErrInvalidAPIKey       = errors.New("invalid weather API key")
)

// ForecastType indicates whether a sample is an observed reading or a prediction.
type ForecastType string

const (
	// ForecastTypeCurrent is an observed current-conditions reading.
	ForecastTypeCurrent ForecastType = "current"
	// ForecastTypeForecast is a predicted future reading.
	ForecastTypeForecast ForecastType = "forecast"
)

// Sample is a weather reading at a specific point and time.
type Sample struct {
	// Temperature in Celsius.
	Temperature float64

	// Condition is the provider's human-readable condition text, e.g. "Partly cloudy".
	Condition string

	// Icon is the provider's condition icon URL. WeatherAPI returns these
	// protocol-relative ("//cdn.weatherapi.com/..."); normalization is a
	// display concern and is left to the renderer.
	Icon string

	// Humidity percentage (0-100).
	Humidity int

	// WindSpeed in km/h.
	WindSpeed float64

	// Visibility in km.
	Visibility float64

	// Type says whether this is a current reading or a forecast.
	Type ForecastType

	// FetchedAt is when the sample was retrieved.
	FetchedAt time.Time
}

// Provider defines the interface for weather data providers.
type Provider interface {
	// SampleAt returns weather for a location at the given target time: an
	// observed reading when the target is now or in the past, a forecast
	// otherwise.
	SampleAt(ctx context.Context, lat, lng float64, target time.Time) (*Sample, error)

	// Name returns the provider identifier for logging and metrics.
	Name() string
}

// ValidateCoordinates checks that coordinates are within valid ranges.
func ValidateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}
