// Package geocoding resolves free-form addresses to coordinates and back.
package geocoding

import (
	"context"
	"errors"
	"fmt"
)

// Geocoding errors.
var (
	// ErrLocationNotFound indicates the query matched no known location.
	ErrLocationNotFound = errors.New("location not found")
	// ErrProviderUnavailable indicates the geocoding provider is down or the circuit breaker is open.
	ErrProviderUnavailable = errors.New("geocoding provider unavailable")
	// ErrInvalidAPIKey indicates the API key was rejected by the provider.
	ErrInvalidAPIKey = errors.New("invalid routing API key")
)

// Location is a resolved place.
type Location struct {
	Lat     float64
	Lng     float64
	Address string
}

// Provider defines the interface for geocoding providers.
type Provider interface {
	// Geocode resolves a free-form query to the best-matching location.
	// Returns ErrLocationNotFound when nothing matches.
	Geocode(ctx context.Context, query string) (*Location, error)

	// ReverseGeocode returns a human-readable address for coordinates.
	// Implementations degrade to a coordinate string rather than failing;
	// a missing address must not abort route computation.
	ReverseGeocode(ctx context.Context, lat, lng float64) string

	// Name returns the provider identifier for logging and metrics.
	Name() string
}

// FallbackAddress is the address used when reverse geocoding yields nothing.
func FallbackAddress(lat, lng float64) string {
	return fmt.Sprintf("Location at %.4f, %.4f", lat, lng)
}
