// Package routing provides route computation between two resolved locations.
package routing

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for routing operations.
var (
	// ErrProviderUnavailable indicates the routing provider is down or the circuit breaker is open.
	ErrProviderUnavailable = errors.New("routing provider unavailable")
	// ErrNoRouteFound indicates no valid route exists between the given points.
	ErrNoRouteFound = errors.New("no route found between the given points")
	// ErrInvalidAPIKey indicates the API key was rejected by the provider.
	ErrInvalidAPIKey = errors.New("invalid routing API key")
	// ErrInvalidCoordinates indicates the provided coordinates are invalid or out of range.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// TravelMode is a provider-level travel profile.
type TravelMode string

const (
	// TravelModeCar is motorized driving.
	TravelModeCar TravelMode = "car"
	// TravelModePedestrian is walking.
	TravelModePedestrian TravelMode = "pedestrian"
	// TravelModeBicycle is cycling.
	TravelModeBicycle TravelMode = "bicycle"
)

// Coordinate represents a geographic point.
type Coordinate struct {
	Lat float64
	Lng float64
}

// DirectionsRequest is the request for computing a route.
type DirectionsRequest struct {
	Origin      Coordinate
	Destination Coordinate
	Mode        TravelMode
}

// Route is a computed route.
type Route struct {
	// DurationSeconds is the total travel time.
	DurationSeconds int
	// DistanceMeters is the total route length.
	DistanceMeters int
	// Geometry is the route shape as an ordered coordinate sequence.
	// Always contains at least the origin and destination.
	Geometry []Coordinate
	// FetchedAt is when the route was computed.
	FetchedAt time.Time
}

// Provider defines the interface for routing providers.
type Provider interface {
	// GetDirections computes a route between two points.
	GetDirections(ctx context.Context, req DirectionsRequest) (*Route, error)

	// Name returns the provider identifier for logging and metrics.
	Name() string
}

// ValidateCoordinate checks that a coordinate is within valid ranges.
func ValidateCoordinate(c Coordinate) error {
	if c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}
