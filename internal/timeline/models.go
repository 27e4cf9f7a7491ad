// Package timeline builds a weather-annotated route timeline: geocode the
// endpoints, compute the route, place checkpoints along it, and attach a
// weather sample (and road conditions) to each point.
package timeline

import (
	"errors"
	"time"

	"github.com/tripcast/tripcast/internal/routing"
	"github.com/tripcast/tripcast/internal/traffic"
	"github.com/tripcast/tripcast/internal/weather"
)

// Timeline errors.
var (
	// ErrInvalidTransportMode indicates an unrecognized transport mode.
	ErrInvalidTransportMode = errors.New("invalid transport mode")
)

// TransportMode is the user-facing transport mode.
type TransportMode string

const (
	ModeDriving TransportMode = "driving"
	ModeWalking TransportMode = "walking"
	ModeCycling TransportMode = "cycling"
	ModeTransit TransportMode = "transit"
)

// ParseTransportMode validates and converts a wire-level mode string.
func ParseTransportMode(s string) (TransportMode, error) {
	switch TransportMode(s) {
	case ModeDriving, ModeWalking, ModeCycling, ModeTransit:
		return TransportMode(s), nil
	default:
		return "", ErrInvalidTransportMode
	}
}

// TravelMode maps a transport mode to the routing provider's travel profile.
// TomTom has no transit profile; transit falls back to car, matching the
// estimate shown to the user.
func (m TransportMode) TravelMode() routing.TravelMode {
	switch m {
	case ModeWalking:
		return routing.TravelModePedestrian
	case ModeCycling:
		return routing.TravelModeBicycle
	default:
		return routing.TravelModeCar
	}
}

// PointType classifies a timeline point.
type PointType string

const (
	PointStart       PointType = "start"
	PointWaypoint    PointType = "waypoint"
	PointDestination PointType = "destination"
)

// Request is a route timeline request.
type Request struct {
	Source        string
	Destination   string
	Mode          TransportMode
	StartTime     time.Time
	RoutingAPIKey string
	WeatherAPIKey string
}

// Point is one entry on the timeline.
type Point struct {
	Type          PointType
	Address       string
	EstimatedTime time.Time
	Lat           float64
	Lng           float64

	// DistanceFromSource and DistanceToDestination are in meters.
	DistanceFromSource    int
	DistanceToDestination int

	// Weather at this point at its estimated time.
	Weather *weather.Sample

	// Road is the traffic flow at this point. Only populated for
	// intermediate waypoints; nil otherwise.
	Road *traffic.Flow
}

// Result is a computed route timeline.
type Result struct {
	Mode                 TransportMode
	TotalDurationSeconds int
	TotalDistanceMeters  int
	Points               []Point
}
