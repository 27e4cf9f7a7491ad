package timeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tripcast/tripcast/internal/geocoding"
	"github.com/tripcast/tripcast/internal/routing"
	"github.com/tripcast/tripcast/internal/traffic"
	"github.com/tripcast/tripcast/internal/weather"
)

const (
	// minDurationForWaypoints is the route duration below which only the
	// start and destination appear on the timeline.
	minDurationForWaypoints = 30 * time.Minute

	// maxWaypoints caps the intermediate checkpoints on long routes.
	maxWaypoints = 8

	// minWaypoints is the floor once a route qualifies for checkpoints.
	minWaypoints = 2
)

// ServiceConfig holds configuration for the timeline service.
//
// API keys arrive with each request, so the service takes provider factories
// rather than providers: each factory builds a client bound to the caller's
// key, typically around a shared resilient HTTP client so circuit state
// survives across requests.
type ServiceConfig struct {
	NewGeocoder func(apiKey string) geocoding.Provider
	NewRouter   func(apiKey string) routing.Provider
	NewTraffic  func(apiKey string) traffic.Provider
	NewWeather  func(apiKey string) weather.Provider

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service computes route timelines.
type Service struct {
	newGeocoder func(apiKey string) geocoding.Provider
	newRouter   func(apiKey string) routing.Provider
	newTraffic  func(apiKey string) traffic.Provider
	newWeather  func(apiKey string) weather.Provider
	logger      zerolog.Logger
}

// NewService creates a new timeline service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		newGeocoder: cfg.NewGeocoder,
		newRouter:   cfg.NewRouter,
		newTraffic:  cfg.NewTraffic,
		newWeather:  cfg.NewWeather,
		logger:      cfg.Logger,
	}
}

// Compute builds the route timeline for a request.
func (s *Service) Compute(ctx context.Context, req Request) (*Result, error) {
	geocoder := s.newGeocoder(req.RoutingAPIKey)
	router := s.newRouter(req.RoutingAPIKey)

	source, err := geocoder.Geocode(ctx, req.Source)
	if err != nil {
		return nil, fmt.Errorf("resolving source: %w", err)
	}

	dest, err := geocoder.Geocode(ctx, req.Destination)
	if err != nil {
		return nil, fmt.Errorf("resolving destination: %w", err)
	}

	route, err := router.GetDirections(ctx, routing.DirectionsRequest{
		Origin:      routing.Coordinate{Lat: source.Lat, Lng: source.Lng},
		Destination: routing.Coordinate{Lat: dest.Lat, Lng: dest.Lng},
		Mode:        req.Mode.TravelMode(),
	})
	if err != nil {
		return nil, fmt.Errorf("computing route: %w", err)
	}

	points := s.buildPoints(ctx, req, source, dest, route)

	if err := s.attachWeather(ctx, req.WeatherAPIKey, points); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("mode", string(req.Mode)).
		Int("duration_s", route.DurationSeconds).
		Int("distance_m", route.DistanceMeters).
		Int("points", len(points)).
		Msg("route timeline computed")

	return &Result{
		Mode:                 req.Mode,
		TotalDurationSeconds: route.DurationSeconds,
		TotalDistanceMeters:  route.DistanceMeters,
		Points:               points,
	}, nil
}

// buildPoints places the start, intermediate waypoints, and destination on
// the timeline. Waypoints appear only on routes longer than 30 minutes that
// carry real geometry, spaced evenly by progress with estimated times
// interpolated from the total duration.
func (s *Service) buildPoints(ctx context.Context, req Request, source, dest *geocoding.Location, route *routing.Route) []Point {
	duration := time.Duration(route.DurationSeconds) * time.Second

	points := make([]Point, 0, maxWaypoints+2)
	points = append(points, Point{
		Type:                  PointStart,
		Address:               source.Address,
		EstimatedTime:         req.StartTime,
		Lat:                   source.Lat,
		Lng:                   source.Lng,
		DistanceToDestination: route.DistanceMeters,
	})

	if len(route.Geometry) > 2 && duration > minDurationForWaypoints {
		points = append(points, s.buildWaypoints(ctx, req, route)...)
	}

	points = append(points, Point{
		Type:               PointDestination,
		Address:            dest.Address,
		EstimatedTime:      req.StartTime.Add(duration),
		Lat:                dest.Lat,
		Lng:                dest.Lng,
		DistanceFromSource: route.DistanceMeters,
	})

	return points
}

func (s *Service) buildWaypoints(ctx context.Context, req Request, route *routing.Route) []Point {
	geocoder := s.newGeocoder(req.RoutingAPIKey)
	flow := s.newTraffic(req.RoutingAPIKey)

	count := waypointCount(route.DurationSeconds)
	waypoints := make([]Point, 0, count)

	for i := 1; i <= count; i++ {
		progress := float64(i) / float64(count+1)
		idx := int(progress * float64(len(route.Geometry)-1))
		if idx >= len(route.Geometry) {
			continue
		}
		coord := route.Geometry[idx]

		offset := time.Duration(float64(route.DurationSeconds)*progress) * time.Second
		fromSource := int(float64(route.DistanceMeters) * progress)

		waypoints = append(waypoints, Point{
			Type:                  PointWaypoint,
			Address:               geocoder.ReverseGeocode(ctx, coord.Lat, coord.Lng),
			EstimatedTime:         req.StartTime.Add(offset),
			Lat:                   coord.Lat,
			Lng:                   coord.Lng,
			DistanceFromSource:    fromSource,
			DistanceToDestination: route.DistanceMeters - fromSource,
			Road:                  flow.FlowAt(ctx, coord.Lat, coord.Lng),
		})
	}

	return waypoints
}

// waypointCount yields roughly one checkpoint per hour, between 2 and 8.
func waypointCount(durationSeconds int) int {
	count := durationSeconds / 3600
	if count < minWaypoints {
		count = minWaypoints
	}
	if count > maxWaypoints {
		count = maxWaypoints
	}
	return count
}

// attachWeather fetches a weather sample for every point at its estimated
// time. Weather is part of the product, not an annotation, so a failed
// lookup fails the request.
func (s *Service) attachWeather(ctx context.Context, apiKey string, points []Point) error {
	provider := s.newWeather(apiKey)

	for i := range points {
		sample, err := provider.SampleAt(ctx, points[i].Lat, points[i].Lng, points[i].EstimatedTime)
		if err != nil {
			return fmt.Errorf("fetching weather for %s point: %w", points[i].Type, err)
		}
		points[i].Weather = sample
	}
	return nil
}
