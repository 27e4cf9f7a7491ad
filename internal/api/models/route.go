// Package models defines the wire-level request and response shapes for the
// Tripcast API. Wire fields are snake_case; the domain packages use their own
// types, and conversion happens here at the boundary.
package models

import (
	"time"

	"github.com/tripcast/tripcast/internal/timeline"
)

// TimeLayout is the wire format for timestamps: ISO-8601-like local
// date-time without a timezone offset. The backend performs no timezone
// conversion; estimated times are emitted in the same frame as the
// submitted start_time.
const TimeLayout = "2006-01-02T15:04:05"

// acceptedTimeLayouts are the start_time formats the API accepts.
var acceptedTimeLayouts = []string{
	TimeLayout,
	"2006-01-02T15:04",
	time.RFC3339,
}

// ParseWireTime parses a wire start_time string.
func ParseWireTime(s string) (time.Time, bool) {
	for _, layout := range acceptedTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CalculateRouteRequest is the request body for POST /api/calculate-route.
type CalculateRouteRequest struct {
	Source        string `json:"source"`
	Destination   string `json:"destination"`
	TransportMode string `json:"transport_mode"`
	StartTime     string `json:"start_time"`
	TomTomAPIKey  string `json:"tomtom_api_key"`
	WeatherAPIKey string `json:"weather_api_key"`
}

// CalculateRouteResponse is the success body for POST /api/calculate-route.
type CalculateRouteResponse struct {
	TotalDuration int          `json:"total_duration"`
	TotalDistance int          `json:"total_distance"`
	TransportMode string       `json:"transport_mode"`
	Points        []RoutePoint `json:"points"`
}

// RoutePoint is one timeline entry on the wire.
type RoutePoint struct {
	PointType             string          `json:"point_type"`
	Address               string          `json:"address"`
	EstimatedTime         string          `json:"estimated_time"`
	Lat                   float64         `json:"lat"`
	Lng                   float64         `json:"lng"`
	DistanceFromSource    int             `json:"distance_from_source"`
	DistanceToDestination int             `json:"distance_to_destination"`
	Weather               WeatherSample   `json:"weather"`
	Road                  *RoadConditions `json:"road_conditions,omitempty"`
}

// WeatherSample is the weather reading for a point on the wire.
type WeatherSample struct {
	Temperature  float64 `json:"temperature"`
	Condition    string  `json:"condition"`
	Icon         string  `json:"icon"`
	Humidity     int     `json:"humidity"`
	WindSpeed    float64 `json:"wind_speed"`
	Visibility   float64 `json:"visibility"`
	ForecastType string  `json:"forecast_type"`
}

// RoadConditions is the traffic flow reading for a waypoint on the wire.
type RoadConditions struct {
	Condition     string  `json:"condition"`
	CurrentSpeed  float64 `json:"current_speed"`
	FreeFlowSpeed float64 `json:"free_flow_speed"`
	Confidence    float64 `json:"confidence"`
	Color         string  `json:"color"`
}

// FromResult converts a computed timeline to its wire representation.
func FromResult(result *timeline.Result) CalculateRouteResponse {
	points := make([]RoutePoint, 0, len(result.Points))
	for i := range result.Points {
		points = append(points, fromPoint(&result.Points[i]))
	}

	return CalculateRouteResponse{
		TotalDuration: result.TotalDurationSeconds,
		TotalDistance: result.TotalDistanceMeters,
		TransportMode: string(result.Mode),
		Points:        points,
	}
}

func fromPoint(p *timeline.Point) RoutePoint {
	wire := RoutePoint{
		PointType:             string(p.Type),
		Address:               p.Address,
		EstimatedTime:         p.EstimatedTime.Format(TimeLayout),
		Lat:                   p.Lat,
		Lng:                   p.Lng,
		DistanceFromSource:    p.DistanceFromSource,
		DistanceToDestination: p.DistanceToDestination,
	}

	if p.Weather != nil {
		wire.Weather = WeatherSample{
			Temperature:  p.Weather.Temperature,
			Condition:    p.Weather.Condition,
			Icon:         p.Weather.Icon,
			Humidity:     p.Weather.Humidity,
			WindSpeed:    p.Weather.WindSpeed,
			Visibility:   p.Weather.Visibility,
			ForecastType: string(p.Weather.Type),
		}
	}

	if p.Road != nil {
		wire.Road = &RoadConditions{
			Condition:     string(p.Road.Condition),
			CurrentSpeed:  p.Road.CurrentSpeed,
			FreeFlowSpeed: p.Road.FreeFlowSpeed,
			Confidence:    p.Road.Confidence,
			Color:         p.Road.Condition.Color(),
		}
	}

	return wire
}
