package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tripcast/tripcast/internal/client"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds  float64
		expected string
	}{
		{5400, "1h 30m"},
		{59, "0h 0m"},
		{60, "0h 1m"},
		{3600, "1h 0m"},
		{0, "0h 0m"},
		{3661, "1h 1m"},
		{86400, "24h 0m"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.expected {
			t.Errorf("FormatDuration(%v) = %q, expected %q", tt.seconds, got, tt.expected)
		}
	}
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		meters   float64
		expected string
	}{
		{12345, "12.3 km"},
		{1000, "1.0 km"},
		{0, "0.0 km"},
		{999, "1.0 km"},
		{950, "0.9 km"},
		{46212, "46.2 km"},
	}

	for _, tt := range tests {
		if got := FormatDistance(tt.meters); got != tt.expected {
			t.Errorf("FormatDistance(%v) = %q, expected %q", tt.meters, got, tt.expected)
		}
	}
}

func TestNormalizeIconURL(t *testing.T) {
	tests := []struct {
		icon     string
		expected string
	}{
		{"//cdn.weatherapi.com/64x64/day/116.png", "https://cdn.weatherapi.com/64x64/day/116.png"},
		{"https://cdn.example.com/icon.png", "https://cdn.example.com/icon.png"},
		{"http://cdn.example.com/icon.png", "http://cdn.example.com/icon.png"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeIconURL(tt.icon); got != tt.expected {
			t.Errorf("NormalizeIconURL(%q) = %q, expected %q", tt.icon, got, tt.expected)
		}
	}
}

func threePointResult(start time.Time) *client.RouteResult {
	return &client.RouteResult{
		TotalDuration: 5400,
		TotalDistance: 46212,
		TransportMode: "driving",
		Points: []client.RoutePoint{
			{
				PointType:     "start",
				Address:       "Amsterdam, Netherlands",
				EstimatedTime: start,
				Weather:       &client.WeatherInfo{Temperature: 18, Condition: "Sunny"},
			},
			{
				PointType:             "waypoint",
				Address:               "Breukelen, Utrecht",
				EstimatedTime:         start.Add(45 * time.Minute),
				DistanceFromSource:    23106,
				DistanceToDestination: 23106,
				Weather:               &client.WeatherInfo{Temperature: 19, Condition: "Cloudy"},
				RoadConditions:        &client.RoadConditions{Condition: "Good", Color: "green", CurrentSpeed: 100, FreeFlowSpeed: 110},
			},
			{
				PointType:          "destination",
				Address:            "Utrecht, Netherlands",
				EstimatedTime:      start.Add(90 * time.Minute),
				DistanceFromSource: 46212,
				Weather:            &client.WeatherInfo{Temperature: 20, Condition: "Cloudy"},
			},
		},
	}
}

func TestRenderTimeline(t *testing.T) {
	start := time.Now().Add(time.Hour).Truncate(time.Minute)
	out := RenderTimeline(threePointResult(start), time.Now())

	// Entries appear in route order with their labels.
	startIdx := strings.Index(out, "Start")
	wpIdx := strings.Index(out, "Waypoint 1")
	destIdx := strings.Index(out, "Destination")
	assert.True(t, startIdx >= 0, "missing start entry")
	assert.True(t, wpIdx > startIdx, "waypoint should follow start")
	assert.True(t, destIdx > wpIdx, "destination should follow waypoint")

	assert.Contains(t, out, "departure time")
	assert.Contains(t, out, "estimated arrival")
	assert.Contains(t, out, "1h 30m")
	assert.Contains(t, out, "46.2 km")
	assert.Contains(t, out, "Amsterdam, Netherlands")
	assert.Contains(t, out, "Good")

	// Connectors sit between adjacent entries only: two for three points.
	assert.Equal(t, 2, strings.Count(out, "│"))
}

func TestRenderTimeline_ClampsDepartureToNow(t *testing.T) {
	// A start time two hours in the past shows as now, with downstream
	// estimates shifted by the same amount.
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	start := now.Add(-2 * time.Hour)

	out := RenderTimeline(threePointResult(start), now)

	assert.Contains(t, out, FormatClock(now))
	assert.Contains(t, out, FormatClock(now.Add(45*time.Minute)))
	assert.Contains(t, out, FormatClock(now.Add(90*time.Minute)))
	assert.NotContains(t, out, FormatClock(start))
}

func TestRenderTimeline_FutureDepartureUnchanged(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	start := now.Add(3 * time.Hour)

	out := RenderTimeline(threePointResult(start), now)

	assert.Contains(t, out, FormatClock(start))
	assert.Contains(t, out, FormatClock(start.Add(90*time.Minute)))
}

func TestRenderTimeline_Empty(t *testing.T) {
	assert.Equal(t, "", RenderTimeline(nil, time.Now()))
	assert.Equal(t, "", RenderTimeline(&client.RouteResult{}, time.Now()))
}
