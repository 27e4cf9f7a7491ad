package tomtom_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripcast/tripcast/internal/routing"
	"github.com/tripcast/tripcast/internal/routing/tomtom"
)

func newTestClient(serverURL string) *tomtom.Client {
	return tomtom.NewClient(tomtom.ClientConfig{
		APIKey:  "test-key",
		BaseURL: serverURL,
		Logger:  zerolog.Nop(),
	})
}

func testRequest() routing.DirectionsRequest {
	return routing.DirectionsRequest{
		Origin:      routing.Coordinate{Lat: 52.3764, Lng: 4.9004},
		Destination: routing.Coordinate{Lat: 52.0907, Lng: 5.1214},
		Mode:        routing.TravelModeCar,
	}
}

func TestClient_GetDirections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/routing/1/calculateRoute/"))
		assert.True(t, strings.HasSuffix(r.URL.Path, "/json"))
		assert.Contains(t, r.URL.Path, ":")

		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("key"))
		assert.Equal(t, "car", q.Get("travelMode"))
		assert.Equal(t, "coded", q.Get("instructionsType"))
		assert.Equal(t, "false", q.Get("computeBestOrder"))
		assert.Equal(t, "polyline", q.Get("routeRepresentation"))
		assert.Equal(t, "all", q.Get("computeTravelTimeFor"))
		assert.Equal(t, "traffic", q.Get("sectionType"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"routes": [
				{
					"summary": {"lengthInMeters": 46212, "travelTimeInSeconds": 2535},
					"legs": [
						{
							"points": [
								{"latitude": 52.3764, "longitude": 4.9004},
								{"latitude": 52.2500, "longitude": 5.0000},
								{"latitude": 52.0907, "longitude": 5.1214}
							]
						}
					]
				}
			]
		}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	route, err := client.GetDirections(context.Background(), testRequest())
	require.NoError(t, err)
	require.NotNil(t, route)

	assert.Equal(t, 2535, route.DurationSeconds)
	assert.Equal(t, 46212, route.DistanceMeters)
	require.Len(t, route.Geometry, 3)
	assert.Equal(t, 52.25, route.Geometry[1].Lat)
	assert.Equal(t, 5.0, route.Geometry[1].Lng)
}

func TestClient_GetDirections_GeometryFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"routes": [
				{"summary": {"lengthInMeters": 1000, "travelTimeInSeconds": 600}, "legs": []}
			]
		}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	req := testRequest()

	route, err := client.GetDirections(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, route.Geometry, 2)
	assert.Equal(t, req.Origin, route.Geometry[0])
	assert.Equal(t, req.Destination, route.Geometry[1])
}

func TestClient_GetDirections_NoRouteFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"detailedError": {"code": "NO_ROUTE_FOUND", "message": "No route found between the given points"}}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.GetDirections(context.Background(), testRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, routing.ErrNoRouteFound))
	assert.Contains(t, err.Error(), "No route found")
}

func TestClient_GetDirections_EmptyRoutes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"routes": []}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.GetDirections(context.Background(), testRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, routing.ErrNoRouteFound))
}

func TestClient_GetDirections_InvalidAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.GetDirections(context.Background(), testRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, routing.ErrInvalidAPIKey))
}

func TestClient_GetDirections_InvalidCoordinates(t *testing.T) {
	client := newTestClient("http://unused")

	req := testRequest()
	req.Origin.Lat = 91.0

	_, err := client.GetDirections(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, routing.ErrInvalidCoordinates))
}

func TestParseTravelModes(t *testing.T) {
	tests := []struct {
		mode     routing.TravelMode
		expected string
	}{
		{routing.TravelModeCar, "car"},
		{routing.TravelModePedestrian, "pedestrian"},
		{routing.TravelModeBicycle, "bicycle"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, string(tt.mode))
	}
}
