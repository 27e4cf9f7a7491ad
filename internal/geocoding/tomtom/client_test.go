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

	"github.com/tripcast/tripcast/internal/geocoding"
	"github.com/tripcast/tripcast/internal/geocoding/tomtom"
)

func newTestClient(serverURL string) *tomtom.Client {
	return tomtom.NewClient(tomtom.ClientConfig{
		APIKey:  "test-key",
		BaseURL: serverURL,
		Logger:  zerolog.Nop(),
	})
}

func TestClient_Geocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/search/2/geocode/"))
		assert.True(t, strings.HasSuffix(r.URL.Path, ".json"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"results": [
				{
					"position": {"lat": 52.3764, "lon": 4.9004},
					"address": {"freeformAddress": "Amsterdam Centraal, Amsterdam"}
				}
			]
		}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	loc, err := client.Geocode(context.Background(), "Amsterdam Centraal")
	require.NoError(t, err)
	require.NotNil(t, loc)

	assert.Equal(t, 52.3764, loc.Lat)
	assert.Equal(t, 4.9004, loc.Lng)
	assert.Equal(t, "Amsterdam Centraal, Amsterdam", loc.Address)
}

func TestClient_Geocode_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"results": []}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Geocode(context.Background(), "nowhere at all")
	require.Error(t, err)
	assert.True(t, errors.Is(err, geocoding.ErrLocationNotFound))
	assert.Contains(t, err.Error(), "nowhere at all")
}

func TestClient_Geocode_InvalidAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Geocode(context.Background(), "Amsterdam")
	require.Error(t, err)
	assert.True(t, errors.Is(err, geocoding.ErrInvalidAPIKey))
}

func TestClient_ReverseGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/search/2/reverseGeocode/"))
		assert.Equal(t, "100", r.URL.Query().Get("radius"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"addresses": [
				{
					"address": {
						"streetName": "Damrak",
						"municipality": "Amsterdam",
						"countrySubdivision": "North Holland"
					}
				}
			]
		}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	addr := client.ReverseGeocode(context.Background(), 52.3764, 4.9004)
	assert.Equal(t, "Damrak, Amsterdam, North Holland", addr)
}

func TestClient_ReverseGeocode_LocalNameFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"addresses": [
				{"address": {"localName": "Zaandijk", "countrySubdivision": "North Holland"}}
			]
		}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	addr := client.ReverseGeocode(context.Background(), 52.47, 4.80)
	assert.Equal(t, "Zaandijk, North Holland", addr)
}

func TestClient_ReverseGeocode_DegradesToCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "no addresses",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"addresses": []}`)
			},
		},
		{
			name: "empty address fields",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"addresses": [{"address": {}}]}`)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `not json`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := newTestClient(server.URL)

			addr := client.ReverseGeocode(context.Background(), 52.3764, 4.9004)
			assert.Equal(t, "Location at 52.3764, 4.9004", addr)
		})
	}
}

func TestFallbackAddress(t *testing.T) {
	assert.Equal(t, "Location at 52.3764, 4.9004", geocoding.FallbackAddress(52.37641, 4.90042))
}

func TestClient_Name(t *testing.T) {
	client := newTestClient("http://unused")
	assert.Equal(t, tomtom.ProviderName, client.Name())
}
