// Package handler provides HTTP handlers for the Tripcast API.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tripcast/tripcast/internal/api/models"
	"github.com/tripcast/tripcast/internal/api/response"
	"github.com/tripcast/tripcast/internal/geocoding"
	"github.com/tripcast/tripcast/internal/provider/resilience"
	"github.com/tripcast/tripcast/internal/routing"
	"github.com/tripcast/tripcast/internal/timeline"
	"github.com/tripcast/tripcast/internal/weather"
)

// TimelineService computes route timelines.
type TimelineService interface {
	Compute(ctx context.Context, req timeline.Request) (*timeline.Result, error)
}

// RouteHandler handles route timeline endpoints.
type RouteHandler struct {
	timeline TimelineService
	logger   zerolog.Logger
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(svc TimelineService, logger zerolog.Logger) *RouteHandler {
	return &RouteHandler{timeline: svc, logger: logger}
}

// CalculateRoute handles POST /api/calculate-route.
func (h *RouteHandler) CalculateRoute(w http.ResponseWriter, r *http.Request) {
	var input models.CalculateRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body")
		return
	}

	req, detail := validateRequest(&input)
	if detail != "" {
		response.BadRequest(w, r, detail)
		return
	}

	result, err := h.timeline.Compute(r.Context(), *req)
	if err != nil {
		h.writeComputeError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, models.FromResult(result))
}

// validateRequest checks the wire request and converts it to a domain
// request. Returns a non-empty detail string on validation failure.
func validateRequest(input *models.CalculateRouteRequest) (*timeline.Request, string) {
	var missing []string
	if input.Source == "" {
		missing = append(missing, "source")
	}
	if input.Destination == "" {
		missing = append(missing, "destination")
	}
	if input.TransportMode == "" {
		missing = append(missing, "transport_mode")
	}
	if input.StartTime == "" {
		missing = append(missing, "start_time")
	}
	if input.TomTomAPIKey == "" {
		missing = append(missing, "tomtom_api_key")
	}
	if input.WeatherAPIKey == "" {
		missing = append(missing, "weather_api_key")
	}
	if len(missing) > 0 {
		return nil, "missing required fields: " + strings.Join(missing, ", ")
	}

	mode, err := timeline.ParseTransportMode(input.TransportMode)
	if err != nil {
		return nil, "transport_mode must be one of driving, walking, cycling, transit"
	}

	startTime, ok := models.ParseWireTime(input.StartTime)
	if !ok {
		return nil, "start_time must be an ISO date-time, e.g. 2026-08-27T09:00:00"
	}

	return &timeline.Request{
		Source:        input.Source,
		Destination:   input.Destination,
		Mode:          mode,
		StartTime:     startTime,
		RoutingAPIKey: input.TomTomAPIKey,
		WeatherAPIKey: input.WeatherAPIKey,
	}, ""
}

// writeComputeError maps timeline errors onto the wire error contract.
// Provider detail strings are passed through so the client can show them.
func (h *RouteHandler) writeComputeError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Warn().Err(err).Msg("route computation failed")

	switch {
	case errors.Is(err, geocoding.ErrLocationNotFound):
		response.NotFound(w, r, err.Error())
	case errors.Is(err, resilience.ErrCircuitOpen),
		errors.Is(err, geocoding.ErrProviderUnavailable),
		errors.Is(err, routing.ErrProviderUnavailable),
		errors.Is(err, weather.ErrProviderUnavailable):
		response.ServiceUnavailable(w, r, err.Error())
	default:
		response.BadRequest(w, r, err.Error())
	}
}
