// Package main provides the entrypoint for the Tripcast API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tripcast/tripcast/internal/api"
	"github.com/tripcast/tripcast/internal/api/middleware"
	"github.com/tripcast/tripcast/internal/geocoding"
	geotomtom "github.com/tripcast/tripcast/internal/geocoding/tomtom"
	"github.com/tripcast/tripcast/internal/provider/resilience"
	"github.com/tripcast/tripcast/internal/routing"
	routetomtom "github.com/tripcast/tripcast/internal/routing/tomtom"
	"github.com/tripcast/tripcast/internal/telemetry"
	"github.com/tripcast/tripcast/internal/timeline"
	"github.com/tripcast/tripcast/internal/traffic"
	traffictomtom "github.com/tripcast/tripcast/internal/traffic/tomtom"
	"github.com/tripcast/tripcast/internal/weather"
	"github.com/tripcast/tripcast/internal/weather/weatherapi"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "tripcast-api"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting Tripcast API")

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8001"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// One long-lived resilient HTTP client per upstream API keeps circuit
	// state across requests even though API keys arrive per request.
	registry := resilience.NewRegistry()
	searchClient := newProviderClient(geotomtom.ProviderName, registry)
	routingClient := newProviderClient(routetomtom.ProviderName, registry)
	trafficClient := newProviderClient(traffictomtom.ProviderName, registry)
	weatherClient := newProviderClient(weatherapi.ProviderName, registry)

	timelineService := timeline.NewService(timeline.ServiceConfig{
		NewGeocoder: func(apiKey string) geocoding.Provider {
			return geotomtom.NewClient(geotomtom.ClientConfig{
				APIKey:     apiKey,
				HTTPClient: searchClient,
				Logger:     log,
			})
		},
		NewRouter: func(apiKey string) routing.Provider {
			return routetomtom.NewClient(routetomtom.ClientConfig{
				APIKey:     apiKey,
				HTTPClient: routingClient,
				Logger:     log,
			})
		},
		NewTraffic: func(apiKey string) traffic.Provider {
			return traffictomtom.NewClient(traffictomtom.ClientConfig{
				APIKey:     apiKey,
				HTTPClient: trafficClient,
				Logger:     log,
			})
		},
		NewWeather: func(apiKey string) weather.Provider {
			return weatherapi.NewClient(weatherapi.ClientConfig{
				APIKey:     apiKey,
				HTTPClient: weatherClient,
				Logger:     log,
			})
		},
		Logger: log,
	})
	log.Info().Msg("timeline service initialized")

	router := api.NewRouter(api.RouterConfig{
		Version:         Version,
		Logger:          log,
		Metrics:         metrics,
		TimelineService: timelineService,
		Registry:        registry,
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

func newProviderClient(name string, registry *resilience.Registry) *resilience.Client {
	cfg := resilience.DefaultClientConfig(name)
	cfg.Registry = registry
	return resilience.NewClient(cfg)
}
