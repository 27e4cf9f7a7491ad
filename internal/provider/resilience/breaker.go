// Package resilience wraps outbound provider calls with circuit breakers,
// timeouts, and retry logic. TomTom and WeatherAPI clients are built per
// request (API keys arrive with each route request), so the resilient HTTP
// clients here are the long-lived piece that carries circuit state across
// requests.
package resilience

import (
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerConfig holds configuration for a provider circuit breaker.
type BreakerConfig struct {
	// Name identifies the breaker for logging and health reporting.
	Name string

	// MaxRequests is the number of probe requests allowed in half-open state.
	// Default: 1
	MaxRequests uint32

	// Interval is the cyclic period for clearing counts while closed.
	// Default: 0 (disabled)
	Interval time.Duration

	// Timeout is how long the breaker stays open before probing.
	// Default: 60 seconds
	Timeout time.Duration

	// ReadyToTrip decides when the breaker opens.
	// If nil, uses DefaultReadyToTrip.
	ReadyToTrip func(counts gobreaker.Counts) bool

	// OnStateChange is called on breaker state transitions.
	OnStateChange func(name string, from, to gobreaker.State)
}

// DefaultBreakerConfig returns sensible defaults for a provider breaker.
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:        name,
		MaxRequests: 1,
		Timeout:     60 * time.Second,
		ReadyToTrip: DefaultReadyToTrip,
	}
}

// DefaultReadyToTrip opens the breaker after at least 5 requests with a
// failure rate of 50% or higher.
func DefaultReadyToTrip(counts gobreaker.Counts) bool {
	failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
	return counts.Requests >= 5 && failureRatio >= 0.5
}

// NewBreaker creates a circuit breaker from the given configuration.
func NewBreaker[T any](cfg BreakerConfig) *gobreaker.CircuitBreaker[T] {
	readyToTrip := cfg.ReadyToTrip
	if readyToTrip == nil {
		readyToTrip = DefaultReadyToTrip
	}
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: readyToTrip,
	}
	if cfg.OnStateChange != nil {
		settings.OnStateChange = cfg.OnStateChange
	}
	return gobreaker.NewCircuitBreaker[T](settings)
}
