package resilience

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"
)

// Predefined errors for resilient operations.
var (
	// ErrCircuitOpen is returned when the circuit breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker is open")
)

// ClientConfig holds configuration for the resilient HTTP client.
type ClientConfig struct {
	// Name identifies this client for circuit breaker naming.
	Name string

	// Timeout is the per-attempt HTTP timeout.
	// Default: 10 seconds
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts.
	// Default: 3
	MaxRetries uint64

	// InitialInterval is the initial retry backoff interval.
	// Default: 100ms
	InitialInterval time.Duration

	// MaxInterval is the maximum retry backoff interval.
	// Default: 5 seconds
	MaxInterval time.Duration

	// Breaker is the circuit breaker configuration.
	// If nil, uses DefaultBreakerConfig.
	Breaker *BreakerConfig

	// Registry receives success/failure records for health reporting (optional).
	Registry *Registry
}

// DefaultClientConfig returns sensible defaults for the resilient client.
func DefaultClientConfig(name string) ClientConfig {
	bc := DefaultBreakerConfig(name)
	return ClientConfig{
		Name:            name,
		Timeout:         10 * time.Second,
		MaxRetries:      3,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		Breaker:         &bc,
	}
}

// Client is a resilient HTTP client with circuit breaker and retry logic.
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*http.Response]
	config     ClientConfig
}

// NewClient creates a new resilient HTTP client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = 100 * time.Millisecond
	}
	if cfg.MaxInterval == 0 {
		cfg.MaxInterval = 5 * time.Second
	}

	bc := cfg.Breaker
	if bc == nil {
		def := DefaultBreakerConfig(cfg.Name)
		bc = &def
	}

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    NewBreaker[*http.Response](*bc), //nolint:bodyclose // type param, not a response
		config:     cfg,
	}
	if cfg.Registry != nil {
		cfg.Registry.Register(cfg.Name, c)
	}
	return c
}

// Do executes an HTTP request with circuit breaker protection and retries.
// Transient failures (network errors, 5xx) are retried with exponential
// backoff; the call fails fast with ErrCircuitOpen while the breaker is open.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.config.InitialInterval
	bo.MaxInterval = c.config.MaxInterval
	bo.MaxElapsedTime = 0 // retries bounded by WithMaxRetries below

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, c.config.MaxRetries), ctx)

	var lastResp *http.Response

	operation := func() error {
		resp, err := c.breaker.Execute(func() (*http.Response, error) { //nolint:bodyclose // caller closes
			r, err := c.httpClient.Do(req.Clone(ctx))
			if err != nil {
				return nil, err
			}
			// 5xx responses count as failures so the breaker can trip.
			if r.StatusCode >= 500 {
				return r, &ServerError{StatusCode: r.StatusCode}
			}
			return r, nil
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(ErrCircuitOpen)
			}
			if resp != nil {
				lastResp = resp
			}
			return err
		}

		lastResp = resp
		return nil
	}

	if err := backoff.Retry(operation, policy); err != nil {
		if c.config.Registry != nil {
			c.config.Registry.RecordFailure(c.config.Name, err)
		}
		// A 5xx that exhausted retries still comes back as a response so
		// callers can surface the provider's status code.
		if lastResp != nil {
			return lastResp, nil
		}
		return nil, err
	}

	if c.config.Registry != nil {
		c.config.Registry.RecordSuccess(c.config.Name)
	}
	return lastResp, nil
}

// State returns the current circuit breaker state.
func (c *Client) State() gobreaker.State {
	return c.breaker.State()
}

// Counts returns the current circuit breaker counts.
func (c *Client) Counts() gobreaker.Counts {
	return c.breaker.Counts()
}

// Name returns the client's configured name.
func (c *Client) Name() string {
	return c.config.Name
}

// ServerError represents an HTTP 5xx server error.
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return "server error: " + http.StatusText(e.StatusCode)
}

// IsContextError reports whether err is a context cancellation or deadline.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
