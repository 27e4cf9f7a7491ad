package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/tripcast/tripcast/internal/api/models"
)

// RateLimitConfig holds configuration for rate limiting.
type RateLimitConfig struct {
	// Requests per window.
	RequestLimit int
	// Window duration.
	WindowLength time.Duration
}

// Default rate limit configurations.
var (
	// ExpensiveRateLimit applies to route computation, which fans out to
	// several upstream APIs per request (30 req/min).
	ExpensiveRateLimit = RateLimitConfig{
		RequestLimit: 30,
		WindowLength: time.Minute,
	}

	// StandardRateLimit applies to cheap endpoints (100 req/min).
	StandardRateLimit = RateLimitConfig{
		RequestLimit: 100,
		WindowLength: time.Minute,
	}
)

// RateLimitByIP creates a rate limiter middleware keyed by client IP.
// Uses the X-Forwarded-For header when present (extracted by chi's RealIP).
func RateLimitByIP(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return httprate.Limit(
		cfg.RequestLimit,
		cfg.WindowLength,
		httprate.WithKeyFuncs(httprate.KeyByRealIP),
		httprate.WithLimitHandler(rateLimitExceededHandler),
	)
}

func rateLimitExceededHandler(w http.ResponseWriter, r *http.Request) {
	models.WriteError(w, http.StatusTooManyRequests, GetRequestID(r.Context()),
		"Rate limit exceeded. Please try again later.")
}
