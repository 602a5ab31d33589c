package http

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/creativestories/backend/internal/common/constants"
	"github.com/creativestories/backend/internal/observability/metrics"
)

type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
	cleanup  *time.Ticker
}

func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		cleanup:  time.NewTicker(constants.RateLimitCleanupInterval),
	}

	go rl.cleanupLimiters()

	return rl
}

func (rl *RateLimiter) cleanupLimiters() {
	for range rl.cleanup.C {
		rl.mu.Lock()
		for key, limiter := range rl.limiters {
			if limiter.Allow() {
				delete(rl.limiters, key)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.RLock()
	limiter, exists := rl.limiters[key]
	rl.mu.RUnlock()

	if !exists {
		rl.mu.Lock()
		limiter, exists = rl.limiters[key]
		if !exists {
			limiter = rate.NewLimiter(rl.rate, rl.burst)
			rl.limiters[key] = limiter
		}
		rl.mu.Unlock()
	}

	return limiter
}

func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

// StrictRateLimiter applies tighter budgets to the public write endpoints
// than to reads.
type StrictRateLimiter struct {
	subscribeLimiter *RateLimiter
	submitLimiter    *RateLimiter
	generalLimiter   *RateLimiter
}

func NewStrictRateLimiter() *StrictRateLimiter {
	return &StrictRateLimiter{
		subscribeLimiter: NewRateLimiter(constants.RateLimitSubscribeRequestsPerSecond, constants.RateLimitSubscribeBurst),
		submitLimiter:    NewRateLimiter(constants.RateLimitSubmitRequestsPerSecond, constants.RateLimitSubmitBurst),
		generalLimiter:   NewRateLimiter(constants.RateLimitGeneralRequestsPerSecond, constants.RateLimitGeneralBurst),
	}
}

func (srl *StrictRateLimiter) MiddlewareForPath(path string) func(http.Handler) http.Handler {
	var limiter *RateLimiter
	var limiterType string

	switch path {
	case "/api/subscribe":
		limiter = srl.subscribeLimiter
		limiterType = "subscribe"
	case "/api/stories":
		limiter = srl.submitLimiter
		limiterType = "submit"
	default:
		limiter = srl.generalLimiter
		limiterType = "general"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			active, activeType := limiter, limiterType
			// Reads stay on the general budget even on limited paths.
			if activeType == "submit" && r.Method == http.MethodGet {
				active, activeType = srl.generalLimiter, "general"
			}

			key := GetClientIP(r)

			if !active.Allow(key) {
				metrics.RateLimitBlocked.WithLabelValues(path, activeType).Inc()
				WriteError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
