package http

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/kariua-parish/parish-site/internal/common/constants"
	"github.com/kariua-parish/parish-site/internal/common/httpmetrics"
	"github.com/kariua-parish/parish-site/internal/observability/metrics"
)

type RateLimiter struct {
	limiters map[string]*limiterEntry
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	now      func() time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		now:      time.Now,
	}
}

func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	entry, ok := rl.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// Prune drops limiters idle for longer than maxIdle.
func (rl *RateLimiter) Prune(maxIdle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-maxIdle)
	removed := 0
	for key, entry := range rl.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.limiters, key)
			removed++
		}
	}
	return removed
}

// PathRateLimiter applies a dedicated limiter to write endpoints and a
// general one to everything else. Health and metrics are never limited.
type PathRateLimiter struct {
	intentionLimiter *RateLimiter
	chatLimiter      *RateLimiter
	generalLimiter   *RateLimiter
}

func NewPathRateLimiter() *PathRateLimiter {
	return &PathRateLimiter{
		intentionLimiter: NewRateLimiter(constants.RateLimitIntentionRequestsPerSecond, constants.RateLimitIntentionBurst),
		chatLimiter:      NewRateLimiter(constants.RateLimitChatRequestsPerSecond, constants.RateLimitChatBurst),
		generalLimiter:   NewRateLimiter(constants.RateLimitGeneralRequestsPerSecond, constants.RateLimitGeneralBurst),
	}
}

func (p *PathRateLimiter) limiterFor(r *http.Request) (*RateLimiter, string) {
	switch {
	case r.URL.Path == constants.RouteHealth || r.URL.Path == constants.RouteMetrics:
		return nil, ""
	case r.URL.Path == constants.RoutePrayerIntentions && r.Method == http.MethodPost:
		return p.intentionLimiter, "intention"
	case r.URL.Path == constants.RouteChat:
		return p.chatLimiter, "chat"
	default:
		return p.generalLimiter, "general"
	}
}

func (p *PathRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limiter, limiterType := p.limiterFor(r)
		if limiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		if !limiter.Allow(GetClientIP(r)) {
			metrics.RateLimitBlocked.WithLabelValues(httpmetrics.NormalizePath(r.URL.Path), limiterType).Inc()
			WriteErrorEnvelope(w, http.StatusTooManyRequests, CodeRateLimited, "rate limit exceeded", nil, TraceIDFromContext(r.Context()))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (p *PathRateLimiter) Prune(maxIdle time.Duration) {
	p.intentionLimiter.Prune(maxIdle)
	p.chatLimiter.Prune(maxIdle)
	p.generalLimiter.Prune(maxIdle)
}

// StartPruning runs Prune on every interval until stop is closed.
func (p *PathRateLimiter) StartPruning(interval time.Duration, stop <-chan struct{}) {
	if interval <= 0 {
		interval = constants.RateLimitCleanupInterval
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.Prune(interval)
			case <-stop:
				return
			}
		}
	}()
}
