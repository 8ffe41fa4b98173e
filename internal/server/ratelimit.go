package server

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ktsarnakliyski/JobSpresso/internal/errors"

	"golang.org/x/time/rate"
)

const defaultEvictionAge = 10 * time.Minute

// RateLimiter holds one token bucket per client key (IP or API key). Idle
// buckets are evicted in the background so the map does not grow without
// bound under churning client populations.
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*rate.Limiter
	lastSeen map[string]time.Time

	perSecond rate.Limit
	burst     int
	eviction  time.Duration

	done   chan struct{}
	logger *errors.Logger
}

// NewRateLimiter builds a limiter allowing requestsPerMin sustained requests
// with burstCapacity headroom per key. evictionAge controls how long an idle
// key keeps its bucket; zero selects the default.
func NewRateLimiter(requestsPerMin int, evictionAge time.Duration, burstCapacity int, logger *errors.Logger) *RateLimiter {
	if evictionAge <= 0 {
		evictionAge = defaultEvictionAge
	}

	rl := &RateLimiter{
		buckets:   make(map[string]*rate.Limiter),
		lastSeen:  make(map[string]time.Time),
		perSecond: rate.Limit(float64(requestsPerMin) / 60.0),
		burst:     burstCapacity,
		eviction:  evictionAge,
		done:      make(chan struct{}),
		logger:    logger,
	}

	go rl.evictLoop()
	return rl
}

// Allow reports whether a request for the given key may proceed. Non-blocking.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.bucketFor(key).Allow()
}

func (rl *RateLimiter) bucketFor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	bucket, ok := rl.buckets[key]
	if !ok {
		bucket = rate.NewLimiter(rl.perSecond, rl.burst)
		rl.buckets[key] = bucket
	}
	rl.lastSeen[key] = time.Now()
	return bucket
}

// GetStats returns current rate limiter statistics
func (rl *RateLimiter) GetStats() map[string]any {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return map[string]any{
		"active_limiters": len(rl.buckets),
		"rate_per_second": float64(rl.perSecond),
		"rate_per_minute": float64(rl.perSecond) * 60.0,
		"burst_capacity":  rl.burst,
	}
}

func (rl *RateLimiter) evictLoop() {
	ticker := time.NewTicker(rl.eviction)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evictIdle()
		case <-rl.done:
			return
		}
	}
}

func (rl *RateLimiter) evictIdle() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, seen := range rl.lastSeen {
		if now.Sub(seen) > rl.eviction {
			delete(rl.buckets, key)
			delete(rl.lastSeen, key)
		}
	}

	if rl.logger != nil {
		rl.logger.Debug("Rate limiter eviction completed",
			"remaining_limiters", len(rl.buckets))
	}
}

// Close stops the eviction goroutine. Call once on server shutdown.
func (rl *RateLimiter) Close() {
	close(rl.done)
}

// rateLimitMiddleware enforces per-key limits using golang.org/x/time/rate.
func (s *Server) rateLimitMiddleware() func(http.HandlerFunc) http.HandlerFunc {
	if s.RateLimit == nil || !s.RateLimit.Enabled {
		return func(next http.HandlerFunc) http.HandlerFunc { return next }
	}

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			key := getRateLimitKey(r, s.RateLimit.ByAPIKey, s.RateLimit.ByIP)
			if key == "" {
				next(w, r)
				return
			}

			if !s.RateLimiter.Allow(key) {
				s.Logger.Info("Rate limit exceeded",
					"key", maskRateLimitKey(key),
					"endpoint", r.URL.Path,
					"client_ip", getClientIP(r))
				writeErrorResponse(w, "Rate limit exceeded", "Too many requests", http.StatusTooManyRequests)
				return
			}

			next(w, r)
		}
	}
}

// getRateLimitKey picks the bucket key for a request. API key wins over IP
// when both dimensions are enabled.
func getRateLimitKey(r *http.Request, byAPIKey, byIP bool) string {
	if byAPIKey {
		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			authHeader := r.Header.Get("Authorization")
			if after, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
				apiKey = after
			}
		}
		if apiKey != "" {
			return "api:" + apiKey
		}
	}

	if byIP {
		return "ip:" + getClientIP(r)
	}

	return ""
}

// maskRateLimitKey hides API key material in log output; IP keys pass through.
func maskRateLimitKey(key string) string {
	if after, ok := strings.CutPrefix(key, "api:"); ok {
		return "api:" + maskAPIKey(after)
	}
	return key
}

// getClientIP extracts the client IP address from the request
func getClientIP(r *http.Request) string {
	// X-Forwarded-For first, for requests arriving through a proxy
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := parseFirstIP(xff); ip != "" {
			return ip
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if ip := net.ParseIP(xri); ip != nil {
			return xri
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// parseFirstIP returns the first valid IP from a comma-separated list
func parseFirstIP(ips string) string {
	for ip := range strings.SplitSeq(ips, ",") {
		ip = strings.TrimSpace(ip)
		if parsed := net.ParseIP(ip); parsed != nil {
			return ip
		}
	}
	return ""
}
