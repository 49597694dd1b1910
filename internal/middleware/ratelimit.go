package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/nhahub/NHA-046/internal/httpx"
	"github.com/nhahub/NHA-046/pkg/clientip"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterTTL             = 30 * time.Minute
)

type limiterEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

// RouteLimiter enforces a per-client quota for one route. Counters live
// in-process only: losing them on restart is fine, this is abuse mitigation,
// not billing. The entry map is shared by concurrent requests and guarded by
// a mutex; idle entries are dropped by a background sweep.
type RouteLimiter struct {
	limit   rate.Limit
	burst   int
	mu      sync.Mutex
	entries map[string]*limiterEntry
	sweep   bool
}

// PerHour builds a limiter allowing n requests per hour per client.
func PerHour(n int) *RouteLimiter {
	return &RouteLimiter{
		limit:   rate.Limit(float64(n) / 3600.0),
		burst:   n,
		entries: make(map[string]*limiterEntry),
	}
}

// PerMinute builds a limiter allowing n requests per minute per client.
func PerMinute(n int) *RouteLimiter {
	return &RouteLimiter{
		limit:   rate.Limit(float64(n) / 60.0),
		burst:   n,
		entries: make(map[string]*limiterEntry),
	}
}

func (rl *RouteLimiter) get(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.startSweepOnce()
	e, ok := rl.entries[ip]
	if !ok {
		e = &limiterEntry{
			limiter: rate.NewLimiter(rl.limit, rl.burst),
			lastUse: time.Now(),
		}
		rl.entries[ip] = e
	}
	e.lastUse = time.Now()
	return e.limiter
}

func (rl *RouteLimiter) startSweepOnce() {
	if rl.sweep {
		return
	}
	rl.sweep = true
	go func() {
		ticker := time.NewTicker(limiterCleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			rl.mu.Lock()
			now := time.Now()
			for ip, e := range rl.entries {
				if now.Sub(e.lastUse) > limiterTTL {
					delete(rl.entries, ip)
				}
			}
			rl.mu.Unlock()
		}
	}()
}

// Middleware gates requests through the quota. It runs before auth so that a
// rejected request costs less than a token verification.
func (rl *RouteLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientip.RealClientIP(r)
		if !rl.get(ip).Allow() {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.burst))
			w.Header().Set("X-RateLimit-Remaining", "0")
			httpx.WriteError(w, httpx.RateLimited("Rate limit exceeded. Please try again later."))
			return
		}
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.burst))
		next.ServeHTTP(w, r)
	})
}
