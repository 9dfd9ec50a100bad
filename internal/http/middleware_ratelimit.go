package httpx

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const defaultLimiterIdleTTL = 10 * time.Minute

// RateLimitConfig throttles requests per client address.
type RateLimitConfig struct {
	PerMinute int
	Burst     int
	// IdleTTL drops per-client state after this long without requests.
	IdleTTL time.Duration
	// OnLimited renders the rejection. Defaults to a plain 429.
	OnLimited http.Handler
	// Now is for tests.
	Now func() time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientRateLimiter tracks one token bucket per client IP.
type ClientRateLimiter struct {
	cfg RateLimitConfig

	mu        sync.Mutex
	clients   map[string]*clientLimiter
	lastSweep time.Time
}

// NewClientRateLimiter builds a limiter. PerMinute <= 0 disables throttling.
func NewClientRateLimiter(cfg RateLimitConfig) *ClientRateLimiter {
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = defaultLimiterIdleTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &ClientRateLimiter{cfg: cfg, clients: make(map[string]*clientLimiter)}
}

// Allow reports whether the client may proceed now. When it may not, wait is
// the time until the next token.
func (l *ClientRateLimiter) Allow(client string) (ok bool, wait time.Duration) {
	if l == nil || l.cfg.PerMinute <= 0 {
		return true, 0
	}
	now := l.cfg.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweepLocked(now)
	c, found := l.clients[client]
	if !found {
		c = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(float64(l.cfg.PerMinute)/60), l.cfg.Burst)}
		l.clients[client] = c
	}
	c.lastSeen = now

	res := c.limiter.ReserveN(now, 1)
	if !res.OK() {
		return false, time.Minute
	}
	if d := res.DelayFrom(now); d > 0 {
		res.CancelAt(now)
		return false, d
	}
	return true, 0
}

func (l *ClientRateLimiter) sweepLocked(now time.Time) {
	if now.Sub(l.lastSweep) < l.cfg.IdleTTL {
		return
	}
	l.lastSweep = now
	for k, c := range l.clients {
		if now.Sub(c.lastSeen) >= l.cfg.IdleTTL {
			delete(l.clients, k)
		}
	}
}

// RateLimit wraps a handler with the limiter, keyed by client IP.
func RateLimit(l *ClientRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, wait := l.Allow(clientIP(r))
			if ok {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			if l.cfg.OnLimited != nil {
				l.cfg.OnLimited.ServeHTTP(w, r)
				return
			}
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		})
	}
}

// clientIP returns the remote host without port. Proxy headers are not trusted.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
