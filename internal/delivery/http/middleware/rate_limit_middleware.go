package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"clinic-cms/config"
	"clinic-cms/pkg/response"

	"golang.org/x/time/rate"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterIdleThreshold   = 15 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a token bucket per client IP. The router runs one
// instance for login and another for the public appointment form.
type RateLimiter struct {
	rps        rate.Limit
	burst      int
	trustProxy bool

	mu       sync.Mutex
	visitors map[string]*visitor

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	l := &RateLimiter{
		rps:        rate.Limit(cfg.RPS),
		burst:      cfg.Burst,
		trustProxy: cfg.TrustProxy,
		visitors:   make(map[string]*visitor),
		stopChan:   make(chan struct{}),
	}

	l.wg.Add(1)
	go l.cleanupLoop()

	return l
}

func (l *RateLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopChan) })
	l.wg.Wait()
}

// Allow consumes one token for ip.
func (l *RateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	l.mu.Unlock()

	return v.limiter.Allow()
}

func (l *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(ClientIP(r, l.trustProxy)) {
			w.Header().Set("Retry-After", "60")
			response.TooManyRequests(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) cleanupLoop() {
	defer l.wg.Done()

	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup(time.Now())
		case <-l.stopChan:
			return
		}
	}
}

func (l *RateLimiter) cleanup(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) > limiterIdleThreshold {
			delete(l.visitors, ip)
			removed++
		}
	}
	return removed
}

// ClientIP returns the remote address, or the first X-Forwarded-For hop
// when the app runs behind a trusted proxy.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			first := strings.TrimSpace(strings.Split(fwd, ",")[0])
			if first != "" {
				return first
			}
		}
		if real := strings.TrimSpace(r.Header.Get("X-Real-IP")); real != "" {
			return real
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
