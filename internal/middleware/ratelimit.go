package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const visitorTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// callerLimiter holds one token bucket per caller.
type callerLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
}

func newCallerLimiter(rps float64, burst int) *callerLimiter {
	return &callerLimiter{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (cl *callerLimiter) allow(key string, now time.Time) bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	v, exists := cl.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(cl.rps, cl.burst)}
		cl.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (cl *callerLimiter) evictIdle(now time.Time) {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	for key, v := range cl.visitors {
		if now.Sub(v.lastSeen) > visitorTTL {
			delete(cl.visitors, key)
		}
	}
}

func (cl *callerLimiter) cleanup() {
	for {
		time.Sleep(visitorTTL)
		cl.evictIdle(time.Now())
	}
}

// callerKey identifies the caller: the session user when JWTAuth ran first,
// otherwise the client IP.
func callerKey(r *http.Request) string {
	if claims, ok := ClaimsFromContext(r.Context()); ok {
		return "user:" + claims.Role + ":" + strconv.FormatInt(claims.UserID, 10)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}

// RateLimit returns middleware that limits requests per caller.
// rps is the allowed requests per second, burst is the maximum burst size.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	limiter := newCallerLimiter(rps, burst)
	go limiter.cleanup()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.allow(callerKey(r), time.Now()) {
				w.Header().Set("Retry-After", "1")
				writeJSONError(w, http.StatusTooManyRequests, "too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
