package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/filmorate/filmorate/internal/logging"
)

// fixedWindowScript atomically increments the counter and starts the window
// on first hit, so the two steps cannot race across instances.
const fixedWindowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

// RateLimiter is a fixed-window counter backed by Redis. With a nil client it
// passes every request through, which keeps the memory backend usable without
// a Redis instance.
type RateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	prefix string
	keyFn  func(r *http.Request) string
	// failOpen lets traffic through when Redis is unreachable. Write
	// endpoints run open so a cache outage does not take the API down.
	failOpen bool
}

func NewRateLimiter(client *redis.Client, limit int64, window time.Duration, prefix string, keyFn func(r *http.Request) string, failOpen bool) *RateLimiter {
	return &RateLimiter{
		client:   client,
		limit:    limit,
		window:   window,
		prefix:   prefix,
		keyFn:    keyFn,
		failOpen: failOpen,
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.client == nil {
			next.ServeHTTP(w, r)
			return
		}

		suffix := rl.keyFn(r)
		if suffix == "" {
			suffix = GetClientIP(r)
		}
		key := rl.prefix + suffix

		count, err := rl.hit(r, key)
		if err != nil {
			logging.Error("rate limit check failed", map[string]interface{}{"error": err.Error()})
			if rl.failOpen {
				next.ServeHTTP(w, r)
				return
			}
			writeLimitError(w, http.StatusServiceUnavailable, "rate limiting temporarily unavailable")
			return
		}

		if count > rl.limit {
			writeLimitError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) hit(r *http.Request, key string) (int64, error) {
	ttlSeconds := int64(rl.window.Seconds())
	return rl.client.Eval(r.Context(), fixedWindowScript, []string{key}, ttlSeconds).Int64()
}

func writeLimitError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   http.StatusText(status),
		"message": message,
	})
}

// GetClientIP resolves the originating client address, preferring proxy
// headers over the socket peer.
func GetClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// The first entry is the client; the rest are intermediate proxies.
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
