package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type RateLimitOptions struct {
	TrustProxy bool
	Now        func() time.Time
}

type rateRule struct {
	routeKey string
	limit    int64
	window   time.Duration
}

var incrExpireScript = redis.NewScript(`
local v = redis.call('INCR', KEYS[1])
if v == 1 then
  redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {v, ttl}
`)

// RateLimit applies Redis-backed fixed-window rate limiting to the auth
// endpoints, keyed per client IP. If Redis is unavailable (rdb == nil),
// it becomes a no-op.
func RateLimit(rdb *redis.Client, opt RateLimitOptions) func(http.Handler) http.Handler {
	if opt.Now == nil {
		opt.Now = time.Now
	}

	// Conservative defaults; credential endpoints only.
	rules := map[string]rateRule{
		"auth_signup": {routeKey: "auth_signup", limit: 10, window: 1 * time.Minute},
		"auth_login":  {routeKey: "auth_login", limit: 10, window: 1 * time.Minute},
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rdb == nil {
				next.ServeHTTP(w, r)
				return
			}

			route := classifyRoute(r)
			rule, ok := rules[route]
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ip := ClientIP(r, opt.TrustProxy)
			if ip == "" {
				// Cannot identify; fail open to avoid accidental lockouts.
				next.ServeHTTP(w, r)
				return
			}

			count, ttl, resetUnix, err := hitFixedWindow(r.Context(), rdb, rule.routeKey, "ip:"+ip, rule.window, opt.Now())
			if err != nil {
				// Redis error: fail open.
				next.ServeHTTP(w, r)
				return
			}

			remaining := rule.limit - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(rule.limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetUnix, 10))

			if count > rule.limit {
				retryAfter := ttl
				if retryAfter <= 0 {
					retryAfter = int64(rule.window.Seconds())
				}
				w.Header().Set("Retry-After", strconv.FormatInt(retryAfter, 10))
				writeRateLimited(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeRateLimited(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "error",
		"message": "too many requests",
	})
}

func hitFixedWindow(ctx context.Context, rdb *redis.Client, routeKey string, subject string, window time.Duration, now time.Time) (count int64, ttlSeconds int64, resetUnix int64, err error) {
	windowSeconds := int64(window.Seconds())
	if windowSeconds <= 0 {
		return 0, 0, 0, nil
	}

	start := (now.Unix() / windowSeconds) * windowSeconds
	resetUnix = start + windowSeconds
	key := "rl:" + routeKey + ":" + subject + ":" + strconv.FormatInt(windowSeconds, 10) + ":" + strconv.FormatInt(start, 10)

	// Keep this fast; do not let Redis stalls block the API.
	ctx, cancel := context.WithTimeout(ctx, 250*time.Millisecond)
	defer cancel()

	res, err := incrExpireScript.Run(ctx, rdb, []string{key}, windowSeconds).Result()
	if err != nil {
		return 0, 0, resetUnix, err
	}

	arr, ok := res.([]any)
	if !ok || len(arr) < 2 {
		return 0, 0, resetUnix, nil
	}
	if v, ok := arr[0].(int64); ok {
		count = v
	}
	if v, ok := arr[1].(int64); ok {
		ttlSeconds = v
	}
	return count, ttlSeconds, resetUnix, nil
}

// classifyRoute maps request paths to stable route keys for rate limiting.
// Intentionally simple matching so it works as a global chi middleware.
func classifyRoute(r *http.Request) string {
	if r.Method != http.MethodPost {
		return ""
	}
	switch r.URL.Path {
	case "/api/auth/signup":
		return "auth_signup"
	case "/api/auth/login":
		return "auth_login"
	}
	return ""
}
