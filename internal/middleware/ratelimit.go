package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/HammerMeetNail/quizdash/internal/handlers"
	"github.com/HammerMeetNail/quizdash/internal/logging"
)

// WindowCounter increments the hit counter for key, expiring it after window.
type WindowCounter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisWindowCounter counts hits in Redis so every replica shares one limit.
type RedisWindowCounter struct {
	client redis.Cmdable
}

func NewRedisWindowCounter(client redis.Cmdable) *RedisWindowCounter {
	return &RedisWindowCounter{client: client}
}

func (c *RedisWindowCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := c.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("incrementing rate limit counter: %w", err)
	}
	return incr.Val(), nil
}

// KeyFunc derives the identity a request is limited under.
type KeyFunc func(r *http.Request) string

// RateLimiter is a fixed-window limiter. Counter errors either let the
// request through (failOpen) or reject it with 503.
type RateLimiter struct {
	counter  WindowCounter
	limit    int
	window   time.Duration
	prefix   string
	keyFunc  KeyFunc
	failOpen bool
	logger   *logging.Logger
	now      func() time.Time
}

func NewRateLimiter(counter WindowCounter, limit int, window time.Duration, prefix string, keyFunc KeyFunc, failOpen bool) *RateLimiter {
	if keyFunc == nil {
		keyFunc = GetClientIP
	}
	return &RateLimiter{
		counter:  counter,
		limit:    limit,
		window:   window,
		prefix:   prefix,
		keyFunc:  keyFunc,
		failOpen: failOpen,
		logger:   logging.Default.Named("ratelimit"),
		now:      time.Now,
	}
}

// NewRefreshRateLimiter limits manual refreshes per operator per minute.
// Refreshes hit the upstream store, so Redis outages fail open.
func NewRefreshRateLimiter(counter WindowCounter, perMinute int) *RateLimiter {
	return NewRateLimiter(counter, perMinute, time.Minute, "quizdash:ratelimit:refresh:", OperatorOrIPKey, true)
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.counter == nil {
			rl.unavailable(w, r, next, nil)
			return
		}

		windowStart := rl.now().Truncate(rl.window)
		resetAt := windowStart.Add(rl.window)
		key := rl.prefix + rl.keyFunc(r) + ":" + strconv.FormatInt(windowStart.Unix(), 10)

		count, err := rl.counter.Incr(r.Context(), key, rl.window)
		if err != nil {
			rl.unavailable(w, r, next, err)
			return
		}

		remaining := rl.limit - int(count)
		if remaining < 0 {
			remaining = 0
		}
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if int(count) > rl.limit {
			retry := int(resetAt.Sub(rl.now()).Seconds())
			if retry < 1 {
				retry = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) unavailable(w http.ResponseWriter, r *http.Request, next http.Handler, err error) {
	fields := map[string]interface{}{"path": r.URL.Path, "fail_open": rl.failOpen}
	if err != nil {
		fields["error"] = err.Error()
	}
	rl.logger.Warn("Rate limit check unavailable", fields)

	if rl.failOpen {
		next.ServeHTTP(w, r)
		return
	}
	writeError(w, http.StatusServiceUnavailable, "Service temporarily unavailable")
}

// OperatorOrIPKey limits authenticated operators by username and everyone
// else by client address.
func OperatorOrIPKey(r *http.Request) string {
	if op := handlers.GetOperatorFromContext(r.Context()); op != "" {
		return "op:" + op
	}
	return "ip:" + GetClientIP(r)
}

// GetClientIP returns the first X-Forwarded-For hop, then X-Real-IP, then
// the connection's remote address.
func GetClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
