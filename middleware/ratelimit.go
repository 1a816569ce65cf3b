package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/dmitrymomot/raptor/core/handler"
	"github.com/dmitrymomot/raptor/core/response"
)

// RateLimitConfig configures the token bucket rate limiter.
type RateLimitConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx *handler.Context) bool
	// Rate is the sustained number of requests per second per key (default: 10)
	Rate rate.Limit
	// Burst is the bucket capacity per key (default: 20)
	Burst int
	// KeyExtractor identifies the client (default: client IP)
	KeyExtractor func(ctx *handler.Context) string
	// SetHeaders adds X-RateLimit-* headers to responses
	SetHeaders bool
	// IdleTTL evicts buckets not used for this long (default: 10m)
	IdleTTL time.Duration
}

// RateLimit creates a rate limiting middleware keyed by client IP.
func RateLimit(r rate.Limit, burst int) handler.Middleware {
	return RateLimitWithConfig(RateLimitConfig{Rate: r, Burst: burst, SetHeaders: true})
}

// RateLimitWithConfig rejects requests exceeding the configured rate with
// 429 Too Many Requests and a Retry-After header.
func RateLimitWithConfig(cfg RateLimitConfig) handler.Middleware {
	if cfg.Rate <= 0 {
		cfg.Rate = 10
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 20
	}
	if cfg.KeyExtractor == nil {
		cfg.KeyExtractor = func(ctx *handler.Context) string {
			if ip, ok := GetClientIP(ctx); ok {
				return ip
			}
			return RealIP(ctx.Request())
		}
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 10 * time.Minute
	}

	buckets := newBucketStore(cfg.Rate, cfg.Burst, cfg.IdleTTL)
	limit := strconv.Itoa(cfg.Burst)

	return func(ctx *handler.Context, next handler.Next) (any, error) {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return skip(next)
		}

		now := time.Now()
		lim := buckets.get(cfg.KeyExtractor(ctx), now)

		res := lim.ReserveN(now, 1)
		if delay := res.DelayFrom(now); delay > 0 {
			res.CancelAt(now)
			retry := strconv.Itoa(int(math.Ceil(delay.Seconds())))

			headers := map[string]string{"Retry-After": retry}
			if cfg.SetHeaders {
				headers["X-RateLimit-Limit"] = limit
				headers["X-RateLimit-Remaining"] = "0"
			}
			ensureHeaders(ctx, headers)
			return nil, response.ErrTooManyRequests.WithErrors(map[string]string{
				"retry_after": retry,
			})
		}

		if !cfg.SetHeaders {
			return skip(next)
		}

		headers := map[string]string{
			"X-RateLimit-Limit":     limit,
			"X-RateLimit-Remaining": strconv.Itoa(max(0, int(lim.TokensAt(now)))),
		}
		ensureHeaders(ctx, headers)
		next()
		ensureHeaders(ctx, headers)
		return nil, nil
	}
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// bucketStore keeps one limiter per key and evicts idle ones on access.
type bucketStore struct {
	mu        sync.Mutex
	rate      rate.Limit
	burst     int
	ttl       time.Duration
	buckets   map[string]*bucket
	lastSweep time.Time
}

func newBucketStore(r rate.Limit, burst int, ttl time.Duration) *bucketStore {
	return &bucketStore{
		rate:      r,
		burst:     burst,
		ttl:       ttl,
		buckets:   make(map[string]*bucket),
		lastSweep: time.Now(),
	}
}

func (s *bucketStore) get(key string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) > s.ttl {
		for k, b := range s.buckets {
			if now.Sub(b.lastSeen) > s.ttl {
				delete(s.buckets, k)
			}
		}
		s.lastSweep = now
	}

	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(s.rate, s.burst)}
		s.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter
}
