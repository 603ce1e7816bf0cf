package api

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultRateLimitMax    = 100
	DefaultRateLimitWindow = 15 * time.Minute
)

// RateLimiter counts requests per client key in fixed windows
type RateLimiter interface {
	Allow(ctx context.Context, key string) (remaining int, allowed bool, err error)
	Limit() int
	Window() time.Duration
}

type windowCounter struct {
	count   int
	resetAt time.Time
}

// MemoryRateLimiter keeps counters in process
type MemoryRateLimiter struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	now      func() time.Time
	counters map[string]*windowCounter
}

func NewMemoryRateLimiter(limit int, window time.Duration) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		limit:    limit,
		window:   window,
		now:      time.Now,
		counters: make(map[string]*windowCounter),
	}
}

func (l *MemoryRateLimiter) Limit() int            { return l.limit }
func (l *MemoryRateLimiter) Window() time.Duration { return l.window }

func (l *MemoryRateLimiter) Allow(_ context.Context, key string) (int, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	counter, ok := l.counters[key]
	if !ok || !now.Before(counter.resetAt) {
		l.sweep(now)
		counter = &windowCounter{resetAt: now.Add(l.window)}
		l.counters[key] = counter
	}

	counter.count++
	if counter.count > l.limit {
		return 0, false, nil
	}
	return l.limit - counter.count, true, nil
}

// sweep drops expired windows; callers hold mu
func (l *MemoryRateLimiter) sweep(now time.Time) {
	for key, counter := range l.counters {
		if !now.Before(counter.resetAt) {
			delete(l.counters, key)
		}
	}
}

// counterStore is the subset of the redis client the shared limiter uses
type counterStore interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

// RedisRateLimiter shares counters between instances through redis
type RedisRateLimiter struct {
	store  counterStore
	limit  int
	window time.Duration
	prefix string
}

func NewRedisRateLimiter(store counterStore, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{store: store, limit: limit, window: window, prefix: "ratelimit:"}
}

func (l *RedisRateLimiter) Limit() int            { return l.limit }
func (l *RedisRateLimiter) Window() time.Duration { return l.window }

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (int, bool, error) {
	redisKey := l.prefix + key

	count, err := l.store.Incr(ctx, redisKey).Result()
	if err != nil {
		return 0, false, err
	}
	if count == 1 {
		if err := l.store.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return 0, false, err
		}
	}

	if count > int64(l.limit) {
		// a key left without expiry would block the client forever
		if err := l.rearm(ctx, redisKey); err != nil {
			return 0, false, err
		}
		return 0, false, nil
	}
	return l.limit - int(count), true, nil
}

func (l *RedisRateLimiter) rearm(ctx context.Context, redisKey string) error {
	ttl, err := l.store.TTL(ctx, redisKey).Result()
	if err != nil {
		return err
	}
	if ttl >= 0 {
		return nil
	}
	return l.store.Expire(ctx, redisKey, l.window).Err()
}

type rateLimitMiddleware struct {
	limiter   RateLimiter
	responder Responder
	logger    zerolog.Logger
}

func newRateLimitMiddleware(limiter RateLimiter) rateLimitMiddleware {
	logger := log.With().Str("handlerName", "rateLimitMiddleware").Logger()
	return rateLimitMiddleware{
		limiter:   limiter,
		responder: NewResponder(logger),
		logger:    logger,
	}
}

func (m rateLimitMiddleware) limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		remaining, allowed, err := m.limiter.Allow(r.Context(), clientKey(r))
		if err != nil {
			// fail open
			m.logger.Error().Err(err).Msg("rate limiter unavailable, allowing request")
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("RateLimit-Limit", strconv.Itoa(m.limiter.Limit()))
		w.Header().Set("RateLimit-Remaining", strconv.Itoa(remaining))
		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(m.limiter.Window().Seconds())))
			m.responder.WriteError(w, errs.NewTooManyRequestsError(m.limiter.Window()))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientKey identifies the caller; RealIP has already rewritten RemoteAddr
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
