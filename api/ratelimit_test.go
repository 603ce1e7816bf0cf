package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRateLimiter_FixedWindow(t *testing.T) {
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	limiter := NewMemoryRateLimiter(3, 15*time.Minute)
	limiter.now = func() time.Time { return now }
	ctx := context.Background()

	for want := 2; want >= 0; want-- {
		remaining, allowed, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, want, remaining)
	}

	_, allowed, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed)

	_, allowed, _ = limiter.Allow(ctx, "10.0.0.2")
	assert.True(t, allowed, "keys are independent")

	now = now.Add(15 * time.Minute)
	remaining, allowed, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed, "a new window starts")
	assert.Equal(t, 2, remaining)
	assert.Len(t, limiter.counters, 1, "expired windows are swept")
}

type fakeCounterStore struct {
	counts    map[string]int64
	expires   map[string]time.Duration
	err       error
	expireErr []error
}

func newFakeCounterStore() *fakeCounterStore {
	return &fakeCounterStore{counts: map[string]int64{}, expires: map[string]time.Duration{}}
}

func (s *fakeCounterStore) Incr(_ context.Context, key string) *redis.IntCmd {
	if s.err != nil {
		return redis.NewIntResult(0, s.err)
	}
	s.counts[key]++
	return redis.NewIntResult(s.counts[key], nil)
}

func (s *fakeCounterStore) Expire(_ context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	if len(s.expireErr) > 0 {
		err := s.expireErr[0]
		s.expireErr = s.expireErr[1:]
		if err != nil {
			return redis.NewBoolResult(false, err)
		}
	}
	s.expires[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (s *fakeCounterStore) TTL(_ context.Context, key string) *redis.DurationCmd {
	if ttl, ok := s.expires[key]; ok {
		return redis.NewDurationResult(ttl, nil)
	}
	return redis.NewDurationResult(-1, nil)
}

func TestRedisRateLimiter(t *testing.T) {
	store := newFakeCounterStore()
	limiter := NewRedisRateLimiter(store, 2, 15*time.Minute)
	ctx := context.Background()

	remaining, allowed, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 1, remaining)
	assert.Equal(t, 15*time.Minute, store.expires["ratelimit:10.0.0.1"])

	_, allowed, _ = limiter.Allow(ctx, "10.0.0.1")
	assert.True(t, allowed)
	_, allowed, _ = limiter.Allow(ctx, "10.0.0.1")
	assert.False(t, allowed)
	assert.Len(t, store.expires, 1, "expiry is set once per window")
}

func TestRedisRateLimiter_StoreError(t *testing.T) {
	store := newFakeCounterStore()
	store.err = errors.New("connection refused")

	_, _, err := NewRedisRateLimiter(store, 2, time.Minute).Allow(context.Background(), "10.0.0.1")
	assert.Error(t, err)
}

func TestRedisRateLimiter_RearmsExpiryAfterFailedExpire(t *testing.T) {
	store := newFakeCounterStore()
	store.expireErr = []error{errors.New("i/o timeout")}
	limiter := NewRedisRateLimiter(store, 2, 15*time.Minute)
	ctx := context.Background()
	key := "ratelimit:10.0.0.1"

	_, _, err := limiter.Allow(ctx, "10.0.0.1")
	require.Error(t, err)
	assert.NotContains(t, store.expires, key)

	_, allowed, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)

	_, allowed, err = limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 15*time.Minute, store.expires[key], "over-limit key without expiry gets one")
}
