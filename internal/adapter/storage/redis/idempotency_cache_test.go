package redis

import (
	"context"
	"testing"
	"time"

	"zerah-finance/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyCache_SetAndGet(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewIdempotencyCache(client)
	ctx := context.Background()

	key := domain.BuildIdempotencyKey(domain.OperationConvert, "req-001")
	value := []byte(`{"id":"CNV-1","type":"conversion"}`)

	// Get before set => nil
	result, err := cache.Get(ctx, key)
	assert.NoError(t, err)
	assert.Nil(t, result)

	require.NoError(t, cache.Set(ctx, key, value, 24*time.Hour))

	result, err = cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, value, result)

	assert.True(t, s.Exists("zerah:idempotency:convert:req-001"))
	assert.Equal(t, 24*time.Hour, s.TTL("zerah:idempotency:convert:req-001"))
}

func TestIdempotencyCache_TTLExpiry(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewIdempotencyCache(client)
	ctx := context.Background()

	key := "topup:req-002"
	require.NoError(t, cache.Set(ctx, key, []byte(`{"id":"TOP-1"}`), 1*time.Second))

	// Fast-forward time in miniredis
	s.FastForward(2 * time.Second)

	result, err := cache.Get(ctx, key)
	assert.NoError(t, err)
	assert.Nil(t, result, "expired key should return nil")
}

func TestIdempotencyCache_KindsAreIsolated(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewIdempotencyCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, domain.BuildIdempotencyKey(domain.OperationSend, "k"), []byte("send"), time.Hour))

	result, err := cache.Get(ctx, domain.BuildIdempotencyKey(domain.OperationTopup, "k"))
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestIdempotencyCache_ServerDown(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr(), MaxRetries: -1})
	cache := NewIdempotencyCache(client)
	s.Close()

	_, err := cache.Get(context.Background(), "send:k")
	assert.ErrorContains(t, err, "redis idempotency get")

	err = cache.Set(context.Background(), "send:k", []byte("x"), time.Hour)
	assert.ErrorContains(t, err, "redis idempotency set")
}
