// internal/common/cache/redis_test.go
package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	return NewWithClient(redis.NewClient(&redis.Options{Addr: srv.Addr()})), srv
}

func TestSetAndGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "strategy:p1:reddit:content", `{"analysis":"x"}`, time.Minute))

	val, err := c.Get(ctx, "strategy:p1:reddit:content")
	require.NoError(t, err)
	assert.Equal(t, `{"analysis":"x"}`, val)
}

func TestGet_MissIsDistinguishable(t *testing.T) {
	c, _ := newTestCache(t)

	_, err := c.Get(context.Background(), "strategy:p1:reddit:content")

	require.Error(t, err)
	assert.True(t, IsMiss(err))
}

func TestSet_TTLExpires(t *testing.T) {
	c, srv := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	srv.FastForward(2 * time.Minute)

	_, err := c.Get(ctx, "k")
	assert.True(t, IsMiss(err))
}

func TestDel(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	require.NoError(t, c.Del(ctx, "k"))

	_, err := c.Get(ctx, "k")
	assert.True(t, IsMiss(err))
}

func TestPing_FailureIsNotAMiss(t *testing.T) {
	c, srv := newTestCache(t)
	srv.Close()

	err := c.Ping(context.Background())
	require.Error(t, err)
	assert.False(t, IsMiss(err))
}

func TestGet_TransportErrorIsNotAMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewWithClient(db)
	mock.ExpectGet("k").SetErr(assert.AnError)

	_, err := c.Get(context.Background(), "k")

	require.Error(t, err)
	assert.False(t, IsMiss(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStrategyKey(t *testing.T) {
	key := StrategyKey("p1", "reddit", "")
	assert.Equal(t, "strategy:p1:reddit:content", key)

	anon := StrategyKey("", "reddit", "")
	assert.Equal(t, "strategy:anonymous:reddit:content", anon)
}

func TestStrategyKey_FocusIsHashedAndStable(t *testing.T) {
	a := StrategyKey("p1", "reddit", "API security")
	b := StrategyKey("p1", "reddit", "API security")
	other := StrategyKey("p1", "reddit", "developer onboarding")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, other)
	assert.NotContains(t, a, "API security")
	assert.Contains(t, a, "strategy:p1:reddit:")
}
