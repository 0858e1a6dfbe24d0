package tokens

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewRedisCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), ttl)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisCache_SetGet(t *testing.T) {
	c, mr := newRedisCache(t, 0)
	ctx := context.Background()

	require.NoError(t, c.SetToken(ctx, "alice", "t1"))

	got, err := c.GetToken(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "t1", got)

	v, err := mr.Get("token:alice")
	require.NoError(t, err)
	assert.Equal(t, "t1", v)
	assert.Zero(t, mr.TTL("token:alice"))
}

func TestRedisCache_LastWriteWins(t *testing.T) {
	c, _ := newRedisCache(t, 0)
	ctx := context.Background()

	require.NoError(t, c.SetToken(ctx, "alice", "t1"))
	require.NoError(t, c.SetToken(ctx, "alice", "t2"))

	got, err := c.GetToken(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "t2", got)
}

func TestRedisCache_Missing(t *testing.T) {
	c, _ := newRedisCache(t, 0)

	_, err := c.GetToken(context.Background(), "nobody")
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestRedisCache_TTL(t *testing.T) {
	c, mr := newRedisCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.SetToken(ctx, "alice", "t1"))
	assert.Equal(t, time.Minute, mr.TTL("token:alice"))

	mr.FastForward(61 * time.Second)

	_, err := c.GetToken(ctx, "alice")
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestRedisCache_ServerDown(t *testing.T) {
	c, mr := newRedisCache(t, 0)
	mr.Close()

	_, err := c.GetToken(context.Background(), "alice")
	require.Error(t, err)
	assert.False(t, errors.Is(err, common.ErrorNotFound))

	assert.Error(t, c.SetToken(context.Background(), "alice", "t"))
	assert.Error(t, c.Ping(context.Background()))
}

func TestDialRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := DialRedis(context.Background(), "redis://"+mr.Addr()+"/0", time.Minute)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.SetToken(context.Background(), "bob", "tb"))
	assert.True(t, mr.Exists("token:bob"))
}

func TestDialRedis_BadURL(t *testing.T) {
	_, err := DialRedis(context.Background(), "http://nope", 0)
	assert.Error(t, err)
}
