package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "skilltracker:report:42:skill-growth", Key(42, "skill-growth"))
}

func TestDisabledCacheAlwaysLoads(t *testing.T) {
	c := NewReportCache(nil, time.Minute, nil)
	assert.False(t, c.Enabled())

	calls := 0
	load := func(context.Context) ([]int, error) {
		calls++
		return []int{1, 2}, nil
	}
	for i := 0; i < 2; i++ {
		v, err := Remember(context.Background(), c, 1, "x", load)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, v)
	}
	assert.Equal(t, 2, calls)
	require.NoError(t, c.Invalidate(context.Background(), 1))
}

func TestZeroTTLDisablesCache(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer rdb.Close()

	c := NewReportCache(rdb, 0, nil)
	assert.False(t, c.Enabled())
	c.SetTTL(time.Second)
	assert.True(t, c.Enabled())
	c.SetTTL(-time.Second)
	assert.Equal(t, time.Duration(0), c.TTL())
}

func TestUnreachableRedisFallsBackToLoader(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()
	c := NewReportCache(rdb, time.Minute, nil)

	v, err := Remember(context.Background(), c, 7, "overview", func(context.Context) (string, error) {
		return "fresh", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)

	boom := errors.New("db down")
	_, err = Remember(context.Background(), c, 7, "overview", func(context.Context) (string, error) {
		return "", boom
	})
	require.ErrorIs(t, err, boom)
}
