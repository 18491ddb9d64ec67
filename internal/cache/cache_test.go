package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client), mr
}

func TestSetGetRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "stats:members", map[string]int{"total": 120}, StatsTTL))

	data, hit, err := c.Get(ctx, "stats:members")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.JSONEq(t, `{"total":120}`, string(data))
}

func TestGetMissReturnsNotFound(t *testing.T) {
	c, _ := newTestCache(t)

	_, hit, err := c.Get(context.Background(), "stats:nada")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestTTLExpiryMakesKeyAbsent(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "stats:members", 1, time.Second))
	mr.FastForward(2 * time.Second)

	_, hit, err := c.Get(ctx, "stats:members")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestInvalidatePattern(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "stats:donations", 1, StatsTTL))
	require.NoError(t, c.Set(ctx, "stats:donations:info", 2, StatsTTL))
	require.NoError(t, c.Set(ctx, "stats:members", 3, StatsTTL))

	require.NoError(t, c.Invalidate(ctx, "stats:donations*"))

	assert.False(t, mr.Exists("stats:donations"))
	assert.False(t, mr.Exists("stats:donations:info"))
	assert.True(t, mr.Exists("stats:members"))
}

func TestInvalidateEntityUsesRegisteredKeys(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, KeyDonationStats, 1, StatsTTL))
	require.NoError(t, c.Set(ctx, KeyDonationInfo, 2, DonationInfoTTL))
	require.NoError(t, c.Set(ctx, KeyDashboardStats, 3, StatsTTL))
	require.NoError(t, c.Set(ctx, KeyMemberStats, 4, StatsTTL))

	c.InvalidateEntity(ctx, "donations")

	assert.False(t, mr.Exists(KeyDonationStats))
	assert.False(t, mr.Exists(KeyDonationInfo))
	assert.False(t, mr.Exists(KeyDashboardStats))
	assert.True(t, mr.Exists(KeyMemberStats), "unrelated entity keys must survive")
}

func TestInvalidateEntityToleratesDownRedis(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	// Must not panic nor surface the failure.
	c.InvalidateEntity(context.Background(), "donations")
}

func TestRememberComputesOnceWithinTTL(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	calls := 0
	compute := func() (map[string]int, error) {
		calls++
		return map[string]int{"total": calls}, nil
	}

	first, err := Remember(ctx, c, KeyDonationStats, StatsTTL, compute)
	require.NoError(t, err)
	second, err := Remember(ctx, c, KeyDonationStats, StatsTTL, compute)
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "second call must be served from cache")
	assert.Equal(t, first, second)
}

func TestRememberPropagatesComputeError(t *testing.T) {
	c, _ := newTestCache(t)

	boom := errors.New("banco fora do ar")
	_, err := Remember(context.Background(), c, "stats:x", StatsTTL, func() (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestHealthCheck(t *testing.T) {
	c, mr := newTestCache(t)
	assert.True(t, c.HealthCheck(context.Background()))

	mr.Close()
	assert.False(t, c.HealthCheck(context.Background()))
}
