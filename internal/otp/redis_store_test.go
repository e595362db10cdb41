package otp

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisFixture(t *testing.T, now time.Time) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, func() time.Time { return now }), mr
}

func TestRedisStorePutOverwrites(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	s, mr := newRedisFixture(t, now)

	require.NoError(t, s.Put(ctx, "a@b.co", Entry{Code: 111111, ExpiresAt: now.Add(time.Minute)}))
	require.NoError(t, s.Put(ctx, "a@b.co", Entry{Code: 222222, ExpiresAt: now.Add(5 * time.Minute)}))

	e, ok, err := s.Get(ctx, "a@b.co")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 222222, e.Code)
	assert.True(t, e.ExpiresAt.Equal(now.Add(5*time.Minute)))

	assert.True(t, mr.Exists("otp:a@b.co"))
	assert.Equal(t, 5*time.Minute+expiredRetention, mr.TTL("otp:a@b.co"))
}

func TestRedisStoreKeepsExpiredEntryUntilRetentionEnds(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	s, mr := newRedisFixture(t, now)

	require.NoError(t, s.Put(ctx, "a@b.co", Entry{Code: 333333, ExpiresAt: now.Add(5 * time.Minute)}))

	mr.FastForward(10 * time.Minute)
	e, ok, err := s.Get(ctx, "a@b.co")
	require.NoError(t, err)
	require.True(t, ok, "expired entry is still readable")
	assert.True(t, e.Expired(now.Add(10*time.Minute)))

	mr.FastForward(expiredRetention)
	_, ok, err = s.Get(ctx, "a@b.co")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStorePastDeadlineStillRetained(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	s, mr := newRedisFixture(t, now)

	require.NoError(t, s.Put(ctx, "a@b.co", Entry{Code: 444444, ExpiresAt: now.Add(-2 * expiredRetention)}))
	assert.Equal(t, expiredRetention, mr.TTL("otp:a@b.co"))
}

func TestRedisStoreDelete(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	s, mr := newRedisFixture(t, now)

	require.NoError(t, s.Put(ctx, "a@b.co", Entry{Code: 555555, ExpiresAt: now.Add(time.Minute)}))
	require.NoError(t, s.Delete(ctx, "a@b.co"))

	_, ok, err := s.Get(ctx, "a@b.co")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, mr.Exists("otp:a@b.co"))

	require.NoError(t, s.Delete(ctx, "missing@b.co"))
}

func TestRedisStoreMissingKey(t *testing.T) {
	s, _ := newRedisFixture(t, time.Now())
	_, ok, err := s.Get(context.Background(), "nobody@b.co")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreSurfacesConnectionErrors(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisFixture(t, time.Now())
	mr.Close()

	_, _, err := s.Get(ctx, "a@b.co")
	assert.Error(t, err)
	assert.Error(t, s.Put(ctx, "a@b.co", Entry{Code: 1, ExpiresAt: time.Now()}))
}
