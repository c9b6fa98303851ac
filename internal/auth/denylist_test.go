package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisDenylist(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	dl := NewRedisDenylist(client)
	ctx := context.Background()

	t.Run("Revoke and check", func(t *testing.T) {
		require.NoError(t, dl.Revoke(ctx, "jti-1", time.Now().Add(time.Minute)))

		revoked, err := dl.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)

		ttl := s.TTL("revoked:jti-1")
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Minute)
	})

	t.Run("Unknown token", func(t *testing.T) {
		revoked, err := dl.IsRevoked(ctx, "jti-unknown")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("Expired token is not stored", func(t *testing.T) {
		require.NoError(t, dl.Revoke(ctx, "jti-old", time.Now().Add(-time.Minute)))
		assert.False(t, s.Exists("revoked:jti-old"))
	})

	t.Run("Entry disappears after TTL", func(t *testing.T) {
		require.NoError(t, dl.Revoke(ctx, "jti-2", time.Now().Add(time.Minute)))
		s.FastForward(2 * time.Minute)

		revoked, err := dl.IsRevoked(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}

func TestRedisDenylistNilClient(t *testing.T) {
	dl := NewRedisDenylist(nil)

	_, err := dl.IsRevoked(context.Background(), "jti")
	assert.Error(t, err)
	assert.Error(t, dl.Revoke(context.Background(), "jti", time.Now().Add(time.Minute)))
}

func TestNewRedisClient(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	addr := s.Addr()

	client, err := NewRedisClient(context.Background(), addr, "", 0)
	require.NoError(t, err)
	defer client.Close()

	// Nothing listens on addr once the server is gone.
	s.Close()
	_, err = NewRedisClient(context.Background(), addr, "", 0)
	assert.Error(t, err)
}
