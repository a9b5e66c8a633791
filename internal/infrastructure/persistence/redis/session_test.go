package redis

import (
	"context"
	"net"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-api/internal/infrastructure/config"
)

// newTestClient 需要REDIS_TEST_ADDR，未设置时跳过
func newTestClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	host, p, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	port, err := strconv.Atoi(p)
	require.NoError(t, err)
	client := redis.NewClient(Options(config.RedisConfig{Host: host, Port: port, DB: 15}))
	t.Cleanup(func() {
		_ = client.FlushDB(context.Background()).Err()
		_ = client.Close()
	})
	require.NoError(t, client.Ping(context.Background()).Err())
	return client
}

func TestOptions(t *testing.T) {
	opts := Options(config.RedisConfig{Host: "cache", Port: 6380, DB: 2, PoolSize: 20, DialTimeout: time.Second})
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 20, opts.PoolSize)
	assert.Equal(t, time.Second, opts.DialTimeout)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "bookstore:session:42", sessionKey(42))
	assert.Equal(t, "bookstore:blacklist:abc", blacklistKey("abc"))
}

func TestRevoke_NoopForExpiredToken(t *testing.T) {
	// ttl<=0时不访问Redis，nil客户端也不会被调用
	store := NewSessionStore(nil)
	assert.NoError(t, store.Revoke(context.Background(), "jti-1", 0))
	assert.Error(t, store.Revoke(context.Background(), "", time.Minute))

	revoked, err := store.IsRevoked(context.Background(), "")
	assert.NoError(t, err)
	assert.False(t, revoked)
}

func TestSessionStore_Redis(t *testing.T) {
	client := newTestClient(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	t.Run("黑名单", func(t *testing.T) {
		require.NoError(t, store.Revoke(ctx, "jti-1", time.Minute))
		revoked, err := store.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)

		revoked, err = store.IsRevoked(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("会话读写", func(t *testing.T) {
		loginAt := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
		require.NoError(t, store.SaveSession(ctx, 1, Session{
			Username: "admin", Role: "admin", ClientIP: "10.0.0.1", TokenID: "jti-9", LoginAt: loginAt,
		}, time.Hour))

		sess, err := store.GetSession(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "admin", sess.Username)
		assert.Equal(t, loginAt, sess.LoginAt)

		ttl, err := client.TTL(ctx, sessionKey(1)).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))

		require.NoError(t, store.DeleteSession(ctx, 1))
		_, err = store.GetSession(ctx, 1)
		assert.Error(t, err)
	})
}
