package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLock(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(&Config{Addr: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()

	ok, err := client.AcquireLock(ctx, "lock:a", "owner-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.AcquireLock(ctx, "lock:a", "owner-2", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	// Another owner cannot release it.
	require.NoError(t, client.ReleaseLock(ctx, "lock:a", "owner-2"))
	assert.True(t, mr.Exists("lock:a"))

	require.NoError(t, client.ReleaseLock(ctx, "lock:a", "owner-1"))
	assert.False(t, mr.Exists("lock:a"))
}

func TestLockExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(&Config{Addr: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	_, err = client.AcquireLock(ctx, "lock:b", "owner-1", 10*time.Second)
	require.NoError(t, err)

	mr.FastForward(11 * time.Second)

	ok, err := client.AcquireLock(ctx, "lock:b", "owner-2", 10*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewRedisClientUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisClient(&Config{Addr: addr})
	assert.Error(t, err)
}
