package redis

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilClient_LockIsNoop(t *testing.T) {
	var c *Client
	ctx := context.Background()

	release, err := c.AcquirePunchLock(ctx, "52998224725")
	require.NoError(t, err)
	assert.NoError(t, release(ctx))

	// A second acquire does not block either.
	_, err = c.AcquirePunchLock(ctx, "52998224725")
	assert.NoError(t, err)
	assert.NoError(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}

func TestClient_PunchLock(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()

	c, err := NewClient(addr, os.Getenv("TEST_REDIS_PASSWORD"), 0)
	require.NoError(t, err)
	defer c.Close()

	release, err := c.AcquirePunchLock(ctx, "11144477735")
	require.NoError(t, err)

	_, err = c.AcquirePunchLock(ctx, "11144477735")
	assert.ErrorIs(t, err, ErrLocked)

	other, err := c.AcquirePunchLock(ctx, "52998224725")
	require.NoError(t, err)
	require.NoError(t, other(ctx))

	require.NoError(t, release(ctx))

	again, err := c.AcquirePunchLock(ctx, "11144477735")
	require.NoError(t, err)
	assert.NoError(t, again(ctx))
}
