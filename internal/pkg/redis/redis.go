package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// ErrLocked is returned when another caller holds the lock.
var ErrLocked = errors.New("lock is held by another caller")

// Client wraps go-redis. A nil *Client is valid and turns every lock into a no-op,
// which is how the service runs without REDIS_ADDR.
type Client struct {
	rdb     *goredis.Client
	lockTTL time.Duration
}

// NewClient connects and pings the server.
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	slog.Info("redis connected", "addr", addr)

	return &Client{rdb: rdb, lockTTL: 15 * time.Second}, nil
}

// Ping reports whether the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

// Close closes the connection pool.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}

// ── Punch lock ──

const punchLockPrefix = "ponto:punch-lock:"

// Deletes the key only if it still holds our token.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// AcquirePunchLock takes the per-subject lock that spans evaluation, evidence
// upload and append. The returned release func must be called once.
func (c *Client) AcquirePunchLock(ctx context.Context, subjectID string) (func(context.Context) error, error) {
	if c == nil {
		return func(context.Context) error { return nil }, nil
	}

	key := punchLockPrefix + subjectID
	token := uuid.NewString()

	ok, err := c.rdb.SetNX(ctx, key, token, c.lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire punch lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}

	release := func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, c.rdb, []string{key}, token).Err(); err != nil && !errors.Is(err, goredis.Nil) {
			return fmt.Errorf("failed to release punch lock: %w", err)
		}
		return nil
	}
	return release, nil
}
