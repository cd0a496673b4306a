package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// checkAndIncrScript reads, compares against the cap, and conditionally
// increments in one server-side step. Returns {allowed, count, ttl}.
// The EXPIRE is applied only on the first increment so the window is
// fixed, not sliding.
const checkAndIncrScript = `
local current = tonumber(redis.call("GET", KEYS[1]) or "0")
local cap = tonumber(ARGV[1])
if current >= cap then
  local ttl = redis.call("TTL", KEYS[1])
  return {0, current, ttl}
end
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[2])
end
local ttl = redis.call("TTL", KEYS[1])
return {1, count, ttl}
`

var checkAndIncrLua = redis.NewScript(checkAndIncrScript)

// Redis is the production Store backed by a shared Redis instance.
// State written by one phoneAuth instance is immediately visible to all
// others sharing the client.
type Redis struct {
	client redis.UniversalClient
}

// NewRedis creates a Redis-backed store from the given client. The
// client is injected, never constructed here, so the composition root
// owns connection lifecycle and tests can point at miniredis.
func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client}
}

// Get returns the value at key, or ErrNotFound.
func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return val, nil
}

// SetWithTTL writes value at key, replacing any prior value and TTL.
func (r *Redis) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Delete removes the given keys. Deleting a missing key is a no-op.
func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// CheckAndIncrement runs the Lua gate script. The script is the only
// writer of counter keys, so the cap can never be overshot regardless
// of how many callers race on the same key.
func (r *Redis) CheckAndIncrement(ctx context.Context, key string, cap int, ttl time.Duration) (bool, int, time.Duration, error) {
	res, err := checkAndIncrLua.Run(ctx, r.client, []string{key}, cap, int(ttl.Seconds())).Int64Slice()
	if err != nil {
		return false, 0, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(res) != 3 {
		return false, 0, 0, fmt.Errorf("%w: unexpected script reply length %d", ErrUnavailable, len(res))
	}

	allowed := res[0] == 1
	count := int(res[1])

	// TTL returns -1 (no expiry) or -2 (missing) as negative values.
	remaining := time.Duration(0)
	if res[2] > 0 {
		remaining = time.Duration(res[2]) * time.Second
	}

	return allowed, count, remaining, nil
}

// TTLRemaining reports the remaining lifetime of key.
func (r *Redis) TTLRemaining(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := r.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if ttl < 0 {
		return 0, ErrNotFound
	}
	return ttl, nil
}
