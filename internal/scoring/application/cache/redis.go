package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	sharedDomain "github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
)

const keyPrefix = "focusos:scores:"

// RedisConfig configures the Redis cache and its circuit breaker.
type RedisConfig struct {
	TTL time.Duration

	// MaxRequests is the maximum number of requests allowed in half-open state.
	MaxRequests uint32
	// Interval is the cyclic period of the closed state.
	Interval time.Duration
	// Timeout is the period of the open state.
	Timeout time.Duration
	// FailureThreshold trips the breaker after this many consecutive failures.
	FailureThreshold uint32
}

// DefaultRedisConfig returns a sensible default configuration.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		TTL:              DefaultTTL,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 3,
	}
}

// RedisCache keeps one hash per user, one field per task.
type RedisCache struct {
	client  *redis.Client
	clock   sharedDomain.Clock
	config  RedisConfig
	breaker *gobreaker.CircuitBreaker[any]
	logger  *slog.Logger
}

// NewRedisCache creates a Redis-backed cache.
func NewRedisCache(client *redis.Client, clock sharedDomain.Clock, cfg RedisConfig, logger *slog.Logger) *RedisCache {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &RedisCache{client: client, clock: clock, config: cfg, logger: logger}
	c.breaker = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "score-cache",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
	return c
}

// Get reads the user's hash and keeps the entries inside the TTL.
func (c *RedisCache) Get(ctx context.Context, userID uuid.UUID) (*Snapshot, error) {
	result, err := c.execute("get", func() (any, error) {
		return c.client.HGetAll(ctx, key(userID)).Result()
	})
	if err != nil {
		return nil, err
	}

	entries, err := decodeEntries(result.(map[string]string))
	if err != nil {
		c.logger.Warn("discarding unreadable score cache", "user_id", userID, "error", err)
		return nil, nil
	}
	return fresh(entries, c.clock.Now().Add(-c.config.TTL)), nil
}

// Put writes one hash field per task and refreshes the key expiry.
func (c *RedisCache) Put(ctx context.Context, userID uuid.UUID, snapshot Snapshot) error {
	_, err := c.execute("put", func() (any, error) {
		k := key(userID)
		raw, err := c.client.HGetAll(ctx, k).Result()
		if err != nil {
			return nil, err
		}

		existing := make(map[uuid.UUID]entry, len(raw))
		if entries, err := decodeEntries(raw); err == nil {
			for _, e := range entries {
				existing[e.Task.ID] = e
			}
		}
		merged := merge(existing, snapshot)

		fields := make([]any, 0, 2*len(merged))
		for id, e := range merged {
			b, err := json.Marshal(e)
			if err != nil {
				return nil, fmt.Errorf("failed to encode score entry: %w", err)
			}
			fields = append(fields, id.String(), string(b))
		}
		if len(fields) == 0 {
			return nil, nil
		}

		return c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, k, fields...)
			pipe.Expire(ctx, k, c.config.TTL)
			return nil
		})
	})
	return err
}

// Invalidate deletes the user's key.
func (c *RedisCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	_, err := c.execute("invalidate", func() (any, error) {
		return nil, c.client.Del(ctx, key(userID)).Err()
	})
	return err
}

// execute runs a Redis call with circuit breaker protection.
func (c *RedisCache) execute(operation string, fn func() (any, error)) (any, error) {
	result, err := c.breaker.Execute(fn)
	if err != nil {
		c.logger.Warn("score cache operation failed", "operation", operation, "error", err)
		return nil, fmt.Errorf("score cache %s: %w", operation, err)
	}
	return result, nil
}

func key(userID uuid.UUID) string {
	return keyPrefix + userID.String()
}

func decodeEntries(raw map[string]string) ([]entry, error) {
	entries := make([]entry, 0, len(raw))
	for field, value := range raw {
		var e entry
		if err := json.Unmarshal([]byte(value), &e); err != nil {
			return nil, fmt.Errorf("field %s: %w", field, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
