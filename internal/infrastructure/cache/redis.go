package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Abdulsz/toxic-chat-classifier-api/internal/domain/entity"
	"github.com/Abdulsz/toxic-chat-classifier-api/internal/infrastructure/config"
)

// NewRedisClient creates a Redis client and verifies connectivity
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// ResultCache caches classification results keyed by a digest of the
// input text. All methods are safe on a nil receiver, so callers can
// wire it unconditionally and run without Redis.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultCache creates a new ResultCache. A nil client yields a
// cache whose operations are no-ops.
func NewResultCache(client *redis.Client, ttl time.Duration) *ResultCache {
	if client == nil {
		return nil
	}
	return &ResultCache{client: client, ttl: ttl}
}

// Get returns a previously cached classification for text, if any
func (c *ResultCache) Get(ctx context.Context, text string) (*entity.Classification, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, resultKey(text)).Bytes()
	if err != nil {
		return nil, false
	}

	var result entity.Classification
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false
	}

	return &result, true
}

// Set stores a classification for text. Failures are ignored; the cache
// is an optimization, not a dependency.
func (c *ResultCache) Set(ctx context.Context, text string, result *entity.Classification) {
	if c == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		return
	}

	c.client.Set(ctx, resultKey(text), data, c.ttl)
}

func resultKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "toxicity:result:" + hex.EncodeToString(sum[:])
}
