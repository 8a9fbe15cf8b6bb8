package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"billbook/internal/config"
	"billbook/internal/port"
	"billbook/internal/pricing"
)

// referenceKeyFmt keys one reference snapshot per country.
const referenceKeyFmt = "billbook:refs:%s"

// ReferenceKey returns the Redis key holding country's reference snapshot.
func ReferenceKey(country string) string {
	return fmt.Sprintf(referenceKeyFmt, country)
}

// NewClient connects to Redis and pings it once.
func NewClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

type referenceCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReferenceCache creates a Redis-backed ReferenceCache storing JSON snapshots for ttl.
func NewReferenceCache(client *redis.Client, ttl time.Duration) port.ReferenceCache {
	return &referenceCache{client: client, ttl: ttl}
}

func (c *referenceCache) Get(ctx context.Context, country string) (*pricing.ReferenceData, bool, error) {
	data, err := c.client.Get(ctx, ReferenceKey(country)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("referenceCache.Get: %w", err)
	}

	var refs pricing.ReferenceData
	if err := json.Unmarshal(data, &refs); err != nil {
		return nil, false, fmt.Errorf("referenceCache.Get decode: %w", err)
	}
	return &refs, true, nil
}

func (c *referenceCache) Set(ctx context.Context, country string, data *pricing.ReferenceData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("referenceCache.Set encode: %w", err)
	}
	if err := c.client.Set(ctx, ReferenceKey(country), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("referenceCache.Set: %w", err)
	}
	return nil
}

func (c *referenceCache) Invalidate(ctx context.Context, country string) error {
	if err := c.client.Del(ctx, ReferenceKey(country)).Err(); err != nil {
		return fmt.Errorf("referenceCache.Invalidate: %w", err)
	}
	return nil
}
