package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fhuszti/asset-portal-go/internal/logger"
	"github.com/fhuszti/asset-portal-go/internal/model"
	"github.com/fhuszti/asset-portal-go/internal/port"
	"github.com/redis/go-redis/v9"
)

const catalogKey = "catalog:assets"

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string, ttl time.Duration) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb, ttl: ttl}
}

// GetCatalog returns the cached catalog, or (nil, nil) on a cache miss.
func (c *Cache) GetCatalog(ctx context.Context) ([]model.Asset, error) {
	val, err := c.client.Get(ctx, catalogKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var assets []model.Asset
	if err := json.Unmarshal([]byte(val), &assets); err != nil {
		return nil, fmt.Errorf("unmarshal failed: %w", err)
	}

	return assets, nil
}

// SetCatalog stores the probed catalog for the configured TTL. Failures are
// logged, not returned: a cold cache is never an error.
func (c *Cache) SetCatalog(ctx context.Context, assets []model.Asset) {
	data, err := json.Marshal(assets)
	if err != nil {
		logger.Errorf(ctx, "❌  Could not marshal catalog for caching: %v", err)
		return
	}

	if err := c.client.Set(ctx, catalogKey, data, c.ttl).Err(); err != nil {
		logger.Errorf(ctx, "❌  Redis set failed for catalog: %v", err)
	}
}

func (c *Cache) DeleteCatalog(ctx context.Context) error {
	if err := c.client.Del(ctx, catalogKey).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}
