package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/billingfox/ozonator/internal/config"
	"github.com/billingfox/ozonator/internal/domain"
	"github.com/redis/go-redis/v9"
)

const demandTableKey = "demand:table"

// DemandCache caches the reconciled demand table. The table is a view
// rebuilt from the stores on every miss, so invalidation after an
// update run is enough for consistency.
type DemandCache interface {
	Get(ctx context.Context) (*domain.DemandTable, bool, error)
	Set(ctx context.Context, table *domain.DemandTable) error
	Invalidate(ctx context.Context) error
}

type redisDemandCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopDemandCache struct{}

func NewDemandCache(cfg config.CacheConfig) (DemandCache, error) {
	if !cfg.Enabled {
		return &noopDemandCache{}, nil
	}

	client, err := NewRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(cfg.DemandTTLSec) * time.Second
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	return &redisDemandCache{client: client, ttl: ttl}, nil
}

func NewNoopDemandCache() DemandCache {
	return &noopDemandCache{}
}

func (c *redisDemandCache) Get(ctx context.Context) (*domain.DemandTable, bool, error) {
	payload, err := c.client.Get(ctx, demandTableKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var table domain.DemandTable
	if err := json.Unmarshal(payload, &table); err != nil {
		return nil, false, fmt.Errorf("decode demand table cache: %w", err)
	}
	return &table, true, nil
}

func (c *redisDemandCache) Set(ctx context.Context, table *domain.DemandTable) error {
	payload, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("encode demand table cache: %w", err)
	}
	if err := c.client.Set(ctx, demandTableKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisDemandCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, demandTableKey).Err()
}

func (n *noopDemandCache) Get(ctx context.Context) (*domain.DemandTable, bool, error) {
	return nil, false, nil
}

func (n *noopDemandCache) Set(ctx context.Context, table *domain.DemandTable) error {
	return nil
}

func (n *noopDemandCache) Invalidate(ctx context.Context) error {
	return nil
}
