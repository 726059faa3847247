package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dhe-dashboard/backend-go/internal/config"
	"github.com/dhe-dashboard/backend-go/internal/domain"
)

const snapshotKey = "dashboard:snapshot"

// SnapshotCache stores the latest pipeline snapshot. Get reports a miss
// rather than an error when nothing is cached yet.
type SnapshotCache interface {
	Get(ctx context.Context) (*domain.Snapshot, bool, error)
	Set(ctx context.Context, snap *domain.Snapshot) error
	Invalidate(ctx context.Context) error
}

// NewSnapshotCache returns a redis-backed cache when caching is enabled,
// otherwise an in-process one. Redis keeps the snapshot warm across restarts
// so the first request after a deploy does not pay a full sheet fetch.
func NewSnapshotCache(cfg config.CacheConfig) (SnapshotCache, error) {
	if !cfg.Enabled {
		return NewMemoryCache(), nil
	}

	client, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisSnapshotCache{
		client: client,
		ttl:    time.Duration(cfg.SnapshotTTLSeconds) * time.Second,
	}, nil
}

type redisSnapshotCache struct {
	client *redis.Client
	ttl    time.Duration // 0 means no expiry; refresh replaces the key
}

func (c *redisSnapshotCache) Get(ctx context.Context) (*domain.Snapshot, bool, error) {
	payload, err := c.client.Get(ctx, snapshotKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, false, fmt.Errorf("decode snapshot cache: %w", err)
	}
	return &snap, true, nil
}

func (c *redisSnapshotCache) Set(ctx context.Context, snap *domain.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot cache: %w", err)
	}
	if err := c.client.Set(ctx, snapshotKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisSnapshotCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, snapshotKey).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// memorySnapshotCache is the in-process fallback used when redis is not
// configured and in tests.
type memorySnapshotCache struct {
	mu   sync.RWMutex
	snap *domain.Snapshot
}

func NewMemoryCache() SnapshotCache {
	return &memorySnapshotCache{}
}

func (c *memorySnapshotCache) Get(_ context.Context) (*domain.Snapshot, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snap == nil {
		return nil, false, nil
	}
	return c.snap, true, nil
}

func (c *memorySnapshotCache) Set(_ context.Context, snap *domain.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = snap
	return nil
}

func (c *memorySnapshotCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = nil
	return nil
}

// noopSnapshotCache disables caching entirely; every read is a miss.
type noopSnapshotCache struct{}

func NewNoopCache() SnapshotCache {
	return noopSnapshotCache{}
}

func (noopSnapshotCache) Get(context.Context) (*domain.Snapshot, bool, error) { return nil, false, nil }
func (noopSnapshotCache) Set(context.Context, *domain.Snapshot) error         { return nil }
func (noopSnapshotCache) Invalidate(context.Context) error                    { return nil }
