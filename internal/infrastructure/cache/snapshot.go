package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"ranking-insight/internal/domain/ranking"

	"github.com/redis/go-redis/v9"
)

// SnapshotCache 以 category+day 為鍵快取即時排名快照。
type SnapshotCache interface {
	Get(ctx context.Context, category string, day time.Time) ([]ranking.RankRecord, bool)
	Set(ctx context.Context, category string, day time.Time, rows []ranking.RankRecord) error
}

func snapshotKey(category string, day time.Time) string {
	return fmt.Sprintf("ranking:snapshot:%s:%s", category, day.Format(ranking.DateLayout))
}

// RedisSnapshotCache 將快照以 JSON 存在 Redis。
type RedisSnapshotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisSnapshotCache 建立 Redis 快取。
func NewRedisSnapshotCache(rdb *redis.Client, ttl time.Duration) *RedisSnapshotCache {
	return &RedisSnapshotCache{rdb: rdb, ttl: ttl}
}

// Get 讀取快照；不存在或解碼失敗時回傳 false。
func (c *RedisSnapshotCache) Get(ctx context.Context, category string, day time.Time) ([]ranking.RankRecord, bool) {
	raw, err := c.rdb.Get(ctx, snapshotKey(category, day)).Bytes()
	if err != nil {
		return nil, false
	}
	var rows []ranking.RankRecord
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, false
	}
	return rows, true
}

// Set 寫入快照。
func (c *RedisSnapshotCache) Set(ctx context.Context, category string, day time.Time, rows []ranking.RankRecord) error {
	payload, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, snapshotKey(category, day), payload, c.ttl).Err()
}

// Ping 確認 Redis 可連線。
func Ping(ctx context.Context, rdb *redis.Client) error {
	if err := rdb.Ping(ctx).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

// MemorySnapshotCache 為未設定 Redis 時的行程內快取。
type MemorySnapshotCache struct {
	mu   sync.RWMutex
	data map[string][]ranking.RankRecord
}

// NewMemorySnapshotCache 建立行程內快取。
func NewMemorySnapshotCache() *MemorySnapshotCache {
	return &MemorySnapshotCache{data: make(map[string][]ranking.RankRecord)}
}

func (c *MemorySnapshotCache) Get(_ context.Context, category string, day time.Time) ([]ranking.RankRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rows, ok := c.data[snapshotKey(category, day)]
	return rows, ok
}

func (c *MemorySnapshotCache) Set(_ context.Context, category string, day time.Time, rows []ranking.RankRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[snapshotKey(category, day)] = rows
	return nil
}
