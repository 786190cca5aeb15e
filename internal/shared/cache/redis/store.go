// Package redis StatusCache 的 Redis 实现
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"scales-admin/internal/shared/cache"
)

// Store Redis 缓存实现
type Store struct {
	client *redis.Client
}

var _ cache.StatusCache = (*Store)(nil)

// NewStoreFromClient 复用已有连接创建缓存
func NewStoreFromClient(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) GetStatus(ctx context.Context) (*cache.FleetStatus, error) {
	data, err := s.client.Get(ctx, cache.KeyFleetStatus).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get fleet status: %w", err)
	}

	var status cache.FleetStatus
	if err := json.Unmarshal(data, &status); err != nil {
		// 缓存内容损坏按未命中处理，下一次 Set 覆盖
		return nil, nil
	}
	return &status, nil
}

func (s *Store) SetStatus(ctx context.Context, status *cache.FleetStatus, ttl time.Duration) error {
	data, err := json.Marshal(status)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, cache.KeyFleetStatus, data, ttl).Err()
}
