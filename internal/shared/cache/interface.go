// Package cache 定义缓存层抽象接口
//
// 仪表盘状态快照的聚合查询涉及多表 COUNT，高频轮询时走缓存。
// Redis 实现在 redis/ 子包，无 Redis 部署时注入 Mock（进程内缓存）。
package cache

import (
	"context"
	"time"
)

// StatusCache 舰队状态快照缓存
type StatusCache interface {
	// GetStatus 读取快照，未命中或已过期返回 (nil, nil)
	GetStatus(ctx context.Context) (*FleetStatus, error)

	// SetStatus 写入快照并设置过期时间
	SetStatus(ctx context.Context, status *FleetStatus, ttl time.Duration) error
}
