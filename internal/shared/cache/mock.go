package cache

import (
	"context"
	"sync"
	"time"
)

// Mock 进程内 StatusCache 实现（测试和无 Redis 部署用）
type Mock struct {
	mu        sync.Mutex
	status    *FleetStatus
	expiresAt time.Time
}

var _ StatusCache = (*Mock)(nil)

// NewMock 创建进程内缓存
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) GetStatus(ctx context.Context) (*FleetStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status == nil || time.Now().After(m.expiresAt) {
		return nil, nil
	}
	return m.status, nil
}

func (m *Mock) SetStatus(ctx context.Context, status *FleetStatus, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = status
	m.expiresAt = time.Now().Add(ttl)
	return nil
}
