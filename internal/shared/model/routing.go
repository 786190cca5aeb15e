package model

import "time"

// RoutingType 路由策略类型
type RoutingType string

const (
	// RoutingTypeRoundRobin 轮询分配
	RoutingTypeRoundRobin RoutingType = "round-robin"

	// RoutingTypeManual 手动指定
	RoutingTypeManual RoutingType = "manual"

	// RoutingTypeCapacity 按容量分配
	RoutingTypeCapacity RoutingType = "capacity"
)

// Valid 是否为已知路由类型
func (t RoutingType) Valid() bool {
	switch t {
	case RoutingTypeRoundRobin, RoutingTypeManual, RoutingTypeCapacity:
		return true
	}
	return false
}

// RoutingRule 任务路由规则：决定任务分配到哪些秤
type RoutingRule struct {
	ID        int64       `json:"id" db:"id"`
	Name      string      `json:"name" db:"name"`
	Type      RoutingType `json:"type" db:"type"`
	Scales    []string    `json:"scales" db:"scales"` // 目标秤名称列表，JSON 存储
	Enabled   bool        `json:"enabled" db:"enabled"`
	Priority  int         `json:"priority" db:"priority"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}
