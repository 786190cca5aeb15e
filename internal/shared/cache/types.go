package cache

import (
	"time"

	"scales-admin/internal/shared/model"
)

// KeyFleetStatus 舰队状态快照的 Redis 键
const KeyFleetStatus = "scales-admin:dashboard:status"

// DeviceCounts 设备在线统计
type DeviceCounts struct {
	Total   int `json:"total"`
	Online  int `json:"online"`
	Offline int `json:"offline"`
}

// QueueCounts 队列任务统计
type QueueCounts struct {
	Active int `json:"active"`
	Stuck  int `json:"stuck"`
}

// ConnectorStatus 连接器进程状态
type ConnectorStatus struct {
	Status string `json:"status"` // running | stopped
	Uptime string `json:"uptime"` // 形如 "5d 12h 34m"
}

// FleetStatus 仪表盘状态快照
type FleetStatus struct {
	Connector   ConnectorStatus   `json:"connector"`
	Scales      DeviceCounts      `json:"scales"`
	Printers    DeviceCounts      `json:"printers"`
	Queue       QueueCounts       `json:"queue"`
	Errors      []*model.LogEntry `json:"errors"`
	GeneratedAt time.Time         `json:"generated_at"`
}
