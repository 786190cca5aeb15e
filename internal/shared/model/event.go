package model

import "time"

// Severity 事件严重级别
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// LogEntry 事件日志（设备/队列/同步事件，监控页和仪表盘错误列表的数据源）
type LogEntry struct {
	ID        int64     `json:"id" db:"id"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	Severity  Severity  `json:"severity" db:"severity"`
	Source    string    `json:"source" db:"source"` // 如 "Scale ICS-001"、"Printer ZPL-01"、"OneBox"、"Queue"
	TaskID    string    `json:"task_id,omitempty" db:"task_id"`
	Message   string    `json:"message" db:"message"`
}
