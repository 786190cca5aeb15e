package model

import "time"

// TaskStatus 队列任务状态
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusActive    TaskStatus = "active"
	TaskStatusStuck     TaskStatus = "stuck"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusFailed    TaskStatus = "failed"
)

// QueueTask 工作队列任务（OneBox 下发的称重/贴标任务）
type QueueTask struct {
	ID        string     `json:"id" db:"id"` // 形如 T-001
	SKU       string     `json:"sku" db:"sku"`
	Scale     string     `json:"scale" db:"scale"` // 分配到的秤名称
	Status    TaskStatus `json:"status" db:"status"`
	Attempts  int        `json:"attempts" db:"attempts"`
	StartedAt *time.Time `json:"started_at,omitempty" db:"started_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// Retryable 是否允许重试（stuck / failed 的任务可重新入队）
func (t *QueueTask) Retryable() bool {
	return t.Status == TaskStatusStuck || t.Status == TaskStatusFailed
}
