package storage

import (
	"context"

	"scales-admin/internal/shared/model"
)

// UserStore 本地用户存储接口
//
// 认证核心只依赖这几个操作：按用户名/ID 查找、创建、
// 记录最后登录时间、判空。查找未命中返回 (nil, nil)，不返回 ErrNotFound，
// 调用方据此统一"不存在"和"查询成功但无结果"两种情况。
type UserStore interface {
	// CreateUser 创建用户，成功后回填 user.ID（数据库自增主键）
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	// UpdateLastLogin 记录最后登录时间（尽力而为，失败不阻断登录）
	UpdateLastLogin(ctx context.Context, id int64) error
	// HasAnyUsers 是否存在任何用户（首次启动引导判定）
	HasAnyUsers(ctx context.Context) (bool, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
}

// DeviceStore 秤 / 打印机设备存储接口
type DeviceStore interface {
	CreateScale(ctx context.Context, scale *model.Scale) error
	GetScale(ctx context.Context, id int64) (*model.Scale, error)
	ListScales(ctx context.Context) ([]*model.Scale, error)
	UpdateScale(ctx context.Context, scale *model.Scale) error
	UpdateScaleStatus(ctx context.Context, id int64, status model.DeviceStatus, lastError string) error
	DeleteScale(ctx context.Context, id int64) error

	CreatePrinter(ctx context.Context, printer *model.Printer) error
	GetPrinter(ctx context.Context, id int64) (*model.Printer, error)
	ListPrinters(ctx context.Context) ([]*model.Printer, error)
	UpdatePrinter(ctx context.Context, printer *model.Printer) error
	DeletePrinter(ctx context.Context, id int64) error
}

// RoutingStore 路由规则存储接口
type RoutingStore interface {
	CreateRoutingRule(ctx context.Context, rule *model.RoutingRule) error
	GetRoutingRule(ctx context.Context, id int64) (*model.RoutingRule, error)
	ListRoutingRules(ctx context.Context) ([]*model.RoutingRule, error)
	UpdateRoutingRule(ctx context.Context, rule *model.RoutingRule) error
	SetRoutingRuleEnabled(ctx context.Context, id int64, enabled bool) error
	DeleteRoutingRule(ctx context.Context, id int64) error
}

// QueueStore 工作队列存储接口
type QueueStore interface {
	CreateQueueTask(ctx context.Context, task *model.QueueTask) error
	GetQueueTask(ctx context.Context, id string) (*model.QueueTask, error)
	// ListQueueTasks 按状态过滤（status 为空表示全部），按创建时间倒序
	ListQueueTasks(ctx context.Context, status string, limit int) ([]*model.QueueTask, error)
	UpdateQueueTaskStatus(ctx context.Context, id string, status model.TaskStatus) error
	// RetryQueueTask 将任务重置为 pending 并累加 attempts
	RetryQueueTask(ctx context.Context, id string) error
	CountQueueTasks(ctx context.Context, status model.TaskStatus) (int, error)
}

// LogStore 事件日志存储接口
type LogStore interface {
	AppendLog(ctx context.Context, entry *model.LogEntry) error
	// ListLogs 按时间倒序，severity 为空表示全部
	ListLogs(ctx context.Context, severity string, limit int) ([]*model.LogEntry, error)
}

// PersistentStore 持久化存储完整接口
type PersistentStore interface {
	UserStore
	DeviceStore
	RoutingStore
	QueueStore
	LogStore

	Close() error
}
