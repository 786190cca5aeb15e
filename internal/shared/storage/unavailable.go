package storage

import (
	"context"

	"scales-admin/internal/shared/model"
)

// Unavailable 未配置数据库时的降级存储实现
//
// 读操作返回空结果，写操作返回 ErrUnavailable。
// 这样登录等依赖存储的操作统一失败，而仪表盘等只读页面
// 仍可在无数据库的部署中工作。
type Unavailable struct{}

var _ PersistentStore = (*Unavailable)(nil)

// NewUnavailable 创建降级存储
func NewUnavailable() *Unavailable {
	return &Unavailable{}
}

func (u *Unavailable) CreateUser(ctx context.Context, user *model.User) error { return ErrUnavailable }
func (u *Unavailable) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return nil, nil
}
func (u *Unavailable) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	return nil, nil
}
func (u *Unavailable) UpdateLastLogin(ctx context.Context, id int64) error { return ErrUnavailable }
func (u *Unavailable) HasAnyUsers(ctx context.Context) (bool, error)       { return false, ErrUnavailable }
func (u *Unavailable) ListUsers(ctx context.Context) ([]*model.User, error) {
	return nil, nil
}

func (u *Unavailable) CreateScale(ctx context.Context, scale *model.Scale) error {
	return ErrUnavailable
}
func (u *Unavailable) GetScale(ctx context.Context, id int64) (*model.Scale, error) {
	return nil, nil
}
func (u *Unavailable) ListScales(ctx context.Context) ([]*model.Scale, error) { return nil, nil }
func (u *Unavailable) UpdateScale(ctx context.Context, scale *model.Scale) error {
	return ErrUnavailable
}
func (u *Unavailable) UpdateScaleStatus(ctx context.Context, id int64, status model.DeviceStatus, lastError string) error {
	return ErrUnavailable
}
func (u *Unavailable) DeleteScale(ctx context.Context, id int64) error { return ErrUnavailable }

func (u *Unavailable) CreatePrinter(ctx context.Context, printer *model.Printer) error {
	return ErrUnavailable
}
func (u *Unavailable) GetPrinter(ctx context.Context, id int64) (*model.Printer, error) {
	return nil, nil
}
func (u *Unavailable) ListPrinters(ctx context.Context) ([]*model.Printer, error) { return nil, nil }
func (u *Unavailable) UpdatePrinter(ctx context.Context, printer *model.Printer) error {
	return ErrUnavailable
}
func (u *Unavailable) DeletePrinter(ctx context.Context, id int64) error { return ErrUnavailable }

func (u *Unavailable) CreateRoutingRule(ctx context.Context, rule *model.RoutingRule) error {
	return ErrUnavailable
}
func (u *Unavailable) GetRoutingRule(ctx context.Context, id int64) (*model.RoutingRule, error) {
	return nil, nil
}
func (u *Unavailable) ListRoutingRules(ctx context.Context) ([]*model.RoutingRule, error) {
	return nil, nil
}
func (u *Unavailable) UpdateRoutingRule(ctx context.Context, rule *model.RoutingRule) error {
	return ErrUnavailable
}
func (u *Unavailable) SetRoutingRuleEnabled(ctx context.Context, id int64, enabled bool) error {
	return ErrUnavailable
}
func (u *Unavailable) DeleteRoutingRule(ctx context.Context, id int64) error { return ErrUnavailable }

func (u *Unavailable) CreateQueueTask(ctx context.Context, task *model.QueueTask) error {
	return ErrUnavailable
}
func (u *Unavailable) GetQueueTask(ctx context.Context, id string) (*model.QueueTask, error) {
	return nil, nil
}
func (u *Unavailable) ListQueueTasks(ctx context.Context, status string, limit int) ([]*model.QueueTask, error) {
	return nil, nil
}
func (u *Unavailable) UpdateQueueTaskStatus(ctx context.Context, id string, status model.TaskStatus) error {
	return ErrUnavailable
}
func (u *Unavailable) RetryQueueTask(ctx context.Context, id string) error { return ErrUnavailable }
func (u *Unavailable) CountQueueTasks(ctx context.Context, status model.TaskStatus) (int, error) {
	return 0, nil
}

func (u *Unavailable) AppendLog(ctx context.Context, entry *model.LogEntry) error {
	return ErrUnavailable
}
func (u *Unavailable) ListLogs(ctx context.Context, severity string, limit int) ([]*model.LogEntry, error) {
	return nil, nil
}

func (u *Unavailable) Close() error { return nil }
