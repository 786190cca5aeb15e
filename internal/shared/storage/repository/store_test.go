package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scales-admin/internal/shared/model"
	"scales-admin/internal/shared/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "repo_test.db")
	store, err := Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// ============================================================================
// 用户
// ============================================================================

func TestUserLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	empty, err := store.HasAnyUsers(ctx)
	require.NoError(t, err)
	assert.False(t, empty)

	user := &model.User{
		Username:     "alice",
		PasswordHash: "$2a$10$fakehash",
		Name:         "Alice",
		Email:        "alice@example.com",
		Role:         model.UserRoleOperator,
		IsActive:     true,
	}
	require.NoError(t, store.CreateUser(ctx, user))
	assert.Positive(t, user.ID)

	hasUsers, err := store.HasAnyUsers(ctx)
	require.NoError(t, err)
	assert.True(t, hasUsers)

	byName, err := store.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, user.ID, byName.ID)
	assert.Equal(t, model.UserRoleOperator, byName.Role)
	assert.True(t, byName.IsActive)
	assert.Nil(t, byName.LastLoginAt)

	byID, err := store.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "alice", byID.Username)
}

func TestGetUserMissReturnsNilNil(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.GetUserByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = store.GetUserByID(ctx, 12345)
	require.NoError(t, err)
	assert.Nil(t, user)
}

// 用户名大小写敏感："Alice" 和 "alice" 是两个账号
func TestUsernameCaseSensitive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, &model.User{
		Username: "alice", PasswordHash: "h", Role: model.UserRoleViewer, IsActive: true,
	}))

	user, err := store.GetUserByUsername(ctx, "Alice")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestDuplicateUsername(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, &model.User{
		Username: "alice", PasswordHash: "h", Role: model.UserRoleAdmin, IsActive: true,
	}))
	err := store.CreateUser(ctx, &model.User{
		Username: "alice", PasswordHash: "h2", Role: model.UserRoleViewer, IsActive: true,
	})
	require.Error(t, err)
	assert.True(t, storage.IsDuplicate(err))
}

func TestUpdateLastLogin(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := &model.User{Username: "alice", PasswordHash: "h", Role: model.UserRoleAdmin, IsActive: true}
	require.NoError(t, store.CreateUser(ctx, user))
	require.NoError(t, store.UpdateLastLogin(ctx, user.ID))

	reloaded, err := store.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	require.NotNil(t, reloaded.LastLoginAt)
	assert.WithinDuration(t, time.Now().UTC(), reloaded.LastLoginAt.UTC(), time.Minute)
}

func TestListUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, store.CreateUser(ctx, &model.User{
			Username: name, PasswordHash: "h", Role: model.UserRoleViewer, IsActive: true,
		}))
	}
	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

// ============================================================================
// 设备
// ============================================================================

func TestScaleLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	scale := &model.Scale{
		Name:     "ICS-001",
		Protocol: model.ScaleProtocolSICS,
		IP:       "10.0.0.11",
		Port:     4001,
		Status:   model.DeviceStatusOffline,
	}
	require.NoError(t, store.CreateScale(ctx, scale))
	assert.Positive(t, scale.ID)

	loaded, err := store.GetScale(ctx, scale.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "ICS-001", loaded.Name)
	assert.Equal(t, model.DeviceStatusOffline, loaded.Status)
	assert.Nil(t, loaded.LastSeenAt)

	// 探测回写：上线 + last_seen_at
	require.NoError(t, store.UpdateScaleStatus(ctx, scale.ID, model.DeviceStatusOnline, ""))
	loaded, err = store.GetScale(ctx, scale.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DeviceStatusOnline, loaded.Status)
	assert.NotNil(t, loaded.LastSeenAt)

	// 故障回写
	require.NoError(t, store.UpdateScaleStatus(ctx, scale.ID, model.DeviceStatusOffline, "connection refused"))
	loaded, err = store.GetScale(ctx, scale.ID)
	require.NoError(t, err)
	assert.Equal(t, "connection refused", loaded.LastError)

	// 配置更新
	loaded.IP = "10.0.0.12"
	loaded.Protocol = model.ScaleProtocolIND
	require.NoError(t, store.UpdateScale(ctx, loaded))
	loaded, err = store.GetScale(ctx, scale.ID)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.12", loaded.IP)
	assert.Equal(t, model.ScaleProtocolIND, loaded.Protocol)

	require.NoError(t, store.DeleteScale(ctx, scale.ID))
	gone, err := store.GetScale(ctx, scale.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestListScalesOrderedByName(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"ICS-003", "ICS-001", "ICS-002"} {
		require.NoError(t, store.CreateScale(ctx, &model.Scale{
			Name: name, Protocol: model.ScaleProtocolSICS, IP: "10.0.0.1", Port: 4001,
			Status: model.DeviceStatusOffline,
		}))
	}
	scales, err := store.ListScales(ctx)
	require.NoError(t, err)
	require.Len(t, scales, 3)
	assert.Equal(t, "ICS-001", scales[0].Name)
	assert.Equal(t, "ICS-003", scales[2].Name)
}

func TestPrinterLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	printer := &model.Printer{
		Name:   "ZPL-01",
		IP:     "10.0.0.21",
		Port:   9100,
		Status: model.DeviceStatusOffline,
	}
	require.NoError(t, store.CreatePrinter(ctx, printer))
	assert.Positive(t, printer.ID)

	printer.Status = model.DeviceStatusOnline
	printer.QueueLength = 3
	require.NoError(t, store.UpdatePrinter(ctx, printer))

	loaded, err := store.GetPrinter(ctx, printer.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, model.DeviceStatusOnline, loaded.Status)
	assert.Equal(t, 3, loaded.QueueLength)

	require.NoError(t, store.DeletePrinter(ctx, printer.ID))
	gone, err := store.GetPrinter(ctx, printer.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

// ============================================================================
// 路由规则
// ============================================================================

func TestRoutingRuleLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rule := &model.RoutingRule{
		Name:     "heavy goods",
		Type:     model.RoutingTypeManual,
		Scales:   []string{"ICS-001", "ICS-002"},
		Enabled:  true,
		Priority: 10,
	}
	require.NoError(t, store.CreateRoutingRule(ctx, rule))
	assert.Positive(t, rule.ID)

	// scales 列表 JSON 往返
	loaded, err := store.GetRoutingRule(ctx, rule.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, []string{"ICS-001", "ICS-002"}, loaded.Scales)
	assert.Equal(t, model.RoutingTypeManual, loaded.Type)

	require.NoError(t, store.SetRoutingRuleEnabled(ctx, rule.ID, false))
	loaded, err = store.GetRoutingRule(ctx, rule.ID)
	require.NoError(t, err)
	assert.False(t, loaded.Enabled)

	loaded.Scales = []string{"ICS-003"}
	loaded.Priority = 20
	require.NoError(t, store.UpdateRoutingRule(ctx, loaded))
	loaded, err = store.GetRoutingRule(ctx, rule.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"ICS-003"}, loaded.Scales)
	assert.Equal(t, 20, loaded.Priority)

	require.NoError(t, store.DeleteRoutingRule(ctx, rule.ID))
	gone, err := store.GetRoutingRule(ctx, rule.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestListRoutingRulesPriorityOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, p := range []int{5, 20, 10} {
		require.NoError(t, store.CreateRoutingRule(ctx, &model.RoutingRule{
			Name: "rule", Type: model.RoutingTypeRoundRobin, Scales: []string{},
			Enabled: true, Priority: p,
		}))
	}
	rules, err := store.ListRoutingRules(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 3)
	assert.Equal(t, 20, rules[0].Priority)
	assert.Equal(t, 10, rules[1].Priority)
	assert.Equal(t, 5, rules[2].Priority)
}

// ============================================================================
// 工作队列
// ============================================================================

func TestQueueTaskLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	task := &model.QueueTask{
		ID:     "T-001",
		SKU:    "SKU-9001",
		Scale:  "ICS-001",
		Status: model.TaskStatusPending,
	}
	require.NoError(t, store.CreateQueueTask(ctx, task))

	loaded, err := store.GetQueueTask(ctx, "T-001")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "SKU-9001", loaded.SKU)
	assert.Equal(t, model.TaskStatusPending, loaded.Status)

	require.NoError(t, store.UpdateQueueTaskStatus(ctx, "T-001", model.TaskStatusStuck))
	loaded, err = store.GetQueueTask(ctx, "T-001")
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusStuck, loaded.Status)
	assert.True(t, loaded.Retryable())
}

func TestRetryQueueTask(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	started := time.Now().Add(-time.Hour)
	require.NoError(t, store.CreateQueueTask(ctx, &model.QueueTask{
		ID: "T-002", SKU: "SKU-1", Scale: "ICS-001",
		Status: model.TaskStatusStuck, Attempts: 1, StartedAt: &started,
	}))

	require.NoError(t, store.RetryQueueTask(ctx, "T-002"))

	task, err := store.GetQueueTask(ctx, "T-002")
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, model.TaskStatusPending, task.Status)
	assert.Equal(t, 2, task.Attempts)
	assert.Nil(t, task.StartedAt)
}

func TestListAndCountQueueTasks(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	statuses := []model.TaskStatus{
		model.TaskStatusActive, model.TaskStatusActive,
		model.TaskStatusStuck, model.TaskStatusCompleted,
	}
	for i, st := range statuses {
		require.NoError(t, store.CreateQueueTask(ctx, &model.QueueTask{
			ID: "T-10" + string(rune('0'+i)), SKU: "SKU", Status: st,
		}))
	}

	all, err := store.ListQueueTasks(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	active, err := store.ListQueueTasks(ctx, "active", 0)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	limited, err := store.ListQueueTasks(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	count, err := store.CountQueueTasks(ctx, model.TaskStatusActive)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = store.CountQueueTasks(ctx, model.TaskStatusFailed)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

// ============================================================================
// 事件日志
// ============================================================================

func TestEventLogs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	entries := []*model.LogEntry{
		{Timestamp: base, Severity: model.SeverityInfo, Source: "Queue", TaskID: "T-001", Message: "task started"},
		{Timestamp: base.Add(time.Minute), Severity: model.SeverityError, Source: "Scale ICS-001", Message: "read timeout"},
		{Timestamp: base.Add(2 * time.Minute), Severity: model.SeverityWarning, Source: "Printer ZPL-01", Message: "queue backlog"},
	}
	for _, e := range entries {
		require.NoError(t, store.AppendLog(ctx, e))
		assert.Positive(t, e.ID)
	}

	all, err := store.ListLogs(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	// 时间倒序
	assert.Equal(t, "queue backlog", all[0].Message)
	assert.Equal(t, "task started", all[2].Message)

	errs, err := store.ListLogs(ctx, "error", 0)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "read timeout", errs[0].Message)

	limited, err := store.ListLogs(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
