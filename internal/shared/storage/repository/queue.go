package repository

import (
	"context"
	"database/sql"

	"scales-admin/internal/shared/model"
)

const queueTaskColumns = `id, sku, scale, status, attempts, started_at, created_at, updated_at`

// CreateQueueTask 创建队列任务（ID 由 OneBox 下发，形如 T-001）
func (s *Store) CreateQueueTask(ctx context.Context, task *model.QueueTask) error {
	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO queue_tasks (id, sku, scale, status, attempts, started_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`),
		task.ID, task.SKU, task.Scale, task.Status, task.Attempts, task.StartedAt)
	return err
}

// GetQueueTask 查找队列任务，未命中返回 (nil, nil)
func (s *Store) GetQueueTask(ctx context.Context, id string) (*model.QueueTask, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT `+queueTaskColumns+` FROM queue_tasks WHERE id = $1`), id)
	return scanQueueTask(row)
}

// ListQueueTasks 列出队列任务，status 为空表示全部
func (s *Store) ListQueueTasks(ctx context.Context, status string, limit int) ([]*model.QueueTask, error) {
	query := `SELECT ` + queueTaskColumns + ` FROM queue_tasks`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`
	if limit > 0 {
		query += ` LIMIT ` + itoa(limit)
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*model.QueueTask
	for rows.Next() {
		t := &model.QueueTask{}
		var startedAt sql.NullTime
		if err := rows.Scan(&t.ID, &t.SKU, &t.Scale, &t.Status, &t.Attempts,
			&startedAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		if startedAt.Valid {
			t.StartedAt = &startedAt.Time
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// UpdateQueueTaskStatus 更新任务状态
func (s *Store) UpdateQueueTaskStatus(ctx context.Context, id string, status model.TaskStatus) error {
	_, err := s.db.ExecContext(ctx, s.rebind(
		`UPDATE queue_tasks SET status = $1, updated_at = NOW() WHERE id = $2`),
		status, id)
	return err
}

// RetryQueueTask 重新入队：状态重置为 pending，attempts + 1，清空 started_at
func (s *Store) RetryQueueTask(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, s.rebind(
		`UPDATE queue_tasks SET status = 'pending', attempts = attempts + 1, started_at = NULL, updated_at = NOW()
		 WHERE id = $1`), id)
	return err
}

// CountQueueTasks 统计指定状态的任务数（仪表盘用）
func (s *Store) CountQueueTasks(ctx context.Context, status model.TaskStatus) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT COUNT(*) FROM queue_tasks WHERE status = $1`), status).Scan(&count)
	return count, err
}

func scanQueueTask(row *sql.Row) (*model.QueueTask, error) {
	t := &model.QueueTask{}
	var startedAt sql.NullTime
	err := row.Scan(&t.ID, &t.SKU, &t.Scale, &t.Status, &t.Attempts,
		&startedAt, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if startedAt.Valid {
		t.StartedAt = &startedAt.Time
	}
	return t, nil
}
