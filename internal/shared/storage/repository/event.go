package repository

import (
	"context"

	"scales-admin/internal/shared/model"
)

// AppendLog 追加事件日志
func (s *Store) AppendLog(ctx context.Context, entry *model.LogEntry) error {
	return s.db.QueryRowContext(ctx, s.rebind(
		`INSERT INTO event_logs (timestamp, severity, source, task_id, message)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`),
		entry.Timestamp, entry.Severity, entry.Source, entry.TaskID, entry.Message,
	).Scan(&entry.ID)
}

// ListLogs 按时间倒序列出事件日志，severity 为空表示全部
func (s *Store) ListLogs(ctx context.Context, severity string, limit int) ([]*model.LogEntry, error) {
	query := `SELECT id, timestamp, severity, source, task_id, message FROM event_logs`
	args := []interface{}{}
	if severity != "" {
		query += ` WHERE severity = $1`
		args = append(args, severity)
	}
	query += ` ORDER BY timestamp DESC`
	if limit > 0 {
		query += ` LIMIT ` + itoa(limit)
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*model.LogEntry
	for rows.Next() {
		e := &model.LogEntry{}
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Severity, &e.Source, &e.TaskID, &e.Message); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
