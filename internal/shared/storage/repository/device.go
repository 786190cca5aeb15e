package repository

import (
	"context"
	"database/sql"

	"scales-admin/internal/shared/model"
)

// ============================================================================
// Scale - 联网秤
// ============================================================================

const scaleColumns = `id, name, protocol, ip, port, status, last_error, last_seen_at, created_at, updated_at`

// CreateScale 创建秤记录
func (s *Store) CreateScale(ctx context.Context, scale *model.Scale) error {
	return s.db.QueryRowContext(ctx, s.rebind(
		`INSERT INTO scales (name, protocol, ip, port, status, last_error, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		 RETURNING id`),
		scale.Name, scale.Protocol, scale.IP, scale.Port, scale.Status, scale.LastError,
	).Scan(&scale.ID)
}

// GetScale 查找秤，未命中返回 (nil, nil)
func (s *Store) GetScale(ctx context.Context, id int64) (*model.Scale, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT `+scaleColumns+` FROM scales WHERE id = $1`), id)
	return scanScale(row)
}

// ListScales 列出所有秤
func (s *Store) ListScales(ctx context.Context) ([]*model.Scale, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+scaleColumns+` FROM scales ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scales []*model.Scale
	for rows.Next() {
		sc, err := scanScaleRows(rows)
		if err != nil {
			return nil, err
		}
		scales = append(scales, sc)
	}
	return scales, rows.Err()
}

// UpdateScale 更新秤的连接配置
func (s *Store) UpdateScale(ctx context.Context, scale *model.Scale) error {
	_, err := s.db.ExecContext(ctx, s.rebind(
		`UPDATE scales SET name = $1, protocol = $2, ip = $3, port = $4, updated_at = NOW()
		 WHERE id = $5`),
		scale.Name, scale.Protocol, scale.IP, scale.Port, scale.ID)
	return err
}

// UpdateScaleStatus 更新秤的在线状态（连接探测结果回写）
func (s *Store) UpdateScaleStatus(ctx context.Context, id int64, status model.DeviceStatus, lastError string) error {
	_, err := s.db.ExecContext(ctx, s.rebind(
		`UPDATE scales SET status = $1, last_error = $2, last_seen_at = NOW(), updated_at = NOW()
		 WHERE id = $3`),
		status, lastError, id)
	return err
}

// DeleteScale 删除秤
func (s *Store) DeleteScale(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM scales WHERE id = $1`), id)
	return err
}

func scanScale(row *sql.Row) (*model.Scale, error) {
	sc := &model.Scale{}
	var lastSeen sql.NullTime
	err := row.Scan(&sc.ID, &sc.Name, &sc.Protocol, &sc.IP, &sc.Port,
		&sc.Status, &sc.LastError, &lastSeen, &sc.CreatedAt, &sc.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if lastSeen.Valid {
		sc.LastSeenAt = &lastSeen.Time
	}
	return sc, nil
}

func scanScaleRows(rows *sql.Rows) (*model.Scale, error) {
	sc := &model.Scale{}
	var lastSeen sql.NullTime
	if err := rows.Scan(&sc.ID, &sc.Name, &sc.Protocol, &sc.IP, &sc.Port,
		&sc.Status, &sc.LastError, &lastSeen, &sc.CreatedAt, &sc.UpdatedAt); err != nil {
		return nil, err
	}
	if lastSeen.Valid {
		sc.LastSeenAt = &lastSeen.Time
	}
	return sc, nil
}

// ============================================================================
// Printer - 标签打印机
// ============================================================================

const printerColumns = `id, name, ip, port, status, queue_length, created_at, updated_at`

// CreatePrinter 创建打印机记录
func (s *Store) CreatePrinter(ctx context.Context, printer *model.Printer) error {
	return s.db.QueryRowContext(ctx, s.rebind(
		`INSERT INTO printers (name, ip, port, status, queue_length, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		 RETURNING id`),
		printer.Name, printer.IP, printer.Port, printer.Status, printer.QueueLength,
	).Scan(&printer.ID)
}

// GetPrinter 查找打印机，未命中返回 (nil, nil)
func (s *Store) GetPrinter(ctx context.Context, id int64) (*model.Printer, error) {
	p := &model.Printer{}
	err := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT `+printerColumns+` FROM printers WHERE id = $1`), id,
	).Scan(&p.ID, &p.Name, &p.IP, &p.Port, &p.Status, &p.QueueLength, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListPrinters 列出所有打印机
func (s *Store) ListPrinters(ctx context.Context) ([]*model.Printer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+printerColumns+` FROM printers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var printers []*model.Printer
	for rows.Next() {
		p := &model.Printer{}
		if err := rows.Scan(&p.ID, &p.Name, &p.IP, &p.Port, &p.Status,
			&p.QueueLength, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		printers = append(printers, p)
	}
	return printers, rows.Err()
}

// UpdatePrinter 更新打印机配置和状态
func (s *Store) UpdatePrinter(ctx context.Context, printer *model.Printer) error {
	_, err := s.db.ExecContext(ctx, s.rebind(
		`UPDATE printers SET name = $1, ip = $2, port = $3, status = $4, queue_length = $5, updated_at = NOW()
		 WHERE id = $6`),
		printer.Name, printer.IP, printer.Port, printer.Status, printer.QueueLength, printer.ID)
	return err
}

// DeletePrinter 删除打印机
func (s *Store) DeletePrinter(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM printers WHERE id = $1`), id)
	return err
}
