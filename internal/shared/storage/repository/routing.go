package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"scales-admin/internal/shared/model"
)

const routingColumns = `id, name, type, scales, enabled, priority, created_at, updated_at`

// CreateRoutingRule 创建路由规则（scales 列表 JSON 存储）
func (s *Store) CreateRoutingRule(ctx context.Context, rule *model.RoutingRule) error {
	scales, err := json.Marshal(rule.Scales)
	if err != nil {
		return err
	}
	return s.db.QueryRowContext(ctx, s.rebind(
		`INSERT INTO routing_rules (name, type, scales, enabled, priority, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		 RETURNING id`),
		rule.Name, rule.Type, string(scales), rule.Enabled, rule.Priority,
	).Scan(&rule.ID)
}

// GetRoutingRule 查找路由规则，未命中返回 (nil, nil)
func (s *Store) GetRoutingRule(ctx context.Context, id int64) (*model.RoutingRule, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT `+routingColumns+` FROM routing_rules WHERE id = $1`), id)

	r := &model.RoutingRule{}
	var scales string
	err := row.Scan(&r.ID, &r.Name, &r.Type, &scales, &r.Enabled, &r.Priority, &r.CreatedAt, &r.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(scales), &r.Scales); err != nil {
		return nil, err
	}
	return r, nil
}

// ListRoutingRules 列出路由规则，优先级高的在前
func (s *Store) ListRoutingRules(ctx context.Context) ([]*model.RoutingRule, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+routingColumns+` FROM routing_rules ORDER BY priority DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []*model.RoutingRule
	for rows.Next() {
		r := &model.RoutingRule{}
		var scales string
		if err := rows.Scan(&r.ID, &r.Name, &r.Type, &scales, &r.Enabled,
			&r.Priority, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(scales), &r.Scales); err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

// UpdateRoutingRule 更新路由规则
func (s *Store) UpdateRoutingRule(ctx context.Context, rule *model.RoutingRule) error {
	scales, err := json.Marshal(rule.Scales)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, s.rebind(
		`UPDATE routing_rules SET name = $1, type = $2, scales = $3, enabled = $4, priority = $5, updated_at = NOW()
		 WHERE id = $6`),
		rule.Name, rule.Type, string(scales), rule.Enabled, rule.Priority, rule.ID)
	return err
}

// SetRoutingRuleEnabled 启用/停用路由规则
func (s *Store) SetRoutingRuleEnabled(ctx context.Context, id int64, enabled bool) error {
	_, err := s.db.ExecContext(ctx, s.rebind(
		`UPDATE routing_rules SET enabled = $1, updated_at = NOW() WHERE id = $2`),
		enabled, id)
	return err
}

// DeleteRoutingRule 删除路由规则
func (s *Store) DeleteRoutingRule(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM routing_rules WHERE id = $1`), id)
	return err
}
