package repository

import (
	"context"
	"database/sql"

	"scales-admin/internal/shared/model"
)

const userColumns = `id, username, password_hash, name, email, role, is_active, created_at, updated_at, last_login_at`

// CreateUser 创建用户并回填数据库分配的自增 ID
//
// username 的唯一索引是并发引导的防线：两个进程同时创建默认管理员时
// 败者在这里收到唯一键冲突。
func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	return s.db.QueryRowContext(ctx, s.rebind(
		`INSERT INTO local_users (username, password_hash, name, email, role, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		 RETURNING id`),
		user.Username, user.PasswordHash, user.Name, user.Email, user.Role, user.IsActive,
	).Scan(&user.ID)
}

// GetUserByUsername 通过用户名查找用户（登录入口），未命中返回 (nil, nil)
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, s.rebind(
		`SELECT `+userColumns+` FROM local_users WHERE username = $1`), username))
}

// GetUserByID 通过 ID 查找用户（会话中间件逐请求调用），未命中返回 (nil, nil)
func (s *Store) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, s.rebind(
		`SELECT `+userColumns+` FROM local_users WHERE id = $1`), id))
}

// UpdateLastLogin 记录最后登录时间
func (s *Store) UpdateLastLogin(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, s.rebind(
		`UPDATE local_users SET last_login_at = NOW(), updated_at = NOW() WHERE id = $1`), id)
	return err
}

// HasAnyUsers 是否存在任何用户
func (s *Store) HasAnyUsers(ctx context.Context) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM local_users LIMIT 1`).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListUsers 列出所有用户
func (s *Store) ListUsers(ctx context.Context) ([]*model.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM local_users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		u, err := scanUserRow(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// scanUser 扫描单行用户，sql.ErrNoRows 归一为 (nil, nil)
func (s *Store) scanUser(row *sql.Row) (*model.User, error) {
	u := &model.User{}
	var lastLogin sql.NullTime
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.Email,
		&u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt, &lastLogin)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		u.LastLoginAt = &lastLogin.Time
	}
	return u, nil
}

func scanUserRow(rows *sql.Rows) (*model.User, error) {
	u := &model.User{}
	var lastLogin sql.NullTime
	if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.Email,
		&u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt, &lastLogin); err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		u.LastLoginAt = &lastLogin.Time
	}
	return u, nil
}
