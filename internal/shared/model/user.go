// Package model 定义核心数据模型
//
// 文件组织：
//   - user.go    本地用户（local_users 表）
//   - device.go  秤 / 打印机设备
//   - routing.go 任务路由规则
//   - queue.go   工作队列任务
//   - event.go   事件日志
package model

import "time"

// UserRole 用户角色
type UserRole string

const (
	// UserRoleAdmin 管理员：全部操作
	UserRoleAdmin UserRole = "admin"

	// UserRoleOperator 操作员：当前与 viewer 等同（服务端只区分 admin / 非 admin）
	UserRoleOperator UserRole = "operator"

	// UserRoleViewer 只读
	UserRoleViewer UserRole = "viewer"
)

// Valid 是否为已知角色。未知角色一律视为无任何授权（fail closed）
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleOperator, UserRoleViewer:
		return true
	}
	return false
}

// User 本地用户（用户名 + 密码认证，无外部 OAuth）
type User struct {
	ID           int64      `json:"id" db:"id"`
	Username     string     `json:"username" db:"username"`
	PasswordHash string     `json:"-" db:"password_hash"` // never expose in JSON
	Name         string     `json:"name" db:"name"`
	Email        string     `json:"email,omitempty" db:"email"`
	Role         UserRole   `json:"role" db:"role"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
}

// PublicUser 登录响应和 me 接口返回的用户公开字段
type PublicUser struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Name     string   `json:"name"`
	Role     UserRole `json:"role"`
}

// Public 返回用户的公开视图
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Role:     u.Role,
	}
}
