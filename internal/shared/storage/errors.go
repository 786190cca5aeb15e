// Package storage 定义持久化存储层抽象接口和领域错误
//
// 设计原则：依赖倒置 (DIP)
//   - 调用方只依赖接口，不知道具体实现
//   - 具体实现在子包中：repository/（database/sql + Dialect）
//   - 初始化时通过依赖注入传入实现
//
// 数据库未配置时注入 Unavailable 实现（见 unavailable.go），
// 调用方通过 ErrUnavailable 判定降级状态，而不是判空全局句柄。
package storage

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound 实体不存在
	// 替代 sql.ErrNoRows
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate 唯一键冲突（如用户名重复）
	ErrDuplicate = errors.New("duplicate: entity already exists")

	// ErrUnavailable 存储未配置或不可达（降级模式）
	// 依赖存储的操作应优雅失败而不是使进程崩溃
	ErrUnavailable = errors.New("storage unavailable")
)

// IsDuplicate 判断底层错误是否为唯一键冲突
//
// PostgreSQL 返回 SQLSTATE 23505，SQLite 返回
// "UNIQUE constraint failed" 文本错误。引导管理员的并发创建
// 依赖该判定吞掉败者的插入错误。
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDuplicate) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
