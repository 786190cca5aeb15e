// Package repository 数据库无关的业务逻辑存储层
//
// 通过 dbutil.Dialect 接口屏蔽不同数据库的 SQL 差异，
// 所有 SQL 以 PostgreSQL 风格编写，运行时由 Dialect.Rebind() 转换。
//
// 文件组织：
//   - store.go   Store 定义和连接管理
//   - user.go    本地用户
//   - device.go  秤 / 打印机
//   - routing.go 路由规则
//   - queue.go   工作队列
//   - event.go   事件日志
package repository

import (
	"database/sql"
	"strconv"
	"strings"

	"scales-admin/internal/shared/storage"
	"scales-admin/internal/shared/storage/dbutil"
	pgdriver "scales-admin/internal/shared/storage/driver/postgres"
	sqlitedriver "scales-admin/internal/shared/storage/driver/sqlite"
)

// Store 通用存储实现
// 实现了 storage.PersistentStore 接口
type Store struct {
	db      *sql.DB
	dialect dbutil.Dialect
}

var _ storage.PersistentStore = (*Store)(nil)

// NewStore 创建通用存储
func NewStore(db *sql.DB, dialect dbutil.Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// Open 根据连接串选择驱动并创建存储
//
// postgres:// 前缀走 PostgreSQL（生产），其余视为 SQLite DSN
// （如 "file:scales.db" 或 ":memory:"）。两种驱动都在启动时自动建表。
func Open(databaseURL string) (*Store, error) {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		db, err := pgdriver.Open(databaseURL)
		if err != nil {
			return nil, err
		}
		dialect := pgdriver.NewDialect()
		if err := dialect.AutoMigrate(db); err != nil {
			db.Close()
			return nil, err
		}
		return NewStore(db, dialect), nil
	}

	db, err := sqlitedriver.Open(databaseURL)
	if err != nil {
		return nil, err
	}
	dialect := sqlitedriver.NewDialect()
	if err := dialect.AutoMigrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return NewStore(db, dialect), nil
}

// Close 关闭数据库连接
func (s *Store) Close() error {
	return s.db.Close()
}

// DB 返回底层数据库连接（仅用于测试）
func (s *Store) DB() *sql.DB {
	return s.db
}

// Dialect 返回当前方言
func (s *Store) Dialect() dbutil.Dialect {
	return s.dialect
}

// rebind 快捷方法：将 PG 风格 SQL 转换为当前方言
func (s *Store) rebind(query string) string {
	return s.dialect.Rebind(query)
}

// itoa LIMIT 子句拼接用（limit 来自服务端校验过的整数，非用户原始输入）
func itoa(n int) string {
	return strconv.Itoa(n)
}
