// Package deployments 嵌入部署相关文件到二进制
//
// migrations/*.sql 是 PostgreSQL 建表脚本（幂等，IF NOT EXISTS），
// 启动时按文件名顺序执行。SQLite 的等价 Schema 在 sqlite 驱动内。
package deployments

import "embed"

// MigrationFiles PostgreSQL 迁移脚本
//
//go:embed migrations/*.sql
var MigrationFiles embed.FS
