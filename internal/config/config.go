// Package config 统一配置管理
//
// 配置加载策略：
//  1. 从 .env 加载敏感信息（数据库密码、JWT 密钥、引导管理员凭据）和 APP_ENV
//  2. 根据 APP_ENV 加载对应的 configs/{env}.yaml 配置文件
//  3. 环境变量可覆盖 YAML 配置
//
// 使用方式：
//   - 开发环境: APP_ENV=dev (默认，SQLite)
//   - 测试环境: APP_ENV=test
//   - 生产环境: APP_ENV=prod (PostgreSQL)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment 环境类型
type Environment string

const (
	EnvProduction  Environment = "prod"
	EnvTest        Environment = "test"
	EnvDevelopment Environment = "dev"
)

// YAMLConfig YAML 配置文件结构
type YAMLConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthYAMLConfig `yaml:"auth"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

// DatabaseConfig 数据库连接参数
//
// URL 非空时直接使用（支持 postgres:// 连接串和 sqlite 文件路径），
// 否则由各字段拼接 PostgreSQL 连接串。全部为空表示无数据库降级模式。
type DatabaseConfig struct {
	URL     string `yaml:"url"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	User    string `yaml:"user"`
	Name    string `yaml:"name"`
	SSLMode string `yaml:"sslmode"`
}

type RedisConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	DB   int    `yaml:"db"`
}

// AuthYAMLConfig 认证相关的非敏感配置
type AuthYAMLConfig struct {
	SessionTTL   time.Duration `yaml:"session_ttl"`
	CookieSecure bool          `yaml:"cookie_secure"`
}

// Config 应用配置（最终使用的配置）
type Config struct {
	Env         Environment
	APIPort     string
	DatabaseURL string
	RedisURL    string

	// 认证配置
	JWTSecret     string
	SessionTTL    time.Duration
	CookieSecure  bool
	AdminUsername string
	AdminPassword string
}

var configPaths = []string{
	"configs",
	"../configs",
	"../../configs",
	"../../../configs",
}

var envPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"../../../.env",
}

// Load 加载配置
// 1. 加载 .env（敏感信息 + APP_ENV）
// 2. 根据 APP_ENV 加载 configs/{env}.yaml
// 3. 构建最终配置
func Load() *Config {
	// 加载 .env
	for _, p := range envPaths {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	// 解析环境
	env := parseEnv(getEnv("APP_ENV", "dev"))

	// 加载 YAML 配置
	yamlCfg := loadYAMLConfig(env)

	// 数据库连接串：DATABASE_URL 环境变量 > yaml url > yaml 字段拼接
	dbURL := getEnv("DATABASE_URL", yamlCfg.Database.URL)
	if dbURL == "" && yamlCfg.Database.Host != "" {
		dbPassword := getEnv("DB_PASSWORD", "")
		dbURL = buildDatabaseURL(yamlCfg.Database, dbPassword)
	}

	cfg := &Config{
		Env:         env,
		APIPort:     getEnv("PORT", yamlCfg.Server.Port),
		DatabaseURL: dbURL,
		RedisURL:    getEnv("REDIS_URL", buildRedisURL(yamlCfg.Redis)),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		SessionTTL:    yamlCfg.Auth.SessionTTL,
		CookieSecure:  yamlCfg.Auth.CookieSecure || getEnv("COOKIE_SECURE", "") == "true",
		AdminUsername: getEnv("ADMIN_USERNAME", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}

	return cfg
}

// loadYAMLConfig 加载 YAML 配置文件
// 加载顺序：默认值 → common.yaml → {env}.yaml
func loadYAMLConfig(env Environment) *YAMLConfig {
	// 1. 初始化默认值
	cfg := &YAMLConfig{
		Server: ServerConfig{Port: "8080"},
		Redis:  RedisConfig{Host: "", Port: 6379, DB: 0},
		Auth: AuthYAMLConfig{
			SessionTTL: 365 * 24 * time.Hour,
		},
	}

	// 2. 加载 common.yaml（公共配置）
	for _, base := range configPaths {
		path := filepath.Join(base, "common.yaml")
		if data, err := os.ReadFile(path); err == nil {
			yaml.Unmarshal(data, cfg)
			break
		}
	}

	// 3. 加载 {env}.yaml（环境特定配置，覆盖公共配置）
	filename := fmt.Sprintf("%s.yaml", env)
	for _, base := range configPaths {
		path := filepath.Join(base, filename)
		if data, err := os.ReadFile(path); err == nil {
			yaml.Unmarshal(data, cfg)
			break
		}
	}

	return cfg
}

// buildDatabaseURL 构建 PostgreSQL 连接字符串
func buildDatabaseURL(db DatabaseConfig, password string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		db.User, password, db.Host, db.Port, db.Name, db.SSLMode)
}

// buildRedisURL 构建 Redis 连接字符串（未配置 host 时返回空，表示不启用 Redis）
func buildRedisURL(redis RedisConfig) string {
	if redis.Host == "" {
		return ""
	}
	return fmt.Sprintf("redis://%s:%d/%d", redis.Host, redis.Port, redis.DB)
}

func parseEnv(env string) Environment {
	switch strings.ToLower(env) {
	case "test":
		return EnvTest
	case "prod", "production":
		return EnvProduction
	default:
		return EnvDevelopment
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsTest 是否为测试环境
func (c *Config) IsTest() bool {
	return c.Env == EnvTest
}

// Validate 启动前校验
//
// JWT_SECRET 只在配置了数据库时强制：降级模式下登录本来就统一失败，
// 缺密钥不应阻止进程起来服务 /health 等只读路由。
func (c *Config) Validate() error {
	if c.JWTSecret == "" && c.DatabaseURL != "" {
		return fmt.Errorf("JWT_SECRET is required when a database is configured")
	}
	return nil
}

// String 返回配置摘要（隐藏密码）
func (c *Config) String() string {
	return fmt.Sprintf("Config{Env: %s, Port: %s, DB: %s, Redis: %s}",
		c.Env, c.APIPort, maskPassword(c.DatabaseURL), c.RedisURL)
}

// maskPassword 隐藏连接串中的密码
func maskPassword(url string) string {
	re := regexp.MustCompile(`(://[^:]+:)([^@]+)(@)`)
	return re.ReplaceAllString(url, "${1}***${3}")
}
