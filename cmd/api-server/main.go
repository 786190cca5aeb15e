// api-server 秤群管理面板 API 服务器
//
// 启动流程：配置 → 存储（PostgreSQL / SQLite / 降级）→ Redis（可选）→
// 默认管理员引导 → HTTP 服务 + 优雅关闭。
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scales-admin/internal/apiserver/auth"
	"scales-admin/internal/apiserver/server"
	"scales-admin/internal/config"
	"scales-admin/internal/shared/cache"
	"scales-admin/internal/shared/infra"
	"scales-admin/internal/shared/storage"
	"scales-admin/internal/shared/storage/repository"
)

func main() {
	cfg := config.Load()
	log.Printf("[Main] %s", cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("[Main] %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Printf("[Main] WARNING: JWT_SECRET is empty, sessions cannot be issued")
	}

	// 存储：未配置数据库时进入降级模式而不是拒绝启动
	var store storage.PersistentStore
	if cfg.DatabaseURL == "" {
		log.Printf("[Main] no database configured, storage degraded")
		store = storage.NewUnavailable()
	} else {
		repo, err := repository.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("[Main] open storage: %v", err)
		}
		defer repo.Close()
		store = repo
	}

	// Redis 可选：连不上就退回进程内缓存
	var statusCache cache.StatusCache = cache.NewMock()
	if cfg.RedisURL != "" {
		redisInfra, err := infra.NewRedisInfra(cfg.RedisURL)
		if err != nil {
			log.Printf("[Main] redis unavailable, using in-process cache: %v", err)
		} else {
			defer redisInfra.Close()
			statusCache = redisInfra.StatusCache()
		}
	}

	// 首次启动引导默认管理员（失败降级为日志，不阻断启动）
	if err := auth.EnsureDefaultAdmin(store, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Printf("[Main] admin bootstrap: %v", err)
	}

	srv := server.New(cfg, store, statusCache)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("[Main] server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("[Main] received %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("[Main] shutdown: %v", err)
		}
	}

	log.Printf("[Main] bye")
}
