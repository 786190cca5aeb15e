// Package server HTTP 服务装配：路由、中间件链、生命周期
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"scales-admin/internal/apiserver/auth"
	"scales-admin/internal/apiserver/handler"
	"scales-admin/internal/config"
	"scales-admin/internal/shared/cache"
	"scales-admin/internal/shared/storage"
)

// Server API 服务器
type Server struct {
	httpServer *http.Server
	degraded   bool
}

// New 装配 API 服务器
//
// 中间件链（外到内）：指标采集 → 会话认证 → 业务路由。
// /health 和 /metrics 是公开路由，由认证中间件放行。
func New(cfg *config.Config, store storage.PersistentStore, statusCache cache.StatusCache) *Server {
	authCfg := auth.Config{
		JWTSecret:    cfg.JWTSecret,
		SessionTTL:   cfg.SessionTTL,
		CookieSecure: cfg.CookieSecure,
	}

	s := &Server{}
	if _, ok := store.(*storage.Unavailable); ok {
		s.degraded = true
	}

	mux := http.NewServeMux()
	auth.NewHandler(store, authCfg).RegisterRoutes(mux)
	handler.New(store, statusCache).RegisterRoutes(mux)
	mux.HandleFunc("GET /health", s.health)
	mux.Handle("GET /metrics", promhttp.Handler())

	root := metricsMiddleware(auth.Middleware(store, authCfg)(mux))

	s.httpServer = &http.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           root,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// Start 启动监听（阻塞直到服务器关闭）
func (s *Server) Start() error {
	log.Printf("[Server] Listening on %s", s.httpServer.Addr)
	if s.degraded {
		log.Printf("[Server] WARNING: running in degraded mode, no database configured")
	}
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown 优雅关闭：等待在途请求完成
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// health 健康检查：进程存活即 200，附带存储可用性
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	storageState := "ok"
	if s.degraded {
		storageState = "unavailable"
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"storage": storageState,
	})
}
