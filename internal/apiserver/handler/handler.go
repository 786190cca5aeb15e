// Package handler 资源 API 处理器：秤、打印机、路由规则、工作队列、
// 事件日志和仪表盘状态。读接口对所有已认证角色开放，写接口 admin 专属。
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"scales-admin/internal/apiserver/auth"
	"scales-admin/internal/shared/cache"
	"scales-admin/internal/shared/storage"
)

// Handler 资源处理器
type Handler struct {
	store       storage.PersistentStore
	statusCache cache.StatusCache
	startedAt   time.Time
}

// New 创建资源处理器
func New(store storage.PersistentStore, statusCache cache.StatusCache) *Handler {
	return &Handler{
		store:       store,
		statusCache: statusCache,
		startedAt:   time.Now(),
	}
}

// RegisterRoutes 注册资源路由，写操作包在 AdminOnly 里
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// 秤
	mux.HandleFunc("GET /api/v1/scales", h.ListScales)
	mux.HandleFunc("GET /api/v1/scales/{id}", h.GetScale)
	mux.HandleFunc("POST /api/v1/scales", auth.AdminOnly(h.CreateScale))
	mux.HandleFunc("PUT /api/v1/scales/{id}", auth.AdminOnly(h.UpdateScale))
	mux.HandleFunc("DELETE /api/v1/scales/{id}", auth.AdminOnly(h.DeleteScale))
	mux.HandleFunc("POST /api/v1/scales/{id}/test", auth.AdminOnly(h.TestScale))

	// 打印机
	mux.HandleFunc("GET /api/v1/printers", h.ListPrinters)
	mux.HandleFunc("GET /api/v1/printers/{id}", h.GetPrinter)
	mux.HandleFunc("POST /api/v1/printers", auth.AdminOnly(h.CreatePrinter))
	mux.HandleFunc("PUT /api/v1/printers/{id}", auth.AdminOnly(h.UpdatePrinter))
	mux.HandleFunc("DELETE /api/v1/printers/{id}", auth.AdminOnly(h.DeletePrinter))

	// 路由规则
	mux.HandleFunc("GET /api/v1/routing/rules", h.ListRoutingRules)
	mux.HandleFunc("POST /api/v1/routing/rules", auth.AdminOnly(h.CreateRoutingRule))
	mux.HandleFunc("PUT /api/v1/routing/rules/{id}", auth.AdminOnly(h.UpdateRoutingRule))
	mux.HandleFunc("PUT /api/v1/routing/rules/{id}/enabled", auth.AdminOnly(h.SetRoutingRuleEnabled))
	mux.HandleFunc("DELETE /api/v1/routing/rules/{id}", auth.AdminOnly(h.DeleteRoutingRule))

	// 工作队列
	mux.HandleFunc("GET /api/v1/queue/tasks", h.ListQueueTasks)
	mux.HandleFunc("GET /api/v1/queue/tasks/{id}", h.GetQueueTask)
	mux.HandleFunc("POST /api/v1/queue/tasks/{id}/retry", auth.AdminOnly(h.RetryQueueTask))
	mux.HandleFunc("POST /api/v1/queue/tasks/{id}/cancel", auth.AdminOnly(h.CancelQueueTask))

	// 事件日志
	mux.HandleFunc("GET /api/v1/logs", h.ListLogs)

	// 仪表盘
	mux.HandleFunc("GET /api/v1/dashboard/status", h.DashboardStatus)
}

// ============================================================================
// 工具函数
// ============================================================================

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// decodeJSON 解析请求体，失败时直接写 400 并返回 false
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// pathID 解析路径中的 {id}，非法时写 400 并返回 false
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// queryLimit 解析 ?limit=，默认 100，上限 500
func queryLimit(r *http.Request) int {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 500 {
		limit = 500
	}
	return limit
}

// storeError 存储层错误统一映射：降级模式 503，其余 500（细节只进日志）
func storeError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, storage.ErrUnavailable) {
		writeError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	log.Printf("[api] %s: %v", op, err)
	writeError(w, http.StatusInternalServerError, "internal error")
}
