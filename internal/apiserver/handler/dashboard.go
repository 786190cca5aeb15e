package handler

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"scales-admin/internal/shared/cache"
	"scales-admin/internal/shared/model"
)

// statusCacheTTL 仪表盘快照缓存有效期（前端 5s 轮询，命中即省一轮聚合查询）
const statusCacheTTL = 5 * time.Second

// DashboardStatus 仪表盘状态快照
//
// 缓存命中直接返回；未命中时从存储聚合并回填缓存。
// 缓存读写失败不影响响应，只降级为每次现算。
func (h *Handler) DashboardStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cached, err := h.statusCache.GetStatus(ctx); err != nil {
		log.Printf("[api] status cache read: %v", err)
	} else if cached != nil {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	status, err := h.buildFleetStatus(ctx)
	if err != nil {
		storeError(w, "build fleet status", err)
		return
	}

	if err := h.statusCache.SetStatus(ctx, status, statusCacheTTL); err != nil {
		log.Printf("[api] status cache write: %v", err)
	}
	writeJSON(w, http.StatusOK, status)
}

// buildFleetStatus 从存储聚合舰队状态
func (h *Handler) buildFleetStatus(ctx context.Context) (*cache.FleetStatus, error) {
	scales, err := h.store.ListScales(ctx)
	if err != nil {
		return nil, err
	}
	printers, err := h.store.ListPrinters(ctx)
	if err != nil {
		return nil, err
	}

	scaleCounts := cache.DeviceCounts{Total: len(scales)}
	for _, s := range scales {
		if s.Status == model.DeviceStatusOnline {
			scaleCounts.Online++
		} else {
			scaleCounts.Offline++
		}
	}
	printerCounts := cache.DeviceCounts{Total: len(printers)}
	for _, p := range printers {
		if p.Status == model.DeviceStatusOnline {
			printerCounts.Online++
		} else {
			printerCounts.Offline++
		}
	}

	active, err := h.store.CountQueueTasks(ctx, model.TaskStatusActive)
	if err != nil {
		return nil, err
	}
	stuck, err := h.store.CountQueueTasks(ctx, model.TaskStatusStuck)
	if err != nil {
		return nil, err
	}

	errors, err := h.store.ListLogs(ctx, string(model.SeverityError), 5)
	if err != nil {
		return nil, err
	}
	if errors == nil {
		errors = []*model.LogEntry{}
	}

	status := &cache.FleetStatus{
		Connector: cache.ConnectorStatus{
			Status: "running",
			Uptime: formatUptime(time.Since(h.startedAt)),
		},
		Scales:      scaleCounts,
		Printers:    printerCounts,
		Queue:       cache.QueueCounts{Active: active, Stuck: stuck},
		Errors:      errors,
		GeneratedAt: time.Now(),
	}
	updateFleetMetrics(status)
	return status, nil
}

// formatUptime 格式化运行时长，如 "5d 12h 34m"
func formatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
