package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"scales-admin/internal/shared/cache"
)

// 舰队状态 Prometheus 指标，仪表盘聚合时顺带刷新
var (
	scalesOnlineGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scales_admin_scales_online",
		Help: "Number of scales currently online.",
	})
	scalesTotalGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scales_admin_scales_total",
		Help: "Number of registered scales.",
	})
	printersOnlineGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scales_admin_printers_online",
		Help: "Number of printers currently online.",
	})
	printersTotalGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scales_admin_printers_total",
		Help: "Number of registered printers.",
	})
	queueActiveGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scales_admin_queue_active_tasks",
		Help: "Number of queue tasks currently active.",
	})
	queueStuckGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scales_admin_queue_stuck_tasks",
		Help: "Number of queue tasks currently stuck.",
	})
)

func updateFleetMetrics(status *cache.FleetStatus) {
	scalesOnlineGauge.Set(float64(status.Scales.Online))
	scalesTotalGauge.Set(float64(status.Scales.Total))
	printersOnlineGauge.Set(float64(status.Printers.Online))
	printersTotalGauge.Set(float64(status.Printers.Total))
	queueActiveGauge.Set(float64(status.Queue.Active))
	queueStuckGauge.Set(float64(status.Queue.Stuck))
}
