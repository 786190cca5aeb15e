package handler

import (
	"log"
	"net/http"
	"time"

	"scales-admin/internal/shared/model"
)

// ListLogs 事件日志（时间倒序），?severity= 过滤，?limit= 截断
func (h *Handler) ListLogs(w http.ResponseWriter, r *http.Request) {
	severity := r.URL.Query().Get("severity")
	if severity != "" {
		switch model.Severity(severity) {
		case model.SeverityInfo, model.SeverityWarning, model.SeverityError:
		default:
			writeError(w, http.StatusBadRequest, "unknown severity")
			return
		}
	}

	entries, err := h.store.ListLogs(r.Context(), severity, queryLimit(r))
	if err != nil {
		storeError(w, "list logs", err)
		return
	}
	if entries == nil {
		entries = []*model.LogEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"logs": entries})
}

// appendEvent 尽力而为地记录一条事件日志（失败只进进程日志）
func (h *Handler) appendEvent(r *http.Request, severity model.Severity, source, taskID, message string) {
	entry := &model.LogEntry{
		Timestamp: time.Now(),
		Severity:  severity,
		Source:    source,
		TaskID:    taskID,
		Message:   message,
	}
	if err := h.store.AppendLog(r.Context(), entry); err != nil {
		log.Printf("[api] append event log: %v", err)
	}
}
