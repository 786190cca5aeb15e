package handler

import (
	"net/http"

	"scales-admin/internal/shared/model"
)

// ListQueueTasks 列出队列任务（创建时间倒序），?status= 过滤，?limit= 截断
func (h *Handler) ListQueueTasks(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" {
		switch model.TaskStatus(status) {
		case model.TaskStatusPending, model.TaskStatusActive, model.TaskStatusStuck,
			model.TaskStatusCompleted, model.TaskStatusFailed:
		default:
			writeError(w, http.StatusBadRequest, "unknown status")
			return
		}
	}

	tasks, err := h.store.ListQueueTasks(r.Context(), status, queryLimit(r))
	if err != nil {
		storeError(w, "list queue tasks", err)
		return
	}
	if tasks == nil {
		tasks = []*model.QueueTask{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tasks": tasks})
}

// GetQueueTask 查询单个任务
func (h *Handler) GetQueueTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	task, err := h.store.GetQueueTask(r.Context(), id)
	if err != nil {
		storeError(w, "get queue task", err)
		return
	}
	if task == nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// RetryQueueTask 重试卡死/失败的任务：重置为 pending，attempts + 1
func (h *Handler) RetryQueueTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	task, err := h.store.GetQueueTask(r.Context(), id)
	if err != nil {
		storeError(w, "get queue task", err)
		return
	}
	if task == nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	if !task.Retryable() {
		writeError(w, http.StatusConflict, "task is not retryable")
		return
	}

	if err := h.store.RetryQueueTask(r.Context(), id); err != nil {
		storeError(w, "retry queue task", err)
		return
	}
	h.appendEvent(r, model.SeverityInfo, "Queue", id, "task requeued by operator")

	task, err = h.store.GetQueueTask(r.Context(), id)
	if err != nil {
		storeError(w, "get queue task", err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// CancelQueueTask 取消任务：标记为 failed 并记录事件
//
// 已完成的任务不可取消。
func (h *Handler) CancelQueueTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	task, err := h.store.GetQueueTask(r.Context(), id)
	if err != nil {
		storeError(w, "get queue task", err)
		return
	}
	if task == nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	if task.Status == model.TaskStatusCompleted {
		writeError(w, http.StatusConflict, "task already completed")
		return
	}

	if err := h.store.UpdateQueueTaskStatus(r.Context(), id, model.TaskStatusFailed); err != nil {
		storeError(w, "cancel queue task", err)
		return
	}
	h.appendEvent(r, model.SeverityWarning, "Queue", id, "task cancelled by operator")
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
