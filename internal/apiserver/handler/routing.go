package handler

import (
	"net/http"

	"scales-admin/internal/shared/model"
)

type routingRuleRequest struct {
	Name     string            `json:"name"`
	Type     model.RoutingType `json:"type"`
	Scales   []string          `json:"scales"`
	Enabled  *bool             `json:"enabled"`
	Priority int               `json:"priority"`
}

func (req *routingRuleRequest) validate() string {
	if req.Name == "" {
		return "name is required"
	}
	if req.Type == "" {
		req.Type = model.RoutingTypeRoundRobin
	}
	if !req.Type.Valid() {
		return "unknown routing type"
	}
	// manual 类型没有目标秤就永远路由不出去
	if req.Type == model.RoutingTypeManual && len(req.Scales) == 0 {
		return "manual rules require at least one scale"
	}
	return ""
}

// ListRoutingRules 列出路由规则（优先级倒序）
func (h *Handler) ListRoutingRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.store.ListRoutingRules(r.Context())
	if err != nil {
		storeError(w, "list routing rules", err)
		return
	}
	if rules == nil {
		rules = []*model.RoutingRule{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"rules": rules})
}

// CreateRoutingRule 创建路由规则，enabled 缺省为 true
func (h *Handler) CreateRoutingRule(w http.ResponseWriter, r *http.Request) {
	var req routingRuleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	scales := req.Scales
	if scales == nil {
		scales = []string{}
	}

	rule := &model.RoutingRule{
		Name:     req.Name,
		Type:     req.Type,
		Scales:   scales,
		Enabled:  enabled,
		Priority: req.Priority,
	}
	if err := h.store.CreateRoutingRule(r.Context(), rule); err != nil {
		storeError(w, "create routing rule", err)
		return
	}
	writeJSON(w, http.StatusCreated, rule)
}

// UpdateRoutingRule 更新路由规则
func (h *Handler) UpdateRoutingRule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req routingRuleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	rule, err := h.store.GetRoutingRule(r.Context(), id)
	if err != nil {
		storeError(w, "get routing rule", err)
		return
	}
	if rule == nil {
		writeError(w, http.StatusNotFound, "routing rule not found")
		return
	}

	rule.Name = req.Name
	rule.Type = req.Type
	if req.Scales != nil {
		rule.Scales = req.Scales
	}
	if req.Enabled != nil {
		rule.Enabled = *req.Enabled
	}
	rule.Priority = req.Priority
	if err := h.store.UpdateRoutingRule(r.Context(), rule); err != nil {
		storeError(w, "update routing rule", err)
		return
	}
	writeJSON(w, http.StatusOK, rule)
}

// SetRoutingRuleEnabled 启用/停用路由规则
func (h *Handler) SetRoutingRuleEnabled(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		Enabled bool `json:"enabled"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	rule, err := h.store.GetRoutingRule(r.Context(), id)
	if err != nil {
		storeError(w, "get routing rule", err)
		return
	}
	if rule == nil {
		writeError(w, http.StatusNotFound, "routing rule not found")
		return
	}

	if err := h.store.SetRoutingRuleEnabled(r.Context(), id, req.Enabled); err != nil {
		storeError(w, "set routing rule enabled", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true, "enabled": req.Enabled})
}

// DeleteRoutingRule 删除路由规则
func (h *Handler) DeleteRoutingRule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteRoutingRule(r.Context(), id); err != nil {
		storeError(w, "delete routing rule", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
