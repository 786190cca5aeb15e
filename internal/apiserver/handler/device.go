package handler

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"scales-admin/internal/shared/model"
)

// dialTimeout 连接测试的 TCP 超时
const dialTimeout = 3 * time.Second

// ============================================================================
// Scales - 联网秤
// ============================================================================

type scaleRequest struct {
	Name     string              `json:"name"`
	Protocol model.ScaleProtocol `json:"protocol"`
	IP       string              `json:"ip"`
	Port     int                 `json:"port"`
}

// validate 补默认值并校验，返回错误描述（空串表示通过）
func (req *scaleRequest) validate() string {
	if req.Name == "" || req.IP == "" {
		return "name and ip are required"
	}
	if req.Protocol == "" {
		req.Protocol = model.ScaleProtocolSICS
	}
	if req.Protocol != model.ScaleProtocolSICS && req.Protocol != model.ScaleProtocolIND {
		return "unknown protocol"
	}
	if req.Port == 0 {
		req.Port = 4001
	}
	if req.Port < 1 || req.Port > 65535 {
		return "invalid port"
	}
	return ""
}

// ListScales 列出所有秤
func (h *Handler) ListScales(w http.ResponseWriter, r *http.Request) {
	scales, err := h.store.ListScales(r.Context())
	if err != nil {
		storeError(w, "list scales", err)
		return
	}
	if scales == nil {
		scales = []*model.Scale{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"scales": scales})
}

// GetScale 查询单个秤
func (h *Handler) GetScale(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	scale, err := h.store.GetScale(r.Context(), id)
	if err != nil {
		storeError(w, "get scale", err)
		return
	}
	if scale == nil {
		writeError(w, http.StatusNotFound, "scale not found")
		return
	}
	writeJSON(w, http.StatusOK, scale)
}

// CreateScale 添加秤，新设备初始离线，等连接测试或探测器回写状态
func (h *Handler) CreateScale(w http.ResponseWriter, r *http.Request) {
	var req scaleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	scale := &model.Scale{
		Name:     req.Name,
		Protocol: req.Protocol,
		IP:       req.IP,
		Port:     req.Port,
		Status:   model.DeviceStatusOffline,
	}
	if err := h.store.CreateScale(r.Context(), scale); err != nil {
		storeError(w, "create scale", err)
		return
	}
	writeJSON(w, http.StatusCreated, scale)
}

// UpdateScale 更新秤的连接配置
func (h *Handler) UpdateScale(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req scaleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	scale, err := h.store.GetScale(r.Context(), id)
	if err != nil {
		storeError(w, "get scale", err)
		return
	}
	if scale == nil {
		writeError(w, http.StatusNotFound, "scale not found")
		return
	}

	scale.Name = req.Name
	scale.Protocol = req.Protocol
	scale.IP = req.IP
	scale.Port = req.Port
	if err := h.store.UpdateScale(r.Context(), scale); err != nil {
		storeError(w, "update scale", err)
		return
	}
	writeJSON(w, http.StatusOK, scale)
}

// DeleteScale 删除秤
func (h *Handler) DeleteScale(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteScale(r.Context(), id); err != nil {
		storeError(w, "delete scale", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// TestScale 连接测试：对秤的 ip:port 发起一次 TCP 拨号并回写状态
func (h *Handler) TestScale(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	scale, err := h.store.GetScale(r.Context(), id)
	if err != nil {
		storeError(w, "get scale", err)
		return
	}
	if scale == nil {
		writeError(w, http.StatusNotFound, "scale not found")
		return
	}

	addr := net.JoinHostPort(scale.IP, strconv.Itoa(scale.Port))
	conn, dialErr := net.DialTimeout("tcp", addr, dialTimeout)

	status := model.DeviceStatusOnline
	lastError := ""
	if dialErr != nil {
		status = model.DeviceStatusOffline
		lastError = dialErr.Error()
	} else {
		conn.Close()
	}

	if err := h.store.UpdateScaleStatus(r.Context(), id, status, lastError); err != nil {
		storeError(w, "update scale status", err)
		return
	}
	if dialErr != nil {
		h.appendEvent(r, model.SeverityWarning, "scale:"+scale.Name, "",
			"connection test failed: "+lastError)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": dialErr == nil,
		"status":  status,
		"error":   lastError,
	})
}

// ============================================================================
// Printers - 标签打印机
// ============================================================================

type printerRequest struct {
	Name string `json:"name"`
	IP   string `json:"ip"`
	Port int    `json:"port"`
}

func (req *printerRequest) validate() string {
	if req.Name == "" || req.IP == "" {
		return "name and ip are required"
	}
	if req.Port == 0 {
		req.Port = 9100
	}
	if req.Port < 1 || req.Port > 65535 {
		return "invalid port"
	}
	return ""
}

// ListPrinters 列出所有打印机
func (h *Handler) ListPrinters(w http.ResponseWriter, r *http.Request) {
	printers, err := h.store.ListPrinters(r.Context())
	if err != nil {
		storeError(w, "list printers", err)
		return
	}
	if printers == nil {
		printers = []*model.Printer{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"printers": printers})
}

// GetPrinter 查询单个打印机
func (h *Handler) GetPrinter(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	printer, err := h.store.GetPrinter(r.Context(), id)
	if err != nil {
		storeError(w, "get printer", err)
		return
	}
	if printer == nil {
		writeError(w, http.StatusNotFound, "printer not found")
		return
	}
	writeJSON(w, http.StatusOK, printer)
}

// CreatePrinter 添加打印机
func (h *Handler) CreatePrinter(w http.ResponseWriter, r *http.Request) {
	var req printerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	printer := &model.Printer{
		Name:   req.Name,
		IP:     req.IP,
		Port:   req.Port,
		Status: model.DeviceStatusOffline,
	}
	if err := h.store.CreatePrinter(r.Context(), printer); err != nil {
		storeError(w, "create printer", err)
		return
	}
	writeJSON(w, http.StatusCreated, printer)
}

// UpdatePrinter 更新打印机配置
func (h *Handler) UpdatePrinter(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req printerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	printer, err := h.store.GetPrinter(r.Context(), id)
	if err != nil {
		storeError(w, "get printer", err)
		return
	}
	if printer == nil {
		writeError(w, http.StatusNotFound, "printer not found")
		return
	}

	printer.Name = req.Name
	printer.IP = req.IP
	printer.Port = req.Port
	if err := h.store.UpdatePrinter(r.Context(), printer); err != nil {
		storeError(w, "update printer", err)
		return
	}
	writeJSON(w, http.StatusOK, printer)
}

// DeletePrinter 删除打印机
func (h *Handler) DeletePrinter(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeletePrinter(r.Context(), id); err != nil {
		storeError(w, "delete printer", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
