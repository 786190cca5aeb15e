package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"scales-admin/internal/shared/model"
	"scales-admin/internal/shared/storage"
)

// 引导管理员的回退凭据（未配置 ADMIN_USERNAME / ADMIN_PASSWORD 时）
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

// Handler 认证 HTTP 处理器
type Handler struct {
	store storage.UserStore
	cfg   Config
}

// NewHandler 创建认证处理器
func NewHandler(store storage.UserStore, cfg Config) *Handler {
	return &Handler{store: store, cfg: cfg}
}

// RegisterRoutes 注册认证相关路由
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/auth/login", h.Login)
	mux.HandleFunc("POST /api/v1/auth/logout", h.Logout)
	mux.HandleFunc("GET /api/v1/auth/me", h.Me)
}

// ============================================================================
// 请求/响应类型
// ============================================================================

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool             `json:"success"`
	User    model.PublicUser `json:"user"`
}

type meResponse struct {
	User *model.PublicUser `json:"user"`
}

// ============================================================================
// Handlers
// ============================================================================

// Login 用户名 + 密码登录
//
// 用户不存在、密码错误、账号停用对外是同一个 401 响应，
// 不给调用方区分失败原因的信号。
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user := Authenticate(r.Context(), h.store, req.Username, req.Password)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := CreateSessionToken(h.cfg, user)
	if err != nil {
		log.Printf("[auth.login] sign session token: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	SetSessionCookie(w, r, h.cfg, token)
	log.Printf("[auth] user logged in: %s", user.Username)
	writeJSON(w, http.StatusOK, loginResponse{Success: true, User: user.Public()})
}

// Logout 登出：清除客户端 Cookie
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ClearSessionCookie(w, r, h.cfg)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Me 返回当前登录用户的公开字段，未登录返回 user=null（不报错）
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := GetUser(r.Context())
	if user == nil {
		writeJSON(w, http.StatusOK, meResponse{User: nil})
		return
	}
	pub := user.Public()
	writeJSON(w, http.StatusOK, meResponse{User: &pub})
}

// ============================================================================
// 认证编排
// ============================================================================

// Authenticate 用存储和密码哈希验证凭据
//
// 四种失败（用户不存在、账号停用、密码不符、存储不可用）统一返回 nil。
// 成功后尽力而为地记录 last_login_at——这次写入失败不阻断登录。
func Authenticate(ctx context.Context, store storage.UserStore, username, password string) *model.User {
	user, err := store.GetUserByUsername(ctx, username)
	if err != nil {
		log.Printf("[auth] lookup user %q: %v", username, err)
		return nil
	}
	if user == nil {
		return nil
	}
	if !user.IsActive {
		return nil
	}
	if !CheckPassword(password, user.PasswordHash) {
		return nil
	}

	if err := store.UpdateLastLogin(ctx, user.ID); err != nil {
		log.Printf("[auth] update last login for %s: %v", user.Username, err)
	} else {
		now := time.Now()
		user.LastLoginAt = &now
	}

	return user
}

// ============================================================================
// Admin Bootstrap
// ============================================================================

// EnsureDefaultAdmin 冷启动引导：存储为空时创建唯一的默认管理员
//
// 并发启动安全：两个进程同时引导时，username 唯一索引让败者的
// INSERT 失败，该失败只记日志不算启动错误。存储不可用同样降级为
// 日志告警，保证无数据库部署可以起进程。
func EnsureDefaultAdmin(store storage.UserStore, adminUsername, adminPassword string) error {
	ctx := context.Background()

	hasUsers, err := store.HasAnyUsers(ctx)
	if err != nil {
		log.Printf("[auth] skip admin bootstrap: %v", err)
		return nil
	}
	if hasUsers {
		return nil
	}

	if adminUsername == "" {
		adminUsername = defaultAdminUsername
	}
	usingFallbackPassword := adminPassword == ""
	if usingFallbackPassword {
		adminPassword = defaultAdminPassword
	}

	hash, err := HashPassword(adminPassword)
	if err != nil {
		return err
	}

	user := &model.User{
		Username:     adminUsername,
		PasswordHash: hash,
		Name:         "Administrator",
		Role:         model.UserRoleAdmin,
		IsActive:     true,
	}
	if err := store.CreateUser(ctx, user); err != nil {
		if storage.IsDuplicate(err) {
			// 另一个进程赢得了引导竞争
			log.Printf("[auth] admin bootstrap lost creation race: %v", err)
			return nil
		}
		log.Printf("[auth] failed to create default admin: %v", err)
		return nil
	}

	log.Printf("[auth] default admin created: username=%s (id=%d)", adminUsername, user.ID)
	if usingFallbackPassword {
		log.Printf("[auth] WARNING: default admin password in use, change it immediately")
	}
	return nil
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
