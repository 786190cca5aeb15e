package auth

import (
	"context"
	"log"
	"net/http"
	"strings"

	"scales-admin/internal/shared/model"
	"scales-admin/internal/shared/storage"
)

// 免认证路由（前缀匹配）
// /api/v1/auth/me 也在列表里：它对未登录请求返回 user=null 而不是 401
var publicPrefixes = []string{
	"/api/v1/auth/login",
	"/api/v1/auth/logout",
	"/api/v1/auth/me",
	"/health",
	"/metrics",
}

func isPublicRoute(path string) bool {
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Middleware 创建会话认证中间件
//
// 每个请求：读 Cookie → 验证令牌 → 按令牌里的 userId 重新加载用户记录。
// 重新加载不是可优化项：令牌是签发时的快照，账号停用/角色变更
// 必须在下一个请求生效，而不是等一年后令牌过期。
func Middleware(store storage.UserStore, cfg Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			public := isPublicRoute(path)

			// 公开路由里只有 me 需要可选身份；/health、/metrics 等
			// 直接放行，省掉每次探活/抓取的令牌解析和数据库查询
			var user *model.User
			if !public || strings.HasPrefix(path, "/api/v1/auth/me") {
				user = resolveUser(r.Context(), store, cfg, r)
			}
			if user != nil {
				r = r.WithContext(WithUser(r.Context(), user))
			}

			if user == nil && !public {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// resolveUser 从请求 Cookie 解析出存活的用户记录
//
// Cookie 缺失、令牌无效、用户不存在、账号停用统一返回 nil，
// 原因只进日志。
func resolveUser(ctx context.Context, store storage.UserStore, cfg Config, r *http.Request) *model.User {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	claims, err := ParseSessionToken(cfg, cookie.Value)
	if err != nil {
		log.Printf("[auth] session verification failed: %v", err)
		return nil
	}

	user, err := store.GetUserByID(ctx, claims.UserID)
	if err != nil {
		log.Printf("[auth] load session user %d: %v", claims.UserID, err)
		return nil
	}
	if user == nil || !user.IsActive {
		return nil
	}
	return user
}

// AdminOnly 管理员专属路由中间件
//
// 拒绝响应不提示所需角色，避免泄露授权拓扑。
// 服务端只区分 admin / 非 admin：operator 和 viewer 在这里等同，
// 前端的进一步区分不构成授权边界。
func AdminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := GetUser(r.Context())
		if user == nil || user.Role != model.UserRoleAdmin {
			writeError(w, http.StatusForbidden, "access denied")
			return
		}
		next(w, r)
	}
}
