// Package auth 本地用户认证：密码哈希、会话令牌、Cookie 生命周期、HTTP 中间件
//
// 会话模型：登录成功后签发 HMAC-SHA256 JWT（自包含，无服务端会话表），
// 通过 httpOnly Cookie 携带。每个请求由中间件解码令牌后重新加载
// 数据库中的用户记录——令牌里的角色/启用状态只是签发时的快照，
// 停用账号必须立即生效，不能等令牌过期。
package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"scales-admin/internal/shared/model"
)

// CookieName 会话 Cookie 名称
const CookieName = "admin_session"

// bcryptCost 密码哈希成本因子（验证耗时数十毫秒量级）
const bcryptCost = 10

// DefaultSessionTTL 会话令牌默认有效期
//
// 一年有效期对管理面板来说偏长，且登出只清 Cookie 不吊销令牌。
// 这是当前的既定行为，缩短或增加吊销表都会改变可观察行为，
// 需要产品侧决策后再动。
const DefaultSessionTTL = 365 * 24 * time.Hour

// contextKey context 键类型
type contextKey string

const ctxKeyUser contextKey = "auth_user"

// Config 认证配置
type Config struct {
	// JWTSecret 令牌签名密钥，启动时校验非空
	JWTSecret string

	// SessionTTL 令牌和 Cookie 的有效期，零值回退 DefaultSessionTTL
	SessionTTL time.Duration

	// CookieSecure 部署在 HTTPS 之后时为 true（影响 Cookie secure/SameSite）
	CookieSecure bool
}

// ttl 返回生效的会话有效期
func (c Config) ttl() time.Duration {
	if c.SessionTTL > 0 {
		return c.SessionTTL
	}
	return DefaultSessionTTL
}

// ============================================================================
// 密码哈希
// ============================================================================

// HashPassword 使用 bcrypt 哈希密码（每次调用生成独立盐值）
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

// CheckPassword 验证密码。哈希格式损坏时同样返回 false，不向上传播
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ============================================================================
// 会话令牌
// ============================================================================

// SessionClaims 会话令牌声明：签发时用户记录的快照
type SessionClaims struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// CreateSessionToken 为用户签发会话令牌，过期时间 = 当前时间 + TTL
func CreateSessionToken(cfg Config, user *model.User) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.ttl())),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ParseSessionToken 解析并验证会话令牌
//
// 签名错误、过期、算法不符、声明缺失一律返回错误——调用方只能得到
// "无效"这一个结果，具体原因仅用于内部日志，避免给攻击者探测面。
func ParseSessionToken(cfg Config, tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		// 只接受 HMAC 族算法，拒绝算法替换攻击
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	// 声明形状校验：三个业务字段必须齐全
	if claims.UserID <= 0 || claims.Username == "" || claims.Role == "" {
		return nil, fmt.Errorf("session payload missing required fields")
	}
	return claims, nil
}

// ============================================================================
// Cookie 生命周期
// ============================================================================

// SetSessionCookie 登录成功后下发会话 Cookie
func SetSessionCookie(w http.ResponseWriter, r *http.Request, cfg Config, token string) {
	http.SetCookie(w, sessionCookie(r, cfg, token, int(cfg.ttl().Seconds())))
}

// ClearSessionCookie 登出：同属性 Cookie 置 MaxAge=-1 强制客户端过期
//
// 令牌本身在到期前仍然可验——登出是清 Cookie，不是服务端吊销。
func ClearSessionCookie(w http.ResponseWriter, r *http.Request, cfg Config) {
	http.SetCookie(w, sessionCookie(r, cfg, "", -1))
}

func sessionCookie(r *http.Request, cfg Config, value string, maxAge int) *http.Cookie {
	// HTTPS 部署用 Secure + SameSite=None，纯 HTTP 回退 Lax
	secure := cfg.CookieSecure || r.TLS != nil
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	}
}

// ============================================================================
// Context 辅助函数
// ============================================================================

// WithUser 将认证用户注入 context
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, ctxKeyUser, user)
}

// GetUser 从 context 获取认证用户，未认证返回 nil
func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(ctxKeyUser).(*model.User)
	return user
}
