package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scales-admin/internal/shared/model"
)

func testConfig() Config {
	return Config{JWTSecret: "test-secret", SessionTTL: time.Hour}
}

func testUser() *model.User {
	return &model.User{
		ID:       42,
		Username: "alice",
		Name:     "Alice",
		Role:     model.UserRoleAdmin,
		IsActive: true,
	}
}

// ============================================================================
// 密码哈希
// ============================================================================

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cret", hash)

	// 同一密码两次哈希结果不同（独立盐值）
	hash2, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, hash, hash2)

	assert.True(t, CheckPassword("s3cret", hash))
	assert.True(t, CheckPassword("s3cret", hash2))
	assert.False(t, CheckPassword("wrong", hash))
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	assert.False(t, CheckPassword("anything", ""))
	assert.False(t, CheckPassword("anything", "not-a-bcrypt-hash"))
}

// ============================================================================
// 会话令牌
// ============================================================================

func TestSessionTokenRoundTrip(t *testing.T) {
	cfg := testConfig()
	user := testUser()

	token, err := CreateSessionToken(cfg, user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseSessionToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseSessionTokenExpired(t *testing.T) {
	cfg := testConfig()
	now := time.Now()
	claims := SessionClaims{
		UserID:   42,
		Username: "alice",
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)

	_, err = ParseSessionToken(cfg, token)
	assert.Error(t, err)
}

func TestParseSessionTokenMissingExpiry(t *testing.T) {
	cfg := testConfig()
	claims := SessionClaims{UserID: 42, Username: "alice", Role: "admin"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)

	_, err = ParseSessionToken(cfg, token)
	assert.Error(t, err)
}

func TestParseSessionTokenWrongSecret(t *testing.T) {
	cfg := testConfig()
	token, err := CreateSessionToken(cfg, testUser())
	require.NoError(t, err)

	_, err = ParseSessionToken(Config{JWTSecret: "other-secret"}, token)
	assert.Error(t, err)
}

func TestParseSessionTokenTampered(t *testing.T) {
	cfg := testConfig()
	token, err := CreateSessionToken(cfg, testUser())
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = ParseSessionToken(cfg, tampered)
	assert.Error(t, err)
}

func TestParseSessionTokenRejectsNoneAlgorithm(t *testing.T) {
	cfg := testConfig()
	claims := SessionClaims{
		UserID:   42,
		Username: "alice",
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseSessionToken(cfg, token)
	assert.Error(t, err)
}

func TestParseSessionTokenMissingFields(t *testing.T) {
	cfg := testConfig()

	// UserID 缺失的令牌即使签名正确也不接受
	claims := SessionClaims{
		Username: "alice",
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)

	_, err = ParseSessionToken(cfg, token)
	assert.Error(t, err)
}

func TestParseSessionTokenGarbage(t *testing.T) {
	_, err := ParseSessionToken(testConfig(), "not.a.token")
	assert.Error(t, err)
}

// ============================================================================
// Cookie 属性
// ============================================================================

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	res := rec.Result()
	defer res.Body.Close()
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestSetSessionCookieHTTP(t *testing.T) {
	cfg := testConfig()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)

	SetSessionCookie(rec, req, cfg, "token-value")

	cookie := findCookie(t, rec, CookieName)
	require.NotNil(t, cookie)
	assert.Equal(t, "token-value", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, int(time.Hour.Seconds()), cookie.MaxAge)
	// 纯 HTTP：不加 Secure，SameSite 回退 Lax
	assert.False(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}

func TestSetSessionCookieSecure(t *testing.T) {
	cfg := testConfig()
	cfg.CookieSecure = true
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)

	SetSessionCookie(rec, req, cfg, "token-value")

	cookie := findCookie(t, rec, CookieName)
	require.NotNil(t, cookie)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
}

func TestClearSessionCookie(t *testing.T) {
	cfg := testConfig()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)

	ClearSessionCookie(rec, req, cfg)

	cookie := findCookie(t, rec, CookieName)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
	assert.Equal(t, "/", cookie.Path)
}

// ============================================================================
// Context
// ============================================================================

func TestUserContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, GetUser(req.Context()))

	user := testUser()
	ctx := WithUser(req.Context(), user)
	assert.Equal(t, user, GetUser(ctx))
}
