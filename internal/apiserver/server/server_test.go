package server

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scales-admin/internal/config"
	"scales-admin/internal/shared/cache"
	"scales-admin/internal/shared/storage"
	"scales-admin/internal/shared/storage/repository"
)

func testServerConfig() *config.Config {
	return &config.Config{
		Env:       config.EnvTest,
		APIPort:   "0",
		JWTSecret: "test-secret",
	}
}

func TestMetricPath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/api/v1/scales", "/api/v1/scales"},
		{"/api/v1/scales/17", "/api/v1/scales"},
		{"/api/v1/scales/17/test", "/api/v1/scales"},
		{"/api/v1/queue/tasks/T-001/retry", "/api/v1/queue"},
		{"/health", "/health"},
		{"/metrics", "/metrics"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, metricPath(tc.in), tc.in)
	}
}

func TestHealthDegraded(t *testing.T) {
	s := New(testServerConfig(), storage.NewUnavailable(), cache.NewMock())

	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"storage":"unavailable"`)
}

func TestRouterWiring(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "server_test.db")
	store, err := repository.Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	s := New(testServerConfig(), store, cache.NewMock())
	h := s.httpServer.Handler

	serve := func(method, path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
		return rec
	}

	// 公开路由不需要会话
	rec := serve(http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"storage":"ok"`)

	assert.Equal(t, http.StatusOK, serve(http.MethodGet, "/metrics").Code)
	assert.Equal(t, http.StatusOK, serve(http.MethodGet, "/api/v1/auth/me").Code)

	// 业务路由被会话中间件拦截
	assert.Equal(t, http.StatusUnauthorized, serve(http.MethodGet, "/api/v1/scales").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(http.MethodGet, "/api/v1/dashboard/status").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(http.MethodPost, "/api/v1/queue/tasks/T-001/retry").Code)
}

// 降级模式：登录统一失败、me 返回 null、只读接口回空，进程不崩
func TestDegradedModeEndToEnd(t *testing.T) {
	s := New(testServerConfig(), storage.NewUnavailable(), cache.NewMock())
	h := s.httpServer.Handler

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"username":"admin","password":"admin123"}`))
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user":null`)
}
