package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-api/internal/domain/user"
	"github.com/xiebiao/bookstore-api/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-api/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-api/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
	"github.com/xiebiao/bookstore-api/pkg/jwt"
	"github.com/xiebiao/bookstore-api/pkg/metrics"
)

func TestMain(m *testing.M) {
	metrics.InitMetrics()
	m.Run()
}

type noBlacklist struct{}

func (noBlacklist) IsRevoked(context.Context, string) (bool, error) { return false, nil }

type usersByID map[uint]*user.User

func (u usersByID) FindByID(_ context.Context, id uint) (*user.User, error) {
	if found, ok := u[id]; ok {
		return found, nil
	}
	return nil, apperrors.ErrUserNotFound
}

type pinger struct{ err error }

func (p pinger) PingContext(context.Context) error { return p.err }

func testConfig() *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Mode: "test", CORSOrigins: []string{"*"}},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

func newTestRouter(t *testing.T, db pinger) (http.Handler, *jwt.Manager) {
	t.Helper()
	tokens := jwt.NewManager("router-secret", "bookstore-test", time.Hour, 24*time.Hour)
	users := usersByID{
		1: {ID: 1, Username: "admin", Role: user.RoleAdmin},
		2: {ID: 2, Username: "reader", Role: user.RoleUser},
	}
	auth := middleware.NewAuthMiddleware(tokens, noBlacklist{}, users)
	h := Handlers{Health: handler.NewHealthHandler(db, zap.NewNop())}
	return New(testConfig(), h, auth, zap.NewNop()), tokens
}

func bearer(t *testing.T, tokens *jwt.Manager, id uint, role user.Role) string {
	t.Helper()
	pair, err := tokens.GenerateToken(id, "u", string(role))
	require.NoError(t, err)
	return "Bearer " + pair.AccessToken
}

func call(r http.Handler, method, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func messageOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	msg, _ := body["message"].(string)
	return msg
}

func TestAdminRoutes(t *testing.T) {
	r, tokens := newTestRouter(t, pinger{})
	userToken := bearer(t, tokens, 2, user.RoleUser)

	// 写操作在到达处理器之前就被拦截
	routes := []struct{ method, path string }{
		{http.MethodPost, "/api/v1/books"},
		{http.MethodPut, "/api/v1/books/B001"},
		{http.MethodDelete, "/api/v1/editions/978"},
		{http.MethodPost, "/api/v1/authors"},
		{http.MethodPut, "/api/v1/publishers/P01"},
		{http.MethodDelete, "/api/v1/series/S01"},
		{http.MethodPost, "/api/v1/awards"},
		{http.MethodPut, "/api/v1/ratings/1"},
		{http.MethodDelete, "/api/v1/checkouts/B001/3"},
		{http.MethodPut, "/api/v1/orders/ORD-1"},
		{http.MethodGet, "/api/v1/auth/users"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			w := call(r, rt.method, rt.path, "")
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Missing authorization token", messageOf(t, w))

			w = call(r, rt.method, rt.path, userToken)
			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Equal(t, "Admin privileges required", messageOf(t, w))
		})
	}
}

func TestAuthenticatedRoutes(t *testing.T) {
	r, _ := newTestRouter(t, pinger{})

	for _, path := range []string{"/api/v1/orders", "/api/v1/orders/summary", "/api/v1/auth/me"} {
		w := call(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
	w := call(r, http.MethodPost, "/api/v1/ratings", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(r, http.MethodGet, "/api/v1/orders", "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOperationalRoutes(t *testing.T) {
	r, _ := newTestRouter(t, pinger{})

	w := call(r, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)

	w = call(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")

	down, _ := newTestRouter(t, pinger{err: errors.New("dial tcp: refused")})
	w = call(down, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
