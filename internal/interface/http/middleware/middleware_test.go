package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-api/internal/domain/user"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
	"github.com/xiebiao/bookstore-api/pkg/jwt"
	"github.com/xiebiao/bookstore-api/pkg/metrics"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	metrics.InitMetrics()
	os.Exit(m.Run())
}

type revokedSet map[string]bool

func (r revokedSet) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	return r[tokenID], nil
}

type usersByID map[uint]*user.User

func (u usersByID) FindByID(_ context.Context, id uint) (*user.User, error) {
	if found, ok := u[id]; ok {
		return found, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func newTokens() *jwt.Manager {
	return jwt.NewManager("test-secret", "bookstore-test", time.Hour, 24*time.Hour)
}

func issue(t *testing.T, tokens *jwt.Manager, id uint, role user.Role) (string, *jwt.Claims) {
	t.Helper()
	pair, err := tokens.GenerateToken(id, "u", string(role))
	require.NoError(t, err)
	claims, err := tokens.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	return pair.AccessToken, claims
}

func newAuthRouter(auth *AuthMiddleware) *gin.Engine {
	r := gin.New()
	r.GET("/me", auth.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": GetUserID(c)})
	})
	r.POST("/books", auth.RequireAuth(), auth.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"by": GetUser(c).Username})
	})
	return r
}

func do(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["message"]
}

func TestRequireAuth(t *testing.T) {
	tokens := newTokens()
	token, claims := issue(t, tokens, 7, user.RoleUser)
	revokedToken, revokedClaims := issue(t, tokens, 7, user.RoleUser)

	r := newAuthRouter(NewAuthMiddleware(tokens, revokedSet{revokedClaims.ID: true}, usersByID{}))

	w := do(r, http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Missing authorization token", message(t, w))

	w = do(r, http.MethodGet, "/me", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/me", revokedToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token has been revoked", message(t, w))

	w = do(r, http.MethodGet, "/me", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7}`, w.Body.String())
	assert.Equal(t, uint(7), claims.UserID)
}

func TestRequireAdmin(t *testing.T) {
	tokens := newTokens()
	adminToken, _ := issue(t, tokens, 1, user.RoleAdmin)
	userToken, _ := issue(t, tokens, 2, user.RoleUser)
	// Token里是admin，但数据库中已降级
	demotedToken, _ := issue(t, tokens, 3, user.RoleAdmin)
	goneToken, _ := issue(t, tokens, 4, user.RoleAdmin)

	users := usersByID{
		1: {ID: 1, Username: "admin", Role: user.RoleAdmin},
		2: {ID: 2, Username: "reader", Role: user.RoleUser},
		3: {ID: 3, Username: "former", Role: user.RoleUser},
	}
	r := newAuthRouter(NewAuthMiddleware(tokens, revokedSet{}, users))

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/books", "").Code)

	w := do(r, http.MethodPost, "/books", userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Admin privileges required", message(t, w))

	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPost, "/books", demotedToken).Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPost, "/books", goneToken).Code)

	w = do(r, http.MethodPost, "/books", adminToken)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"by":"admin"}`, w.Body.String())
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	l := NewRateLimiter(1, 2)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"), "每个客户端独立计数")

	now = now.Add(time.Second)
	assert.True(t, l.Allow("10.0.0.1"))

	now = now.Add(10 * time.Minute)
	l.Allow("10.0.0.3")
	assert.Len(t, l.visitors, 1, "空闲客户端被清理")
}

func TestRateLimiter_Middleware(t *testing.T) {
	r := gin.New()
	r.Use(NewRateLimiter(0.001, 1).Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/ping", "").Code)
	w := do(r, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "Too many requests", message(t, w))
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:3000"}))
	r.GET("/books", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/books", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/books", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoveryAndRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()), Recovery(zap.NewNop()))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := do(r, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", message(t, w))
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
}
