package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookstore-api/internal/domain/user"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
	"github.com/xiebiao/bookstore-api/pkg/jwt"
	"github.com/xiebiao/bookstore-api/pkg/metrics"
	"github.com/xiebiao/bookstore-api/pkg/response"
)

const (
	ctxClaims = "auth_claims"
	ctxUser   = "auth_user"
)

// TokenParser 校验Access Token，由*jwt.Manager实现
type TokenParser interface {
	ParseAccessToken(token string) (*jwt.Claims, error)
}

// TokenBlacklist 已登出Token的黑名单，由*redis.SessionStore实现
type TokenBlacklist interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// UserFinder 按ID加载用户
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*user.User, error)
}

// AuthMiddleware JWT认证中间件
// 1. RequireAuth：校验Bearer Token与黑名单，把Claims注入Context
// 2. RequireAdmin：每次从数据库读取用户，降级或删除的用户立即失去管理员权限
type AuthMiddleware struct {
	tokens    TokenParser
	blacklist TokenBlacklist
	users     UserFinder
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(tokens TokenParser, blacklist TokenBlacklist, users UserFinder) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, blacklist: blacklist, users: users}
}

// RequireAuth 要求登录
//
//	orders := v1.Group("/orders", auth.RequireAuth())
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.authenticate(c)
		if err != nil {
			metrics.IncCounterVec(metrics.AuthFailuresTotal, map[string]string{"reason": failureReason(err)})
			response.Error(c, err)
			return
		}
		c.Set(ctxClaims, claims)
		c.Next()
	}
}

// RequireAdmin 要求管理员，需放在RequireAuth之后
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.Error(c, apperrors.ErrUnauthorized)
			return
		}

		u, err := m.users.FindByID(c.Request.Context(), claims.UserID)
		if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
			response.Error(c, err)
			return
		}
		if !u.IsAdmin() {
			metrics.IncCounterVec(metrics.AuthFailuresTotal, map[string]string{"reason": "forbidden"})
			response.Error(c, apperrors.ErrForbidden)
			return
		}
		c.Set(ctxUser, u)
		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context) (*jwt.Claims, error) {
	// Authorization: Bearer <token>
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, apperrors.ErrUnauthorized
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return nil, apperrors.ErrInvalidToken
	}

	claims, err := m.tokens.ParseAccessToken(strings.TrimSpace(token))
	if err != nil {
		return nil, err
	}

	revoked, err := m.blacklist.IsRevoked(c.Request.Context(), claims.ID)
	if err != nil {
		return nil, apperrors.Wrap(err, "Token verification failed")
	}
	if revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	return claims, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		return "missing_token"
	case errors.Is(err, apperrors.ErrTokenExpired):
		return "expired"
	case errors.Is(err, apperrors.ErrTokenRevoked):
		return "revoked"
	default:
		return "invalid_token"
	}
}

// =========================================
// Context辅助函数
// =========================================

// GetClaims 当前请求的Token声明，未认证时返回nil
func GetClaims(c *gin.Context) *jwt.Claims {
	if v, ok := c.Get(ctxClaims); ok {
		if claims, ok := v.(*jwt.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetUserID 当前登录用户ID，未登录返回0
func GetUserID(c *gin.Context) uint {
	if claims := GetClaims(c); claims != nil {
		return claims.UserID
	}
	return 0
}

// GetUser RequireAdmin加载的用户
func GetUser(c *gin.Context) *user.User {
	if v, ok := c.Get(ctxUser); ok {
		if u, ok := v.(*user.User); ok {
			return u
		}
	}
	return nil
}
