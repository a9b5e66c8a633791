package user

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-api/internal/domain/user"
	"github.com/xiebiao/bookstore-api/internal/infrastructure/persistence/redis"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
	"github.com/xiebiao/bookstore-api/pkg/jwt"
	"github.com/xiebiao/bookstore-api/pkg/metrics"
)

// TokenIssuer 签发Token，由*jwt.Manager实现
type TokenIssuer interface {
	GenerateToken(userID uint, username, role string) (*jwt.TokenPair, error)
}

// SessionStore 会话与黑名单，由*redis.SessionStore实现
type SessionStore interface {
	SaveSession(ctx context.Context, userID uint, sess redis.Session, ttl time.Duration) error
	DeleteSession(ctx context.Context, userID uint) error
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

// ErrCredentialsRequired 登录缺少用户名或密码
var ErrCredentialsRequired = apperrors.New(apperrors.ErrCodeMissingFields, "Username and password are required")

// LoginUseCase 用户登录用例
// 设计说明：
// 1. 校验用户名密码，失败时不签发任何Token
// 2. 生成JWT Token对
// 3. 记录会话到Redis（失败只记日志，不影响登录）
type LoginUseCase struct {
	userService user.Service
	tokens      TokenIssuer
	sessions    SessionStore
	sessionTTL  time.Duration
	logger      *zap.Logger
}

// NewLoginUseCase 创建登录用例，sessionTTL与Refresh Token有效期一致
func NewLoginUseCase(
	userService user.Service,
	tokens TokenIssuer,
	sessions SessionStore,
	sessionTTL time.Duration,
	logger *zap.Logger,
) *LoginUseCase {
	return &LoginUseCase{
		userService: userService,
		tokens:      tokens,
		sessions:    sessions,
		sessionTTL:  sessionTTL,
		logger:      logger,
	}
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	// 1. 必填校验
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return nil, ErrCredentialsRequired
	}

	// 2. 校验用户名密码
	u, err := uc.userService.Authenticate(ctx, strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrCodeInvalidCredentials) {
			metrics.IncCounterVec(metrics.AuthFailuresTotal, map[string]string{"reason": "bad_credentials"})
		}
		return nil, err
	}

	// 3. 签发Token
	pair, err := uc.tokens.GenerateToken(u.ID, u.Username, string(u.Role))
	if err != nil {
		return nil, err
	}

	// 4. 记录会话
	sess := redis.Session{
		Username: u.Username,
		Role:     string(u.Role),
		ClientIP: req.ClientIP,
		LoginAt:  time.Now(),
	}
	if err := uc.sessions.SaveSession(ctx, u.ID, sess, uc.sessionTTL); err != nil {
		uc.logger.Warn("save session failed", zap.Uint("user_id", u.ID), zap.Error(err))
	}

	return &LoginResponse{
		Message:      "Login successful",
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		User:         ToUserInfo(u),
	}, nil
}

// LogoutUseCase 用户登出用例
type LogoutUseCase struct {
	sessions SessionStore
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessions SessionStore) *LogoutUseCase {
	return &LogoutUseCase{sessions: sessions}
}

// Execute 执行登出
// 当前Access Token加入黑名单直到过期，之后RequireAuth会拒绝它
func (uc *LogoutUseCase) Execute(ctx context.Context, req LogoutRequest) error {
	if err := uc.sessions.Revoke(ctx, req.TokenID, time.Until(req.ExpiresAt)); err != nil {
		return err
	}
	return uc.sessions.DeleteSession(ctx, req.UserID)
}

// =========================================
// 应用层DTO
// =========================================

// LoginRequest 登录请求
type LoginRequest struct {
	Username string
	Password string
	ClientIP string
}

// LoginResponse 登录响应
type LoginResponse struct {
	Message      string   `json:"message"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"` // Access Token过期时间（秒）
	User         UserInfo `json:"user"`
}

// LogoutRequest 登出请求，字段来自已验证的Access Token
type LogoutRequest struct {
	UserID    uint
	TokenID   string
	ExpiresAt time.Time
}

// UserInfo 对外暴露的用户信息（不含密码哈希）
type UserInfo struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// ToUserInfo 领域实体 → DTO
func ToUserInfo(u *user.User) UserInfo {
	return UserInfo{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}
