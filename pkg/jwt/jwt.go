package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

// TokenType 区分Access Token和Refresh Token
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Manager JWT管理器
// 设计说明：
// 1. 双Token机制：Access Token用于API鉴权，Refresh Token只能换取新的Access Token
// 2. 签名算法固定为HS256，解析时拒绝其他算法
// 3. Token中的角色只作展示，权限判断以数据库中的用户为准
type Manager struct {
	secret             []byte
	issuer             string
	accessTokenExpire  time.Duration
	refreshTokenExpire time.Duration
}

// NewManager 创建JWT管理器
func NewManager(secret, issuer string, accessTokenExpire, refreshTokenExpire time.Duration) *Manager {
	return &Manager{
		secret:             []byte(secret),
		issuer:             issuer,
		accessTokenExpire:  accessTokenExpire,
		refreshTokenExpire: refreshTokenExpire,
	}
}

// Claims 自定义JWT Claims
type Claims struct {
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenPair Token对（Access + Refresh）
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// GenerateToken 生成Token对
func (m *Manager) GenerateToken(userID uint, username, role string) (*TokenPair, error) {
	now := time.Now()

	accessToken, err := m.sign(Claims{
		UserID:           userID,
		Username:         username,
		Role:             role,
		TokenType:        TokenTypeAccess,
		RegisteredClaims: m.registered(userID, now, m.accessTokenExpire),
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to issue access token")
	}

	// Refresh Token只携带UserID
	refreshToken, err := m.sign(Claims{
		UserID:           userID,
		TokenType:        TokenTypeRefresh,
		RegisteredClaims: m.registered(userID, now, m.refreshTokenExpire),
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to issue refresh token")
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(m.accessTokenExpire.Seconds()),
	}, nil
}

// ParseToken 解析并验证Token（签名、exp、nbf）
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, apperrors.ErrInvalidToken
}

// ParseAccessToken 解析Access Token，Refresh Token不能用于鉴权
func (m *Manager) ParseAccessToken(tokenString string) (*Claims, error) {
	claims, err := m.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeAccess {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

// RefreshAccessToken 使用Refresh Token换取新的Access Token
// username和role由调用方从数据库重新读取后传入
func (m *Manager) RefreshAccessToken(refreshToken, username, role string) (string, *Claims, error) {
	claims, err := m.ParseToken(refreshToken)
	if err != nil {
		return "", nil, err
	}
	if claims.TokenType != TokenTypeRefresh {
		return "", nil, apperrors.ErrInvalidToken
	}

	token, err := m.sign(Claims{
		UserID:           claims.UserID,
		Username:         username,
		Role:             role,
		TokenType:        TokenTypeAccess,
		RegisteredClaims: m.registered(claims.UserID, time.Now(), m.accessTokenExpire),
	})
	if err != nil {
		return "", nil, apperrors.Wrap(err, "Failed to refresh token")
	}
	return token, claims, nil
}

// AccessTokenExpire Access Token有效期
func (m *Manager) AccessTokenExpire() time.Duration {
	return m.accessTokenExpire
}

// registered 每个Token带唯一的jti，黑名单按jti记录
func (m *Manager) registered(userID uint, now time.Time, ttl time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    m.issuer,
		Subject:   fmt.Sprintf("%d", userID),
	}
}

func (m *Manager) sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// RemainingTTL Token剩余有效期，用于计算黑名单过期时间
func (c *Claims) RemainingTTL(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	ttl := c.ExpiresAt.Sub(now)
	if ttl < 0 {
		return 0
	}
	return ttl
}
