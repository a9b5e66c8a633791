package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

// Key前缀，使用冒号分隔命名空间
const (
	sessionKeyPrefix   = "bookstore:session:"
	blacklistKeyPrefix = "bookstore:blacklist:"
)

// Session 登录会话信息
type Session struct {
	Username string
	Role     string
	ClientIP string
	TokenID  string
	LoginAt  time.Time
}

// SessionStore 会话存储
// 1. session:{user_id} 记录最近一次登录（Hash），过期时间与Refresh Token一致
// 2. blacklist:{jti} 登出的Token，过期时间为Token剩余有效期，到期自动清理
type SessionStore struct {
	client redis.Cmdable
}

// NewSessionStore 创建会话存储
func NewSessionStore(client redis.Cmdable) *SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(userID uint) string {
	return sessionKeyPrefix + strconv.FormatUint(uint64(userID), 10)
}

func blacklistKey(tokenID string) string {
	return blacklistKeyPrefix + tokenID
}

// SaveSession HSET与EXPIRE放在同一个MULTI中执行
func (s *SessionStore) SaveSession(ctx context.Context, userID uint, sess Session, ttl time.Duration) error {
	key := sessionKey(userID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]interface{}{
			"username":  sess.Username,
			"role":      sess.Role,
			"client_ip": sess.ClientIP,
			"token_id":  sess.TokenID,
			"login_at":  sess.LoginAt.UTC().Format(time.RFC3339),
		})
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return apperrors.Wrap(err, "Failed to save session")
	}
	return nil
}

// GetSession 会话不存在时返回ErrUnauthorized
func (s *SessionStore) GetSession(ctx context.Context, userID uint) (*Session, error) {
	result, err := s.client.HGetAll(ctx, sessionKey(userID)).Result()
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to load session")
	}
	if len(result) == 0 {
		return nil, apperrors.ErrUnauthorized
	}

	sess := &Session{
		Username: result["username"],
		Role:     result["role"],
		ClientIP: result["client_ip"],
		TokenID:  result["token_id"],
	}
	if at, err := time.Parse(time.RFC3339, result["login_at"]); err == nil {
		sess.LoginAt = at
	}
	return sess, nil
}

// DeleteSession 登出时删除
func (s *SessionStore) DeleteSession(ctx context.Context, userID uint) error {
	if err := s.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return apperrors.Wrap(err, "Failed to delete session")
	}
	return nil
}

// Revoke 将Token加入黑名单，ttl<=0说明Token已过期，无需记录
func (s *SessionStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return fmt.Errorf("token id is empty")
	}
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, blacklistKey(tokenID), "revoked", ttl).Err(); err != nil {
		return apperrors.Wrap(err, "Failed to revoke token")
	}
	return nil
}

// IsRevoked 检查Token是否在黑名单中
func (s *SessionStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	n, err := s.client.Exists(ctx, blacklistKey(tokenID)).Result()
	if err != nil {
		return false, apperrors.Wrap(err, "Failed to check token blacklist")
	}
	return n > 0, nil
}
