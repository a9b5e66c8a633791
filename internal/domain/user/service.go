package user

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

// BcryptCost 密码哈希强度
const BcryptCost = 12

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,64}$`)
	hasLetter       = regexp.MustCompile(`[a-zA-Z]`)
	hasDigit        = regexp.MustCompile(`[0-9]`)
)

// Service 用户领域服务：注册校验、密码哈希与校验
type Service interface {
	// Register 注册普通用户
	Register(ctx context.Context, username, email, password string) (*User, error)

	// Authenticate 校验用户名和密码
	// 用户不存在与密码错误返回同一个错误，避免枚举用户名
	Authenticate(ctx context.Context, username, password string) (*User, error)

	// HashPassword bcrypt哈希（种子数据直接使用，不做强度校验）
	HashPassword(password string) (string, error)
}

type service struct {
	repo Repository
	cost int
}

// NewService 创建用户服务
func NewService(repo Repository) Service {
	return &service{repo: repo, cost: BcryptCost}
}

// NewServiceWithCost 测试中使用较低的bcrypt cost
func NewServiceWithCost(repo Repository, cost int) Service {
	return &service{repo: repo, cost: cost}
}

func (s *service) Register(ctx context.Context, username, email, password string) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	var missing []string
	if username == "" {
		missing = append(missing, "Username")
	}
	if email == "" {
		missing = append(missing, "Email")
	}
	if password == "" {
		missing = append(missing, "Password")
	}
	if len(missing) > 0 {
		return nil, apperrors.MissingFields(missing...)
	}

	if !usernamePattern.MatchString(username) {
		return nil, apperrors.Validation("Username must be 3-64 letters, digits, '_', '.' or '-'")
	}
	if !emailPattern.MatchString(email) {
		return nil, apperrors.Validation("Invalid email format")
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return nil, err
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := NewUser(username, email, hash, RoleUser)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(err, "Password verification failed")
	}
	return u, nil
}

func (s *service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", apperrors.Wrap(err, "Password hashing failed")
	}
	return string(hash), nil
}

// ValidatePasswordStrength 8-64位，必须包含字母和数字
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 64 {
		return apperrors.ErrWeakPassword
	}
	if !hasLetter.MatchString(password) || !hasDigit.MatchString(password) {
		return apperrors.ErrWeakPassword
	}
	return nil
}
