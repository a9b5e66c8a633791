package user

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-api/internal/domain/user"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

// SeedAccount 初始化账号
type SeedAccount struct {
	Username string
	Email    string
	Password string
	Role     user.Role
}

// SeedUseCase 创建初始管理员和普通用户，已存在的用户名跳过
// 种子密码只做哈希，不做强度校验
type SeedUseCase struct {
	repo        user.Repository
	userService user.Service
	logger      *zap.Logger
}

// NewSeedUseCase 创建种子用例
func NewSeedUseCase(repo user.Repository, userService user.Service, logger *zap.Logger) *SeedUseCase {
	return &SeedUseCase{repo: repo, userService: userService, logger: logger}
}

// Execute 返回新建的账号数
func (uc *SeedUseCase) Execute(ctx context.Context, accounts []SeedAccount) (int, error) {
	created := 0
	for _, acc := range accounts {
		if acc.Username == "" || acc.Password == "" {
			continue
		}

		_, err := uc.repo.FindByUsername(ctx, acc.Username)
		if err == nil {
			uc.logger.Info("seed user exists, skipped", zap.String("username", acc.Username))
			continue
		}
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			return created, err
		}

		hash, err := uc.userService.HashPassword(acc.Password)
		if err != nil {
			return created, err
		}
		if err := uc.repo.Create(ctx, user.NewUser(acc.Username, acc.Email, hash, acc.Role)); err != nil {
			return created, err
		}
		created++
		uc.logger.Info("seed user created",
			zap.String("username", acc.Username),
			zap.String("role", string(acc.Role)),
		)
	}
	return created, nil
}
