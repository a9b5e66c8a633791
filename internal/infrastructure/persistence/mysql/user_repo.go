package mysql

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-api/internal/domain/query"
	"github.com/xiebiao/bookstore-api/internal/domain/user"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

// userRepository 用户仓储实现（MySQL）
// 1. 实现domain/user/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 用户名、邮箱唯一性由UNIQUE索引保证，重复时转换为业务错误
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
// 注意：返回的是domain层的接口类型，不是具体类型（依赖倒置）
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := &UserModel{
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
	}

	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			// 错误信息中包含冲突的索引名
			if strings.Contains(err.Error(), "email") {
				return apperrors.ErrEmailDuplicate
			}
			return apperrors.ErrUsernameDuplicate
		}
		return apperrors.Wrap(err, "Failed to create user")
	}

	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model UserModel
	if err := dbFrom(ctx, r.db).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to query user")
	}
	return toUserEntity(&model), nil
}

// FindByUsername 用户名有UNIQUE索引，使用First
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var model UserModel
	if err := dbFrom(ctx, r.db).Where("username = ?", username).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to query user")
	}
	return toUserEntity(&model), nil
}

func (r *userRepository) List(ctx context.Context, page query.Page) ([]*user.User, int64, error) {
	var models []UserModel
	total, err := findPage(func() *gorm.DB {
		return dbFrom(ctx, r.db).Model(&UserModel{})
	}, page, []string{"id ASC"}, &models)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "Failed to list users")
	}

	users := make([]*user.User, 0, len(models))
	for i := range models {
		users = append(users, toUserEntity(&models[i]))
	}
	return users, total, nil
}

// toUserEntity GORM模型 → 领域实体
func toUserEntity(m *UserModel) *user.User {
	return &user.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         user.ParseRole(m.Role),
		CreatedAt:    m.CreatedAt,
	}
}
