package user

import (
	"context"

	"github.com/xiebiao/bookstore-api/internal/domain/query"
)

// Repository 用户仓储接口
// 1. 接口定义在domain层，实现在infrastructure/persistence/mysql
// 2. 用户名、邮箱唯一性由数据库UNIQUE索引保证，重复时返回ErrUsernameDuplicate/ErrEmailDuplicate
type Repository interface {
	// Create 创建用户
	Create(ctx context.Context, user *User) error

	// FindByID 不存在时返回apperrors.ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByUsername 不存在时返回apperrors.ErrUserNotFound
	FindByUsername(ctx context.Context, username string) (*User, error)

	// List 按ID升序分页
	List(ctx context.Context, page query.Page) ([]*User, int64, error)
}
