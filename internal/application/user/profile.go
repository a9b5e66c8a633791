package user

import (
	"context"

	"github.com/xiebiao/bookstore-api/internal/domain/query"
	"github.com/xiebiao/bookstore-api/internal/domain/user"
)

// ProfileQuery 当前用户信息与用户列表
type ProfileQuery struct {
	repo user.Repository
}

// NewProfileQuery 创建查询
func NewProfileQuery(repo user.Repository) *ProfileQuery {
	return &ProfileQuery{repo: repo}
}

// Me 查询当前用户，用户已被删除时返回ErrUserNotFound
func (q *ProfileQuery) Me(ctx context.Context, userID uint) (*UserInfo, error) {
	u, err := q.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	info := ToUserInfo(u)
	return &info, nil
}

// List 按ID分页列出用户
func (q *ProfileQuery) List(ctx context.Context, page query.Page) ([]UserInfo, int64, error) {
	users, total, err := q.repo.List(ctx, page)
	if err != nil {
		return nil, 0, err
	}
	items := make([]UserInfo, 0, len(users))
	for _, u := range users {
		items = append(items, ToUserInfo(u))
	}
	return items, total, nil
}
