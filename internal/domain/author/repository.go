package author

import (
	"context"

	"github.com/xiebiao/bookstore-api/internal/domain/query"
)

// Filter 作者列表过滤条件，空值表示不过滤
type Filter struct {
	Name            string // 名或姓包含
	FirstName       string
	LastName        string
	Country         string
	MinWritingHours *int
	Page            query.Page
}

// SearchFilter 作者搜索条件
// Q匹配名或姓；各参数之间取交集
type SearchFilter struct {
	Q        string
	Country  string
	MinBooks *int
	Page     query.Page
}

// IsEmpty 是否没有任何搜索条件
func (f SearchFilter) IsEmpty() bool {
	return f.Q == "" && f.Country == "" && f.MinBooks == nil
}

// Repository 作者仓储
// 排序固定为 LastName, FirstName, AuthID
type Repository interface {
	Create(ctx context.Context, a *Author) error
	FindByID(ctx context.Context, id string) (*Author, error)
	Update(ctx context.Context, a *Author) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)

	List(ctx context.Context, f Filter) ([]*Author, int64, error)
	Search(ctx context.Context, f SearchFilter) ([]*WithBookCount, int64, error)

	// Prolific 按图书数量降序
	Prolific(ctx context.Context, limit int) ([]*WithBookCount, error)

	// CountBooks 删除前检查依赖
	CountBooks(ctx context.Context, id string) (int64, error)
}
