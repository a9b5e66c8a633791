package book

import (
	"context"
	"time"

	"github.com/xiebiao/bookstore-api/internal/domain/query"
)

// 图书列表可排序字段
const (
	SortTitle  = "title"
	SortAuthor = "author"
)

// SortFields 排序白名单
var SortFields = []string{SortTitle, SortAuthor}

// Filter 图书列表过滤条件
// Genre/SeriesID需要关联info表
type Filter struct {
	Title    string
	AuthorID string
	Genre    string
	SeriesID string
	Sort     query.Sort
	Page     query.Page
}

// SearchFilter 全文搜索：书名、作者名、类型任一匹配即命中（并集）
type SearchFilter struct {
	Q    string
	Page query.Page
}

// Repository 图书仓储接口
// 1. List/Search返回Details（含作者、扩展信息、版本）
// 2. 计数在分页之前执行，返回过滤后的总数
type Repository interface {
	Create(ctx context.Context, b *Book) error
	FindByID(ctx context.Context, id string) (*Book, error)
	Update(ctx context.Context, b *Book) error
	// Delete 同时删除Info，需在事务中调用
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)

	FindDetails(ctx context.Context, id string) (*Details, error)
	List(ctx context.Context, f Filter) ([]*Details, int64, error)
	Search(ctx context.Context, f SearchFilter) ([]*Details, int64, error)
	ListByAuthor(ctx context.Context, authID string) ([]*Book, error)
	// ListBySeries 按VolumeNumber升序
	ListBySeries(ctx context.Context, seriesID string) ([]*Details, error)

	// Bestsellers since之后（含）的销量排行
	Bestsellers(ctx context.Context, since time.Time, limit int) ([]*Bestseller, error)
	UnitsSold(ctx context.Context, id string, since time.Time) (int64, error)

	CountDependents(ctx context.Context, id string) (Dependents, error)

	// SaveInfo 不存在则插入，存在则更新
	SaveInfo(ctx context.Context, info *Info) error
}

// EditionFilter 版本列表过滤条件
type EditionFilter struct {
	BookID   string
	PubID    string
	Format   string
	MinPrice *float64
	MaxPrice *float64
	Page     query.Page
}

// EditionRepository 版本仓储接口
type EditionRepository interface {
	Create(ctx context.Context, e *Edition) error
	FindByISBN(ctx context.Context, isbn string) (*Edition, error)
	Update(ctx context.Context, e *Edition) error
	Delete(ctx context.Context, isbn string) error
	List(ctx context.Context, f EditionFilter) ([]*Edition, int64, error)
	ListByBook(ctx context.Context, bookID string) ([]*Edition, error)

	// FindByISBNs 批量查询，返回存在的版本（ISBN→Edition）
	FindByISBNs(ctx context.Context, isbns []string) (map[string]*Edition, error)

	// CountOrderLines 删除前检查订单明细引用
	CountOrderLines(ctx context.Context, isbn string) (int64, error)
}
