package order

import (
	"context"

	"github.com/xiebiao/bookstore-api/internal/domain/query"
)

// Filter 订单列表/搜索过滤条件
// ISBN、BookID、MinQuantity、BookTitle、AuthorLastName需要关联明细及更远的表，
// 关联后按OrderID去重
type Filter struct {
	OrderID        string // 子串匹配
	Dates          query.DateRange
	ISBN           string
	BookID         string
	MinQuantity    *int
	BookTitle      string
	AuthorLastName string
	Page           query.Page
}

// Repository 订单仓储接口
// 排序固定为 SaleDate, OrderID
type Repository interface {
	// Create 写入订单及明细，需在事务中调用
	Create(ctx context.Context, o *Order) error

	// FindByID 加载订单及明细
	FindByID(ctx context.Context, id string) (*Order, error)

	Exists(ctx context.Context, id string) (bool, error)

	// UpdateSaleDate 只更新订单头
	UpdateSaleDate(ctx context.Context, o *Order) error

	// ReplaceDetails 删除原有明细后写入新明细，需在事务中调用
	ReplaceDetails(ctx context.Context, orderID string, details []*Detail) error

	// Delete 先删明细再删订单，需在事务中调用
	Delete(ctx context.Context, id string) error

	List(ctx context.Context, f Filter) ([]*Order, int64, error)

	// Summary 按月统计订单数和册数
	Summary(ctx context.Context, dates query.DateRange) ([]*MonthlySummary, error)

	// SalesByEdition 统计指定版本在区间内的销量，没有销量的版本不返回
	SalesByEdition(ctx context.Context, isbns []string, dates query.DateRange) (map[string]*EditionSales, error)
}

// 事件路由键
const (
	EventCreated = "order.created"
	EventUpdated = "order.updated"
	EventDeleted = "order.deleted"
)

// Event 订单变更事件
type Event struct {
	Type       string   `json:"type"`
	OrderID    string   `json:"order_id"`
	SaleDate   string   `json:"sale_date,omitempty"`
	ItemCount  int      `json:"item_count"`
	TotalItems int      `json:"total_items"`
	ISBNs      []string `json:"isbns,omitempty"`
	ActorID    uint     `json:"actor_id,omitempty"`
	OccurredAt string   `json:"occurred_at"`
}

// EventPublisher 订单事件发布（旁路，失败不影响已提交的事务）
type EventPublisher interface {
	Publish(ctx context.Context, evt Event) error
}
