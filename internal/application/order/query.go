package order

import (
	"context"
	"strings"

	"github.com/xiebiao/bookstore-api/internal/domain/book"
	"github.com/xiebiao/bookstore-api/internal/domain/order"
	"github.com/xiebiao/bookstore-api/internal/domain/query"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

// QueryService 订单查询：列表、搜索、月度汇总、按ISBN、按图书统计销量
type QueryService struct {
	orders   order.Repository
	books    book.Repository
	editions book.EditionRepository
}

// NewQueryService 创建订单查询服务
func NewQueryService(orders order.Repository, books book.Repository, editions book.EditionRepository) *QueryService {
	return &QueryService{orders: orders, books: books, editions: editions}
}

// Get 查询单个订单（含明细）
func (s *QueryService) Get(ctx context.Context, id string) (*order.Order, error) {
	return s.orders.FindByID(ctx, id)
}

// List 列表与搜索共用，不要求任何过滤条件
func (s *QueryService) List(ctx context.Context, f order.Filter) ([]*order.Order, int64, error) {
	return s.orders.List(ctx, f)
}

// ByISBN 包含指定ISBN的订单
func (s *QueryService) ByISBN(ctx context.Context, isbn string, dates query.DateRange, page query.Page) ([]*order.Order, int64, error) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return nil, 0, apperrors.MissingFields("ISBN")
	}
	return s.orders.List(ctx, order.Filter{ISBN: isbn, Dates: dates, Page: page})
}

// Summary 按月汇总订单数和册数
func (s *QueryService) Summary(ctx context.Context, dates query.DateRange) ([]*order.MonthlySummary, error) {
	return s.orders.Summary(ctx, dates)
}

// BooksSold 某本书各版本的销量，没有销量的版本也列出（计数为0）
func (s *QueryService) BooksSold(ctx context.Context, bookID string, dates query.DateRange) (*order.BookSales, error) {
	editions, err := s.editions.ListByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if len(editions) == 0 {
		return nil, order.ErrNoEditions
	}

	b, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	isbns := make([]string, 0, len(editions))
	for _, e := range editions {
		isbns = append(isbns, e.ISBN)
	}
	sold, err := s.orders.SalesByEdition(ctx, isbns, dates)
	if err != nil {
		return nil, err
	}

	result := &order.BookSales{BookID: b.BookID, Title: b.Title}
	for _, e := range editions {
		es := &order.EditionSales{
			ISBN:            e.ISBN,
			Format:          e.Format,
			Price:           e.Price,
			PublicationDate: e.PublicationDate,
		}
		if row, ok := sold[e.ISBN]; ok {
			es.OrderCount = row.OrderCount
			es.TotalQuantity = row.TotalQuantity
		}
		result.ByEdition = append(result.ByEdition, es)
	}
	return result, nil
}
