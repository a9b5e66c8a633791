package book

import (
	"context"
	"errors"
	"strings"

	"github.com/xiebiao/bookstore-api/internal/application"
	"github.com/xiebiao/bookstore-api/internal/domain/book"
	"github.com/xiebiao/bookstore-api/internal/domain/publisher"
)

// EditionInput 创建版本请求
type EditionInput struct {
	ISBN            string
	BookID          string
	Format          string
	PubID           string
	PublicationDate string
	Pages           *int
	PrintRunSizeK   *int
	Price           *float64
}

func (in EditionInput) toEdition() (*book.Edition, error) {
	if err := application.Required(
		application.Field{Name: "ISBN", Value: in.ISBN},
		application.Field{Name: "BookID", Value: in.BookID},
	); err != nil {
		return nil, err
	}
	if in.Price != nil && *in.Price < 0 {
		return nil, book.ErrNegativePrice
	}
	pubDate, err := application.ParseDate("PublicationDate", in.PublicationDate)
	if err != nil {
		return nil, err
	}
	return &book.Edition{
		ISBN:            strings.TrimSpace(in.ISBN),
		BookID:          strings.TrimSpace(in.BookID),
		Format:          in.Format,
		PubID:           strings.TrimSpace(in.PubID),
		PublicationDate: pubDate,
		Pages:           in.Pages,
		PrintRunSizeK:   in.PrintRunSizeK,
		Price:           in.Price,
	}, nil
}

// EditionUpdate 版本部分更新，ISBN不可修改
type EditionUpdate struct {
	BookID          *string
	Format          *string
	PubID           *string
	PublicationDate *string
	Pages           *int
	PrintRunSizeK   *int
	Price           *float64
}

// EditionService 版本用例
type EditionService struct {
	editions   book.EditionRepository
	books      book.Repository
	publishers publisher.Repository
}

// NewEditionService 创建版本服务
func NewEditionService(editions book.EditionRepository, books book.Repository, publishers publisher.Repository) *EditionService {
	return &EditionService{editions: editions, books: books, publishers: publishers}
}

// List 版本列表
func (s *EditionService) List(ctx context.Context, f book.EditionFilter) ([]*book.Edition, int64, error) {
	return s.editions.List(ctx, f)
}

// Get 版本及其所属图书
func (s *EditionService) Get(ctx context.Context, isbn string) (*book.Edition, *book.Book, error) {
	e, err := s.editions.FindByISBN(ctx, isbn)
	if err != nil {
		return nil, nil, err
	}
	b, err := s.books.FindByID(ctx, e.BookID)
	switch {
	case errors.Is(err, book.ErrBookNotFound):
		return e, nil, nil
	case err != nil:
		return nil, nil, err
	}
	return e, b, nil
}

// Create 创建版本，BookID和PubID必须存在
func (s *EditionService) Create(ctx context.Context, in EditionInput) (*book.Edition, error) {
	e, err := in.toEdition()
	if err != nil {
		return nil, err
	}
	_, err = s.editions.FindByISBN(ctx, e.ISBN)
	switch {
	case err == nil:
		return nil, book.ErrEditionDuplicate
	case !errors.Is(err, book.ErrEditionNotFound):
		return nil, err
	}
	if err := s.checkReferences(ctx, e); err != nil {
		return nil, err
	}
	if err := s.editions.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Update 更新版本
func (s *EditionService) Update(ctx context.Context, isbn string, req EditionUpdate) (*book.Edition, error) {
	e, err := s.editions.FindByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}

	pubDate, changed, err := application.ParseDatePtr("PublicationDate", req.PublicationDate)
	if err != nil {
		return nil, err
	}
	if changed {
		e.PublicationDate = pubDate
	}
	if req.BookID != nil {
		e.BookID = strings.TrimSpace(*req.BookID)
	}
	if req.Format != nil {
		e.Format = *req.Format
	}
	if req.PubID != nil {
		e.PubID = strings.TrimSpace(*req.PubID)
	}
	if req.Pages != nil {
		e.Pages = req.Pages
	}
	if req.PrintRunSizeK != nil {
		e.PrintRunSizeK = req.PrintRunSizeK
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, book.ErrNegativePrice
		}
		e.Price = req.Price
	}

	if err := application.Required(application.Field{Name: "BookID", Value: e.BookID}); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, e); err != nil {
		return nil, err
	}
	if err := s.editions.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete 有订单明细引用时拒绝删除
func (s *EditionService) Delete(ctx context.Context, isbn string) error {
	if _, err := s.editions.FindByISBN(ctx, isbn); err != nil {
		return err
	}
	n, err := s.editions.CountOrderLines(ctx, isbn)
	if err != nil {
		return err
	}
	if n > 0 {
		return book.ErrEditionHasOrders
	}
	return s.editions.Delete(ctx, isbn)
}

func (s *EditionService) checkReferences(ctx context.Context, e *book.Edition) error {
	if err := application.Reference(ctx, s.books, "BookID", e.BookID); err != nil {
		return err
	}
	return application.Reference(ctx, s.publishers, "PubID", e.PubID)
}
