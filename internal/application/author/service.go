package author

import (
	"context"
	"strings"

	"github.com/xiebiao/bookstore-api/internal/application"
	"github.com/xiebiao/bookstore-api/internal/domain/author"
	"github.com/xiebiao/bookstore-api/internal/domain/book"
)

// Service 作者用例
type Service struct {
	authors author.Repository
	books   book.Repository
}

// NewService 创建作者服务
func NewService(authors author.Repository, books book.Repository) *Service {
	return &Service{authors: authors, books: books}
}

// Details 作者详情：作者本身、作品数、作品列表
type Details struct {
	Author    *author.Author
	BookCount int64
	Books     []*book.Book
}

// CreateRequest 创建作者请求
type CreateRequest struct {
	AuthID             string
	FirstName          string
	LastName           string
	Birthday           string
	CountryOfResidence string
	HrsWritingPerDay   *int
}

// UpdateRequest 部分更新，nil字段保持不变
type UpdateRequest struct {
	FirstName          *string
	LastName           *string
	Birthday           *string
	CountryOfResidence *string
	HrsWritingPerDay   *int
}

// List 作者列表
func (s *Service) List(ctx context.Context, f author.Filter) ([]*author.Author, int64, error) {
	return s.authors.List(ctx, f)
}

// Search 至少需要q、country、min_books之一
func (s *Service) Search(ctx context.Context, f author.SearchFilter) ([]*author.WithBookCount, int64, error) {
	if f.IsEmpty() {
		return nil, 0, author.ErrSearchCriteriaRequired
	}
	return s.authors.Search(ctx, f)
}

// Prolific 作品数最多的作者，limit缺省10，最多100
func (s *Service) Prolific(ctx context.Context, limit *int) ([]*author.WithBookCount, error) {
	return s.authors.Prolific(ctx, application.Limit(limit, 10, 100))
}

// Get 作者详情
func (s *Service) Get(ctx context.Context, id string) (*Details, error) {
	a, err := s.authors.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	books, err := s.books.ListByAuthor(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Details{Author: a, BookCount: int64(len(books)), Books: books}, nil
}

// Create 创建作者
func (s *Service) Create(ctx context.Context, req CreateRequest) (*author.Author, error) {
	if err := application.Required(
		application.Field{Name: "AuthID", Value: req.AuthID},
		application.Field{Name: "FirstName", Value: req.FirstName},
		application.Field{Name: "LastName", Value: req.LastName},
	); err != nil {
		return nil, err
	}
	birthday, err := application.ParseDate("Birthday", req.Birthday)
	if err != nil {
		return nil, err
	}

	a := &author.Author{
		AuthID:             strings.TrimSpace(req.AuthID),
		FirstName:          strings.TrimSpace(req.FirstName),
		LastName:           strings.TrimSpace(req.LastName),
		Birthday:           birthday,
		CountryOfResidence: req.CountryOfResidence,
		HrsWritingPerDay:   req.HrsWritingPerDay,
	}

	exists, err := s.authors.Exists(ctx, a.AuthID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, author.ErrAuthorDuplicate
	}
	if err := s.authors.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Update 更新作者
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*author.Author, error) {
	a, err := s.authors.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	birthday, changed, err := application.ParseDatePtr("Birthday", req.Birthday)
	if err != nil {
		return nil, err
	}
	if changed {
		a.Birthday = birthday
	}
	if req.FirstName != nil {
		a.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		a.LastName = *req.LastName
	}
	if req.CountryOfResidence != nil {
		a.CountryOfResidence = *req.CountryOfResidence
	}
	if req.HrsWritingPerDay != nil {
		a.HrsWritingPerDay = req.HrsWritingPerDay
	}

	if err := s.authors.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete 有作品的作者不能删除
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.authors.FindByID(ctx, id); err != nil {
		return err
	}
	n, err := s.authors.CountBooks(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return author.ErrHasBooks
	}
	return s.authors.Delete(ctx, id)
}
