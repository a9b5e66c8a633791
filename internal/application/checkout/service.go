package checkout

import (
	"context"
	"errors"
	"strings"

	"github.com/xiebiao/bookstore-api/internal/application"
	"github.com/xiebiao/bookstore-api/internal/domain/checkout"
)

// Service 借阅统计用例，BookID+CheckoutMonth为联合主键
type Service struct {
	repo  checkout.Repository
	books application.Exister
}

// NewService books用于校验BookID
func NewService(repo checkout.Repository, books application.Exister) *Service {
	return &Service{repo: repo, books: books}
}

// List 借阅统计列表
func (s *Service) List(ctx context.Context, f checkout.Filter) ([]*checkout.Checkout, int64, error) {
	return s.repo.List(ctx, f)
}

// Get 查询某本书某月的借阅次数
func (s *Service) Get(ctx context.Context, bookID string, month int) (*checkout.Checkout, error) {
	return s.repo.Find(ctx, bookID, month)
}

// Create 同一本书同一月份只能有一条记录
func (s *Service) Create(ctx context.Context, c *checkout.Checkout) (*checkout.Checkout, error) {
	if err := application.Required(application.Field{Name: "BookID", Value: c.BookID}); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.BookID = strings.TrimSpace(c.BookID)
	if err := application.Reference(ctx, s.books, "BookID", c.BookID); err != nil {
		return nil, err
	}

	_, err := s.repo.Find(ctx, c.BookID, c.CheckoutMonth)
	switch {
	case err == nil:
		return nil, checkout.ErrCheckoutDuplicate
	case !errors.Is(err, checkout.ErrCheckoutNotFound):
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update 只能修改借阅次数
func (s *Service) Update(ctx context.Context, bookID string, month int, count int) (*checkout.Checkout, error) {
	c, err := s.repo.Find(ctx, bookID, month)
	if err != nil {
		return nil, err
	}
	c.NumberOfCheckouts = count
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete 删除借阅统计
func (s *Service) Delete(ctx context.Context, bookID string, month int) error {
	if _, err := s.repo.Find(ctx, bookID, month); err != nil {
		return err
	}
	return s.repo.Delete(ctx, bookID, month)
}
