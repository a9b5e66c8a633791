package rating

import (
	"context"
	"strings"

	"github.com/xiebiao/bookstore-api/internal/application"
	"github.com/xiebiao/bookstore-api/internal/domain/rating"
)

// Service 评分用例
type Service struct {
	repo  rating.Repository
	books application.Exister
}

// NewService books用于校验BookID
func NewService(repo rating.Repository, books application.Exister) *Service {
	return &Service{repo: repo, books: books}
}

// UpdateRequest 部分更新
type UpdateRequest struct {
	Rating     *int
	ReviewerID *int
}

// List 评分列表
func (s *Service) List(ctx context.Context, f rating.Filter) ([]*rating.Rating, int64, error) {
	return s.repo.List(ctx, f)
}

// Get 查询评分
func (s *Service) Get(ctx context.Context, id uint) (*rating.Rating, error) {
	return s.repo.FindByID(ctx, id)
}

// Summary 某本书的评分数与平均分，图书必须存在
func (s *Service) Summary(ctx context.Context, bookID string) (*rating.Summary, error) {
	if err := application.Reference(ctx, s.books, "BookID", bookID); err != nil {
		return nil, err
	}
	return s.repo.Summarize(ctx, bookID)
}

// Create 登录用户即可评分，分值1-5
func (s *Service) Create(ctx context.Context, r *rating.Rating) (*rating.Rating, error) {
	if err := application.Required(application.Field{Name: "BookID", Value: r.BookID}); err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	r.BookID = strings.TrimSpace(r.BookID)
	if err := application.Reference(ctx, s.books, "BookID", r.BookID); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Update 更新评分
func (s *Service) Update(ctx context.Context, id uint, req UpdateRequest) (*rating.Rating, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Rating != nil {
		r.Rating = *req.Rating
		if err := r.Validate(); err != nil {
			return nil, err
		}
	}
	if req.ReviewerID != nil {
		r.ReviewerID = req.ReviewerID
	}
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Delete 删除评分
func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
