package award

import (
	"context"
	"strings"

	"github.com/xiebiao/bookstore-api/internal/application"
	"github.com/xiebiao/bookstore-api/internal/domain/award"
)

// Service 获奖记录用例，AwardID由数据库分配
type Service struct {
	repo  award.Repository
	books application.Exister
}

// NewService books用于校验BookID
func NewService(repo award.Repository, books application.Exister) *Service {
	return &Service{repo: repo, books: books}
}

// UpdateRequest 部分更新
type UpdateRequest struct {
	BookID    *string
	AwardName *string
	YearWon   *int
}

// List 获奖列表
func (s *Service) List(ctx context.Context, f award.Filter) ([]*award.Award, int64, error) {
	return s.repo.List(ctx, f)
}

// Get 查询获奖记录
func (s *Service) Get(ctx context.Context, id uint) (*award.Award, error) {
	return s.repo.FindByID(ctx, id)
}

// Create BookID和AwardName必填
func (s *Service) Create(ctx context.Context, a *award.Award) (*award.Award, error) {
	if err := application.Required(
		application.Field{Name: "BookID", Value: a.BookID},
		application.Field{Name: "AwardName", Value: a.AwardName},
	); err != nil {
		return nil, err
	}
	a.AwardID = 0
	a.BookID = strings.TrimSpace(a.BookID)
	if err := application.Reference(ctx, s.books, "BookID", a.BookID); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Update 更新获奖记录
func (s *Service) Update(ctx context.Context, id uint, req UpdateRequest) (*award.Award, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.BookID != nil {
		a.BookID = strings.TrimSpace(*req.BookID)
		if err := application.Required(application.Field{Name: "BookID", Value: a.BookID}); err != nil {
			return nil, err
		}
		if err := application.Reference(ctx, s.books, "BookID", a.BookID); err != nil {
			return nil, err
		}
	}
	if req.AwardName != nil {
		a.AwardName = *req.AwardName
	}
	if req.YearWon != nil {
		a.YearWon = req.YearWon
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete 删除获奖记录
func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
