package series

import (
	"context"
	"strings"

	"github.com/xiebiao/bookstore-api/internal/application"
	"github.com/xiebiao/bookstore-api/internal/domain/series"
)

// Service 丛书用例
type Service struct {
	repo series.Repository
}

// NewService 创建丛书服务
func NewService(repo series.Repository) *Service {
	return &Service{repo: repo}
}

// UpdateRequest 部分更新
type UpdateRequest struct {
	SeriesName     *string
	PlannedVolumes *int
	BookTourEvents *int
}

// List 丛书列表
func (s *Service) List(ctx context.Context, f series.Filter) ([]*series.Series, int64, error) {
	return s.repo.List(ctx, f)
}

// Create SeriesID和SeriesName必填
func (s *Service) Create(ctx context.Context, sr *series.Series) (*series.Series, error) {
	if err := application.Required(
		application.Field{Name: "SeriesID", Value: sr.SeriesID},
		application.Field{Name: "SeriesName", Value: sr.SeriesName},
	); err != nil {
		return nil, err
	}
	sr.SeriesID = strings.TrimSpace(sr.SeriesID)

	exists, err := s.repo.Exists(ctx, sr.SeriesID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, series.ErrSeriesDuplicate
	}
	if err := s.repo.Create(ctx, sr); err != nil {
		return nil, err
	}
	return sr, nil
}

// Update 更新丛书
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*series.Series, error) {
	sr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.SeriesName != nil {
		if err := application.Required(application.Field{Name: "SeriesName", Value: *req.SeriesName}); err != nil {
			return nil, err
		}
		sr.SeriesName = *req.SeriesName
	}
	if req.PlannedVolumes != nil {
		sr.PlannedVolumes = req.PlannedVolumes
	}
	if req.BookTourEvents != nil {
		sr.BookTourEvents = req.BookTourEvents
	}
	if err := s.repo.Update(ctx, sr); err != nil {
		return nil, err
	}
	return sr, nil
}

// Delete 有图书属于该丛书时拒绝删除
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	n, err := s.repo.CountBooks(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return series.ErrHasBooks
	}
	return s.repo.Delete(ctx, id)
}
