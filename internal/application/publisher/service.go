package publisher

import (
	"context"
	"strings"

	"github.com/xiebiao/bookstore-api/internal/application"
	"github.com/xiebiao/bookstore-api/internal/domain/publisher"
)

// Service 出版社用例
type Service struct {
	repo publisher.Repository
}

// NewService 创建出版社服务
func NewService(repo publisher.Repository) *Service {
	return &Service{repo: repo}
}

// UpdateRequest 部分更新，nil字段保持不变
type UpdateRequest struct {
	PublishingHouse *string
	City            *string
	State           *string
	Country         *string
	YearEstablished *int
	MarketingSpend  *int
}

// List 出版社列表
func (s *Service) List(ctx context.Context, f publisher.Filter) ([]*publisher.Publisher, int64, error) {
	return s.repo.List(ctx, f)
}

// Get 查询出版社
func (s *Service) Get(ctx context.Context, id string) (*publisher.Publisher, error) {
	return s.repo.FindByID(ctx, id)
}

// Create PubID和PublishingHouse必填
func (s *Service) Create(ctx context.Context, p *publisher.Publisher) (*publisher.Publisher, error) {
	if err := application.Required(
		application.Field{Name: "PubID", Value: p.PubID},
		application.Field{Name: "PublishingHouse", Value: p.PublishingHouse},
	); err != nil {
		return nil, err
	}
	p.PubID = strings.TrimSpace(p.PubID)

	exists, err := s.repo.Exists(ctx, p.PubID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, publisher.ErrPublisherDuplicate
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update 更新出版社
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*publisher.Publisher, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.PublishingHouse != nil {
		if err := application.Required(application.Field{Name: "PublishingHouse", Value: *req.PublishingHouse}); err != nil {
			return nil, err
		}
		p.PublishingHouse = *req.PublishingHouse
	}
	if req.City != nil {
		p.City = *req.City
	}
	if req.State != nil {
		p.State = *req.State
	}
	if req.Country != nil {
		p.Country = *req.Country
	}
	if req.YearEstablished != nil {
		p.YearEstablished = req.YearEstablished
	}
	if req.MarketingSpend != nil {
		p.MarketingSpend = req.MarketingSpend
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete 有版本引用时拒绝删除
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	n, err := s.repo.CountEditions(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return publisher.ErrHasEditions
	}
	return s.repo.Delete(ctx, id)
}
