package publisher

import (
	"context"

	"github.com/xiebiao/bookstore-api/internal/domain/query"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

// Publisher 出版社
type Publisher struct {
	PubID           string
	PublishingHouse string
	City            string
	State           string
	Country         string
	YearEstablished *int
	MarketingSpend  *int
}

var (
	ErrPublisherNotFound  = apperrors.NotFound("Publisher")
	ErrPublisherDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "Publisher with this PubID already exists")
	ErrHasEditions        = apperrors.New(apperrors.ErrCodeHasDependents, "Cannot delete publisher with associated editions")
)

// Filter Name匹配PublishingHouse
type Filter struct {
	Name    string
	Country string
	Page    query.Page
}

// Repository 出版社仓储，按PublishingHouse, PubID排序
type Repository interface {
	Create(ctx context.Context, p *Publisher) error
	FindByID(ctx context.Context, id string) (*Publisher, error)
	Update(ctx context.Context, p *Publisher) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, f Filter) ([]*Publisher, int64, error)
	CountEditions(ctx context.Context, id string) (int64, error)
}
