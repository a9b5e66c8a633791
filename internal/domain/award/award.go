package award

import (
	"context"

	"github.com/xiebiao/bookstore-api/internal/domain/query"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

// Award 获奖记录，AwardID由数据库自增
type Award struct {
	AwardID   uint
	BookID    string
	AwardName string
	YearWon   *int
}

var ErrAwardNotFound = apperrors.NotFound("Award")

// Filter Name匹配AwardName
type Filter struct {
	BookID string
	Name   string
	Year   *int
	Page   query.Page
}

// Repository 获奖仓储，按YearWon降序、AwardID升序
type Repository interface {
	Create(ctx context.Context, a *Award) error
	FindByID(ctx context.Context, id uint) (*Award, error)
	Update(ctx context.Context, a *Award) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, f Filter) ([]*Award, int64, error)
}
