package rating

import (
	"context"

	"github.com/xiebiao/bookstore-api/internal/domain/query"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

const (
	MinValue = 1
	MaxValue = 5
)

// Rating 读者评分
type Rating struct {
	ReviewID   uint
	BookID     string
	Rating     int
	ReviewerID *int
}

var (
	ErrRatingNotFound  = apperrors.NotFound("Rating")
	ErrRatingDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "Rating with this ReviewID already exists")
	ErrOutOfRange      = apperrors.Validation("Rating must be between 1 and 5")
)

// Validate 评分范围校验
func (r *Rating) Validate() error {
	if r.Rating < MinValue || r.Rating > MaxValue {
		return ErrOutOfRange
	}
	return nil
}

// Summary 某本书的评分汇总
type Summary struct {
	BookID  string
	Count   int64
	Average float64
}

// Filter 评分列表过滤
type Filter struct {
	BookID     string
	ReviewerID *int
	MinRating  *int
	MaxRating  *int
	Page       query.Page
}

// Repository 评分仓储，按ReviewID排序
type Repository interface {
	// Create ReviewID为0时由数据库分配
	Create(ctx context.Context, r *Rating) error
	FindByID(ctx context.Context, id uint) (*Rating, error)
	Update(ctx context.Context, r *Rating) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, f Filter) ([]*Rating, int64, error)
	Summarize(ctx context.Context, bookID string) (*Summary, error)
}
