package series

import (
	"context"

	"github.com/xiebiao/bookstore-api/internal/domain/query"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

// Series 丛书
type Series struct {
	SeriesID       string
	SeriesName     string
	PlannedVolumes *int
	BookTourEvents *int
}

var (
	ErrSeriesNotFound  = apperrors.NotFound("Series")
	ErrSeriesDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "Series with this SeriesID already exists")
	ErrHasBooks        = apperrors.New(apperrors.ErrCodeHasDependents, "Cannot delete series with associated books")
)

// Filter Name匹配SeriesName
type Filter struct {
	Name string
	Page query.Page
}

// Repository 丛书仓储，按SeriesName, SeriesID排序
type Repository interface {
	Create(ctx context.Context, s *Series) error
	FindByID(ctx context.Context, id string) (*Series, error)
	Update(ctx context.Context, s *Series) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, f Filter) ([]*Series, int64, error)
	// CountBooks 统计引用该丛书的info行
	CountBooks(ctx context.Context, id string) (int64, error)
}
