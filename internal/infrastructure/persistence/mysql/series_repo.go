package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-api/internal/domain/series"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

type seriesRepository struct {
	db *gorm.DB
}

// NewSeriesRepository 创建丛书仓储
func NewSeriesRepository(db *gorm.DB) series.Repository {
	return &seriesRepository{db: db}
}

func (r *seriesRepository) Create(ctx context.Context, s *series.Series) error {
	if err := dbFrom(ctx, r.db).Create(toSeriesModel(s)).Error; err != nil {
		if isDuplicateError(err) {
			return series.ErrSeriesDuplicate
		}
		return apperrors.Wrap(err, "Failed to create series")
	}
	return nil
}

func (r *seriesRepository) FindByID(ctx context.Context, id string) (*series.Series, error) {
	var m SeriesModel
	if err := dbFrom(ctx, r.db).Where("SeriesID = ?", id).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, series.ErrSeriesNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to query series")
	}
	return toSeriesEntity(&m), nil
}

func (r *seriesRepository) Update(ctx context.Context, s *series.Series) error {
	err := dbFrom(ctx, r.db).Model(&SeriesModel{}).Where("SeriesID = ?", s.SeriesID).
		Select("*").Omit("SeriesID").Updates(toSeriesModel(s)).Error
	if err != nil {
		return apperrors.Wrap(err, "Failed to update series")
	}
	return nil
}

func (r *seriesRepository) Delete(ctx context.Context, id string) error {
	result := dbFrom(ctx, r.db).Where("SeriesID = ?", id).Delete(&SeriesModel{})
	if result.Error != nil {
		if isForeignKeyError(result.Error) {
			return series.ErrHasBooks
		}
		return apperrors.Wrap(result.Error, "Failed to delete series")
	}
	if result.RowsAffected == 0 {
		return series.ErrSeriesNotFound
	}
	return nil
}

func (r *seriesRepository) Exists(ctx context.Context, id string) (bool, error) {
	var n int64
	if err := dbFrom(ctx, r.db).Model(&SeriesModel{}).Where("SeriesID = ?", id).Count(&n).Error; err != nil {
		return false, apperrors.Wrap(err, "Failed to query series")
	}
	return n > 0, nil
}

func (r *seriesRepository) List(ctx context.Context, f series.Filter) ([]*series.Series, int64, error) {
	var models []SeriesModel
	total, err := findPage(func() *gorm.DB {
		return dbFrom(ctx, r.db).Model(&SeriesModel{}).Scopes(ContainsFold("series.SeriesName", f.Name))
	}, f.Page, []string{"series.SeriesName ASC", "series.SeriesID ASC"}, &models)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "Failed to list series")
	}

	out := make([]*series.Series, 0, len(models))
	for i := range models {
		out = append(out, toSeriesEntity(&models[i]))
	}
	return out, total, nil
}

func (r *seriesRepository) CountBooks(ctx context.Context, id string) (int64, error) {
	var n int64
	if err := dbFrom(ctx, r.db).Model(&InfoModel{}).Where("SeriesID = ?", id).Count(&n).Error; err != nil {
		return 0, apperrors.Wrap(err, "Failed to count series books")
	}
	return n, nil
}

func toSeriesModel(s *series.Series) *SeriesModel {
	return &SeriesModel{
		SeriesID:       s.SeriesID,
		SeriesName:     s.SeriesName,
		PlannedVolumes: s.PlannedVolumes,
		BookTourEvents: s.BookTourEvents,
	}
}

func toSeriesEntity(m *SeriesModel) *series.Series {
	return &series.Series{
		SeriesID:       m.SeriesID,
		SeriesName:     m.SeriesName,
		PlannedVolumes: m.PlannedVolumes,
		BookTourEvents: m.BookTourEvents,
	}
}
