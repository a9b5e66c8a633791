package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-api/internal/domain/rating"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository 创建评分仓储
func NewRatingRepository(db *gorm.DB) rating.Repository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, rt *rating.Rating) error {
	m := toRatingModel(rt)
	if err := dbFrom(ctx, r.db).Create(m).Error; err != nil {
		if isDuplicateError(err) {
			return rating.ErrRatingDuplicate
		}
		return apperrors.Wrap(err, "Failed to create rating")
	}
	rt.ReviewID = m.ReviewID
	return nil
}

func (r *ratingRepository) FindByID(ctx context.Context, id uint) (*rating.Rating, error) {
	var m RatingModel
	if err := dbFrom(ctx, r.db).First(&m, id).Error; err != nil {
		if isNotFound(err) {
			return nil, rating.ErrRatingNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to query rating")
	}
	return toRatingEntity(&m), nil
}

func (r *ratingRepository) Update(ctx context.Context, rt *rating.Rating) error {
	err := dbFrom(ctx, r.db).Model(&RatingModel{}).Where("ReviewID = ?", rt.ReviewID).
		Select("*").Omit("ReviewID").Updates(toRatingModel(rt)).Error
	if err != nil {
		return apperrors.Wrap(err, "Failed to update rating")
	}
	return nil
}

func (r *ratingRepository) Delete(ctx context.Context, id uint) error {
	result := dbFrom(ctx, r.db).Delete(&RatingModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "Failed to delete rating")
	}
	if result.RowsAffected == 0 {
		return rating.ErrRatingNotFound
	}
	return nil
}

func (r *ratingRepository) List(ctx context.Context, f rating.Filter) ([]*rating.Rating, int64, error) {
	var models []RatingModel
	total, err := findPage(func() *gorm.DB {
		q := dbFrom(ctx, r.db).Model(&RatingModel{}).Scopes(
			Equals("ratings.BookID", f.BookID),
			AtLeast("ratings.Rating", f.MinRating),
			AtMost("ratings.Rating", f.MaxRating),
		)
		if f.ReviewerID != nil {
			q = q.Where("ratings.ReviewerID = ?", *f.ReviewerID)
		}
		return q
	}, f.Page, []string{"ratings.ReviewID ASC"}, &models)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "Failed to list ratings")
	}

	out := make([]*rating.Rating, 0, len(models))
	for i := range models {
		out = append(out, toRatingEntity(&models[i]))
	}
	return out, total, nil
}

// Summarize 没有评分时Count为0、Average为0
func (r *ratingRepository) Summarize(ctx context.Context, bookID string) (*rating.Summary, error) {
	var row struct {
		Count   int64   `gorm:"column:cnt"`
		Average float64 `gorm:"column:avg_rating"`
	}
	err := dbFrom(ctx, r.db).Model(&RatingModel{}).
		Select("COUNT(*) AS cnt, COALESCE(AVG(Rating), 0) AS avg_rating").
		Where("BookID = ?", bookID).
		Scan(&row).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to summarize ratings")
	}
	return &rating.Summary{BookID: bookID, Count: row.Count, Average: row.Average}, nil
}

func toRatingModel(rt *rating.Rating) *RatingModel {
	return &RatingModel{ReviewID: rt.ReviewID, BookID: rt.BookID, Rating: rt.Rating, ReviewerID: rt.ReviewerID}
}

func toRatingEntity(m *RatingModel) *rating.Rating {
	return &rating.Rating{ReviewID: m.ReviewID, BookID: m.BookID, Rating: m.Rating, ReviewerID: m.ReviewerID}
}
