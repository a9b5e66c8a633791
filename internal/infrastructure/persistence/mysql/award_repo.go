package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-api/internal/domain/award"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

type awardRepository struct {
	db *gorm.DB
}

// NewAwardRepository 创建获奖仓储
func NewAwardRepository(db *gorm.DB) award.Repository {
	return &awardRepository{db: db}
}

// Create AwardID自增，创建后回填
func (r *awardRepository) Create(ctx context.Context, a *award.Award) error {
	m := toAwardModel(a)
	if err := dbFrom(ctx, r.db).Create(m).Error; err != nil {
		return apperrors.Wrap(err, "Failed to create award")
	}
	a.AwardID = m.AwardID
	return nil
}

func (r *awardRepository) FindByID(ctx context.Context, id uint) (*award.Award, error) {
	var m AwardModel
	if err := dbFrom(ctx, r.db).First(&m, id).Error; err != nil {
		if isNotFound(err) {
			return nil, award.ErrAwardNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to query award")
	}
	return toAwardEntity(&m), nil
}

func (r *awardRepository) Update(ctx context.Context, a *award.Award) error {
	err := dbFrom(ctx, r.db).Model(&AwardModel{}).Where("AwardID = ?", a.AwardID).
		Select("*").Omit("AwardID").Updates(toAwardModel(a)).Error
	if err != nil {
		return apperrors.Wrap(err, "Failed to update award")
	}
	return nil
}

func (r *awardRepository) Delete(ctx context.Context, id uint) error {
	result := dbFrom(ctx, r.db).Delete(&AwardModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "Failed to delete award")
	}
	if result.RowsAffected == 0 {
		return award.ErrAwardNotFound
	}
	return nil
}

func (r *awardRepository) List(ctx context.Context, f award.Filter) ([]*award.Award, int64, error) {
	var models []AwardModel
	total, err := findPage(func() *gorm.DB {
		q := dbFrom(ctx, r.db).Model(&AwardModel{}).Scopes(
			Equals("award.BookID", f.BookID),
			ContainsFold("award.AwardName", f.Name),
		)
		if f.Year != nil {
			q = q.Where("award.YearWon = ?", *f.Year)
		}
		return q
	}, f.Page, []string{"award.YearWon DESC", "award.AwardID ASC"}, &models)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "Failed to list awards")
	}

	out := make([]*award.Award, 0, len(models))
	for i := range models {
		out = append(out, toAwardEntity(&models[i]))
	}
	return out, total, nil
}

func toAwardModel(a *award.Award) *AwardModel {
	return &AwardModel{AwardID: a.AwardID, BookID: a.BookID, AwardName: a.AwardName, YearWon: a.YearWon}
}

func toAwardEntity(m *AwardModel) *award.Award {
	return &award.Award{AwardID: m.AwardID, BookID: m.BookID, AwardName: m.AwardName, YearWon: m.YearWon}
}
