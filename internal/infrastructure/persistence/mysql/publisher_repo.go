package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-api/internal/domain/publisher"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

type publisherRepository struct {
	db *gorm.DB
}

// NewPublisherRepository 创建出版社仓储
func NewPublisherRepository(db *gorm.DB) publisher.Repository {
	return &publisherRepository{db: db}
}

func (r *publisherRepository) Create(ctx context.Context, p *publisher.Publisher) error {
	if err := dbFrom(ctx, r.db).Create(toPublisherModel(p)).Error; err != nil {
		if isDuplicateError(err) {
			return publisher.ErrPublisherDuplicate
		}
		return apperrors.Wrap(err, "Failed to create publisher")
	}
	return nil
}

func (r *publisherRepository) FindByID(ctx context.Context, id string) (*publisher.Publisher, error) {
	var m PublisherModel
	if err := dbFrom(ctx, r.db).Where("PubID = ?", id).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, publisher.ErrPublisherNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to query publisher")
	}
	return toPublisherEntity(&m), nil
}

func (r *publisherRepository) Update(ctx context.Context, p *publisher.Publisher) error {
	err := dbFrom(ctx, r.db).Model(&PublisherModel{}).Where("PubID = ?", p.PubID).
		Select("*").Omit("PubID").Updates(toPublisherModel(p)).Error
	if err != nil {
		return apperrors.Wrap(err, "Failed to update publisher")
	}
	return nil
}

func (r *publisherRepository) Delete(ctx context.Context, id string) error {
	result := dbFrom(ctx, r.db).Where("PubID = ?", id).Delete(&PublisherModel{})
	if result.Error != nil {
		if isForeignKeyError(result.Error) {
			return publisher.ErrHasEditions
		}
		return apperrors.Wrap(result.Error, "Failed to delete publisher")
	}
	if result.RowsAffected == 0 {
		return publisher.ErrPublisherNotFound
	}
	return nil
}

func (r *publisherRepository) Exists(ctx context.Context, id string) (bool, error) {
	var n int64
	if err := dbFrom(ctx, r.db).Model(&PublisherModel{}).Where("PubID = ?", id).Count(&n).Error; err != nil {
		return false, apperrors.Wrap(err, "Failed to query publisher")
	}
	return n > 0, nil
}

func (r *publisherRepository) List(ctx context.Context, f publisher.Filter) ([]*publisher.Publisher, int64, error) {
	var models []PublisherModel
	total, err := findPage(func() *gorm.DB {
		return dbFrom(ctx, r.db).Model(&PublisherModel{}).Scopes(
			ContainsFold("publisher.PublishingHouse", f.Name),
			ContainsFold("publisher.Country", f.Country),
		)
	}, f.Page, []string{"publisher.PublishingHouse ASC", "publisher.PubID ASC"}, &models)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "Failed to list publishers")
	}

	out := make([]*publisher.Publisher, 0, len(models))
	for i := range models {
		out = append(out, toPublisherEntity(&models[i]))
	}
	return out, total, nil
}

func (r *publisherRepository) CountEditions(ctx context.Context, id string) (int64, error) {
	var n int64
	if err := dbFrom(ctx, r.db).Model(&EditionModel{}).Where("PubID = ?", id).Count(&n).Error; err != nil {
		return 0, apperrors.Wrap(err, "Failed to count editions")
	}
	return n, nil
}

func toPublisherModel(p *publisher.Publisher) *PublisherModel {
	return &PublisherModel{
		PubID:           p.PubID,
		PublishingHouse: p.PublishingHouse,
		City:            p.City,
		State:           p.State,
		Country:         p.Country,
		YearEstablished: p.YearEstablished,
		MarketingSpend:  p.MarketingSpend,
	}
}

func toPublisherEntity(m *PublisherModel) *publisher.Publisher {
	return &publisher.Publisher{
		PubID:           m.PubID,
		PublishingHouse: m.PublishingHouse,
		City:            m.City,
		State:           m.State,
		Country:         m.Country,
		YearEstablished: m.YearEstablished,
		MarketingSpend:  m.MarketingSpend,
	}
}
