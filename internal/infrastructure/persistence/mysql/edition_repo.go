package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-api/internal/domain/book"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

type editionRepository struct {
	db *gorm.DB
}

// NewEditionRepository 创建版本仓储
func NewEditionRepository(db *gorm.DB) book.EditionRepository {
	return &editionRepository{db: db}
}

func (r *editionRepository) Create(ctx context.Context, e *book.Edition) error {
	if err := dbFrom(ctx, r.db).Create(toEditionModel(e)).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrEditionDuplicate
		}
		return apperrors.Wrap(err, "Failed to create edition")
	}
	return nil
}

func (r *editionRepository) FindByISBN(ctx context.Context, isbn string) (*book.Edition, error) {
	var m EditionModel
	if err := dbFrom(ctx, r.db).Where("ISBN = ?", isbn).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, book.ErrEditionNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to query edition")
	}
	return toEditionEntity(&m), nil
}

func (r *editionRepository) Update(ctx context.Context, e *book.Edition) error {
	err := dbFrom(ctx, r.db).Model(&EditionModel{}).Where("ISBN = ?", e.ISBN).
		Select("*").Omit("ISBN").Updates(toEditionModel(e)).Error
	if err != nil {
		return apperrors.Wrap(err, "Failed to update edition")
	}
	return nil
}

func (r *editionRepository) Delete(ctx context.Context, isbn string) error {
	result := dbFrom(ctx, r.db).Where("ISBN = ?", isbn).Delete(&EditionModel{})
	if result.Error != nil {
		if isForeignKeyError(result.Error) {
			return book.ErrEditionHasOrders
		}
		return apperrors.Wrap(result.Error, "Failed to delete edition")
	}
	if result.RowsAffected == 0 {
		return book.ErrEditionNotFound
	}
	return nil
}

func (r *editionRepository) List(ctx context.Context, f book.EditionFilter) ([]*book.Edition, int64, error) {
	var models []EditionModel
	total, err := findPage(func() *gorm.DB {
		return editionFilter(dbFrom(ctx, r.db).Model(&EditionModel{}), f)
	}, f.Page, []string{"edition.ISBN ASC"}, &models)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "Failed to list editions")
	}
	return toEditionEntities(models), total, nil
}

func editionFilter(q *gorm.DB, f book.EditionFilter) *gorm.DB {
	return q.Scopes(
		Equals("edition.BookID", f.BookID),
		Equals("edition.PubID", f.PubID),
		ContainsFold("edition.Formatt", f.Format),
		AtLeast("edition.Price", f.MinPrice),
		AtMost("edition.Price", f.MaxPrice),
	)
}

func (r *editionRepository) ListByBook(ctx context.Context, bookID string) ([]*book.Edition, error) {
	var models []EditionModel
	err := dbFrom(ctx, r.db).Where("BookID = ?", bookID).
		Order("PublicationDate ASC").Order("ISBN ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to list editions")
	}
	return toEditionEntities(models), nil
}

func (r *editionRepository) FindByISBNs(ctx context.Context, isbns []string) (map[string]*book.Edition, error) {
	out := make(map[string]*book.Edition, len(isbns))
	isbns = compactIDs(isbns)
	if len(isbns) == 0 {
		return out, nil
	}

	var models []EditionModel
	if err := dbFrom(ctx, r.db).Where("ISBN IN ?", isbns).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "Failed to query editions")
	}
	for i := range models {
		out[models[i].ISBN] = toEditionEntity(&models[i])
	}
	return out, nil
}

func (r *editionRepository) CountOrderLines(ctx context.Context, isbn string) (int64, error) {
	var n int64
	if err := dbFrom(ctx, r.db).Model(&OrderDetailModel{}).Where("ISBN = ?", isbn).Count(&n).Error; err != nil {
		return 0, apperrors.Wrap(err, "Failed to count order lines")
	}
	return n, nil
}

func toEditionModel(e *book.Edition) *EditionModel {
	return &EditionModel{
		ISBN:            e.ISBN,
		BookID:          e.BookID,
		Format:          e.Format,
		PubID:           e.PubID,
		PublicationDate: e.PublicationDate,
		Pages:           e.Pages,
		PrintRunSizeK:   e.PrintRunSizeK,
		Price:           e.Price,
	}
}

func toEditionEntity(m *EditionModel) *book.Edition {
	return &book.Edition{
		ISBN:            m.ISBN,
		BookID:          m.BookID,
		Format:          m.Format,
		PubID:           m.PubID,
		PublicationDate: m.PublicationDate,
		Pages:           m.Pages,
		PrintRunSizeK:   m.PrintRunSizeK,
		Price:           m.Price,
	}
}

func toEditionEntities(models []EditionModel) []*book.Edition {
	out := make([]*book.Edition, 0, len(models))
	for i := range models {
		out = append(out, toEditionEntity(&models[i]))
	}
	return out
}
