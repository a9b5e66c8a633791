package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-api/internal/domain/author"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

// authorOrder 作者列表的固定排序
var authorOrder = []string{"author.LastName ASC", "author.FirstName ASC", "author.AuthID ASC"}

type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository 创建作者仓储
func NewAuthorRepository(db *gorm.DB) author.Repository {
	return &authorRepository{db: db}
}

func (r *authorRepository) Create(ctx context.Context, a *author.Author) error {
	if err := dbFrom(ctx, r.db).Create(toAuthorModel(a)).Error; err != nil {
		if isDuplicateError(err) {
			return author.ErrAuthorDuplicate
		}
		return apperrors.Wrap(err, "Failed to create author")
	}
	return nil
}

func (r *authorRepository) FindByID(ctx context.Context, id string) (*author.Author, error) {
	var m AuthorModel
	if err := dbFrom(ctx, r.db).Where("AuthID = ?", id).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to query author")
	}
	return toAuthorEntity(&m), nil
}

// Update 按主键更新全部字段（包括置空）
func (r *authorRepository) Update(ctx context.Context, a *author.Author) error {
	result := dbFrom(ctx, r.db).Model(&AuthorModel{}).Where("AuthID = ?", a.AuthID).
		Select("*").Omit("AuthID").Updates(toAuthorModel(a))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "Failed to update author")
	}
	return nil
}

func (r *authorRepository) Delete(ctx context.Context, id string) error {
	result := dbFrom(ctx, r.db).Where("AuthID = ?", id).Delete(&AuthorModel{})
	if result.Error != nil {
		if isForeignKeyError(result.Error) {
			return author.ErrHasBooks
		}
		return apperrors.Wrap(result.Error, "Failed to delete author")
	}
	if result.RowsAffected == 0 {
		return author.ErrAuthorNotFound
	}
	return nil
}

func (r *authorRepository) Exists(ctx context.Context, id string) (bool, error) {
	var n int64
	if err := dbFrom(ctx, r.db).Model(&AuthorModel{}).Where("AuthID = ?", id).Count(&n).Error; err != nil {
		return false, apperrors.Wrap(err, "Failed to query author")
	}
	return n > 0, nil
}

func (r *authorRepository) List(ctx context.Context, f author.Filter) ([]*author.Author, int64, error) {
	var models []AuthorModel
	total, err := findPage(func() *gorm.DB {
		return authorFilter(dbFrom(ctx, r.db).Model(&AuthorModel{}), f)
	}, f.Page, authorOrder, &models)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "Failed to list authors")
	}
	return toAuthorEntities(models), total, nil
}

// authorFilter 作者列表条件，name匹配名或姓
func authorFilter(db *gorm.DB, f author.Filter) *gorm.DB {
	return db.Scopes(
		AnyContainsFold(f.Name, "author.FirstName", "author.LastName"),
		ContainsFold("author.FirstName", f.FirstName),
		ContainsFold("author.LastName", f.LastName),
		ContainsFold("author.CountryOfResidence", f.Country),
		AtLeast("author.HrsWritingPerDay", f.MinWritingHours),
	)
}

// Search 参数之间取交集，min_books通过分组子查询过滤
func (r *authorRepository) Search(ctx context.Context, f author.SearchFilter) ([]*author.WithBookCount, int64, error) {
	db := dbFrom(ctx, r.db)
	var models []AuthorModel
	total, err := findPage(func() *gorm.DB {
		return authorSearch(db.Model(&AuthorModel{}), db, f)
	}, f.Page, authorOrder, &models)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "Failed to search authors")
	}

	ids := make([]string, 0, len(models))
	for _, m := range models {
		ids = append(ids, m.AuthID)
	}
	counts, err := r.bookCounts(db, ids)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*author.WithBookCount, 0, len(models))
	for i := range models {
		result = append(result, &author.WithBookCount{
			Author:    toAuthorEntity(&models[i]),
			BookCount: counts[models[i].AuthID],
		})
	}
	return result, total, nil
}

func authorSearch(q, db *gorm.DB, f author.SearchFilter) *gorm.DB {
	q = q.Scopes(
		AnyContainsFold(f.Q, "author.FirstName", "author.LastName"),
		ContainsFold("author.CountryOfResidence", f.Country),
	)
	// min_books<=0对所有作者成立，不加条件
	if f.MinBooks != nil && *f.MinBooks > 0 {
		prolific := db.Session(&gorm.Session{NewDB: true}).Model(&BookModel{}).
			Select("book.AuthID").Group("book.AuthID").Having("COUNT(*) >= ?", *f.MinBooks)
		q = q.Where("author.AuthID IN (?)", prolific)
	}
	return q
}

type authorCountRow struct {
	AuthorModel
	BookCount int64 `gorm:"column:book_count"`
}

func (r *authorRepository) Prolific(ctx context.Context, limit int) ([]*author.WithBookCount, error) {
	var rows []authorCountRow
	err := dbFrom(ctx, r.db).Model(&AuthorModel{}).
		Select("author.*, COUNT(book.BookID) AS book_count").
		Joins("JOIN book ON book.AuthID = author.AuthID").
		Group("author.AuthID").
		Order("book_count DESC").Order("author.AuthID ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to rank authors")
	}

	result := make([]*author.WithBookCount, 0, len(rows))
	for i := range rows {
		result = append(result, &author.WithBookCount{
			Author:    toAuthorEntity(&rows[i].AuthorModel),
			BookCount: rows[i].BookCount,
		})
	}
	return result, nil
}

func (r *authorRepository) CountBooks(ctx context.Context, id string) (int64, error) {
	var n int64
	if err := dbFrom(ctx, r.db).Model(&BookModel{}).Where("AuthID = ?", id).Count(&n).Error; err != nil {
		return 0, apperrors.Wrap(err, "Failed to count books")
	}
	return n, nil
}

// bookCounts 批量统计作者的图书数量
func (r *authorRepository) bookCounts(db *gorm.DB, ids []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []struct {
		AuthID string `gorm:"column:AuthID"`
		N      int64  `gorm:"column:n"`
	}
	err := db.Session(&gorm.Session{NewDB: true}).Model(&BookModel{}).
		Select("AuthID, COUNT(*) AS n").
		Where("AuthID IN ?", ids).
		Group("AuthID").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to count books")
	}
	for _, row := range rows {
		counts[row.AuthID] = row.N
	}
	return counts, nil
}

func toAuthorModel(a *author.Author) *AuthorModel {
	return &AuthorModel{
		AuthID:             a.AuthID,
		FirstName:          a.FirstName,
		LastName:           a.LastName,
		Birthday:           a.Birthday,
		CountryOfResidence: a.CountryOfResidence,
		HrsWritingPerDay:   a.HrsWritingPerDay,
	}
}

func toAuthorEntity(m *AuthorModel) *author.Author {
	return &author.Author{
		AuthID:             m.AuthID,
		FirstName:          m.FirstName,
		LastName:           m.LastName,
		Birthday:           m.Birthday,
		CountryOfResidence: m.CountryOfResidence,
		HrsWritingPerDay:   m.HrsWritingPerDay,
	}
}

func toAuthorEntities(models []AuthorModel) []*author.Author {
	out := make([]*author.Author, 0, len(models))
	for i := range models {
		out = append(out, toAuthorEntity(&models[i]))
	}
	return out
}
