package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookstore-api/internal/domain/author"
	"github.com/xiebiao/bookstore-api/internal/domain/book"
	"github.com/xiebiao/bookstore-api/internal/domain/query"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

// bookColumns 关联查询时只取book表的列，避免同名列冲突
const bookColumns = "book.BookID, book.Title, book.AuthID"

// bookRepository 图书仓储实现（MySQL）
// 设计说明：
// 1. 列表先按过滤条件分页取出book行，再批量加载作者、扩展信息、版本
// 2. 全文搜索用UNION合并三组子查询的BookID，再按ID集合回表
// 3. 销量统计通过edition → orderdetails → orders三表关联计算
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	if err := dbFrom(ctx, r.db).Create(toBookModel(b)).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrBookDuplicate
		}
		return apperrors.Wrap(err, "Failed to create book")
	}
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	var m BookModel
	if err := dbFrom(ctx, r.db).Where("BookID = ?", id).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to query book")
	}
	return toBookEntity(&m), nil
}

func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	err := dbFrom(ctx, r.db).Model(&BookModel{}).Where("BookID = ?", b.BookID).
		Select("Title", "AuthID").Updates(toBookModel(b)).Error
	if err != nil {
		return apperrors.Wrap(err, "Failed to update book")
	}
	return nil
}

// Delete 先删info再删book，调用方负责开启事务
func (r *bookRepository) Delete(ctx context.Context, id string) error {
	db := dbFrom(ctx, r.db)
	if err := db.Where("BookID = ?", id).Delete(&InfoModel{}).Error; err != nil {
		return apperrors.Wrap(err, "Failed to delete book info")
	}

	result := db.Where("BookID = ?", id).Delete(&BookModel{})
	if result.Error != nil {
		if isForeignKeyError(result.Error) {
			return apperrors.New(apperrors.ErrCodeHasDependents, "Cannot delete book with associated records")
		}
		return apperrors.Wrap(result.Error, "Failed to delete book")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

func (r *bookRepository) Exists(ctx context.Context, id string) (bool, error) {
	var n int64
	if err := dbFrom(ctx, r.db).Model(&BookModel{}).Where("BookID = ?", id).Count(&n).Error; err != nil {
		return false, apperrors.Wrap(err, "Failed to query book")
	}
	return n > 0, nil
}

func (r *bookRepository) FindDetails(ctx context.Context, id string) (*book.Details, error) {
	db := dbFrom(ctx, r.db)
	var m BookModel
	if err := db.Where("BookID = ?", id).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to query book")
	}

	details, err := loadBookDetails(db, []BookModel{m})
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

func (r *bookRepository) List(ctx context.Context, f book.Filter) ([]*book.Details, int64, error) {
	db := dbFrom(ctx, r.db)
	var models []BookModel
	total, err := findPage(func() *gorm.DB {
		return bookFilter(db.Model(&BookModel{}), f)
	}, f.Page, bookOrder(f.Sort), &models)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "Failed to list books")
	}

	details, err := loadBookDetails(db, models)
	if err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

// bookFilter 图书列表条件
// info与book一对一，关联后不会产生重复行；按作者排序时左关联author
func bookFilter(q *gorm.DB, f book.Filter) *gorm.DB {
	q = q.Select(bookColumns).Scopes(
		ContainsFold("book.Title", f.Title),
		Equals("book.AuthID", f.AuthorID),
	)
	if query.Text(f.Genre) != "" || f.SeriesID != "" {
		q = q.Joins("JOIN info ON info.BookID = book.BookID").Scopes(
			ContainsFold("info.Genre", f.Genre),
			Equals("info.SeriesID", f.SeriesID),
		)
	}
	if f.Sort.Field == book.SortAuthor {
		q = q.Joins("LEFT JOIN author ON author.AuthID = book.AuthID")
	}
	return q
}

// bookOrder 排序总以BookID收尾，保证分页稳定
func bookOrder(s query.Sort) []string {
	dir := s.Direction()
	if s.Field == book.SortAuthor {
		return []string{"author.LastName " + dir, "author.FirstName " + dir, "book.BookID ASC"}
	}
	return []string{"book.Title " + dir, "book.BookID ASC"}
}

func (r *bookRepository) Search(ctx context.Context, f book.SearchFilter) ([]*book.Details, int64, error) {
	db := dbFrom(ctx, r.db)
	var models []BookModel
	total, err := findPage(func() *gorm.DB {
		return db.Model(&BookModel{}).Where("book.BookID IN (?)", bookSearchIDs(db, f.Q))
	}, f.Page, []string{"book.Title ASC", "book.BookID ASC"}, &models)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "Failed to search books")
	}

	details, err := loadBookDetails(db, models)
	if err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

// bookSearchIDs 书名、作者名、类型三组匹配的BookID并集
func bookSearchIDs(db *gorm.DB, q string) *gorm.DB {
	pattern := query.ContainsPattern(query.Text(q))
	fresh := func() *gorm.DB { return db.Session(&gorm.Session{NewDB: true}) }

	byTitle := fresh().Model(&BookModel{}).Select("book.BookID").
		Where("LOWER(book.Title) LIKE ?", pattern)
	byAuthor := fresh().Model(&BookModel{}).Select("book.BookID").
		Joins("JOIN author ON author.AuthID = book.AuthID").
		Where("LOWER(author.FirstName) LIKE ? OR LOWER(author.LastName) LIKE ?", pattern, pattern)
	byGenre := fresh().Model(&InfoModel{}).Select("info.BookID").
		Where("LOWER(info.Genre) LIKE ?", pattern)

	return fresh().Raw("? UNION ? UNION ?", byTitle, byAuthor, byGenre)
}

func (r *bookRepository) ListByAuthor(ctx context.Context, authID string) ([]*book.Book, error) {
	var models []BookModel
	err := dbFrom(ctx, r.db).Where("AuthID = ?", authID).
		Order("Title ASC").Order("BookID ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to list books")
	}

	out := make([]*book.Book, 0, len(models))
	for i := range models {
		out = append(out, toBookEntity(&models[i]))
	}
	return out, nil
}

func (r *bookRepository) ListBySeries(ctx context.Context, seriesID string) ([]*book.Details, error) {
	db := dbFrom(ctx, r.db)
	var models []BookModel
	err := db.Model(&BookModel{}).Select(bookColumns).
		Joins("JOIN info ON info.BookID = book.BookID").
		Where("info.SeriesID = ?", seriesID).
		Order("info.VolumeNumber ASC").Order("book.BookID ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to list series books")
	}
	return loadBookDetails(db, models)
}

type bestsellerRow struct {
	BookModel
	TotalSold int64 `gorm:"column:total_sold"`
}

// salesJoins 图书 → 版本 → 订单明细 → 订单
func salesJoins(q *gorm.DB) *gorm.DB {
	return q.Joins("JOIN edition ON edition.BookID = book.BookID").
		Joins("JOIN orderdetails ON orderdetails.ISBN = edition.ISBN").
		Joins("JOIN orders ON orders.OrderID = orderdetails.OrderID")
}

func bestsellerQuery(db *gorm.DB, since time.Time, limit int) *gorm.DB {
	return salesJoins(db.Model(&BookModel{})).
		Select(bookColumns+", SUM(orderdetails.Quantity) AS total_sold").
		Where("orders.SaleDate >= ?", since.Format(query.DateLayout)).
		Group("book.BookID, book.Title, book.AuthID").
		Order("total_sold DESC").Order("book.BookID ASC").
		Limit(limit)
}

func (r *bookRepository) Bestsellers(ctx context.Context, since time.Time, limit int) ([]*book.Bestseller, error) {
	db := dbFrom(ctx, r.db)
	var rows []bestsellerRow
	if err := bestsellerQuery(db, since, limit).Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(err, "Failed to rank bestsellers")
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.AuthID)
	}
	authors, err := authorsByID(db, ids)
	if err != nil {
		return nil, err
	}

	out := make([]*book.Bestseller, 0, len(rows))
	for i := range rows {
		out = append(out, &book.Bestseller{
			Book:      toBookEntity(&rows[i].BookModel),
			Author:    authors[rows[i].AuthID],
			TotalSold: rows[i].TotalSold,
		})
	}
	return out, nil
}

func (r *bookRepository) UnitsSold(ctx context.Context, id string, since time.Time) (int64, error) {
	var total int64
	err := salesJoins(dbFrom(ctx, r.db).Model(&BookModel{})).
		Select("COALESCE(SUM(orderdetails.Quantity), 0)").
		Where("book.BookID = ? AND orders.SaleDate >= ?", id, since.Format(query.DateLayout)).
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "Failed to count units sold")
	}
	return total, nil
}

func (r *bookRepository) CountDependents(ctx context.Context, id string) (book.Dependents, error) {
	db := dbFrom(ctx, r.db)
	var d book.Dependents
	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&EditionModel{}, &d.Editions},
		{&AwardModel{}, &d.Awards},
		{&RatingModel{}, &d.Ratings},
		{&CheckoutModel{}, &d.Checkouts},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Where("BookID = ?", id).Count(c.dest).Error; err != nil {
			return book.Dependents{}, apperrors.Wrap(err, "Failed to count book dependents")
		}
	}
	return d, nil
}

// SaveInfo INSERT ... ON DUPLICATE KEY UPDATE
func (r *bookRepository) SaveInfo(ctx context.Context, info *book.Info) error {
	err := dbFrom(ctx, r.db).Clauses(clause.OnConflict{UpdateAll: true}).
		Create(toInfoModel(info)).Error
	if err != nil {
		return apperrors.Wrap(err, "Failed to save book info")
	}
	return nil
}

// =========================================
// 关联数据批量加载
// =========================================

// loadBookDetails 为一页图书加载作者、扩展信息、版本，保持输入顺序
func loadBookDetails(db *gorm.DB, books []BookModel) ([]*book.Details, error) {
	if len(books) == 0 {
		return []*book.Details{}, nil
	}

	bookIDs := make([]string, 0, len(books))
	authIDs := make([]string, 0, len(books))
	for _, b := range books {
		bookIDs = append(bookIDs, b.BookID)
		authIDs = append(authIDs, b.AuthID)
	}

	authors, err := authorsByID(db, authIDs)
	if err != nil {
		return nil, err
	}

	var infos []InfoModel
	if err := fresh(db).Where("BookID IN ?", bookIDs).Find(&infos).Error; err != nil {
		return nil, apperrors.Wrap(err, "Failed to load book info")
	}
	infoByBook := make(map[string]*book.Info, len(infos))
	for i := range infos {
		infoByBook[infos[i].BookID] = toInfoEntity(&infos[i])
	}

	var editions []EditionModel
	err = fresh(db).Where("BookID IN ?", bookIDs).
		Order("PublicationDate ASC").Order("ISBN ASC").
		Find(&editions).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to load editions")
	}
	editionsByBook := make(map[string][]*book.Edition, len(books))
	for i := range editions {
		e := toEditionEntity(&editions[i])
		editionsByBook[e.BookID] = append(editionsByBook[e.BookID], e)
	}

	out := make([]*book.Details, 0, len(books))
	for i := range books {
		b := toBookEntity(&books[i])
		eds := editionsByBook[b.BookID]
		if eds == nil {
			eds = []*book.Edition{}
		}
		out = append(out, &book.Details{
			Book:     b,
			Author:   authors[b.AuthID],
			Info:     infoByBook[b.BookID],
			Editions: eds,
		})
	}
	return out, nil
}

// authorsByID 批量查询作者，AuthID → Author
func authorsByID(db *gorm.DB, ids []string) (map[string]*author.Author, error) {
	out := make(map[string]*author.Author, len(ids))
	ids = compactIDs(ids)
	if len(ids) == 0 {
		return out, nil
	}

	var models []AuthorModel
	if err := fresh(db).Where("AuthID IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "Failed to load authors")
	}
	for i := range models {
		out[models[i].AuthID] = toAuthorEntity(&models[i])
	}
	return out, nil
}

// fresh 复用context和事务，但不继承之前的查询条件
func fresh(db *gorm.DB) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true})
}

// compactIDs 去掉空值和重复值
func compactIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// =========================================
// 模型转换
// =========================================

func toBookModel(b *book.Book) *BookModel {
	return &BookModel{BookID: b.BookID, Title: b.Title, AuthID: b.AuthID}
}

func toBookEntity(m *BookModel) *book.Book {
	return &book.Book{BookID: m.BookID, Title: m.Title, AuthID: m.AuthID}
}

func toInfoModel(i *book.Info) *InfoModel {
	return &InfoModel{
		BookID:       i.BookID,
		Genre:        i.Genre,
		SeriesID:     i.SeriesID,
		VolumeNumber: i.VolumeNumber,
		StaffComment: i.StaffComment,
	}
}

func toInfoEntity(m *InfoModel) *book.Info {
	return &book.Info{
		BookID:       m.BookID,
		Genre:        m.Genre,
		SeriesID:     m.SeriesID,
		VolumeNumber: m.VolumeNumber,
		StaffComment: m.StaffComment,
	}
}
