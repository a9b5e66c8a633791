package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookstore-api/internal/domain/author"
	"github.com/xiebiao/bookstore-api/internal/domain/book"
	"github.com/xiebiao/bookstore-api/internal/domain/order"
	"github.com/xiebiao/bookstore-api/internal/domain/query"
)

// newDryRunDB 不连接数据库，只生成SQL
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "bookstore:bookstore@tcp(127.0.0.1:3306)/bookstore?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	require.NoError(t, err)
	return db
}

func mustDates(t *testing.T, start, end string) query.DateRange {
	t.Helper()
	r, err := query.ParseDateRange(start, end)
	require.NoError(t, err)
	return r
}

func TestOrderQuery_DateRangeIncludesEndDate(t *testing.T) {
	db := newDryRunDB(t)
	f := order.Filter{Dates: mustDates(t, "2024-03-01", "2024-03-10"), Page: query.NewPage(1, 10)}

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return orderPageQuery(tx, f).Find(&[]OrderModel{})
	})

	assert.Contains(t, sql, "orders.SaleDate >= '2024-03-01'")
	// end_date当天的订单也包含在内
	assert.Contains(t, sql, "orders.SaleDate < '2024-03-11'")
	assert.Contains(t, sql, "ORDER BY orders.SaleDate ASC,orders.OrderID ASC")
	assert.NotContains(t, sql, "JOIN")
	assert.NotContains(t, sql, "DISTINCT")
}

func TestOrderQuery_JoinsOnlyWhatFiltersNeed(t *testing.T) {
	db := newDryRunDB(t)

	t.Run("isbn只关联明细表并去重", func(t *testing.T) {
		f := order.Filter{ISBN: "978-0000000001", Page: query.NewPage(1, 10)}
		sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			return orderPageQuery(tx, f).Find(&[]OrderModel{})
		})
		assert.Contains(t, sql, "SELECT DISTINCT")
		assert.Contains(t, sql, "JOIN orderdetails ON orderdetails.OrderID = orders.OrderID")
		assert.Contains(t, sql, "orderdetails.ISBN = '978-0000000001'")
		assert.NotContains(t, sql, "JOIN edition")

		var n int64
		countSQL := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			return orderCountQuery(tx, f).Count(&n)
		})
		assert.Contains(t, countSQL, "COUNT(DISTINCT(")
		assert.NotContains(t, countSQL, "LIMIT")
	})

	t.Run("作者姓氏关联到author表", func(t *testing.T) {
		f := order.Filter{AuthorLastName: "Tolstoy", MinQuantity: intPtr(2), Page: query.NewPage(1, 10)}
		sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			return orderPageQuery(tx, f).Find(&[]OrderModel{})
		})
		assert.Contains(t, sql, "JOIN edition ON edition.ISBN = orderdetails.ISBN")
		assert.Contains(t, sql, "JOIN book ON book.BookID = edition.BookID")
		assert.Contains(t, sql, "JOIN author ON author.AuthID = book.AuthID")
		assert.Contains(t, sql, "LOWER(author.LastName) LIKE '%tolstoy%'")
		assert.Contains(t, sql, "orderdetails.Quantity >= 2")
	})

	t.Run("订单号子串匹配", func(t *testing.T) {
		f := order.Filter{OrderID: "ORD-2024", Page: query.NewPage(1, 10)}
		sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			return orderPageQuery(tx, f).Find(&[]OrderModel{})
		})
		assert.Contains(t, sql, "LOWER(orders.OrderID) LIKE '%ord-2024%'")
	})
}

func TestPaginate(t *testing.T) {
	db := newDryRunDB(t)
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return tx.Model(&BookModel{}).Scopes(Paginate(query.NewPage(3, 10))).Find(&[]BookModel{})
	})
	assert.Contains(t, sql, "LIMIT 10")
	assert.Contains(t, sql, "OFFSET 20")
}

func TestBookQuery(t *testing.T) {
	db := newDryRunDB(t)

	t.Run("书名大小写不敏感子串匹配", func(t *testing.T) {
		f := book.Filter{Title: "War", Sort: query.ParseSort("", "", book.SortFields, book.SortTitle)}
		sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			return bookFilter(tx.Model(&BookModel{}), f).Find(&[]BookModel{})
		})
		assert.Contains(t, sql, "LOWER(book.Title) LIKE '%war%'")
		assert.NotContains(t, sql, "JOIN info")
	})

	t.Run("通配符按字面匹配", func(t *testing.T) {
		f := book.Filter{Title: "100%"}
		sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			return bookFilter(tx.Model(&BookModel{}), f).Find(&[]BookModel{})
		})
		assert.Contains(t, sql, `LIKE '%100\%%'`)
	})

	t.Run("类型和丛书关联info表", func(t *testing.T) {
		f := book.Filter{Genre: "Fantasy", SeriesID: "S01"}
		sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			return bookFilter(tx.Model(&BookModel{}), f).Find(&[]BookModel{})
		})
		assert.Contains(t, sql, "JOIN info ON info.BookID = book.BookID")
		assert.Contains(t, sql, "LOWER(info.Genre) LIKE '%fantasy%'")
		assert.Contains(t, sql, "info.SeriesID = 'S01'")
	})

	t.Run("按作者排序以BookID收尾", func(t *testing.T) {
		s := query.ParseSort("author", "desc", book.SortFields, book.SortTitle)
		assert.Equal(t,
			[]string{"author.LastName DESC", "author.FirstName DESC", "book.BookID ASC"},
			bookOrder(s))
		assert.Equal(t, []string{"book.Title ASC", "book.BookID ASC"},
			bookOrder(query.ParseSort("bogus", "", book.SortFields, book.SortTitle)))
	})
}

func TestBookSearch_UnionOfMatches(t *testing.T) {
	db := newDryRunDB(t)
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return tx.Model(&BookModel{}).
			Where("book.BookID IN (?)", bookSearchIDs(tx, "Tol")).
			Find(&[]BookModel{})
	})

	assert.Contains(t, sql, "book.BookID IN (SELECT")
	assert.Contains(t, sql, "UNION")
	assert.Contains(t, sql, "LOWER(book.Title) LIKE '%tol%'")
	assert.Contains(t, sql, "LOWER(author.FirstName) LIKE '%tol%' OR LOWER(author.LastName) LIKE '%tol%'")
	assert.Contains(t, sql, "LOWER(info.Genre) LIKE '%tol%'")
}

func TestAuthorQuery(t *testing.T) {
	db := newDryRunDB(t)

	t.Run("name匹配名或姓", func(t *testing.T) {
		sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			return authorFilter(tx.Model(&AuthorModel{}), author.Filter{Name: "Ann", MinWritingHours: intPtr(3)}).
				Find(&[]AuthorModel{})
		})
		assert.Contains(t, sql, "LOWER(author.FirstName) LIKE '%ann%' OR LOWER(author.LastName) LIKE '%ann%'")
		assert.Contains(t, sql, "author.HrsWritingPerDay >= 3")
	})

	t.Run("min_books使用分组子查询", func(t *testing.T) {
		sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			return authorSearch(tx.Model(&AuthorModel{}), tx, author.SearchFilter{MinBooks: intPtr(2)}).
				Find(&[]AuthorModel{})
		})
		assert.Contains(t, sql, "author.AuthID IN (SELECT book.AuthID FROM `book`")
		assert.Contains(t, sql, "HAVING COUNT(*) >= 2")
	})

	t.Run("min_books为0不过滤", func(t *testing.T) {
		sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			return authorSearch(tx.Model(&AuthorModel{}), tx, author.SearchFilter{MinBooks: intPtr(0)}).
				Find(&[]AuthorModel{})
		})
		assert.NotContains(t, sql, "HAVING")
	})
}

func TestSalesQueries(t *testing.T) {
	db := newDryRunDB(t)
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []bestsellerRow
		return bestsellerQuery(tx, since, 5).Scan(&rows)
	})
	assert.Contains(t, sql, "SUM(orderdetails.Quantity) AS total_sold")
	assert.Contains(t, sql, "orders.SaleDate >= '2024-01-01'")
	assert.Contains(t, sql, "total_sold DESC")
	assert.Contains(t, sql, "LIMIT 5")

	summary := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []monthlyRow
		return summaryQuery(tx, mustDates(t, "2024-01-01", "")).Scan(&rows)
	})
	assert.Contains(t, summary, "DATE_FORMAT(orders.SaleDate, '%Y-%m') AS month")
	assert.Contains(t, summary, "COUNT(DISTINCT orders.OrderID) AS order_count")
	assert.Contains(t, summary, "GROUP BY")

	byEdition := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []editionSalesRow
		return salesByEditionQuery(tx, []string{"A", "B"}, query.DateRange{}).Scan(&rows)
	})
	assert.Contains(t, byEdition, "orderdetails.ISBN IN ('A','B')")
	assert.NotContains(t, byEdition, "orders.SaleDate >=")
}

func TestDBFrom(t *testing.T) {
	db := newDryRunDB(t)
	ctx := context.Background()
	assert.NotNil(t, dbFrom(ctx, db))

	tx := db.Session(&gorm.Session{})
	txCtx := context.WithValue(ctx, txKey{}, tx)
	assert.Equal(t, tx.Statement.ConnPool, dbFrom(txCtx, db).Statement.ConnPool)
}

func TestErrorClassification(t *testing.T) {
	assert.True(t, isDuplicateError(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateError(&mysqldriverError{"Error 1062: Duplicate entry 'x' for key 'PRIMARY'"}))
	assert.False(t, isDuplicateError(nil))
	assert.True(t, isNotFound(gorm.ErrRecordNotFound))
	assert.True(t, isForeignKeyError(gorm.ErrForeignKeyViolated))
	assert.Equal(t, []string{"a", "b"}, compactIDs([]string{"a", "", "b", "a"}))
}

type mysqldriverError struct{ msg string }

func (e *mysqldriverError) Error() string { return e.msg }

func intPtr(v int) *int { return &v }
