package mysql

import (
	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-api/internal/domain/query"
)

// GORM Scopes：可组合的过滤条件
// 参数为空时不追加任何条件；column只接受代码中的常量，不能来自请求

// Paginate 分页
func Paginate(p query.Page) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.Limit())
	}
}

// ContainsFold 大小写不敏感的子串匹配，通配符已转义
func ContainsFold(column, term string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if query.Text(term) == "" {
			return db
		}
		return db.Where("LOWER("+column+") LIKE ?", query.ContainsPattern(query.Text(term)))
	}
}

// AnyContainsFold 任一列包含子串（OR）
func AnyContainsFold(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if query.Text(term) == "" || len(columns) == 0 {
			return db
		}
		pattern := query.ContainsPattern(query.Text(term))
		cond := db.Session(&gorm.Session{NewDB: true}).Where("LOWER("+columns[0]+") LIKE ?", pattern)
		for _, c := range columns[1:] {
			cond = cond.Or("LOWER("+c+") LIKE ?", pattern)
		}
		return db.Where(cond)
	}
}

// Equals 精确匹配
func Equals(column, value string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if value == "" {
			return db
		}
		return db.Where(column+" = ?", value)
	}
}

// AtLeast 数值下限（含）
func AtLeast[T int | float64](column string, v *T) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if v == nil {
			return db
		}
		return db.Where(column+" >= ?", *v)
	}
}

// AtMost 数值上限（含）
func AtMost[T int | float64](column string, v *T) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if v == nil {
			return db
		}
		return db.Where(column+" <= ?", *v)
	}
}

// WithinDates 日期区间，两端都包含：col >= start AND col < end+1天
// 以YYYY-MM-DD字符串传参，不受连接时区影响
func WithinDates(column string, r query.DateRange) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if r.Start != nil {
			db = db.Where(column+" >= ?", r.Start.Format(query.DateLayout))
		}
		if end := r.EndExclusive(); end != nil {
			db = db.Where(column+" < ?", end.Format(query.DateLayout))
		}
		return db
	}
}
