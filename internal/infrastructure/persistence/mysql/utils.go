package mysql

import (
	"errors"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-api/internal/domain/query"
)

// MySQL错误码
const (
	errDuplicateEntry   = 1062 // Duplicate entry 'xxx' for key 'yyy'
	errRowIsReferenced  = 1451 // Cannot delete or update a parent row
	errNoReferencedRow  = 1452 // Cannot add or update a child row
	errRowIsReferenced2 = 1217
)

// isDuplicateError 判断是否为唯一索引冲突
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == errDuplicateEntry
	}
	// 兼容检查：错误信息包含"Duplicate entry"
	return strings.Contains(err.Error(), "Duplicate entry")
}

// isForeignKeyError 判断是否为外键约束失败
// 业务层已提前校验引用，这里只兜底处理并发删除等情况
func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case errRowIsReferenced, errNoReferencedRow, errRowIsReferenced2:
			return true
		}
	}
	return false
}

// isNotFound 判断是否为记录不存在
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// findPage 先计数再分页查询
// build每次返回一个新的已过滤查询（不含ORDER/LIMIT），计数与取数各用一次
func findPage[M any](build func() *gorm.DB, page query.Page, orders []string, dest *[]M) (int64, error) {
	var total int64
	if err := build().Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}

	q := build()
	for _, o := range orders {
		q = q.Order(o)
	}
	if err := q.Scopes(Paginate(page)).Find(dest).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// derefString nil安全的取值
func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nilIfEmpty 空字符串存为NULL
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
