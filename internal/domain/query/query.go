// Package query 列表/搜索接口共用的查询参数模型
//
// 约定：
//   - 文本过滤：大小写不敏感的子串匹配，LIKE通配符按字面量处理
//   - 缺省参数不产生过滤条件，无法解析的数字参数视为缺省
//   - 日期区间两端都包含：col >= start AND col < end+1天
//   - 分页：page从1开始，per_page默认10，限制在[5,100]
//   - 排序总以主键收尾，保证分页稳定
package query

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MinPerPage     = 5
	MaxPerPage     = 100

	// DateLayout 日期参数格式 YYYY-MM-DD
	DateLayout = "2006-01-02"
)

// =========================================
// 分页
// =========================================

// Page 规范化后的分页参数
type Page struct {
	Number  int
	PerPage int
}

// NewPage page<1按1处理，per_page为0时取MinPerPage，超过上限取MaxPerPage
func NewPage(page, perPage int) Page {
	if page < 1 {
		page = DefaultPage
	}
	switch {
	case perPage < MinPerPage:
		perPage = MinPerPage
	case perPage > MaxPerPage:
		perPage = MaxPerPage
	}
	return Page{Number: page, PerPage: perPage}
}

// ParsePage 从原始查询字符串解析分页参数，缺省或无法解析时取默认值
func ParsePage(page, perPage string) Page {
	p := DefaultPage
	if n, ok := ParseInt(page); ok {
		p = n
	}
	pp := DefaultPerPage
	if n, ok := ParseInt(perPage); ok {
		pp = n
	}
	return NewPage(p, pp)
}

// Offset SQL OFFSET
func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

// Limit SQL LIMIT
func (p Page) Limit() int {
	return p.PerPage
}

// =========================================
// 数字参数
// =========================================

// ParseInt 解析可选整数参数，空串或非法值返回ok=false
func ParseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// OptionalInt 可选整数参数，非法值视为缺省
func OptionalInt(s string) *int {
	if n, ok := ParseInt(s); ok {
		return &n
	}
	return nil
}

// OptionalFloat 可选浮点参数，非法值视为缺省
func OptionalFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// =========================================
// 日期区间
// =========================================

// ErrInvalidDate 日期格式错误
var ErrInvalidDate = errors.New("invalid date format")

// DateError 指明哪个参数格式错误
type DateError struct {
	Param string
}

func (e *DateError) Error() string {
	return "Invalid " + e.Param + " format. Expected YYYY-MM-DD"
}

func (e *DateError) Unwrap() error {
	return ErrInvalidDate
}

// DateRange 闭区间日期过滤，nil端表示不限制
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// ParseDateRange 解析start_date/end_date，格式错误返回*DateError
func ParseDateRange(start, end string) (DateRange, error) {
	var r DateRange
	var err error
	if r.Start, err = ParseDate("start_date", start); err != nil {
		return DateRange{}, err
	}
	if r.End, err = ParseDate("end_date", end); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// ParseDate 解析单个可选日期参数
func ParseDate(param, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, &DateError{Param: param}
	}
	return &t, nil
}

// IsZero 是否没有任何日期限制
func (r DateRange) IsZero() bool {
	return r.Start == nil && r.End == nil
}

// EndExclusive 结束日期的次日零点，用作 col < EndExclusive 的上界
func (r DateRange) EndExclusive() *time.Time {
	if r.End == nil {
		return nil
	}
	t := r.End.AddDate(0, 0, 1)
	return &t
}

// Contains 判断某天是否在区间内（按日期比较）
func (r DateRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if end := r.EndExclusive(); end != nil && !t.Before(*end) {
		return false
	}
	return true
}

// =========================================
// 排序
// =========================================

// Sort 排序参数，Field为白名单中的逻辑字段名
type Sort struct {
	Field string
	Desc  bool
}

// ParseSort field不在allowed中时回退到fallback；order只认asc/desc，其他按asc
func ParseSort(field, order string, allowed []string, fallback string) Sort {
	s := Sort{Field: fallback}
	field = strings.ToLower(strings.TrimSpace(field))
	for _, a := range allowed {
		if a == field {
			s.Field = field
			break
		}
	}
	s.Desc = strings.EqualFold(strings.TrimSpace(order), "desc")
	return s
}

// Direction SQL排序方向
func (s Sort) Direction() string {
	if s.Desc {
		return "DESC"
	}
	return "ASC"
}

// =========================================
// 文本匹配
// =========================================

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern 生成小写的LIKE子串模式，通配符转义为字面量
// 例如 "War" → "%war%"，"50%" → "%50\%%"
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

// Text 规范化文本参数，空白视为缺省
func Text(s string) string {
	return strings.TrimSpace(s)
}

// MatchesContains 内存中的子串匹配，语义与ContainsPattern一致
func MatchesContains(value, term string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(term))
}
