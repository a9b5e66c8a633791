package author

import (
	"strings"
	"time"
)

// Author 作者实体
type Author struct {
	AuthID             string
	FirstName          string
	LastName           string
	Birthday           *time.Time
	CountryOfResidence string
	HrsWritingPerDay   *int
}

// FullName 名 + 姓，缺一时只返回有的部分
func (a *Author) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// WithBookCount 作者及其图书数量（搜索、多产作者排行使用）
type WithBookCount struct {
	Author    *Author
	BookCount int64
}
