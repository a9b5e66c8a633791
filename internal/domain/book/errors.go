package book

import (
	"strings"

	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

// 图书领域错误定义
var (
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "Book not found")

	ErrBookDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "Book with this BookID already exists")

	ErrEditionNotFound = apperrors.NotFound("Edition")

	ErrEditionDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "Edition with this ISBN already exists")

	ErrEditionHasOrders = apperrors.New(apperrors.ErrCodeHasDependents, "Cannot delete edition with associated orders")

	ErrNegativePrice = apperrors.Validation("Price must be greater than or equal to 0")

	ErrSearchTermTooShort = apperrors.Validation("Search query must be at least 2 characters")
)

// Dependents 删除图书前需要检查的依赖数量
// Info随图书一起删除，不计入依赖
type Dependents struct {
	Editions  int64
	Awards    int64
	Ratings   int64
	Checkouts int64
}

// Any 是否存在任何依赖
func (d Dependents) Any() bool {
	return d.Editions > 0 || d.Awards > 0 || d.Ratings > 0 || d.Checkouts > 0
}

// Conflict 转换为冲突错误，列出存在的依赖类型
func (d Dependents) Conflict() *apperrors.AppError {
	var kinds []string
	if d.Editions > 0 {
		kinds = append(kinds, "editions")
	}
	if d.Awards > 0 {
		kinds = append(kinds, "awards")
	}
	if d.Ratings > 0 {
		kinds = append(kinds, "ratings")
	}
	if d.Checkouts > 0 {
		kinds = append(kinds, "checkouts")
	}

	var joined string
	switch len(kinds) {
	case 1:
		joined = kinds[0]
	case 2:
		joined = kinds[0] + " and " + kinds[1]
	default:
		joined = strings.Join(kinds[:len(kinds)-1], ", ") + ", and " + kinds[len(kinds)-1]
	}
	return apperrors.New(apperrors.ErrCodeHasDependents, "Cannot delete book with associated "+joined)
}
