package order

import (
	"strings"

	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

// 订单领域错误定义
var (
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "Order not found")

	ErrOrderDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "Order with this OrderID already exists")

	ErrInvalidQuantity = apperrors.Validation("Quantity must be at least 1")

	ErrNoEditions = apperrors.New(apperrors.ErrCodeNotFound, "No editions found for this book ID")

	ErrDuplicateItemID = apperrors.Validation("ItemID must be unique within an order")
)

// UnknownISBNs 订单引用了不存在的版本
func UnknownISBNs(isbns []string) *apperrors.AppError {
	return apperrors.New(apperrors.ErrCodeUnknownReference, "Invalid ISBNs: "+strings.Join(isbns, ", "))
}
