package checkout

import (
	"context"

	"github.com/xiebiao/bookstore-api/internal/domain/query"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

// Checkout 图书某月的借阅次数，BookID+CheckoutMonth为联合主键
type Checkout struct {
	BookID            string
	CheckoutMonth     int
	NumberOfCheckouts int
}

var (
	ErrCheckoutNotFound  = apperrors.NotFound("Checkout")
	ErrCheckoutDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "Checkout for this book and month already exists")
	ErrInvalidMonth      = apperrors.Validation("CheckoutMonth must be between 1 and 12")
	ErrNegativeCount     = apperrors.Validation("NumberOfCheckouts must be greater than or equal to 0")
)

// Validate 月份1-12，次数非负
func (c *Checkout) Validate() error {
	if c.CheckoutMonth < 1 || c.CheckoutMonth > 12 {
		return ErrInvalidMonth
	}
	if c.NumberOfCheckouts < 0 {
		return ErrNegativeCount
	}
	return nil
}

// Filter 借阅记录过滤
type Filter struct {
	BookID       string
	Month        *int
	MinCheckouts *int
	Page         query.Page
}

// Repository 借阅仓储，按BookID, CheckoutMonth排序
type Repository interface {
	Create(ctx context.Context, c *Checkout) error
	Find(ctx context.Context, bookID string, month int) (*Checkout, error)
	Update(ctx context.Context, c *Checkout) error
	Delete(ctx context.Context, bookID string, month int) error
	List(ctx context.Context, f Filter) ([]*Checkout, int64, error)
}
