package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-api/internal/domain/checkout"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

type checkoutRepository struct {
	db *gorm.DB
}

// NewCheckoutRepository 创建借阅仓储
func NewCheckoutRepository(db *gorm.DB) checkout.Repository {
	return &checkoutRepository{db: db}
}

func (r *checkoutRepository) Create(ctx context.Context, c *checkout.Checkout) error {
	if err := dbFrom(ctx, r.db).Create(toCheckoutModel(c)).Error; err != nil {
		if isDuplicateError(err) {
			return checkout.ErrCheckoutDuplicate
		}
		return apperrors.Wrap(err, "Failed to create checkout")
	}
	return nil
}

func (r *checkoutRepository) Find(ctx context.Context, bookID string, month int) (*checkout.Checkout, error) {
	var m CheckoutModel
	err := dbFrom(ctx, r.db).Where("BookID = ? AND CheckoutMonth = ?", bookID, month).First(&m).Error
	if err != nil {
		if isNotFound(err) {
			return nil, checkout.ErrCheckoutNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to query checkout")
	}
	return toCheckoutEntity(&m), nil
}

func (r *checkoutRepository) Update(ctx context.Context, c *checkout.Checkout) error {
	err := dbFrom(ctx, r.db).Model(&CheckoutModel{}).
		Where("BookID = ? AND CheckoutMonth = ?", c.BookID, c.CheckoutMonth).
		Update("NumberOfCheckouts", c.NumberOfCheckouts).Error
	if err != nil {
		return apperrors.Wrap(err, "Failed to update checkout")
	}
	return nil
}

func (r *checkoutRepository) Delete(ctx context.Context, bookID string, month int) error {
	result := dbFrom(ctx, r.db).Where("BookID = ? AND CheckoutMonth = ?", bookID, month).Delete(&CheckoutModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "Failed to delete checkout")
	}
	if result.RowsAffected == 0 {
		return checkout.ErrCheckoutNotFound
	}
	return nil
}

func (r *checkoutRepository) List(ctx context.Context, f checkout.Filter) ([]*checkout.Checkout, int64, error) {
	var models []CheckoutModel
	total, err := findPage(func() *gorm.DB {
		q := dbFrom(ctx, r.db).Model(&CheckoutModel{}).Scopes(
			Equals("checkouts.BookID", f.BookID),
			AtLeast("checkouts.NumberOfCheckouts", f.MinCheckouts),
		)
		if f.Month != nil {
			q = q.Where("checkouts.CheckoutMonth = ?", *f.Month)
		}
		return q
	}, f.Page, []string{"checkouts.BookID ASC", "checkouts.CheckoutMonth ASC"}, &models)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "Failed to list checkouts")
	}

	out := make([]*checkout.Checkout, 0, len(models))
	for i := range models {
		out = append(out, toCheckoutEntity(&models[i]))
	}
	return out, total, nil
}

func toCheckoutModel(c *checkout.Checkout) *CheckoutModel {
	return &CheckoutModel{BookID: c.BookID, CheckoutMonth: c.CheckoutMonth, NumberOfCheckouts: c.NumberOfCheckouts}
}

func toCheckoutEntity(m *CheckoutModel) *checkout.Checkout {
	return &checkout.Checkout{BookID: m.BookID, CheckoutMonth: m.CheckoutMonth, NumberOfCheckouts: m.NumberOfCheckouts}
}
