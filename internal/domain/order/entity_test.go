package order

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

func TestOrder_Aggregates(t *testing.T) {
	o := &Order{
		OrderID: "ORD-1",
		Details: []*Detail{
			{ItemID: "1", ISBN: "978-0", Quantity: 2},
			{ItemID: "2", ISBN: "978-1", Quantity: 1},
			{ItemID: "3", ISBN: "978-0", Quantity: 4},
		},
	}

	assert.Equal(t, 7, o.TotalItems())
	assert.Equal(t, []string{"978-0", "978-1"}, o.ISBNs())
}

func TestBookSales_Totals(t *testing.T) {
	s := &BookSales{ByEdition: []*EditionSales{
		{ISBN: "a", OrderCount: 2, TotalQuantity: 5},
		{ISBN: "b"},
		{ISBN: "c", OrderCount: 1, TotalQuantity: 1},
	}}
	assert.Equal(t, int64(3), s.TotalOrders())
	assert.Equal(t, int64(6), s.TotalSold())
}

func TestUnknownISBNs(t *testing.T) {
	err := UnknownISBNs([]string{"x", "y"})
	assert.Equal(t, "Invalid ISBNs: x, y", err.Message)
	assert.Equal(t, 400, err.HTTPStatus())
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUnknownReference))
}
