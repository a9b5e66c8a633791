package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-api/internal/domain/order"
)

func date(s string) *time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return &t
}

func TestNewOrder(t *testing.T) {
	price := 9.99
	o := &order.Order{
		OrderID:  "ORD-1",
		SaleDate: date("2024-03-15"),
		Details: []*order.Detail{
			{OrderID: "ORD-1", ItemID: "1", ISBN: "978-1", Quantity: 2, Price: &price, BookID: "B001", Title: "Dune"},
			{OrderID: "ORD-1", ItemID: "2", ISBN: "978-2", Quantity: 3},
		},
	}

	resp := NewOrder(o)
	require.NotNil(t, resp.SaleDate)
	assert.Equal(t, "2024-03-15", *resp.SaleDate)
	assert.Equal(t, 5, resp.TotalItems)
	require.Len(t, resp.OrderDetails, 2)
	assert.Equal(t, "Dune", resp.OrderDetails[0].Title)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"Title":""`)
}

func TestNewOrder_NoDetails(t *testing.T) {
	resp := NewOrder(&order.Order{OrderID: "ORD-2"})
	assert.Nil(t, resp.SaleDate)
	assert.NotNil(t, resp.OrderDetails)
	assert.Zero(t, resp.TotalItems)
}

func TestToItems(t *testing.T) {
	assert.Nil(t, ToItems(nil))

	items := ToItems([]OrderItemRequest{})
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestNewBooksSold(t *testing.T) {
	sales := &order.BookSales{
		BookID: "B001",
		Title:  "Dune",
		ByEdition: []*order.EditionSales{
			{ISBN: "978-1", Format: "Hardcover", PublicationDate: date("1965-08-01"), OrderCount: 3, TotalQuantity: 7},
			{ISBN: "978-2", Format: "Paperback"},
		},
	}

	resp := NewBooksSold(sales)
	assert.Equal(t, 2, resp.TotalEditions)
	assert.EqualValues(t, 3, resp.TotalOrders)
	assert.EqualValues(t, 7, resp.TotalBooksSold)
	require.Contains(t, resp.SalesByEdition, "978-2")
	assert.Zero(t, resp.SalesByEdition["978-2"].TotalQuantity)
	assert.Equal(t, "1965-08-01", *resp.SalesByEdition["978-1"].PublicationDate)
}

func TestNewSummary_SortedByMonth(t *testing.T) {
	resp := NewSummary([]*order.MonthlySummary{
		{Month: "2024-03", OrderCount: 1, TotalItems: 2},
		{Month: "2023-12", OrderCount: 4, TotalItems: 9},
	})
	require.Len(t, resp, 2)
	assert.Equal(t, "2023-12", resp[0].Month)
	assert.Equal(t, "2024-03", resp[1].Month)
}
