package dto

import (
	"sort"

	apporder "github.com/xiebiao/bookstore-api/internal/application/order"
	"github.com/xiebiao/bookstore-api/internal/domain/order"
)

// OrderItemRequest 订单明细，ItemID缺省为序号，Quantity缺省为1
type OrderItemRequest struct {
	ItemID   string `json:"ItemID" binding:"max=10" example:"1"`
	ISBN     string `json:"ISBN" binding:"max=20" example:"9780441013593"`
	Quantity *int   `json:"Quantity" example:"2"`
}

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	OrderID  string             `json:"OrderID" binding:"max=30" example:"ORD-0001"`
	SaleDate string             `json:"SaleDate" binding:"omitempty,isodate" example:"2024-03-15"`
	Items    []OrderItemRequest `json:"items" binding:"dive"`
}

// UpdateOrderRequest 修改订单；items缺省时保留原明细，空数组清空明细
type UpdateOrderRequest struct {
	SaleDate *string            `json:"SaleDate" binding:"omitempty,isodate" example:"2024-03-16"`
	Items    []OrderItemRequest `json:"items" binding:"omitempty,dive"`
}

// ToItems 转换为应用层明细，nil保持nil
func ToItems(items []OrderItemRequest) []apporder.ItemInput {
	if items == nil {
		return nil
	}
	out := make([]apporder.ItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, apporder.ItemInput{ItemID: it.ItemID, ISBN: it.ISBN, Quantity: it.Quantity})
	}
	return out
}

// OrderDetailResponse 订单明细
type OrderDetailResponse struct {
	ItemID   string   `json:"ItemID"`
	ISBN     string   `json:"ISBN"`
	Quantity int      `json:"Quantity"`
	Price    *float64 `json:"Price"`
	BookID   string   `json:"BookID,omitempty"`
	Title    string   `json:"Title,omitempty"`
}

// OrderResponse 订单
type OrderResponse struct {
	OrderID      string                `json:"OrderID"`
	SaleDate     *string               `json:"SaleDate"`
	OrderDetails []OrderDetailResponse `json:"OrderDetails"`
	TotalItems   int                   `json:"TotalItems"`
}

// OrderEnvelope 写操作的响应 {"message", "order"}
type OrderEnvelope struct {
	Message string        `json:"message,omitempty"`
	Order   OrderResponse `json:"order"`
}

// MonthlySummaryResponse 按月汇总
type MonthlySummaryResponse struct {
	Month      string `json:"month"`
	OrderCount int64  `json:"order_count"`
	TotalItems int64  `json:"total_items"`
}

// EditionSalesResponse 单个版本的销量
type EditionSalesResponse struct {
	OrderCount      int64    `json:"order_count"`
	TotalQuantity   int64    `json:"total_quantity"`
	Format          string   `json:"format"`
	Price           *float64 `json:"price"`
	PublicationDate *string  `json:"publication_date"`
}

// BooksSoldResponse GET /orders/books-sold/:book_id
type BooksSoldResponse struct {
	BookID         string                          `json:"book_id"`
	Title          string                          `json:"title"`
	SalesByEdition map[string]EditionSalesResponse `json:"sales_by_edition"`
	TotalEditions  int                             `json:"total_editions"`
	TotalOrders    int64                           `json:"total_orders"`
	TotalBooksSold int64                           `json:"total_books_sold"`
}

// NewOrder 订单
func NewOrder(o *order.Order) OrderResponse {
	details := make([]OrderDetailResponse, 0, len(o.Details))
	for _, d := range o.Details {
		details = append(details, OrderDetailResponse{
			ItemID:   d.ItemID,
			ISBN:     d.ISBN,
			Quantity: d.Quantity,
			Price:    d.Price,
			BookID:   d.BookID,
			Title:    d.Title,
		})
	}
	return OrderResponse{
		OrderID:      o.OrderID,
		SaleDate:     FormatDate(o.SaleDate),
		OrderDetails: details,
		TotalItems:   o.TotalItems(),
	}
}

// NewOrders 订单列表
func NewOrders(list []*order.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, NewOrder(o))
	}
	return out
}

// NewSummary 按月汇总，按月份升序
func NewSummary(list []*order.MonthlySummary) []MonthlySummaryResponse {
	out := make([]MonthlySummaryResponse, 0, len(list))
	for _, s := range list {
		out = append(out, MonthlySummaryResponse{Month: s.Month, OrderCount: s.OrderCount, TotalItems: s.TotalItems})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// NewBooksSold 某本书所有版本的销量
func NewBooksSold(s *order.BookSales) BooksSoldResponse {
	byEdition := make(map[string]EditionSalesResponse, len(s.ByEdition))
	for _, e := range s.ByEdition {
		byEdition[e.ISBN] = EditionSalesResponse{
			OrderCount:      e.OrderCount,
			TotalQuantity:   e.TotalQuantity,
			Format:          e.Format,
			Price:           e.Price,
			PublicationDate: FormatDate(e.PublicationDate),
		}
	}
	return BooksSoldResponse{
		BookID:         s.BookID,
		Title:          s.Title,
		SalesByEdition: byEdition,
		TotalEditions:  len(s.ByEdition),
		TotalOrders:    s.TotalOrders(),
		TotalBooksSold: s.TotalSold(),
	}
}
