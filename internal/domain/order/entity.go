package order

import (
	"time"
)

// DefaultQuantity 明细未指定数量时的默认值
const DefaultQuantity = 1

// Order 订单（聚合根）
// 1. OrderID是业务主键，由调用方提供
// 2. Details是聚合内的子实体，只能随订单一起写入
// 3. SaleDate只保留日期部分
type Order struct {
	OrderID  string
	SaleDate *time.Time
	Details  []*Detail
}

// Detail 订单明细，OrderID+ItemID为联合主键
// Price、BookID、Title来自关联的版本和图书，只读
type Detail struct {
	OrderID  string
	ItemID   string
	ISBN     string
	Quantity int

	Price  *float64
	BookID string
	Title  string
}

// TotalItems 明细数量之和
func (o *Order) TotalItems() int {
	total := 0
	for _, d := range o.Details {
		total += d.Quantity
	}
	return total
}

// ISBNs 明细中出现的ISBN（去重，保持顺序）
func (o *Order) ISBNs() []string {
	seen := make(map[string]struct{}, len(o.Details))
	isbns := make([]string, 0, len(o.Details))
	for _, d := range o.Details {
		if _, ok := seen[d.ISBN]; ok {
			continue
		}
		seen[d.ISBN] = struct{}{}
		isbns = append(isbns, d.ISBN)
	}
	return isbns
}

// MonthlySummary 按月汇总
type MonthlySummary struct {
	Month      string // YYYY-MM
	OrderCount int64
	TotalItems int64
}

// EditionSales 某个版本的销量
type EditionSales struct {
	ISBN            string
	Format          string
	Price           *float64
	PublicationDate *time.Time
	OrderCount      int64
	TotalQuantity   int64
}

// BookSales 某本书所有版本的销量
type BookSales struct {
	BookID    string
	Title     string
	ByEdition []*EditionSales
}

// TotalOrders 所有版本的订单数之和
func (s *BookSales) TotalOrders() int64 {
	var n int64
	for _, e := range s.ByEdition {
		n += e.OrderCount
	}
	return n
}

// TotalSold 所有版本的销量之和
func (s *BookSales) TotalSold() int64 {
	var n int64
	for _, e := range s.ByEdition {
		n += e.TotalQuantity
	}
	return n
}
