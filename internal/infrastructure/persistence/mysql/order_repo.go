package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-api/internal/domain/order"
	"github.com/xiebiao/bookstore-api/internal/domain/query"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

// orderRepository 订单仓储实现(MySQL)
// 1. Order和Detail是聚合关系，写操作必须在同一事务中（事务通过context传递）
// 2. 查询先分页取订单头，再用一次IN查询加载明细，避免N+1
// 3. 跨表过滤按需关联 orderdetails → edition → book → author，关联后DISTINCT去重
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 先写订单头再写明细
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	db := dbFrom(ctx, r.db)
	if err := db.Create(&OrderModel{OrderID: o.OrderID, SaleDate: o.SaleDate}).Error; err != nil {
		if isDuplicateError(err) {
			return order.ErrOrderDuplicate
		}
		return apperrors.Wrap(err, "Failed to create order")
	}
	return r.insertDetails(db, o.OrderID, o.Details)
}

func (r *orderRepository) insertDetails(db *gorm.DB, orderID string, details []*order.Detail) error {
	if len(details) == 0 {
		return nil
	}
	models := make([]OrderDetailModel, 0, len(details))
	for _, d := range details {
		models = append(models, OrderDetailModel{
			OrderID:  orderID,
			ItemID:   d.ItemID,
			ISBN:     d.ISBN,
			Quantity: d.Quantity,
		})
	}
	if err := db.Create(&models).Error; err != nil {
		if isDuplicateError(err) {
			return order.ErrDuplicateItemID
		}
		if isForeignKeyError(err) {
			return order.UnknownISBNs(orderDetailISBNs(details))
		}
		return apperrors.Wrap(err, "Failed to create order details")
	}
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	db := dbFrom(ctx, r.db)
	var m OrderModel
	if err := db.Where("OrderID = ?", id).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to query order")
	}

	orders, err := r.withDetails(db, []OrderModel{m})
	if err != nil {
		return nil, err
	}
	return orders[0], nil
}

func (r *orderRepository) Exists(ctx context.Context, id string) (bool, error) {
	var n int64
	if err := dbFrom(ctx, r.db).Model(&OrderModel{}).Where("OrderID = ?", id).Count(&n).Error; err != nil {
		return false, apperrors.Wrap(err, "Failed to query order")
	}
	return n > 0, nil
}

// UpdateSaleDate MySQL对未变化的行返回RowsAffected=0，不能据此判断不存在
func (r *orderRepository) UpdateSaleDate(ctx context.Context, o *order.Order) error {
	err := dbFrom(ctx, r.db).Model(&OrderModel{}).Where("OrderID = ?", o.OrderID).
		Update("SaleDate", o.SaleDate).Error
	if err != nil {
		return apperrors.Wrap(err, "Failed to update order")
	}
	return nil
}

func (r *orderRepository) ReplaceDetails(ctx context.Context, orderID string, details []*order.Detail) error {
	db := dbFrom(ctx, r.db)
	if err := db.Where("OrderID = ?", orderID).Delete(&OrderDetailModel{}).Error; err != nil {
		return apperrors.Wrap(err, "Failed to delete order details")
	}
	return r.insertDetails(db, orderID, details)
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	db := dbFrom(ctx, r.db)
	if err := db.Where("OrderID = ?", id).Delete(&OrderDetailModel{}).Error; err != nil {
		return apperrors.Wrap(err, "Failed to delete order details")
	}

	result := db.Where("OrderID = ?", id).Delete(&OrderModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "Failed to delete order")
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

// List 计数与取数使用同一组过滤条件；有关联时按订单去重
func (r *orderRepository) List(ctx context.Context, f order.Filter) ([]*order.Order, int64, error) {
	db := dbFrom(ctx, r.db)

	var total int64
	if err := orderCountQuery(db, f).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "Failed to count orders")
	}
	if total == 0 {
		return []*order.Order{}, 0, nil
	}

	var models []OrderModel
	if err := orderPageQuery(db, f).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "Failed to list orders")
	}

	orders, err := r.withDetails(db, models)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// orderFilter 订单过滤条件，返回是否关联了明细表
func orderFilter(q *gorm.DB, f order.Filter) (*gorm.DB, bool) {
	q = q.Scopes(
		ContainsFold("orders.OrderID", f.OrderID),
		WithinDates("orders.SaleDate", f.Dates),
	)

	title := query.Text(f.BookTitle)
	lastName := query.Text(f.AuthorLastName)
	needBook := title != "" || lastName != ""
	needEdition := needBook || f.BookID != ""
	needDetails := needEdition || f.ISBN != "" || f.MinQuantity != nil
	if !needDetails {
		return q, false
	}

	q = q.Joins("JOIN orderdetails ON orderdetails.OrderID = orders.OrderID").Scopes(
		Equals("orderdetails.ISBN", f.ISBN),
		AtLeast("orderdetails.Quantity", f.MinQuantity),
	)
	if needEdition {
		q = q.Joins("JOIN edition ON edition.ISBN = orderdetails.ISBN").
			Scopes(Equals("edition.BookID", f.BookID))
	}
	if needBook {
		q = q.Joins("JOIN book ON book.BookID = edition.BookID").
			Scopes(ContainsFold("book.Title", title))
	}
	if lastName != "" {
		q = q.Joins("JOIN author ON author.AuthID = book.AuthID").
			Scopes(ContainsFold("author.LastName", lastName))
	}
	return q, true
}

// orderCountQuery COUNT(DISTINCT orders.OrderID)
func orderCountQuery(db *gorm.DB, f order.Filter) *gorm.DB {
	q, joined := orderFilter(db.Model(&OrderModel{}), f)
	if joined {
		q = q.Distinct("orders.OrderID")
	}
	return q
}

// orderPageQuery 排序 SaleDate, OrderID 后分页
func orderPageQuery(db *gorm.DB, f order.Filter) *gorm.DB {
	q, joined := orderFilter(db.Model(&OrderModel{}), f)
	if joined {
		q = q.Distinct("orders.OrderID", "orders.SaleDate")
	}
	return q.Order("orders.SaleDate ASC").Order("orders.OrderID ASC").Scopes(Paginate(f.Page))
}

// orderDetailRow 明细及其版本价格、图书标题
type orderDetailRow struct {
	OrderID  string   `gorm:"column:OrderID"`
	ItemID   string   `gorm:"column:ItemID"`
	ISBN     string   `gorm:"column:ISBN"`
	Quantity int      `gorm:"column:Quantity"`
	Price    *float64 `gorm:"column:Price"`
	BookID   *string  `gorm:"column:BookID"`
	Title    *string  `gorm:"column:Title"`
}

// withDetails 批量加载明细，保持订单顺序
func (r *orderRepository) withDetails(db *gorm.DB, models []OrderModel) ([]*order.Order, error) {
	if len(models) == 0 {
		return []*order.Order{}, nil
	}

	ids := make([]string, 0, len(models))
	for _, m := range models {
		ids = append(ids, m.OrderID)
	}

	var rows []orderDetailRow
	err := fresh(db).Model(&OrderDetailModel{}).
		Select("orderdetails.OrderID, orderdetails.ItemID, orderdetails.ISBN, orderdetails.Quantity, edition.Price, edition.BookID, book.Title").
		Joins("LEFT JOIN edition ON edition.ISBN = orderdetails.ISBN").
		Joins("LEFT JOIN book ON book.BookID = edition.BookID").
		Where("orderdetails.OrderID IN ?", ids).
		Order("orderdetails.OrderID ASC").Order("orderdetails.ItemID ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to load order details")
	}

	byOrder := make(map[string][]*order.Detail, len(models))
	for _, row := range rows {
		byOrder[row.OrderID] = append(byOrder[row.OrderID], &order.Detail{
			OrderID:  row.OrderID,
			ItemID:   row.ItemID,
			ISBN:     row.ISBN,
			Quantity: row.Quantity,
			Price:    row.Price,
			BookID:   derefString(row.BookID),
			Title:    derefString(row.Title),
		})
	}

	out := make([]*order.Order, 0, len(models))
	for _, m := range models {
		details := byOrder[m.OrderID]
		if details == nil {
			details = []*order.Detail{}
		}
		out = append(out, &order.Order{OrderID: m.OrderID, SaleDate: m.SaleDate, Details: details})
	}
	return out, nil
}

type monthlyRow struct {
	Month      string `gorm:"column:month"`
	OrderCount int64  `gorm:"column:order_count"`
	TotalItems int64  `gorm:"column:total_items"`
}

// summaryQuery 按YYYY-MM分组，没有销售日期的订单不参与统计
func summaryQuery(db *gorm.DB, dates query.DateRange) *gorm.DB {
	return db.Model(&OrderModel{}).
		Select("DATE_FORMAT(orders.SaleDate, '%Y-%m') AS month, " +
			"COUNT(DISTINCT orders.OrderID) AS order_count, " +
			"COALESCE(SUM(orderdetails.Quantity), 0) AS total_items").
		Joins("LEFT JOIN orderdetails ON orderdetails.OrderID = orders.OrderID").
		Where("orders.SaleDate IS NOT NULL").
		Scopes(WithinDates("orders.SaleDate", dates)).
		Group("month").
		Order("month ASC")
}

func (r *orderRepository) Summary(ctx context.Context, dates query.DateRange) ([]*order.MonthlySummary, error) {
	var rows []monthlyRow
	if err := summaryQuery(dbFrom(ctx, r.db), dates).Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(err, "Failed to summarize orders")
	}

	out := make([]*order.MonthlySummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, &order.MonthlySummary{
			Month:      row.Month,
			OrderCount: row.OrderCount,
			TotalItems: row.TotalItems,
		})
	}
	return out, nil
}

type editionSalesRow struct {
	ISBN          string `gorm:"column:ISBN"`
	OrderCount    int64  `gorm:"column:order_count"`
	TotalQuantity int64  `gorm:"column:total_quantity"`
}

func salesByEditionQuery(db *gorm.DB, isbns []string, dates query.DateRange) *gorm.DB {
	return db.Model(&OrderDetailModel{}).
		Select("orderdetails.ISBN, " +
			"COUNT(DISTINCT orderdetails.OrderID) AS order_count, " +
			"SUM(orderdetails.Quantity) AS total_quantity").
		Joins("JOIN orders ON orders.OrderID = orderdetails.OrderID").
		Where("orderdetails.ISBN IN ?", isbns).
		Scopes(WithinDates("orders.SaleDate", dates)).
		Group("orderdetails.ISBN")
}

// SalesByEdition 只返回销量，版本的格式、价格由调用方补齐
func (r *orderRepository) SalesByEdition(ctx context.Context, isbns []string, dates query.DateRange) (map[string]*order.EditionSales, error) {
	out := make(map[string]*order.EditionSales, len(isbns))
	isbns = compactIDs(isbns)
	if len(isbns) == 0 {
		return out, nil
	}

	var rows []editionSalesRow
	if err := salesByEditionQuery(dbFrom(ctx, r.db), isbns, dates).Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(err, "Failed to summarize edition sales")
	}
	for _, row := range rows {
		out[row.ISBN] = &order.EditionSales{
			ISBN:          row.ISBN,
			OrderCount:    row.OrderCount,
			TotalQuantity: row.TotalQuantity,
		}
	}
	return out, nil
}

func orderDetailISBNs(details []*order.Detail) []string {
	isbns := make([]string, 0, len(details))
	for _, d := range details {
		isbns = append(isbns, d.ISBN)
	}
	return compactIDs(isbns)
}
