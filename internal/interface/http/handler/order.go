package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/bookstore-api/internal/application/order"
	"github.com/xiebiao/bookstore-api/internal/domain/order"
	"github.com/xiebiao/bookstore-api/internal/domain/query"
	"github.com/xiebiao/bookstore-api/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-api/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-api/pkg/response"
)

// OrderCreator 下单
type OrderCreator interface {
	Execute(ctx context.Context, req apporder.CreateOrderRequest) (*order.Order, error)
}

// OrderUpdater 修改订单
type OrderUpdater interface {
	Execute(ctx context.Context, req apporder.UpdateOrderRequest) (*order.Order, error)
}

// OrderDeleter 删除订单
type OrderDeleter interface {
	Execute(ctx context.Context, orderID string, actorID uint) error
}

// OrderQueries 订单查询
type OrderQueries interface {
	Get(ctx context.Context, id string) (*order.Order, error)
	List(ctx context.Context, f order.Filter) ([]*order.Order, int64, error)
	ByISBN(ctx context.Context, isbn string, dates query.DateRange, page query.Page) ([]*order.Order, int64, error)
	Summary(ctx context.Context, dates query.DateRange) ([]*order.MonthlySummary, error)
	BooksSold(ctx context.Context, bookID string, dates query.DateRange) (*order.BookSales, error)
}

// OrderHandler 订单HTTP处理器
// 写操作都是单事务用例，成功后异步发布订单事件
type OrderHandler struct {
	create  OrderCreator
	update  OrderUpdater
	remove  OrderDeleter
	queries OrderQueries
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(create *apporder.CreateOrderUseCase, update *apporder.UpdateOrderUseCase, remove *apporder.DeleteOrderUseCase, queries *apporder.QueryService) *OrderHandler {
	return newOrderHandler(create, update, remove, queries)
}

func newOrderHandler(create OrderCreator, update OrderUpdater, remove OrderDeleter, queries OrderQueries) *OrderHandler {
	return &OrderHandler{create: create, update: update, remove: remove, queries: queries}
}

// List 订单列表
// @Summary      订单列表
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        order_id   query string false "订单号(子串)"
// @Param        start_date query string false "起始日期 YYYY-MM-DD"
// @Param        end_date   query string false "结束日期 YYYY-MM-DD"
// @Param        isbn       query string false "包含的ISBN"
// @Param        book_id    query string false "包含的图书"
// @Param        page       query int    false "页码"
// @Param        per_page   query int    false "每页数量(5-100)"
// @Success      200 {object} map[string]interface{}
// @Failure      422 {object} response.ErrorBody "日期格式错误"
// @Router       /api/v1/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	dates, err := dateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.list(c, order.Filter{
		OrderID: textParam(c, "order_id"),
		Dates:   dates,
		ISBN:    textParam(c, "isbn"),
		BookID:  textParam(c, "book_id"),
		Page:    pageParams(c),
	})
}

// Search 订单高级搜索
// @Summary      搜索订单
// @Description  可按册数、书名、作者姓氏过滤，条件之间为AND
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        search           query string false "订单号(子串)"
// @Param        start_date       query string false "起始日期 YYYY-MM-DD"
// @Param        end_date         query string false "结束日期 YYYY-MM-DD"
// @Param        isbn             query string false "包含的ISBN"
// @Param        min_quantity     query int    false "单行最少册数"
// @Param        book_title       query string false "书名(子串)"
// @Param        author_last_name query string false "作者姓氏(子串)"
// @Success      200 {object} map[string]interface{}
// @Failure      422 {object} response.ErrorBody "日期格式错误"
// @Router       /api/v1/orders/search [get]
func (h *OrderHandler) Search(c *gin.Context) {
	dates, err := dateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.list(c, order.Filter{
		OrderID:        textParam(c, "search"),
		Dates:          dates,
		ISBN:           textParam(c, "isbn"),
		MinQuantity:    intParam(c, "min_quantity"),
		BookTitle:      textParam(c, "book_title"),
		AuthorLastName: textParam(c, "author_last_name"),
		Page:           pageParams(c),
	})
}

func (h *OrderHandler) list(c *gin.Context, f order.Filter) {
	list, count, err := h.queries.List(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, "orders", dto.NewOrders(list), count, f.Page.Number, f.Page.PerPage)
}

// Summary 按月汇总
// @Summary      订单月度汇总
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        start_date query string false "起始日期 YYYY-MM-DD"
// @Param        end_date   query string false "结束日期 YYYY-MM-DD"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/orders/summary [get]
func (h *OrderHandler) Summary(c *gin.Context) {
	dates, err := dateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	list, err := h.queries.Summary(c.Request.Context(), dates)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"summary": dto.NewSummary(list)})
}

// ByISBN 包含某个ISBN的订单
// @Summary      按ISBN查订单
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        isbn path string true "ISBN"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/orders/by-isbn/{isbn} [get]
func (h *OrderHandler) ByISBN(c *gin.Context) {
	dates, err := dateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	page := pageParams(c)
	list, count, err := h.queries.ByISBN(c.Request.Context(), c.Param("isbn"), dates, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{
		"isbn":        c.Param("isbn"),
		"orders":      dto.NewOrders(list),
		"count":       count,
		"page":        page.Number,
		"per_page":    page.PerPage,
		"total_pages": response.TotalPages(count, page.PerPage),
	})
}

// BooksSold 某本书各版本的销量
// @Summary      图书分版本销量
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        book_id path string true "图书ID"
// @Success      200 {object} dto.BooksSoldResponse
// @Failure      404 {object} response.ErrorBody
// @Router       /api/v1/orders/books-sold/{book_id} [get]
func (h *OrderHandler) BooksSold(c *gin.Context) {
	dates, err := dateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	sales, err := h.queries.BooksSold(c.Request.Context(), c.Param("book_id"), dates)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewBooksSold(sales))
}

// Get 订单详情
// @Summary      订单详情
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "订单号"
// @Success      200 {object} dto.OrderEnvelope
// @Failure      404 {object} response.ErrorBody
// @Router       /api/v1/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	o, err := h.queries.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.OrderEnvelope{Order: dto.NewOrder(o)})
}

// Create 下单
// @Summary      创建订单
// @Description  订单头与全部明细在一个事务中写入，任一ISBN不存在则全部回滚
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateOrderRequest true "订单信息"
// @Success      201 {object} dto.OrderEnvelope
// @Failure      400 {object} response.ErrorBody "参数错误、订单号重复或ISBN不存在"
// @Failure      401 {object} response.ErrorBody
// @Failure      422 {object} response.ErrorBody "日期格式错误"
// @Router       /api/v1/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	o, err := h.create.Execute(c.Request.Context(), apporder.CreateOrderRequest{
		OrderID:  req.OrderID,
		SaleDate: req.SaleDate,
		Items:    dto.ToItems(req.Items),
		ActorID:  middleware.GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.OrderEnvelope{Message: "Order created successfully", Order: dto.NewOrder(o)})
}

// Update 修改订单（管理员）
// @Summary      修改订单
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                 true "订单号"
// @Param        request body dto.UpdateOrderRequest true "修改内容"
// @Success      200 {object} dto.OrderEnvelope
// @Failure      400 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /api/v1/orders/{id} [put]
func (h *OrderHandler) Update(c *gin.Context) {
	var req dto.UpdateOrderRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	o, err := h.update.Execute(c.Request.Context(), apporder.UpdateOrderRequest{
		OrderID:  c.Param("id"),
		SaleDate: req.SaleDate,
		Items:    dto.ToItems(req.Items),
		ActorID:  middleware.GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.OrderEnvelope{Message: "Order updated successfully", Order: dto.NewOrder(o)})
}

// Delete 删除订单（管理员）
// @Summary      删除订单
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "订单号"
// @Success      200 {object} map[string]string
// @Failure      404 {object} response.ErrorBody
// @Router       /api/v1/orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.remove.Execute(c.Request.Context(), c.Param("id"), middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Order deleted successfully")
}
