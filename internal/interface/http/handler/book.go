package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookstore-api/internal/application/book"
	"github.com/xiebiao/bookstore-api/internal/domain/book"
	"github.com/xiebiao/bookstore-api/internal/domain/query"
	"github.com/xiebiao/bookstore-api/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-api/pkg/response"
)

// BookService 图书用例
type BookService interface {
	List(ctx context.Context, f book.Filter) ([]*book.Details, int64, error)
	Search(ctx context.Context, f book.SearchFilter) ([]*book.Details, int64, error)
	Bestsellers(ctx context.Context, limit, days *int) ([]*book.Bestseller, error)
	BySeries(ctx context.Context, seriesID string) (*appbook.SeriesBooks, error)
	Get(ctx context.Context, id string, includeSales bool, days *int) (*book.Details, *book.SalesData, error)
	Create(ctx context.Context, req appbook.CreateRequest) (*book.Details, error)
	Update(ctx context.Context, id string, req appbook.UpdateRequest) (*book.Details, error)
	Delete(ctx context.Context, id string) error
}

// BookHandler 图书HTTP处理器
type BookHandler struct {
	books BookService
}

// NewBookHandler 创建图书处理器
func NewBookHandler(books *appbook.Service) *BookHandler {
	return &BookHandler{books: books}
}

// List 图书列表
// @Summary      图书列表
// @Description  按书名、作者、类型、丛书过滤，结果包含作者、扩展信息和版本
// @Tags         图书
// @Produce      json
// @Param        title     query string false "书名(子串)"
// @Param        author_id query string false "作者ID"
// @Param        genre     query string false "类型(子串)"
// @Param        series_id query string false "丛书ID"
// @Param        sort_by   query string false "title|author" default(title)
// @Param        order     query string false "asc|desc" default(asc)
// @Param        page      query int    false "页码"
// @Param        per_page  query int    false "每页数量(5-100)"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/books [get]
func (h *BookHandler) List(c *gin.Context) {
	f := book.Filter{
		Title:    textParam(c, "title"),
		AuthorID: textParam(c, "author_id"),
		Genre:    textParam(c, "genre"),
		SeriesID: textParam(c, "series_id"),
		Sort:     query.ParseSort(c.Query("sort_by"), c.Query("order"), book.SortFields, book.SortTitle),
		Page:     pageParams(c),
	}
	list, count, err := h.books.List(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, "books", dto.NewBookDetailsList(list), count, f.Page.Number, f.Page.PerPage)
}

// Search 图书全文搜索
// @Summary      搜索图书
// @Description  书名、作者名、类型任一匹配即命中
// @Tags         图书
// @Produce      json
// @Param        q        query string true  "关键词(至少2个字符)"
// @Param        page     query int    false "页码"
// @Param        per_page query int    false "每页数量(5-100)"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} response.ErrorBody
// @Router       /api/v1/books/search [get]
func (h *BookHandler) Search(c *gin.Context) {
	f := book.SearchFilter{Q: c.Query("q"), Page: pageParams(c)}
	list, count, err := h.books.Search(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, "books", dto.NewBookDetailsList(list), count, f.Page.Number, f.Page.PerPage)
}

// Bestsellers 销量排行
// @Summary      畅销书
// @Tags         图书
// @Produce      json
// @Param        limit query int false "数量" default(10)
// @Param        days  query int false "统计最近多少天" default(30)
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/books/bestsellers [get]
func (h *BookHandler) Bestsellers(c *gin.Context) {
	list, err := h.books.Bestsellers(c.Request.Context(), intParam(c, "limit"), intParam(c, "days"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, "books", dto.NewBestsellers(list), len(list))
}

// BySeries 丛书中的图书，按卷号排序
// @Summary      丛书图书
// @Tags         图书
// @Produce      json
// @Param        series_id path string true "丛书ID"
// @Success      200 {object} dto.SeriesBooksResponse
// @Failure      404 {object} response.ErrorBody
// @Router       /api/v1/books/series/{series_id} [get]
func (h *BookHandler) BySeries(c *gin.Context) {
	h.seriesBooks(c, c.Param("series_id"))
}

func (h *BookHandler) seriesBooks(c *gin.Context, seriesID string) {
	sb, err := h.books.BySeries(c.Request.Context(), seriesID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.SeriesBooksResponse{
		Series: dto.NewSeries(sb.Series),
		Count:  len(sb.Books),
		Books:  dto.NewBookDetailsList(sb.Books),
	})
}

// Get 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id            path  string true  "图书ID"
// @Param        include_sales query bool   false "是否附带销量"
// @Param        days          query int    false "销量统计天数" default(30)
// @Success      200 {object} dto.BookWithSalesResponse
// @Failure      404 {object} response.ErrorBody
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	details, sales, err := h.books.Get(c.Request.Context(), c.Param("id"), boolParam(c, "include_sales"), intParam(c, "days"))
	if err != nil {
		response.Error(c, err)
		return
	}
	resp := dto.BookWithSalesResponse{Book: dto.NewBookDetails(details)}
	if sales != nil {
		resp.SalesData = &dto.SalesDataResponse{Days: sales.Days, TotalSold: sales.TotalSold}
	}
	response.OK(c, resp)
}

// Create 创建图书
// @Summary      创建图书
// @Description  可同时创建扩展信息和版本，全部在一个事务中
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} response.ErrorBody "参数错误或ID重复"
// @Failure      401 {object} response.ErrorBody
// @Failure      403 {object} response.ErrorBody
// @Router       /api/v1/books [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	details, err := h.books.Create(c.Request.Context(), req.ToCreate())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"message": "Book created successfully", "book": dto.NewBookDetails(details)})
}

// Update 更新图书
// @Summary      更新图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                true "图书ID"
// @Param        request body dto.UpdateBookRequest true "更新字段"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} response.ErrorBody
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	var req dto.UpdateBookRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	details, err := h.books.Update(c.Request.Context(), c.Param("id"), req.ToUpdate())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Book updated successfully", "book": dto.NewBookDetails(details)})
}

// Delete 删除图书，存在版本、获奖、评分或借阅记录时拒绝
// @Summary      删除图书
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "图书ID"
// @Success      200 {object} map[string]string
// @Failure      400 {object} response.ErrorBody "存在依赖"
// @Failure      404 {object} response.ErrorBody
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	if err := h.books.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Book deleted successfully")
}
