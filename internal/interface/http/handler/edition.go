package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookstore-api/internal/application/book"
	"github.com/xiebiao/bookstore-api/internal/domain/book"
	"github.com/xiebiao/bookstore-api/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-api/pkg/response"
)

// EditionService 版本用例
type EditionService interface {
	List(ctx context.Context, f book.EditionFilter) ([]*book.Edition, int64, error)
	Get(ctx context.Context, isbn string) (*book.Edition, *book.Book, error)
	Create(ctx context.Context, in appbook.EditionInput) (*book.Edition, error)
	Update(ctx context.Context, isbn string, req appbook.EditionUpdate) (*book.Edition, error)
	Delete(ctx context.Context, isbn string) error
}

// EditionHandler 版本HTTP处理器
type EditionHandler struct {
	editions EditionService
}

// NewEditionHandler 创建版本处理器
func NewEditionHandler(editions *appbook.EditionService) *EditionHandler {
	return &EditionHandler{editions: editions}
}

// List 版本列表
// @Summary      版本列表
// @Tags         版本
// @Produce      json
// @Param        book_id      query string false "图书ID"
// @Param        publisher_id query string false "出版社ID"
// @Param        format       query string false "装帧(子串)"
// @Param        min_price    query number false "最低价格"
// @Param        max_price    query number false "最高价格"
// @Param        page         query int    false "页码"
// @Param        per_page     query int    false "每页数量(5-100)"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/editions [get]
func (h *EditionHandler) List(c *gin.Context) {
	f := book.EditionFilter{
		BookID: textParam(c, "book_id"),
		PubID:  textParam(c, "publisher_id"),
		Format: textParam(c, "format"),
		Page:   pageParams(c),
	}
	f.MinPrice = floatParam(c, "min_price")
	f.MaxPrice = floatParam(c, "max_price")

	list, count, err := h.editions.List(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, "editions", dto.NewEditions(list), count, f.Page.Number, f.Page.PerPage)
}

// Get 版本详情及所属图书
// @Summary      版本详情
// @Tags         版本
// @Produce      json
// @Param        isbn path string true "ISBN"
// @Success      200 {object} dto.EditionWithBookResponse
// @Failure      404 {object} response.ErrorBody
// @Router       /api/v1/editions/{isbn} [get]
func (h *EditionHandler) Get(c *gin.Context) {
	e, b, err := h.editions.Get(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		response.Error(c, err)
		return
	}
	resp := dto.EditionWithBookResponse{Edition: dto.NewEdition(e)}
	if b != nil {
		bk := dto.NewBook(b)
		resp.Book = &bk
	}
	response.OK(c, resp)
}

// Create 创建版本
// @Summary      创建版本
// @Tags         版本
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.EditionRequest true "版本信息"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} response.ErrorBody
// @Router       /api/v1/editions [post]
func (h *EditionHandler) Create(c *gin.Context) {
	var req dto.EditionRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	e, err := h.editions.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"message": "Edition created successfully", "edition": dto.NewEdition(e)})
}

// Update 更新版本
// @Summary      更新版本
// @Tags         版本
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        isbn    path string                   true "ISBN"
// @Param        request body dto.UpdateEditionRequest true "更新字段"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/editions/{isbn} [put]
func (h *EditionHandler) Update(c *gin.Context) {
	var req dto.UpdateEditionRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	e, err := h.editions.Update(c.Request.Context(), c.Param("isbn"), req.ToUpdate())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Edition updated successfully", "edition": dto.NewEdition(e)})
}

// Delete 删除版本，被订单引用时拒绝
// @Summary      删除版本
// @Tags         版本
// @Security     BearerAuth
// @Param        isbn path string true "ISBN"
// @Success      200 {object} map[string]string
// @Router       /api/v1/editions/{isbn} [delete]
func (h *EditionHandler) Delete(c *gin.Context) {
	if err := h.editions.Delete(c.Request.Context(), c.Param("isbn")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Edition deleted successfully")
}
