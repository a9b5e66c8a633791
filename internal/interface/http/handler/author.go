package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	appauthor "github.com/xiebiao/bookstore-api/internal/application/author"
	"github.com/xiebiao/bookstore-api/internal/domain/author"
	"github.com/xiebiao/bookstore-api/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-api/pkg/response"
)

// AuthorService 作者用例
type AuthorService interface {
	List(ctx context.Context, f author.Filter) ([]*author.Author, int64, error)
	Search(ctx context.Context, f author.SearchFilter) ([]*author.WithBookCount, int64, error)
	Prolific(ctx context.Context, limit *int) ([]*author.WithBookCount, error)
	Get(ctx context.Context, id string) (*appauthor.Details, error)
	Create(ctx context.Context, req appauthor.CreateRequest) (*author.Author, error)
	Update(ctx context.Context, id string, req appauthor.UpdateRequest) (*author.Author, error)
	Delete(ctx context.Context, id string) error
}

// AuthorHandler 作者HTTP处理器
type AuthorHandler struct {
	authors AuthorService
}

// NewAuthorHandler 创建作者处理器
func NewAuthorHandler(authors *appauthor.Service) *AuthorHandler {
	return &AuthorHandler{authors: authors}
}

// List 作者列表
// @Summary      作者列表
// @Tags         作者
// @Produce      json
// @Param        name              query string false "名或姓(子串)"
// @Param        first_name        query string false "名(子串)"
// @Param        last_name         query string false "姓(子串)"
// @Param        country           query string false "居住国家(子串)"
// @Param        min_writing_hours query int    false "每天最少写作小时"
// @Param        page              query int    false "页码"
// @Param        per_page          query int    false "每页数量(5-100)"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/authors [get]
func (h *AuthorHandler) List(c *gin.Context) {
	f := author.Filter{
		Name:            textParam(c, "name"),
		FirstName:       textParam(c, "first_name"),
		LastName:        textParam(c, "last_name"),
		Country:         textParam(c, "country"),
		MinWritingHours: intParam(c, "min_writing_hours"),
		Page:            pageParams(c),
	}
	list, count, err := h.authors.List(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, "authors", dto.NewAuthors(list), count, f.Page.Number, f.Page.PerPage)
}

// Search 作者搜索，q/country/min_books至少一个
// @Summary      搜索作者
// @Tags         作者
// @Produce      json
// @Param        q         query string false "名或姓(子串)"
// @Param        country   query string false "居住国家(子串)"
// @Param        min_books query int    false "最少作品数"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} response.ErrorBody "缺少搜索条件"
// @Router       /api/v1/authors/search [get]
func (h *AuthorHandler) Search(c *gin.Context) {
	f := author.SearchFilter{
		Q:        textParam(c, "q"),
		Country:  textParam(c, "country"),
		MinBooks: intParam(c, "min_books"),
		Page:     pageParams(c),
	}
	list, count, err := h.authors.Search(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, "authors", dto.NewAuthorsWithCount(list), count, f.Page.Number, f.Page.PerPage)
}

// Prolific 按作品数排序的作者
// @Summary      多产作者
// @Tags         作者
// @Produce      json
// @Param        limit query int false "数量" default(10)
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/authors/prolific [get]
func (h *AuthorHandler) Prolific(c *gin.Context) {
	list, err := h.authors.Prolific(c.Request.Context(), intParam(c, "limit"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, "authors", dto.NewAuthorsWithCount(list), len(list))
}

// Get 作者详情及作品
// @Summary      作者详情
// @Tags         作者
// @Produce      json
// @Param        id path string true "作者ID"
// @Success      200 {object} dto.AuthorDetailsResponse
// @Failure      404 {object} response.ErrorBody
// @Router       /api/v1/authors/{id} [get]
func (h *AuthorHandler) Get(c *gin.Context) {
	d, err := h.authors.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewAuthorDetails(d))
}

// Create 创建作者
// @Summary      创建作者
// @Tags         作者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateAuthorRequest true "作者信息"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} response.ErrorBody
// @Failure      422 {object} response.ErrorBody "日期格式错误"
// @Router       /api/v1/authors [post]
func (h *AuthorHandler) Create(c *gin.Context) {
	var req dto.CreateAuthorRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	a, err := h.authors.Create(c.Request.Context(), req.ToCreate())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"message": "Author created successfully", "author": dto.NewAuthor(a)})
}

// Update 更新作者
// @Summary      更新作者
// @Tags         作者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                  true "作者ID"
// @Param        request body dto.UpdateAuthorRequest true "更新字段"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/authors/{id} [put]
func (h *AuthorHandler) Update(c *gin.Context) {
	var req dto.UpdateAuthorRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	a, err := h.authors.Update(c.Request.Context(), c.Param("id"), req.ToUpdate())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Author updated successfully", "author": dto.NewAuthor(a)})
}

// Delete 删除作者，有作品时拒绝
// @Summary      删除作者
// @Tags         作者
// @Security     BearerAuth
// @Param        id path string true "作者ID"
// @Success      200 {object} map[string]string
// @Failure      400 {object} response.ErrorBody "存在作品"
// @Router       /api/v1/authors/{id} [delete]
func (h *AuthorHandler) Delete(c *gin.Context) {
	if err := h.authors.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Author deleted successfully")
}
