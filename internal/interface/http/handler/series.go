package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	appseries "github.com/xiebiao/bookstore-api/internal/application/series"
	"github.com/xiebiao/bookstore-api/internal/domain/series"
	"github.com/xiebiao/bookstore-api/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-api/pkg/response"
)

// SeriesService 丛书用例
type SeriesService interface {
	List(ctx context.Context, f series.Filter) ([]*series.Series, int64, error)
	Create(ctx context.Context, s *series.Series) (*series.Series, error)
	Update(ctx context.Context, id string, req appseries.UpdateRequest) (*series.Series, error)
	Delete(ctx context.Context, id string) error
}

// SeriesHandler 丛书HTTP处理器
// 详情（含按卷号排序的图书）复用图书用例
type SeriesHandler struct {
	series SeriesService
	books  *BookHandler
}

// NewSeriesHandler 创建丛书处理器
func NewSeriesHandler(svc *appseries.Service, books *BookHandler) *SeriesHandler {
	return &SeriesHandler{series: svc, books: books}
}

// List 丛书列表
// @Summary      丛书列表
// @Tags         丛书
// @Produce      json
// @Param        name     query string false "丛书名(子串)"
// @Param        page     query int    false "页码"
// @Param        per_page query int    false "每页数量(5-100)"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/series [get]
func (h *SeriesHandler) List(c *gin.Context) {
	f := series.Filter{Name: textParam(c, "name"), Page: pageParams(c)}
	list, count, err := h.series.List(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, "series", dto.NewSeriesList(list), count, f.Page.Number, f.Page.PerPage)
}

// Get 丛书详情及图书
// @Summary      丛书详情
// @Tags         丛书
// @Produce      json
// @Param        id path string true "丛书ID"
// @Success      200 {object} dto.SeriesBooksResponse
// @Failure      404 {object} response.ErrorBody
// @Router       /api/v1/series/{id} [get]
func (h *SeriesHandler) Get(c *gin.Context) {
	h.books.seriesBooks(c, c.Param("id"))
}

// Create 创建丛书
func (h *SeriesHandler) Create(c *gin.Context) {
	var req dto.SeriesRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	s, err := h.series.Create(c.Request.Context(), &series.Series{
		SeriesID:       req.SeriesID,
		SeriesName:     req.SeriesName,
		PlannedVolumes: req.PlannedVolumes,
		BookTourEvents: req.BookTourEvents,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"message": "Series created successfully", "series": dto.NewSeries(s)})
}

// Update 更新丛书
func (h *SeriesHandler) Update(c *gin.Context) {
	var req dto.UpdateSeriesRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	s, err := h.series.Update(c.Request.Context(), c.Param("id"), appseries.UpdateRequest{
		SeriesName:     req.SeriesName,
		PlannedVolumes: req.PlannedVolumes,
		BookTourEvents: req.BookTourEvents,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Series updated successfully", "series": dto.NewSeries(s)})
}

// Delete 删除丛书，仍有图书引用时拒绝
func (h *SeriesHandler) Delete(c *gin.Context) {
	if err := h.series.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Series deleted successfully")
}
