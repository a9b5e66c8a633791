package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	apppublisher "github.com/xiebiao/bookstore-api/internal/application/publisher"
	"github.com/xiebiao/bookstore-api/internal/domain/publisher"
	"github.com/xiebiao/bookstore-api/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-api/pkg/response"
)

// PublisherService 出版社用例
type PublisherService interface {
	List(ctx context.Context, f publisher.Filter) ([]*publisher.Publisher, int64, error)
	Get(ctx context.Context, id string) (*publisher.Publisher, error)
	Create(ctx context.Context, p *publisher.Publisher) (*publisher.Publisher, error)
	Update(ctx context.Context, id string, req apppublisher.UpdateRequest) (*publisher.Publisher, error)
	Delete(ctx context.Context, id string) error
}

// PublisherHandler 出版社HTTP处理器
type PublisherHandler struct {
	publishers PublisherService
}

// NewPublisherHandler 创建出版社处理器
func NewPublisherHandler(publishers *apppublisher.Service) *PublisherHandler {
	return &PublisherHandler{publishers: publishers}
}

// List 出版社列表
// @Summary      出版社列表
// @Tags         出版社
// @Produce      json
// @Param        name     query string false "出版社名(子串)"
// @Param        country  query string false "国家(子串)"
// @Param        page     query int    false "页码"
// @Param        per_page query int    false "每页数量(5-100)"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/publishers [get]
func (h *PublisherHandler) List(c *gin.Context) {
	f := publisher.Filter{Name: textParam(c, "name"), Country: textParam(c, "country"), Page: pageParams(c)}
	list, count, err := h.publishers.List(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, "publishers", dto.NewPublishers(list), count, f.Page.Number, f.Page.PerPage)
}

// Get 出版社详情
// @Summary      出版社详情
// @Tags         出版社
// @Produce      json
// @Param        id path string true "出版社ID"
// @Success      200 {object} dto.PublisherResponse
// @Failure      404 {object} response.ErrorBody
// @Router       /api/v1/publishers/{id} [get]
func (h *PublisherHandler) Get(c *gin.Context) {
	p, err := h.publishers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"publisher": dto.NewPublisher(p)})
}

// Create 创建出版社
// @Summary      创建出版社
// @Tags         出版社
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PublisherRequest true "出版社信息"
// @Success      201 {object} map[string]interface{}
// @Router       /api/v1/publishers [post]
func (h *PublisherHandler) Create(c *gin.Context) {
	var req dto.PublisherRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	p, err := h.publishers.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"message": "Publisher created successfully", "publisher": dto.NewPublisher(p)})
}

// Update 更新出版社
func (h *PublisherHandler) Update(c *gin.Context) {
	var req dto.UpdatePublisherRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	p, err := h.publishers.Update(c.Request.Context(), c.Param("id"), apppublisher.UpdateRequest{
		PublishingHouse: req.PublishingHouse,
		City:            req.City,
		State:           req.State,
		Country:         req.Country,
		YearEstablished: req.YearEstablished,
		MarketingSpend:  req.MarketingSpend,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Publisher updated successfully", "publisher": dto.NewPublisher(p)})
}

// Delete 删除出版社，有版本时拒绝
func (h *PublisherHandler) Delete(c *gin.Context) {
	if err := h.publishers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Publisher deleted successfully")
}
