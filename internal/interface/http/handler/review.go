package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	appaward "github.com/xiebiao/bookstore-api/internal/application/award"
	appcheckout "github.com/xiebiao/bookstore-api/internal/application/checkout"
	apprating "github.com/xiebiao/bookstore-api/internal/application/rating"
	"github.com/xiebiao/bookstore-api/internal/domain/award"
	"github.com/xiebiao/bookstore-api/internal/domain/checkout"
	"github.com/xiebiao/bookstore-api/internal/domain/rating"
	"github.com/xiebiao/bookstore-api/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-api/pkg/response"
)

// 获奖、评分、借阅三类图书附属数据

// =========================================
// 获奖
// =========================================

// AwardService 获奖用例
type AwardService interface {
	List(ctx context.Context, f award.Filter) ([]*award.Award, int64, error)
	Get(ctx context.Context, id uint) (*award.Award, error)
	Create(ctx context.Context, a *award.Award) (*award.Award, error)
	Update(ctx context.Context, id uint, req appaward.UpdateRequest) (*award.Award, error)
	Delete(ctx context.Context, id uint) error
}

// AwardHandler 获奖HTTP处理器
type AwardHandler struct {
	awards AwardService
}

// NewAwardHandler 创建获奖处理器
func NewAwardHandler(awards *appaward.Service) *AwardHandler {
	return &AwardHandler{awards: awards}
}

// List 获奖列表
// @Summary      获奖列表
// @Tags         获奖
// @Produce      json
// @Param        book_id query string false "图书ID"
// @Param        name    query string false "奖项名(子串)"
// @Param        year    query int    false "获奖年份"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/awards [get]
func (h *AwardHandler) List(c *gin.Context) {
	f := award.Filter{
		BookID: textParam(c, "book_id"),
		Name:   textParam(c, "name"),
		Year:   intParam(c, "year"),
		Page:   pageParams(c),
	}
	list, count, err := h.awards.List(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, "awards", dto.NewAwards(list), count, f.Page.Number, f.Page.PerPage)
}

// Get 获奖详情
func (h *AwardHandler) Get(c *gin.Context) {
	id, err := idParam(c, award.ErrAwardNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}
	a, err := h.awards.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"award": dto.NewAward(a)})
}

// Create 创建获奖记录
func (h *AwardHandler) Create(c *gin.Context) {
	var req dto.AwardRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	a, err := h.awards.Create(c.Request.Context(), &award.Award{BookID: req.BookID, AwardName: req.AwardName, YearWon: req.YearWon})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"message": "Award created successfully", "award": dto.NewAward(a)})
}

// Update 更新获奖记录
func (h *AwardHandler) Update(c *gin.Context) {
	id, err := idParam(c, award.ErrAwardNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateAwardRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	a, err := h.awards.Update(c.Request.Context(), id, appaward.UpdateRequest{
		BookID:    req.BookID,
		AwardName: req.AwardName,
		YearWon:   req.YearWon,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Award updated successfully", "award": dto.NewAward(a)})
}

// Delete 删除获奖记录
func (h *AwardHandler) Delete(c *gin.Context) {
	id, err := idParam(c, award.ErrAwardNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.awards.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Award deleted successfully")
}

// =========================================
// 评分
// =========================================

// RatingService 评分用例
type RatingService interface {
	List(ctx context.Context, f rating.Filter) ([]*rating.Rating, int64, error)
	Get(ctx context.Context, id uint) (*rating.Rating, error)
	Summary(ctx context.Context, bookID string) (*rating.Summary, error)
	Create(ctx context.Context, r *rating.Rating) (*rating.Rating, error)
	Update(ctx context.Context, id uint, req apprating.UpdateRequest) (*rating.Rating, error)
	Delete(ctx context.Context, id uint) error
}

// RatingHandler 评分HTTP处理器
type RatingHandler struct {
	ratings RatingService
}

// NewRatingHandler 创建评分处理器
func NewRatingHandler(ratings *apprating.Service) *RatingHandler {
	return &RatingHandler{ratings: ratings}
}

// List 评分列表
// @Summary      评分列表
// @Tags         评分
// @Produce      json
// @Param        book_id     query string false "图书ID"
// @Param        reviewer_id query int    false "评分人"
// @Param        min_rating  query int    false "最低分"
// @Param        max_rating  query int    false "最高分"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/ratings [get]
func (h *RatingHandler) List(c *gin.Context) {
	f := rating.Filter{
		BookID:     textParam(c, "book_id"),
		ReviewerID: intParam(c, "reviewer_id"),
		MinRating:  intParam(c, "min_rating"),
		MaxRating:  intParam(c, "max_rating"),
		Page:       pageParams(c),
	}
	list, count, err := h.ratings.List(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, "ratings", dto.NewRatings(list), count, f.Page.Number, f.Page.PerPage)
}

// Get 评分详情
func (h *RatingHandler) Get(c *gin.Context) {
	id, err := idParam(c, rating.ErrRatingNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}
	r, err := h.ratings.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"rating": dto.NewRating(r)})
}

// Summary 某本书的评分数与平均分
// @Summary      评分汇总
// @Tags         评分
// @Produce      json
// @Param        book_id path string true "图书ID"
// @Success      200 {object} dto.RatingSummaryResponse
// @Failure      400 {object} response.ErrorBody "图书不存在"
// @Router       /api/v1/ratings/summary/{book_id} [get]
func (h *RatingHandler) Summary(c *gin.Context) {
	s, err := h.ratings.Summary(c.Request.Context(), c.Param("book_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.RatingSummaryResponse{BookID: s.BookID, Count: s.Count, Average: s.Average})
}

// Create 登录用户即可评分
func (h *RatingHandler) Create(c *gin.Context) {
	var req dto.RatingRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	r, err := h.ratings.Create(c.Request.Context(), &rating.Rating{BookID: req.BookID, Rating: req.Rating, ReviewerID: req.ReviewerID})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"message": "Rating created successfully", "rating": dto.NewRating(r)})
}

// Update 更新评分
func (h *RatingHandler) Update(c *gin.Context) {
	id, err := idParam(c, rating.ErrRatingNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateRatingRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	r, err := h.ratings.Update(c.Request.Context(), id, apprating.UpdateRequest{Rating: req.Rating, ReviewerID: req.ReviewerID})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Rating updated successfully", "rating": dto.NewRating(r)})
}

// Delete 删除评分
func (h *RatingHandler) Delete(c *gin.Context) {
	id, err := idParam(c, rating.ErrRatingNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.ratings.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Rating deleted successfully")
}

// =========================================
// 借阅
// =========================================

// CheckoutService 借阅统计用例
type CheckoutService interface {
	List(ctx context.Context, f checkout.Filter) ([]*checkout.Checkout, int64, error)
	Get(ctx context.Context, bookID string, month int) (*checkout.Checkout, error)
	Create(ctx context.Context, c *checkout.Checkout) (*checkout.Checkout, error)
	Update(ctx context.Context, bookID string, month, count int) (*checkout.Checkout, error)
	Delete(ctx context.Context, bookID string, month int) error
}

// CheckoutHandler 借阅统计HTTP处理器，路径为 /checkouts/:book_id/:month
type CheckoutHandler struct {
	checkouts CheckoutService
}

// NewCheckoutHandler 创建借阅处理器
func NewCheckoutHandler(checkouts *appcheckout.Service) *CheckoutHandler {
	return &CheckoutHandler{checkouts: checkouts}
}

// List 借阅统计列表
// @Summary      借阅统计
// @Tags         借阅
// @Produce      json
// @Param        book_id       query string false "图书ID"
// @Param        month         query int    false "月份(1-12)"
// @Param        min_checkouts query int    false "最少借阅次数"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/checkouts [get]
func (h *CheckoutHandler) List(c *gin.Context) {
	f := checkout.Filter{
		BookID:       textParam(c, "book_id"),
		Month:        intParam(c, "month"),
		MinCheckouts: intParam(c, "min_checkouts"),
		Page:         pageParams(c),
	}
	list, count, err := h.checkouts.List(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, "checkouts", dto.NewCheckouts(list), count, f.Page.Number, f.Page.PerPage)
}

// Get 某本书某月的借阅次数
func (h *CheckoutHandler) Get(c *gin.Context) {
	month, err := monthParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	co, err := h.checkouts.Get(c.Request.Context(), c.Param("book_id"), month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"checkout": dto.NewCheckout(co)})
}

// Create 创建借阅统计
func (h *CheckoutHandler) Create(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	co, err := h.checkouts.Create(c.Request.Context(), &checkout.Checkout{
		BookID:            req.BookID,
		CheckoutMonth:     req.CheckoutMonth,
		NumberOfCheckouts: req.NumberOfCheckouts,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"message": "Checkout created successfully", "checkout": dto.NewCheckout(co)})
}

// Update 修改借阅次数
func (h *CheckoutHandler) Update(c *gin.Context) {
	month, err := monthParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateCheckoutRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	co, err := h.checkouts.Update(c.Request.Context(), c.Param("book_id"), month, req.NumberOfCheckouts)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Checkout updated successfully", "checkout": dto.NewCheckout(co)})
}

// Delete 删除借阅统计
func (h *CheckoutHandler) Delete(c *gin.Context) {
	month, err := monthParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.checkouts.Delete(c.Request.Context(), c.Param("book_id"), month); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Checkout deleted successfully")
}

func monthParam(c *gin.Context) (int, error) {
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		return 0, checkout.ErrCheckoutNotFound
	}
	return month, nil
}
