package dto

import (
	"time"

	appauthor "github.com/xiebiao/bookstore-api/internal/application/author"
	"github.com/xiebiao/bookstore-api/internal/domain/author"
	"github.com/xiebiao/bookstore-api/internal/domain/award"
	"github.com/xiebiao/bookstore-api/internal/domain/checkout"
	"github.com/xiebiao/bookstore-api/internal/domain/publisher"
	"github.com/xiebiao/bookstore-api/internal/domain/query"
	"github.com/xiebiao/bookstore-api/internal/domain/rating"
	"github.com/xiebiao/bookstore-api/internal/domain/series"
)

// FormatDate nil保持nil，否则输出YYYY-MM-DD
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(query.DateLayout)
	return &s
}

// =========================================
// 作者
// =========================================

// CreateAuthorRequest 创建作者
type CreateAuthorRequest struct {
	AuthID             string `json:"AuthID" binding:"max=10" example:"A01"`
	FirstName          string `json:"FirstName" binding:"max=50" example:"Frank"`
	LastName           string `json:"LastName" binding:"max=50" example:"Herbert"`
	Birthday           string `json:"Birthday" binding:"omitempty,isodate" example:"1920-10-08"`
	CountryOfResidence string `json:"CountryOfResidence" binding:"max=50" example:"USA"`
	HrsWritingPerDay   *int   `json:"HrsWritingPerDay" binding:"omitempty,gte=0,lte=24"`
}

// ToCreate 转换为应用层请求
func (r CreateAuthorRequest) ToCreate() appauthor.CreateRequest {
	return appauthor.CreateRequest{
		AuthID:             r.AuthID,
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		Birthday:           r.Birthday,
		CountryOfResidence: r.CountryOfResidence,
		HrsWritingPerDay:   r.HrsWritingPerDay,
	}
}

// UpdateAuthorRequest 作者部分更新
type UpdateAuthorRequest struct {
	FirstName          *string `json:"FirstName" binding:"omitempty,max=50"`
	LastName           *string `json:"LastName" binding:"omitempty,max=50"`
	Birthday           *string `json:"Birthday" binding:"omitempty,isodate"`
	CountryOfResidence *string `json:"CountryOfResidence" binding:"omitempty,max=50"`
	HrsWritingPerDay   *int    `json:"HrsWritingPerDay" binding:"omitempty,gte=0,lte=24"`
}

// ToUpdate 转换为应用层请求
func (r UpdateAuthorRequest) ToUpdate() appauthor.UpdateRequest {
	return appauthor.UpdateRequest{
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		Birthday:           r.Birthday,
		CountryOfResidence: r.CountryOfResidence,
		HrsWritingPerDay:   r.HrsWritingPerDay,
	}
}

// AuthorResponse 作者
type AuthorResponse struct {
	AuthID             string  `json:"AuthID"`
	FirstName          string  `json:"FirstName"`
	LastName           string  `json:"LastName"`
	Birthday           *string `json:"Birthday"`
	CountryOfResidence string  `json:"CountryOfResidence"`
	HrsWritingPerDay   *int    `json:"HrsWritingPerDay"`
}

// AuthorWithCountResponse 搜索和多产作者排行项
type AuthorWithCountResponse struct {
	AuthorResponse
	BookCount int64 `json:"BookCount"`
}

// AuthorDetailsResponse GET /authors/:id
type AuthorDetailsResponse struct {
	Author    AuthorResponse `json:"author"`
	BookCount int64          `json:"book_count"`
	Books     []BookResponse `json:"books"`
}

// NewAuthor 作者
func NewAuthor(a *author.Author) AuthorResponse {
	return AuthorResponse{
		AuthID:             a.AuthID,
		FirstName:          a.FirstName,
		LastName:           a.LastName,
		Birthday:           FormatDate(a.Birthday),
		CountryOfResidence: a.CountryOfResidence,
		HrsWritingPerDay:   a.HrsWritingPerDay,
	}
}

// NewAuthors 作者列表
func NewAuthors(list []*author.Author) []AuthorResponse {
	out := make([]AuthorResponse, 0, len(list))
	for _, a := range list {
		out = append(out, NewAuthor(a))
	}
	return out
}

// NewAuthorsWithCount 带图书数量的作者列表
func NewAuthorsWithCount(list []*author.WithBookCount) []AuthorWithCountResponse {
	out := make([]AuthorWithCountResponse, 0, len(list))
	for _, a := range list {
		out = append(out, AuthorWithCountResponse{AuthorResponse: NewAuthor(a.Author), BookCount: a.BookCount})
	}
	return out
}

// NewAuthorDetails 作者详情
func NewAuthorDetails(d *appauthor.Details) AuthorDetailsResponse {
	return AuthorDetailsResponse{
		Author:    NewAuthor(d.Author),
		BookCount: d.BookCount,
		Books:     NewBooks(d.Books),
	}
}

// =========================================
// 出版社
// =========================================

// PublisherRequest 创建出版社
type PublisherRequest struct {
	PubID           string `json:"PubID" binding:"max=10" example:"P01"`
	PublishingHouse string `json:"PublishingHouse" binding:"max=100" example:"Chilton Books"`
	City            string `json:"City" binding:"max=50"`
	State           string `json:"State" binding:"max=50"`
	Country         string `json:"Country" binding:"max=50"`
	YearEstablished *int   `json:"YearEstablished" binding:"omitempty,gte=0"`
	MarketingSpend  *int   `json:"MarketingSpend" binding:"omitempty,gte=0"`
}

// ToEntity 转换为实体
func (r PublisherRequest) ToEntity() *publisher.Publisher {
	return &publisher.Publisher{
		PubID:           r.PubID,
		PublishingHouse: r.PublishingHouse,
		City:            r.City,
		State:           r.State,
		Country:         r.Country,
		YearEstablished: r.YearEstablished,
		MarketingSpend:  r.MarketingSpend,
	}
}

// UpdatePublisherRequest 出版社部分更新
type UpdatePublisherRequest struct {
	PublishingHouse *string `json:"PublishingHouse" binding:"omitempty,max=100"`
	City            *string `json:"City" binding:"omitempty,max=50"`
	State           *string `json:"State" binding:"omitempty,max=50"`
	Country         *string `json:"Country" binding:"omitempty,max=50"`
	YearEstablished *int    `json:"YearEstablished" binding:"omitempty,gte=0"`
	MarketingSpend  *int    `json:"MarketingSpend" binding:"omitempty,gte=0"`
}

// PublisherResponse 出版社
type PublisherResponse struct {
	PubID           string `json:"PubID"`
	PublishingHouse string `json:"PublishingHouse"`
	City            string `json:"City"`
	State           string `json:"State"`
	Country         string `json:"Country"`
	YearEstablished *int   `json:"YearEstablished"`
	MarketingSpend  *int   `json:"MarketingSpend"`
}

// NewPublisher 出版社
func NewPublisher(p *publisher.Publisher) PublisherResponse {
	return PublisherResponse(*p)
}

// NewPublishers 出版社列表
func NewPublishers(list []*publisher.Publisher) []PublisherResponse {
	out := make([]PublisherResponse, 0, len(list))
	for _, p := range list {
		out = append(out, NewPublisher(p))
	}
	return out
}

// =========================================
// 丛书
// =========================================

// SeriesRequest 创建丛书
type SeriesRequest struct {
	SeriesID       string `json:"SeriesID" binding:"max=10" example:"S01"`
	SeriesName     string `json:"SeriesName" binding:"max=100" example:"Dune Chronicles"`
	PlannedVolumes *int   `json:"PlannedVolumes" binding:"omitempty,gte=0"`
	BookTourEvents *int   `json:"BookTourEvents" binding:"omitempty,gte=0"`
}

// UpdateSeriesRequest 丛书部分更新
type UpdateSeriesRequest struct {
	SeriesName     *string `json:"SeriesName" binding:"omitempty,max=100"`
	PlannedVolumes *int    `json:"PlannedVolumes" binding:"omitempty,gte=0"`
	BookTourEvents *int    `json:"BookTourEvents" binding:"omitempty,gte=0"`
}

// SeriesResponse 丛书
type SeriesResponse struct {
	SeriesID       string `json:"SeriesID"`
	SeriesName     string `json:"SeriesName"`
	PlannedVolumes *int   `json:"PlannedVolumes"`
	BookTourEvents *int   `json:"BookTourEvents"`
}

// NewSeries 丛书
func NewSeries(s *series.Series) SeriesResponse {
	return SeriesResponse(*s)
}

// NewSeriesList 丛书列表
func NewSeriesList(list []*series.Series) []SeriesResponse {
	out := make([]SeriesResponse, 0, len(list))
	for _, s := range list {
		out = append(out, NewSeries(s))
	}
	return out
}

// =========================================
// 获奖 / 评分 / 借阅
// =========================================

// AwardRequest 创建获奖记录，AwardID由数据库分配
type AwardRequest struct {
	BookID    string `json:"BookID" binding:"max=10" example:"B001"`
	AwardName string `json:"AwardName" binding:"max=100" example:"Hugo Award"`
	YearWon   *int   `json:"YearWon" binding:"omitempty,gte=0" example:"1966"`
}

// UpdateAwardRequest 获奖记录部分更新
type UpdateAwardRequest struct {
	BookID    *string `json:"BookID" binding:"omitempty,max=10"`
	AwardName *string `json:"AwardName" binding:"omitempty,max=100"`
	YearWon   *int    `json:"YearWon" binding:"omitempty,gte=0"`
}

// AwardResponse 获奖记录
type AwardResponse struct {
	AwardID   uint   `json:"AwardID"`
	BookID    string `json:"BookID"`
	AwardName string `json:"AwardName"`
	YearWon   *int   `json:"YearWon"`
}

// NewAward 获奖记录
func NewAward(a *award.Award) AwardResponse {
	return AwardResponse(*a)
}

// NewAwards 获奖列表
func NewAwards(list []*award.Award) []AwardResponse {
	out := make([]AwardResponse, 0, len(list))
	for _, a := range list {
		out = append(out, NewAward(a))
	}
	return out
}

// RatingRequest 评分，范围在应用层校验以返回统一的错误信息
type RatingRequest struct {
	BookID     string `json:"BookID" binding:"max=10" example:"B001"`
	Rating     int    `json:"Rating" example:"5"`
	ReviewerID *int   `json:"ReviewerID"`
}

// UpdateRatingRequest 评分部分更新
type UpdateRatingRequest struct {
	Rating     *int `json:"Rating"`
	ReviewerID *int `json:"ReviewerID"`
}

// RatingResponse 评分
type RatingResponse struct {
	ReviewID   uint   `json:"ReviewID"`
	BookID     string `json:"BookID"`
	Rating     int    `json:"Rating"`
	ReviewerID *int   `json:"ReviewerID"`
}

// RatingSummaryResponse 某本书的评分汇总
type RatingSummaryResponse struct {
	BookID  string  `json:"book_id"`
	Count   int64   `json:"count"`
	Average float64 `json:"average"`
}

// NewRating 评分
func NewRating(r *rating.Rating) RatingResponse {
	return RatingResponse(*r)
}

// NewRatings 评分列表
func NewRatings(list []*rating.Rating) []RatingResponse {
	out := make([]RatingResponse, 0, len(list))
	for _, r := range list {
		out = append(out, NewRating(r))
	}
	return out
}

// CheckoutRequest 创建借阅统计
type CheckoutRequest struct {
	BookID            string `json:"BookID" binding:"max=10" example:"B001"`
	CheckoutMonth     int    `json:"CheckoutMonth" example:"3"`
	NumberOfCheckouts int    `json:"NumberOfCheckouts" example:"12"`
}

// UpdateCheckoutRequest 只能修改借阅次数
type UpdateCheckoutRequest struct {
	NumberOfCheckouts int `json:"NumberOfCheckouts" example:"20"`
}

// CheckoutResponse 借阅统计
type CheckoutResponse struct {
	BookID            string `json:"BookID"`
	CheckoutMonth     int    `json:"CheckoutMonth"`
	NumberOfCheckouts int    `json:"NumberOfCheckouts"`
}

// NewCheckout 借阅统计
func NewCheckout(c *checkout.Checkout) CheckoutResponse {
	return CheckoutResponse(*c)
}

// NewCheckouts 借阅统计列表
func NewCheckouts(list []*checkout.Checkout) []CheckoutResponse {
	out := make([]CheckoutResponse, 0, len(list))
	for _, c := range list {
		out = append(out, NewCheckout(c))
	}
	return out
}
