package dto

import (
	appbook "github.com/xiebiao/bookstore-api/internal/application/book"
	"github.com/xiebiao/bookstore-api/internal/domain/book"
)

// 请求字段沿用数据库列名（PascalCase），与响应保持一致
// 必填校验在应用层完成，binding只限制长度和范围

// InfoRequest 图书扩展信息
type InfoRequest struct {
	Genre        string `json:"Genre" binding:"max=50" example:"Science Fiction"`
	SeriesID     string `json:"SeriesID" binding:"max=10" example:"S01"`
	VolumeNumber *int   `json:"VolumeNumber" binding:"omitempty,gte=1" example:"1"`
	StaffComment string `json:"StaffComment" binding:"max=1000"`
}

func (r *InfoRequest) toInput() *appbook.InfoInput {
	if r == nil {
		return nil
	}
	return &appbook.InfoInput{
		Genre:        r.Genre,
		SeriesID:     r.SeriesID,
		VolumeNumber: r.VolumeNumber,
		StaffComment: r.StaffComment,
	}
}

// EditionRequest 创建版本，POST /books 内嵌时BookID可省略
type EditionRequest struct {
	ISBN            string   `json:"ISBN" binding:"max=20" example:"9780441013593"`
	BookID          string   `json:"BookID" binding:"max=10" example:"B001"`
	Format          string   `json:"Format" binding:"max=20" example:"Hardcover"`
	PubID           string   `json:"PubID" binding:"max=10" example:"P01"`
	PublicationDate string   `json:"PublicationDate" binding:"omitempty,isodate" example:"1965-08-01"`
	Pages           *int     `json:"Pages" binding:"omitempty,gte=0"`
	PrintRunSizeK   *int     `json:"PrintRunSizeK" binding:"omitempty,gte=0"`
	Price           *float64 `json:"Price" example:"19.99"`
}

// ToInput 转换为应用层输入
func (r EditionRequest) ToInput() appbook.EditionInput {
	return appbook.EditionInput{
		ISBN:            r.ISBN,
		BookID:          r.BookID,
		Format:          r.Format,
		PubID:           r.PubID,
		PublicationDate: r.PublicationDate,
		Pages:           r.Pages,
		PrintRunSizeK:   r.PrintRunSizeK,
		Price:           r.Price,
	}
}

// UpdateEditionRequest 版本部分更新，ISBN取自路径
type UpdateEditionRequest struct {
	BookID          *string  `json:"BookID" binding:"omitempty,max=10"`
	Format          *string  `json:"Format" binding:"omitempty,max=20"`
	PubID           *string  `json:"PubID" binding:"omitempty,max=10"`
	PublicationDate *string  `json:"PublicationDate" binding:"omitempty,isodate"`
	Pages           *int     `json:"Pages" binding:"omitempty,gte=0"`
	PrintRunSizeK   *int     `json:"PrintRunSizeK" binding:"omitempty,gte=0"`
	Price           *float64 `json:"Price"`
}

// ToUpdate 转换为应用层输入
func (r UpdateEditionRequest) ToUpdate() appbook.EditionUpdate {
	return appbook.EditionUpdate{
		BookID:          r.BookID,
		Format:          r.Format,
		PubID:           r.PubID,
		PublicationDate: r.PublicationDate,
		Pages:           r.Pages,
		PrintRunSizeK:   r.PrintRunSizeK,
		Price:           r.Price,
	}
}

// CreateBookRequest 创建图书，info和editions在同一事务中写入
type CreateBookRequest struct {
	BookID   string           `json:"BookID" binding:"max=10" example:"B001"`
	Title    string           `json:"Title" binding:"max=255" example:"Dune"`
	AuthID   string           `json:"AuthID" binding:"max=10" example:"A01"`
	Info     *InfoRequest     `json:"info"`
	Editions []EditionRequest `json:"editions" binding:"dive"`
}

// ToCreate 转换为应用层请求
func (r CreateBookRequest) ToCreate() appbook.CreateRequest {
	editions := make([]appbook.EditionInput, 0, len(r.Editions))
	for _, e := range r.Editions {
		editions = append(editions, e.ToInput())
	}
	return appbook.CreateRequest{
		BookID:   r.BookID,
		Title:    r.Title,
		AuthID:   r.AuthID,
		Info:     r.Info.toInput(),
		Editions: editions,
	}
}

// UpdateBookRequest 更新图书，info存在时整体覆盖
type UpdateBookRequest struct {
	Title  *string      `json:"Title" binding:"omitempty,max=255"`
	AuthID *string      `json:"AuthID" binding:"omitempty,max=10"`
	Info   *InfoRequest `json:"info"`
}

// ToUpdate 转换为应用层请求
func (r UpdateBookRequest) ToUpdate() appbook.UpdateRequest {
	return appbook.UpdateRequest{Title: r.Title, AuthID: r.AuthID, Info: r.Info.toInput()}
}

// =========================================
// 响应
// =========================================

// InfoResponse 图书扩展信息
type InfoResponse struct {
	Genre        string  `json:"Genre"`
	SeriesID     *string `json:"SeriesID"`
	VolumeNumber *int    `json:"VolumeNumber"`
	StaffComment string  `json:"StaffComment"`
}

// EditionResponse 版本
type EditionResponse struct {
	ISBN            string   `json:"ISBN"`
	BookID          string   `json:"BookID"`
	Format          string   `json:"Format"`
	PubID           string   `json:"PubID"`
	PublicationDate *string  `json:"PublicationDate"`
	Pages           *int     `json:"Pages"`
	PrintRunSizeK   *int     `json:"PrintRunSizeK"`
	Price           *float64 `json:"Price"`
}

// BookResponse 图书基本信息
type BookResponse struct {
	BookID string `json:"BookID"`
	Title  string `json:"Title"`
	AuthID string `json:"AuthID"`
}

// BookDetailsResponse 扩展图书：作者、扩展信息、全部版本
type BookDetailsResponse struct {
	BookResponse
	Author   *AuthorResponse   `json:"Author"`
	Info     *InfoResponse     `json:"Info"`
	Editions []EditionResponse `json:"Editions"`
}

// BestsellerResponse 销量排行项
type BestsellerResponse struct {
	BookResponse
	AuthorName string `json:"AuthorName"`
	TotalSold  int64  `json:"TotalSold"`
}

// SalesDataResponse GET /books/:id?include_sales=true 附带的销量
type SalesDataResponse struct {
	Days      int   `json:"days"`
	TotalSold int64 `json:"total_sold"`
}

// BookWithSalesResponse 图书详情 + 可选销量
type BookWithSalesResponse struct {
	Book      BookDetailsResponse `json:"book"`
	SalesData *SalesDataResponse  `json:"sales_data,omitempty"`
}

// EditionWithBookResponse GET /editions/:isbn
type EditionWithBookResponse struct {
	Edition EditionResponse `json:"edition"`
	Book    *BookResponse   `json:"book"`
}

// SeriesBooksResponse GET /series/:id
type SeriesBooksResponse struct {
	Series SeriesResponse        `json:"series"`
	Count  int                   `json:"count"`
	Books  []BookDetailsResponse `json:"books"`
}

// NewBook 图书基本信息
func NewBook(b *book.Book) BookResponse {
	return BookResponse{BookID: b.BookID, Title: b.Title, AuthID: b.AuthID}
}

// NewBooks 图书基本信息列表
func NewBooks(books []*book.Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, NewBook(b))
	}
	return out
}

// NewEdition 版本
func NewEdition(e *book.Edition) EditionResponse {
	return EditionResponse{
		ISBN:            e.ISBN,
		BookID:          e.BookID,
		Format:          e.Format,
		PubID:           e.PubID,
		PublicationDate: FormatDate(e.PublicationDate),
		Pages:           e.Pages,
		PrintRunSizeK:   e.PrintRunSizeK,
		Price:           e.Price,
	}
}

// NewEditions 版本列表
func NewEditions(editions []*book.Edition) []EditionResponse {
	out := make([]EditionResponse, 0, len(editions))
	for _, e := range editions {
		out = append(out, NewEdition(e))
	}
	return out
}

// NewBookDetails 扩展图书
func NewBookDetails(d *book.Details) BookDetailsResponse {
	resp := BookDetailsResponse{
		BookResponse: NewBook(d.Book),
		Editions:     NewEditions(d.Editions),
	}
	if d.Author != nil {
		a := NewAuthor(d.Author)
		resp.Author = &a
	}
	if d.Info != nil {
		resp.Info = &InfoResponse{
			Genre:        d.Info.Genre,
			SeriesID:     d.Info.SeriesID,
			VolumeNumber: d.Info.VolumeNumber,
			StaffComment: d.Info.StaffComment,
		}
	}
	return resp
}

// NewBookDetailsList 扩展图书列表
func NewBookDetailsList(list []*book.Details) []BookDetailsResponse {
	out := make([]BookDetailsResponse, 0, len(list))
	for _, d := range list {
		out = append(out, NewBookDetails(d))
	}
	return out
}

// NewBestsellers 销量排行
func NewBestsellers(list []*book.Bestseller) []BestsellerResponse {
	out := make([]BestsellerResponse, 0, len(list))
	for _, b := range list {
		item := BestsellerResponse{BookResponse: NewBook(b.Book), TotalSold: b.TotalSold}
		if b.Author != nil {
			item.AuthorName = b.Author.FullName()
		}
		out = append(out, item)
	}
	return out
}
