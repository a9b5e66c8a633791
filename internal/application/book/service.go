package book

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xiebiao/bookstore-api/internal/application"
	"github.com/xiebiao/bookstore-api/internal/domain/author"
	"github.com/xiebiao/bookstore-api/internal/domain/book"
	"github.com/xiebiao/bookstore-api/internal/domain/publisher"
	"github.com/xiebiao/bookstore-api/internal/domain/series"
)

const (
	defaultLimit = 10
	maxLimit     = 100
	defaultDays  = 30
	maxDays      = 3650
)

// Service 图书用例
// 设计说明：
// 1. 创建图书时Info和Editions与Book在同一事务中写入
// 2. 删除图书时先检查版本、获奖、评分、借阅，存在任何一种都拒绝删除
// 3. Info随图书一起删除（1:1扩展表，不算依赖）
type Service struct {
	books      book.Repository
	editions   book.EditionRepository
	authors    author.Repository
	publishers publisher.Repository
	series     series.Repository
	tx         application.Transactor
	now        func() time.Time
}

// NewService 创建图书服务
func NewService(
	books book.Repository,
	editions book.EditionRepository,
	authors author.Repository,
	publishers publisher.Repository,
	seriesRepo series.Repository,
	tx application.Transactor,
) *Service {
	return &Service{
		books:      books,
		editions:   editions,
		authors:    authors,
		publishers: publishers,
		series:     seriesRepo,
		tx:         tx,
		now:        time.Now,
	}
}

// InfoInput 图书扩展信息
type InfoInput struct {
	Genre        string
	SeriesID     string
	VolumeNumber *int
	StaffComment string
}

// CreateRequest 创建图书请求
type CreateRequest struct {
	BookID   string
	Title    string
	AuthID   string
	Info     *InfoInput
	Editions []EditionInput
}

// UpdateRequest 部分更新；Info非nil时整体覆盖（upsert）
type UpdateRequest struct {
	Title  *string
	AuthID *string
	Info   *InfoInput
}

// SeriesBooks 丛书及其按卷号排序的图书
type SeriesBooks struct {
	Series *series.Series
	Books  []*book.Details
}

// List 图书列表（含作者、扩展信息、版本）
func (s *Service) List(ctx context.Context, f book.Filter) ([]*book.Details, int64, error) {
	return s.books.List(ctx, f)
}

// Search 书名/作者名/类型任意一项匹配，q至少2个字符
func (s *Service) Search(ctx context.Context, f book.SearchFilter) ([]*book.Details, int64, error) {
	f.Q = strings.TrimSpace(f.Q)
	if utf8.RuneCountInString(f.Q) < 2 {
		return nil, 0, book.ErrSearchTermTooShort
	}
	return s.books.Search(ctx, f)
}

// Bestsellers 最近days天销量排行，limit缺省10，days缺省30
func (s *Service) Bestsellers(ctx context.Context, limit, days *int) ([]*book.Bestseller, error) {
	return s.books.Bestsellers(ctx, s.since(days), application.Limit(limit, defaultLimit, maxLimit))
}

// BySeries 丛书内的图书，丛书不存在时返回404
func (s *Service) BySeries(ctx context.Context, seriesID string) (*SeriesBooks, error) {
	sr, err := s.series.FindByID(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	books, err := s.books.ListBySeries(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	return &SeriesBooks{Series: sr, Books: books}, nil
}

// Get 图书详情，includeSales时附带最近days天的销量
func (s *Service) Get(ctx context.Context, id string, includeSales bool, days *int) (*book.Details, *book.SalesData, error) {
	d, err := s.books.FindDetails(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !includeSales {
		return d, nil, nil
	}

	n := application.Limit(days, defaultDays, maxDays)
	sold, err := s.books.UnitsSold(ctx, id, s.since(&n))
	if err != nil {
		return nil, nil, err
	}
	return d, &book.SalesData{Days: n, TotalSold: sold}, nil
}

// Create 创建图书，可同时创建Info和Editions
func (s *Service) Create(ctx context.Context, req CreateRequest) (*book.Details, error) {
	if err := application.Required(
		application.Field{Name: "BookID", Value: req.BookID},
		application.Field{Name: "Title", Value: req.Title},
	); err != nil {
		return nil, err
	}

	b := &book.Book{
		BookID: strings.TrimSpace(req.BookID),
		Title:  strings.TrimSpace(req.Title),
		AuthID: strings.TrimSpace(req.AuthID),
	}
	info := toInfo(b.BookID, req.Info)

	editions := make([]*book.Edition, 0, len(req.Editions))
	for _, in := range req.Editions {
		in.BookID = b.BookID
		e, err := in.toEdition()
		if err != nil {
			return nil, err
		}
		editions = append(editions, e)
	}

	err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		exists, err := s.books.Exists(txCtx, b.BookID)
		if err != nil {
			return err
		}
		if exists {
			return book.ErrBookDuplicate
		}
		if err := application.Reference(txCtx, s.authors, "AuthID", b.AuthID); err != nil {
			return err
		}
		if err := s.books.Create(txCtx, b); err != nil {
			return err
		}

		if info != nil {
			if err := s.saveInfo(txCtx, info); err != nil {
				return err
			}
		}

		for _, e := range editions {
			if err := application.Reference(txCtx, s.publishers, "PubID", e.PubID); err != nil {
				return err
			}
			if err := s.editions.Create(txCtx, e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.books.FindDetails(ctx, b.BookID)
}

// Update 更新图书
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*book.Details, error) {
	err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		b, err := s.books.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		if req.Title != nil {
			if strings.TrimSpace(*req.Title) == "" {
				return application.Required(application.Field{Name: "Title"})
			}
			b.Title = strings.TrimSpace(*req.Title)
		}
		if req.AuthID != nil {
			b.AuthID = strings.TrimSpace(*req.AuthID)
			if err := application.Reference(txCtx, s.authors, "AuthID", b.AuthID); err != nil {
				return err
			}
		}
		if err := s.books.Update(txCtx, b); err != nil {
			return err
		}
		if info := toInfo(id, req.Info); info != nil {
			return s.saveInfo(txCtx, info)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.books.FindDetails(ctx, id)
}

// Delete 存在版本、获奖、评分或借阅记录时拒绝删除
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.tx.Transaction(ctx, func(txCtx context.Context) error {
		exists, err := s.books.Exists(txCtx, id)
		if err != nil {
			return err
		}
		if !exists {
			return book.ErrBookNotFound
		}
		deps, err := s.books.CountDependents(txCtx, id)
		if err != nil {
			return err
		}
		if deps.Any() {
			return deps.Conflict()
		}
		return s.books.Delete(txCtx, id)
	})
}

func (s *Service) saveInfo(ctx context.Context, info *book.Info) error {
	if info.SeriesID != nil {
		if err := application.Reference(ctx, s.series, "SeriesID", *info.SeriesID); err != nil {
			return err
		}
	}
	return s.books.SaveInfo(ctx, info)
}

// since days天前的零点（UTC）
func (s *Service) since(days *int) time.Time {
	n := application.Limit(days, defaultDays, maxDays)
	y, m, d := s.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -n)
}

func toInfo(bookID string, in *InfoInput) *book.Info {
	if in == nil {
		return nil
	}
	info := &book.Info{
		BookID:       bookID,
		Genre:        in.Genre,
		VolumeNumber: in.VolumeNumber,
		StaffComment: in.StaffComment,
	}
	if id := strings.TrimSpace(in.SeriesID); id != "" {
		info.SeriesID = &id
	}
	return info
}
