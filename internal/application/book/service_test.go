package book

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-api/internal/domain/author"
	"github.com/xiebiao/bookstore-api/internal/domain/book"
	"github.com/xiebiao/bookstore-api/internal/domain/publisher"
	"github.com/xiebiao/bookstore-api/internal/domain/series"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

type mockBooks struct {
	book.Repository
	mock.Mock
}

func (m *mockBooks) Create(ctx context.Context, b *book.Book) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockBooks) FindByID(ctx context.Context, id string) (*book.Book, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*book.Book), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBooks) Update(ctx context.Context, b *book.Book) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockBooks) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBooks) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockBooks) FindDetails(ctx context.Context, id string) (*book.Details, error) {
	args := m.Called(ctx, id)
	if d := args.Get(0); d != nil {
		return d.(*book.Details), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBooks) Bestsellers(ctx context.Context, since time.Time, limit int) ([]*book.Bestseller, error) {
	args := m.Called(ctx, since, limit)
	return args.Get(0).([]*book.Bestseller), args.Error(1)
}

func (m *mockBooks) UnitsSold(ctx context.Context, id string, since time.Time) (int64, error) {
	args := m.Called(ctx, id, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBooks) CountDependents(ctx context.Context, id string) (book.Dependents, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(book.Dependents), args.Error(1)
}

func (m *mockBooks) SaveInfo(ctx context.Context, info *book.Info) error {
	return m.Called(ctx, info).Error(0)
}

type mockEditions struct {
	book.EditionRepository
	mock.Mock
}

func (m *mockEditions) Create(ctx context.Context, e *book.Edition) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockEditions) FindByISBN(ctx context.Context, isbn string) (*book.Edition, error) {
	args := m.Called(ctx, isbn)
	if e := args.Get(0); e != nil {
		return e.(*book.Edition), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEditions) Delete(ctx context.Context, isbn string) error {
	return m.Called(ctx, isbn).Error(0)
}

func (m *mockEditions) CountOrderLines(ctx context.Context, isbn string) (int64, error) {
	args := m.Called(ctx, isbn)
	return args.Get(0).(int64), args.Error(1)
}

// existing 只实现Exists的仓储桩
type existingAuthors struct {
	author.Repository
	ids map[string]bool
}

func (r existingAuthors) Exists(_ context.Context, id string) (bool, error) { return r.ids[id], nil }

type existingPublishers struct {
	publisher.Repository
	ids map[string]bool
}

func (r existingPublishers) Exists(_ context.Context, id string) (bool, error) { return r.ids[id], nil }

type existingSeries struct {
	series.Repository
	ids map[string]bool
}

func (r existingSeries) Exists(_ context.Context, id string) (bool, error) { return r.ids[id], nil }

type fakeTx struct{ rolledBack bool }

func (f *fakeTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		f.rolledBack = true
		return err
	}
	return nil
}

func newTestService(books *mockBooks, editions *mockEditions, tx *fakeTx) *Service {
	return NewService(
		books,
		editions,
		existingAuthors{ids: map[string]bool{"A1": true}},
		existingPublishers{ids: map[string]bool{"P1": true}},
		existingSeries{ids: map[string]bool{"S1": true}},
		tx,
	)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	price := 19.99

	t.Run("图书、扩展信息、版本同一事务写入", func(t *testing.T) {
		books, editions, tx := new(mockBooks), new(mockEditions), &fakeTx{}
		books.On("Exists", ctx, "B1").Return(false, nil)
		books.On("Create", ctx, &book.Book{BookID: "B1", Title: "War and Peace", AuthID: "A1"}).Return(nil)
		books.On("SaveInfo", ctx, mock.MatchedBy(func(i *book.Info) bool {
			return i.BookID == "B1" && i.SeriesID != nil && *i.SeriesID == "S1"
		})).Return(nil)
		editions.On("Create", ctx, mock.MatchedBy(func(e *book.Edition) bool {
			return e.ISBN == "978-1" && e.BookID == "B1" && e.PublicationDate.Year() == 1869
		})).Return(nil)
		books.On("FindDetails", ctx, "B1").Return(&book.Details{Book: &book.Book{BookID: "B1"}}, nil)

		d, err := newTestService(books, editions, tx).Create(ctx, CreateRequest{
			BookID: "B1",
			Title:  "War and Peace",
			AuthID: "A1",
			Info:   &InfoInput{Genre: "Novel", SeriesID: "S1"},
			Editions: []EditionInput{
				{ISBN: "978-1", PubID: "P1", PublicationDate: "1869-01-01", Price: &price},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "B1", d.Book.BookID)
		books.AssertExpectations(t)
		editions.AssertExpectations(t)
	})

	t.Run("出版社不存在时整体回滚", func(t *testing.T) {
		books, editions, tx := new(mockBooks), new(mockEditions), &fakeTx{}
		books.On("Exists", ctx, "B2").Return(false, nil)
		books.On("Create", ctx, mock.Anything).Return(nil)

		_, err := newTestService(books, editions, tx).Create(ctx, CreateRequest{
			BookID:   "B2",
			Title:    "Anna Karenina",
			Editions: []EditionInput{{ISBN: "978-2", PubID: "P9"}},
		})
		require.Error(t, err)
		assert.Equal(t, "PubID 'P9' does not exist", apperrors.GetAppError(err).Message)
		assert.True(t, tx.rolledBack)
		editions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("缺少必填字段", func(t *testing.T) {
		books := new(mockBooks)
		_, err := newTestService(books, new(mockEditions), &fakeTx{}).Create(ctx, CreateRequest{})
		assert.Equal(t, "BookID and Title are required", apperrors.GetAppError(err).Message)
		books.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
	})

	t.Run("负价格", func(t *testing.T) {
		neg := -1.0
		_, err := newTestService(new(mockBooks), new(mockEditions), &fakeTx{}).Create(ctx, CreateRequest{
			BookID: "B3", Title: "T", Editions: []EditionInput{{ISBN: "x", Price: &neg}},
		})
		assert.ErrorIs(t, err, book.ErrNegativePrice)
	})

	t.Run("BookID重复", func(t *testing.T) {
		books := new(mockBooks)
		books.On("Exists", ctx, "B1").Return(true, nil)
		_, err := newTestService(books, new(mockEditions), &fakeTx{}).Create(ctx, CreateRequest{BookID: "B1", Title: "T"})
		assert.ErrorIs(t, err, book.ErrBookDuplicate)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("有依赖时冲突", func(t *testing.T) {
		books := new(mockBooks)
		books.On("Exists", ctx, "B1").Return(true, nil)
		books.On("CountDependents", ctx, "B1").Return(book.Dependents{Editions: 2, Ratings: 1}, nil)

		err := newTestService(books, new(mockEditions), &fakeTx{}).Delete(ctx, "B1")
		require.Error(t, err)
		assert.Equal(t, "Cannot delete book with associated editions and ratings", apperrors.GetAppError(err).Message)
		books.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("无依赖时删除", func(t *testing.T) {
		books := new(mockBooks)
		books.On("Exists", ctx, "B2").Return(true, nil)
		books.On("CountDependents", ctx, "B2").Return(book.Dependents{}, nil)
		books.On("Delete", ctx, "B2").Return(nil)

		require.NoError(t, newTestService(books, new(mockEditions), &fakeTx{}).Delete(ctx, "B2"))
		books.AssertExpectations(t)
	})

	t.Run("不存在", func(t *testing.T) {
		books := new(mockBooks)
		books.On("Exists", ctx, "B9").Return(false, nil)
		err := newTestService(books, new(mockEditions), &fakeTx{}).Delete(ctx, "B9")
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})
}

func TestSearch_TermTooShort(t *testing.T) {
	books := new(mockBooks)
	_, _, err := newTestService(books, new(mockEditions), &fakeTx{}).Search(context.Background(), book.SearchFilter{Q: " W "})
	assert.ErrorIs(t, err, book.ErrSearchTermTooShort)
}

func TestSalesWindow(t *testing.T) {
	ctx := context.Background()
	books := new(mockBooks)
	svc := newTestService(books, new(mockEditions), &fakeTx{})
	svc.now = func() time.Time { return time.Date(2024, 3, 31, 18, 0, 0, 0, time.UTC) }

	since := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	books.On("Bestsellers", ctx, since, 10).Return([]*book.Bestseller{}, nil)
	books.On("FindDetails", ctx, "B1").Return(&book.Details{Book: &book.Book{BookID: "B1"}}, nil)
	books.On("UnitsSold", ctx, "B1", since).Return(int64(42), nil)

	_, err := svc.Bestsellers(ctx, nil, nil)
	require.NoError(t, err)

	_, sales, err := svc.Get(ctx, "B1", true, nil)
	require.NoError(t, err)
	assert.Equal(t, &book.SalesData{Days: 30, TotalSold: 42}, sales)

	_, sales, err = svc.Get(ctx, "B1", false, nil)
	require.NoError(t, err)
	assert.Nil(t, sales)
}

func TestEditionService_Delete(t *testing.T) {
	ctx := context.Background()
	editions := new(mockEditions)
	editions.On("FindByISBN", ctx, "978-1").Return(&book.Edition{ISBN: "978-1"}, nil)
	editions.On("CountOrderLines", ctx, "978-1").Return(int64(3), nil)

	svc := NewEditionService(editions, new(mockBooks), existingPublishers{})
	err := svc.Delete(ctx, "978-1")
	assert.ErrorIs(t, err, book.ErrEditionHasOrders)
	editions.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestEditionService_Create(t *testing.T) {
	ctx := context.Background()
	editions, books := new(mockEditions), new(mockBooks)
	editions.On("FindByISBN", ctx, "978-1").Return(nil, book.ErrEditionNotFound)
	books.On("Exists", ctx, "B1").Return(true, nil)

	svc := NewEditionService(editions, books, existingPublishers{ids: map[string]bool{}})
	_, err := svc.Create(ctx, EditionInput{ISBN: "978-1", BookID: "B1", PubID: "P404"})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUnknownReference))
	editions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
