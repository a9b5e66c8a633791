package series

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-api/internal/domain/series"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

type mockRepo struct {
	series.Repository
	mock.Mock
}

func (m *mockRepo) FindByID(ctx context.Context, id string) (*series.Series, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*series.Series), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) Create(ctx context.Context, s *series.Series) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockRepo) Update(ctx context.Context, s *series.Series) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockRepo) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) CountBooks(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	_, err := NewService(new(mockRepo)).Create(ctx, &series.Series{})
	assert.Equal(t, "SeriesID and SeriesName are required", apperrors.GetAppError(err).Message)

	repo := new(mockRepo)
	repo.On("Exists", ctx, "S1").Return(false, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*series.Series")).Return(nil)

	s, err := NewService(repo).Create(ctx, &series.Series{SeriesID: " S1", SeriesName: "Dune"})
	require.NoError(t, err)
	assert.Equal(t, "S1", s.SeriesID)

	dup := new(mockRepo)
	dup.On("Exists", ctx, "S1").Return(true, nil)
	_, err = NewService(dup).Create(ctx, &series.Series{SeriesID: "S1", SeriesName: "Dune"})
	assert.ErrorIs(t, err, series.ErrSeriesDuplicate)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	planned := 6

	repo := new(mockRepo)
	repo.On("FindByID", ctx, "S1").Return(&series.Series{SeriesID: "S1", SeriesName: "Dune"}, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*series.Series")).Return(nil)

	s, err := NewService(repo).Update(ctx, "S1", UpdateRequest{PlannedVolumes: &planned})
	require.NoError(t, err)
	assert.Equal(t, "Dune", s.SeriesName)
	assert.Equal(t, 6, *s.PlannedVolumes)

	blank := ""
	_, err = NewService(repo).Update(ctx, "S1", UpdateRequest{SeriesName: &blank})
	assert.Equal(t, apperrors.ErrCodeMissingFields, apperrors.GetAppError(err).Code)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	repo := new(mockRepo)
	repo.On("FindByID", ctx, "S1").Return(&series.Series{SeriesID: "S1"}, nil)
	repo.On("CountBooks", ctx, "S1").Return(int64(3), nil)

	err := NewService(repo).Delete(ctx, "S1")
	assert.ErrorIs(t, err, series.ErrHasBooks)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	missing := new(mockRepo)
	missing.On("FindByID", ctx, "S9").Return(nil, series.ErrSeriesNotFound)
	err = NewService(missing).Delete(ctx, "S9")
	assert.Equal(t, 404, apperrors.GetAppError(err).HTTPStatus())
}
