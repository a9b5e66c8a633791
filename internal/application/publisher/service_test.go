package publisher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-api/internal/domain/publisher"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

type mockRepo struct {
	publisher.Repository
	mock.Mock
}

func (m *mockRepo) FindByID(ctx context.Context, id string) (*publisher.Publisher, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*publisher.Publisher), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) Create(ctx context.Context, p *publisher.Publisher) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockRepo) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) CountEditions(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("有版本时冲突", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("FindByID", ctx, "P1").Return(&publisher.Publisher{PubID: "P1"}, nil)
		repo.On("CountEditions", ctx, "P1").Return(int64(4), nil)

		err := NewService(repo).Delete(ctx, "P1")
		assert.ErrorIs(t, err, publisher.ErrHasEditions)
		assert.Equal(t, 400, apperrors.GetAppError(err).HTTPStatus())
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("没有版本时删除", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("FindByID", ctx, "P2").Return(&publisher.Publisher{PubID: "P2"}, nil)
		repo.On("CountEditions", ctx, "P2").Return(int64(0), nil)
		repo.On("Delete", ctx, "P2").Return(nil)

		require.NoError(t, NewService(repo).Delete(ctx, "P2"))
		repo.AssertExpectations(t)
	})
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	_, err := NewService(new(mockRepo)).Create(ctx, &publisher.Publisher{PubID: "P1"})
	assert.Equal(t, "PublishingHouse is required", apperrors.GetAppError(err).Message)

	repo := new(mockRepo)
	repo.On("Exists", ctx, "P1").Return(true, nil)
	_, err = NewService(repo).Create(ctx, &publisher.Publisher{PubID: " P1 ", PublishingHouse: "Penguin"})
	assert.ErrorIs(t, err, publisher.ErrPublisherDuplicate)
}
