package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/xiebiao/bookstore-api/internal/domain/query"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, u *User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockRepository) FindByID(ctx context.Context, id uint) (*User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	args := m.Called(ctx, username)
	if u := args.Get(0); u != nil {
		return u.(*User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, page query.Page) ([]*User, int64, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]*User), args.Get(1).(int64), args.Error(2)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("注册成功，角色为user", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("Create", ctx, mock.AnythingOfType("*user.User")).Return(nil)
		svc := NewServiceWithCost(repo, bcrypt.MinCost)

		u, err := svc.Register(ctx, "reader01", "reader@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, RoleUser, u.Role)
		assert.NotEqual(t, "password123", u.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")))
		repo.AssertExpectations(t)
	})

	t.Run("缺少字段", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewServiceWithCost(repo, bcrypt.MinCost)

		_, err := svc.Register(ctx, "", "", "password123")
		require.Error(t, err)
		assert.Equal(t, "Username and Email are required", apperrors.GetAppError(err).Message)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("弱密码", func(t *testing.T) {
		svc := NewServiceWithCost(new(mockRepository), bcrypt.MinCost)
		_, err := svc.Register(ctx, "reader01", "reader@example.com", "password")
		assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
	})

	t.Run("邮箱格式错误", func(t *testing.T) {
		svc := NewServiceWithCost(new(mockRepository), bcrypt.MinCost)
		_, err := svc.Register(ctx, "reader01", "not-an-email", "password123")
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidParams))
	})

	t.Run("用户名重复", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("Create", ctx, mock.Anything).Return(apperrors.ErrUsernameDuplicate)
		svc := NewServiceWithCost(repo, bcrypt.MinCost)

		_, err := svc.Register(ctx, "reader01", "reader@example.com", "password123")
		assert.ErrorIs(t, err, apperrors.ErrUsernameDuplicate)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	admin := &User{ID: 1, Username: "admin", PasswordHash: string(hash), Role: RoleAdmin}

	t.Run("密码正确", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("FindByUsername", ctx, "admin").Return(admin, nil)

		u, err := NewService(repo).Authenticate(ctx, "admin", "admin123")
		require.NoError(t, err)
		assert.True(t, u.IsAdmin())
	})

	t.Run("密码错误", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("FindByUsername", ctx, "admin").Return(admin, nil)

		_, err := NewService(repo).Authenticate(ctx, "admin", "wrong")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("用户不存在返回同样的错误", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("FindByUsername", ctx, "ghost").Return(nil, apperrors.ErrUserNotFound)

		_, err := NewService(repo).Authenticate(ctx, "ghost", "whatever1")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
	assert.False(t, (*User)(nil).IsAdmin())
	assert.Equal(t, RoleUser, ParseRole("superuser"))
}
