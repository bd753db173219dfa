package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]*User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*User), args.Error(1)
}

func TestService_Register(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, mock.AnythingOfType("*user.User")).Return(nil)

		token, u, err := svc.Register(ctx, "a@b.com", "Alice", "s3cret-pass")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "a@b.com", u.Email)
		assert.True(t, CheckPasswordHash("s3cret-pass", u.PasswordHash))
		repo.AssertExpectations(t)
	})

	t.Run("EmailExists", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, mock.Anything).
			Return(errors.New(`duplicate key value violates unique constraint "users_email_key"`))

		_, _, err := svc.Register(ctx, "a@b.com", "Alice", "s3cret-pass")
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	ctx := context.Background()

	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", ctx, "a@b.com").
			Return(&User{ID: "u-1", Email: "a@b.com", PasswordHash: hash}, nil)

		token, u, err := svc.Login(ctx, "a@b.com", "s3cret-pass")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "u-1", u.ID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", ctx, "a@b.com").
			Return(&User{ID: "u-1", Email: "a@b.com", PasswordHash: hash}, nil)

		_, _, err := svc.Login(ctx, "a@b.com", "wrong")
		assert.Error(t, err)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", ctx, "x@b.com").Return(nil, errors.New("sql: no rows in result set"))

		_, _, err := svc.Login(ctx, "x@b.com", "s3cret-pass")
		assert.Error(t, err)
	})
}
