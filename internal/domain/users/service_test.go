package users

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of Repository for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateUser(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockRepository) GetUserByName(ctx context.Context, name string) (*User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name      string
		userName  string
		setupMock func(*MockRepository)
		wantErr   error
	}{
		{
			name:     "successfully creates user",
			userName: "test",
			setupMock: func(repo *MockRepository) {
				repo.On("CreateUser", mock.Anything, "test").Return(nil)
			},
		},
		{
			name:     "duplicate name is rejected",
			userName: "test",
			setupMock: func(repo *MockRepository) {
				repo.On("CreateUser", mock.Anything, "test").Return(ErrUserExists)
			},
			wantErr: ErrUserExists,
		},
		{
			name:      "blank name is rejected",
			userName:  "   ",
			setupMock: func(repo *MockRepository) {},
			wantErr:   ErrInvalidName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMock(repo)
			service := NewService(repo)

			err := service.Create(context.Background(), tt.userName)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Get(t *testing.T) {
	t.Run("returns the user", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetUserByName", mock.Anything, "test").Return(&User{Name: "test"}, nil)
		service := NewService(repo)

		user, err := service.Get(context.Background(), "test")
		assert.NoError(t, err)
		assert.Equal(t, "test", user.Name)
		repo.AssertExpectations(t)
	})

	t.Run("missing user surfaces as not found", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetUserByName", mock.Anything, "ghost").Return(nil, ErrUserNotFound)
		service := NewService(repo)

		_, err := service.Get(context.Background(), "ghost")
		assert.ErrorIs(t, err, ErrUserNotFound)
		repo.AssertExpectations(t)
	})

	t.Run("wraps storage failures", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetUserByName", mock.Anything, "test").Return(nil, errors.New("connection lost"))
		service := NewService(repo)

		_, err := service.Get(context.Background(), "test")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get user")
		repo.AssertExpectations(t)
	})
}
