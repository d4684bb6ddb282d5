package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/indievia/indievia-backend/internal/models"
	"github.com/indievia/indievia-backend/internal/repository"
)

type mockAdminSeedRepo struct {
	mock.Mock
}

func (m *mockAdminSeedRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAdminSeedRepo) CreateAdmin(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func TestSeedService_EnsureAdmin_Creates(t *testing.T) {
	repo := new(mockAdminSeedRepo)
	svc := NewSeedService(repo)
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "root@indievia.com").Return(nil, repository.ErrUserNotFound)
	repo.On("CreateAdmin", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.Role == models.RoleAdmin &&
			u.Email == "root@indievia.com" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("Sup3rSecret")) == nil
	})).Return(nil)

	created, err := svc.EnsureAdmin(ctx, " Root@IndieVia.com ", "Sup3rSecret")
	require.NoError(t, err)
	assert.True(t, created)
	repo.AssertExpectations(t)
}

func TestSeedService_EnsureAdmin_AlreadyExists(t *testing.T) {
	repo := new(mockAdminSeedRepo)
	svc := NewSeedService(repo)
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "root@indievia.com").Return(&models.User{Role: models.RoleAdmin}, nil)

	created, err := svc.EnsureAdmin(ctx, "root@indievia.com", "Sup3rSecret")
	require.NoError(t, err)
	assert.False(t, created)
	repo.AssertNotCalled(t, "CreateAdmin", mock.Anything, mock.Anything)
}

func TestSeedService_EnsureAdmin_EmailOwnedByClient(t *testing.T) {
	repo := new(mockAdminSeedRepo)
	svc := NewSeedService(repo)
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "anna@example.com").Return(&models.User{Role: models.RoleClient}, nil)

	_, err := svc.EnsureAdmin(ctx, "anna@example.com", "Sup3rSecret")
	assert.Error(t, err)
}

func TestSeedService_EnsureAdmin_Disabled(t *testing.T) {
	repo := new(mockAdminSeedRepo)
	svc := NewSeedService(repo)

	created, err := svc.EnsureAdmin(context.Background(), "", "")
	require.NoError(t, err)
	assert.False(t, created)
	repo.AssertExpectations(t)
}
