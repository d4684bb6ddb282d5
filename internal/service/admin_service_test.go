package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/indievia/indievia-backend/internal/models"
	"github.com/indievia/indievia-backend/internal/pkg/apperror"
	"github.com/indievia/indievia-backend/internal/repository"
	"github.com/indievia/indievia-backend/pkg/pagination"
)

type stubStats struct {
	stats *models.AdminStats
}

func (s stubStats) Stats(context.Context) (*models.AdminStats, error) {
	return s.stats, nil
}

func TestAdminService_SetBan_Guards(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.New()

	t.Run("self", func(t *testing.T) {
		users := new(mockAdminUsers)
		profiles := &stubInvalidator{}
		svc := NewAdminService(users, stubStats{}, profiles)

		_, err := svc.SetBan(ctx, adminID, adminID, true)
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, apperror.ErrCodeBadRequest, appErr.Code)
		users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		users.AssertNotCalled(t, "SetBanned", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("another admin", func(t *testing.T) {
		users := new(mockAdminUsers)
		profiles := &stubInvalidator{}
		svc := NewAdminService(users, stubStats{}, profiles)
		target := uuid.New()

		users.On("GetByID", ctx, target).Return(&models.User{ID: target, Role: models.RoleAdmin}, nil)

		_, err := svc.SetBan(ctx, adminID, target, true)
		assert.ErrorIs(t, err, apperror.ErrForbidden)
		users.AssertNotCalled(t, "SetBanned", mock.Anything, mock.Anything, mock.Anything)
		assert.Empty(t, profiles.calls)
	})

	t.Run("unknown user", func(t *testing.T) {
		users := new(mockAdminUsers)
		svc := NewAdminService(users, stubStats{}, &stubInvalidator{})
		target := uuid.New()

		users.On("GetByID", ctx, target).Return(nil, repository.ErrUserNotFound)

		_, err := svc.SetBan(ctx, adminID, target, true)
		assert.ErrorIs(t, err, apperror.ErrUserNotFound)
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestAdminService_SetBan_Professional(t *testing.T) {
	ctx := context.Background()
	users := new(mockAdminUsers)
	profiles := &stubInvalidator{}
	svc := NewAdminService(users, stubStats{}, profiles)
	adminID, target := uuid.New(), uuid.New()

	users.On("GetByID", ctx, target).Return(&models.User{ID: target, Role: models.RoleProfessional}, nil)
	users.On("SetBanned", ctx, target, true).Return(nil).Once()
	users.On("SetBanned", ctx, target, false).Return(nil).Once()

	got, err := svc.SetBan(ctx, adminID, target, true)
	require.NoError(t, err)
	assert.True(t, got.IsBanned)

	got, err = svc.SetBan(ctx, adminID, target, false)
	require.NoError(t, err)
	assert.False(t, got.IsBanned)

	assert.Equal(t, []uuid.UUID{target, target}, profiles.calls)
	users.AssertExpectations(t)
}

func TestAdminService_SetBan_ClientSkipsProfileCache(t *testing.T) {
	ctx := context.Background()
	users := new(mockAdminUsers)
	profiles := &stubInvalidator{}
	svc := NewAdminService(users, stubStats{}, profiles)
	target := uuid.New()

	users.On("GetByID", ctx, target).Return(&models.User{ID: target, Role: models.RoleClient}, nil)
	users.On("SetBanned", ctx, target, true).Return(nil)

	got, err := svc.SetBan(ctx, uuid.New(), target, true)
	require.NoError(t, err)
	assert.True(t, got.IsBanned)
	assert.Empty(t, profiles.calls)
}

func TestAdminService_ListUsers(t *testing.T) {
	ctx := context.Background()
	users := new(mockAdminUsers)
	svc := NewAdminService(users, stubStats{}, &stubInvalidator{})

	_, err := svc.ListUsers(ctx, "superuser", pagination.New(1, 20))
	assert.True(t, apperror.IsValidation(err))
	users.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	users.On("List", ctx, models.RoleProfessional, 20, 20).
		Return([]models.User{{Role: models.RoleProfessional}}, 21, nil)

	page, err := svc.ListUsers(ctx, models.RoleProfessional, pagination.New(2, 20))
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 21, page.Count)
	assert.False(t, page.HasMore)
}
