package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/indievia/indievia-backend/internal/logger"
	"github.com/indievia/indievia-backend/internal/models"
	"github.com/indievia/indievia-backend/internal/pkg/apperror"
	"github.com/indievia/indievia-backend/pkg/pagination"
)

// AdminUsers операции над учётными записями для админки.
type AdminUsers interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, role string, limit, offset int) ([]models.User, int, error)
	SetBanned(ctx context.Context, id uuid.UUID, banned bool) error
}

// StatsReader сводные счётчики платформы.
type StatsReader interface {
	Stats(ctx context.Context) (*models.AdminStats, error)
}

// AdminService управление пользователями и статистика.
type AdminService struct {
	users    AdminUsers
	stats    StatsReader
	profiles ProfileInvalidator
	log      *logrus.Entry
}

// NewAdminService создаёт сервис админки. profiles сбрасывает публичный кэш
// мастера, которого заблокировали или разблокировали.
func NewAdminService(users AdminUsers, stats StatsReader, profiles ProfileInvalidator) *AdminService {
	return &AdminService{users: users, stats: stats, profiles: profiles, log: logger.WithComponent("admin")}
}

// ListUsers возвращает пользователей, опционально по роли.
func (s *AdminService) ListUsers(ctx context.Context, role string, params pagination.Params) (*pagination.Page[models.User], error) {
	if role != "" && role != models.RoleClient && role != models.RoleProfessional && role != models.RoleAdmin {
		return nil, apperror.New(apperror.ErrCodeValidation, "неизвестная роль")
	}
	items, total, err := s.users.List(ctx, role, params.Limit(), params.Offset())
	if err != nil {
		return nil, err
	}
	page := pagination.NewPage(items, params, total)
	return &page, nil
}

// SetBan блокирует или разблокирует пользователя. Администраторов блокировать нельзя.
func (s *AdminService) SetBan(ctx context.Context, adminID, userID uuid.UUID, banned bool) (*models.User, error) {
	if adminID == userID {
		return nil, apperror.New(apperror.ErrCodeBadRequest, "нельзя заблокировать самого себя")
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, translate(err)
	}
	if user.Role == models.RoleAdmin {
		return nil, apperror.ErrForbidden
	}
	if err := s.users.SetBanned(ctx, userID, banned); err != nil {
		return nil, translate(err)
	}
	user.IsBanned = banned
	if user.Role == models.RoleProfessional {
		s.profiles.InvalidateProfile(ctx, userID)
	}

	s.log.WithFields(logrus.Fields{"admin_id": adminID, "user_id": userID, "banned": banned}).Info("user ban updated")
	return user, nil
}

// Stats возвращает счётчики для дашборда.
func (s *AdminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	return s.stats.Stats(ctx)
}
