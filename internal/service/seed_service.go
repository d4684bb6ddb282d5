package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/indievia/indievia-backend/internal/logger"
	"github.com/indievia/indievia-backend/internal/models"
	"github.com/indievia/indievia-backend/internal/repository"
)

// AdminSeedRepository описывает операции, нужные для заведения администратора.
type AdminSeedRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	CreateAdmin(ctx context.Context, user *models.User) error
}

// SeedService заводит служебные учётные записи при старте.
// Через публичную регистрацию администратора создать нельзя.
type SeedService struct {
	users AdminSeedRepository
	log   *logrus.Entry
}

// NewSeedService создаёт сервис начального наполнения.
func NewSeedService(users AdminSeedRepository) *SeedService {
	return &SeedService{users: users, log: logger.WithComponent("seed")}
}

// EnsureAdmin создаёт администратора с указанным email, если его ещё нет.
// Возвращает true, если запись была создана.
func (s *SeedService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false, nil
	}

	existing, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role != models.RoleAdmin {
			return false, fmt.Errorf("seed service: %s уже зарегистрирован с ролью %s", email, existing.Role)
		}
		return false, nil
	case !errors.Is(err, repository.ErrUserNotFound):
		return false, fmt.Errorf("seed service: lookup admin %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("seed service: hash password %w", err)
	}

	admin := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := s.users.CreateAdmin(ctx, admin); err != nil {
		// Параллельный запуск второй реплики мог успеть первым.
		if errors.Is(err, repository.ErrEmailTaken) {
			return false, nil
		}
		return false, fmt.Errorf("seed service: create admin %w", err)
	}

	s.log.WithField("user_id", admin.ID).Info("создан администратор")
	return true, nil
}
