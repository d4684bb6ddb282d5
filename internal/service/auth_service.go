package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/indievia/indievia-backend/internal/logger"
	"github.com/indievia/indievia-backend/internal/models"
	"github.com/indievia/indievia-backend/internal/pkg/apperror"
	"github.com/indievia/indievia-backend/internal/repository"
	"github.com/indievia/indievia-backend/internal/validation"
)

// AuthRepository описывает зависимости AuthService от слоя хранилища.
type AuthRepository interface {
	CreateClient(ctx context.Context, user *models.User, profile *models.ClientProfile) error
	CreateProfessional(ctx context.Context, user *models.User, profile *models.ProfessionalProfile, referrerID *uuid.UUID) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
	CreateSession(ctx context.Context, session *models.Session) error
	GetSessionByToken(ctx context.Context, refreshToken string) (*models.Session, error)
	ListSessions(ctx context.Context, userID uuid.UUID) ([]models.Session, error)
	DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) error
	DeleteSessionByToken(ctx context.Context, refreshToken string) error
}

// ReferralDirectory нужен для зачисления реферала пригласившему мастеру.
type ReferralDirectory interface {
	GetByReferralCode(ctx context.Context, code string) (*models.ProfessionalProfile, error)
	SetBadgeTier(ctx context.Context, userID uuid.UUID, tier string) error
}

// ProfileReader читает профили для ответа GET /auth/session.
type ProfileReader interface {
	ProfessionalProfile(ctx context.Context, userID uuid.UUID) (*models.ProfessionalProfile, error)
	ClientProfile(ctx context.Context, userID uuid.UUID) (*models.ClientProfile, error)
}

// AuthService инкапсулирует бизнес-логику регистрации и аутентификации.
type AuthService struct {
	repo         AuthRepository
	referrals    ReferralDirectory
	profiles     ProfileReader
	tokenManager *TokenManager
	log          *logrus.Entry
}

// RegisterInput содержит данные пользователя при регистрации.
type RegisterInput struct {
	Email        string
	Password     string
	Role         string
	FullName     string
	City         *string
	Phone        *string
	ReferralCode string
}

// LoginInput содержит данные для входа.
type LoginInput struct {
	Email    string
	Password string
}

// SessionMeta описывает клиента, открывающего сессию.
type SessionMeta struct {
	UserAgent string
	IP        string
}

// AuthResult возвращает итог регистрации или авторизации.
type AuthResult struct {
	User       *models.User `json:"user"`
	TokenPair  *TokenPair   `json:"tokens"`
	RedirectTo string       `json:"redirect_to"`
}

// SessionInfo ответ на проверку текущей сессии.
type SessionInfo struct {
	User       *models.User `json:"user"`
	Profile    interface{}  `json:"profile,omitempty"`
	RedirectTo string       `json:"redirect_to"`
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(repo AuthRepository, referrals ReferralDirectory, profiles ProfileReader, tokenManager *TokenManager) *AuthService {
	return &AuthService{
		repo:         repo,
		referrals:    referrals,
		profiles:     profiles,
		tokenManager: tokenManager,
		log:          logger.WithComponent("auth"),
	}
}

// Register создаёт клиента или мастера вместе с профилем и открывает сессию.
func (s *AuthService) Register(ctx context.Context, in RegisterInput, meta SessionMeta) (*AuthResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)

	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, apperror.Validation(err)
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, apperror.Validation(err)
	}
	if err := validation.ValidateFullName(in.FullName); err != nil {
		return nil, apperror.Validation(err)
	}
	if _, ok := models.ValidSignUpRoles[in.Role]; !ok {
		return nil, apperror.New(apperror.ErrCodeValidation, "роль должна быть client или professional")
	}
	if err := validation.ValidateOptional("city", in.City, validation.MaxCityLength); err != nil {
		return nil, apperror.Validation(err)
	}
	if in.Phone != nil && *in.Phone != "" {
		if err := validation.ValidatePhone(*in.Phone); err != nil {
			return nil, apperror.Validation(err)
		}
	} else {
		in.Phone = nil
	}

	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperror.ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth service: не удалось захешировать пароль: %w", err)
	}

	user := &models.User{
		Email:        in.Email,
		PasswordHash: string(passHash),
		Role:         in.Role,
		Phone:        in.Phone,
	}

	switch in.Role {
	case models.RoleProfessional:
		if err := s.registerProfessional(ctx, user, in); err != nil {
			return nil, err
		}
	default:
		profile := &models.ClientProfile{FullName: in.FullName, City: in.City}
		if err := s.repo.CreateClient(ctx, user, profile); err != nil {
			return nil, translate(err)
		}
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("user registered")
	return s.openSession(ctx, user, meta)
}

func (s *AuthService) registerProfessional(ctx context.Context, user *models.User, in RegisterInput) error {
	var referrer *models.ProfessionalProfile
	if code := strings.TrimSpace(in.ReferralCode); code != "" {
		p, err := s.referrals.GetByReferralCode(ctx, code)
		if errors.Is(err, repository.ErrProfessionalNotFound) {
			return apperror.New(apperror.ErrCodeValidation, "реферальный код не найден")
		}
		if err != nil {
			return err
		}
		referrer = p
	}

	code, err := NewReferralCode()
	if err != nil {
		return fmt.Errorf("auth service: referral code: %w", err)
	}

	profile := &models.ProfessionalProfile{FullName: in.FullName, City: in.City, ReferralCode: code}
	var referrerID *uuid.UUID
	if referrer != nil {
		referrerID = &referrer.UserID
	}
	if err := s.repo.CreateProfessional(ctx, user, profile, referrerID); err != nil {
		return translate(err)
	}

	if referrer != nil {
		tier := BadgeTierFor(referrer.ReferralCount + 1)
		if err := s.referrals.SetBadgeTier(ctx, referrer.UserID, tier); err != nil {
			s.log.WithError(err).WithField("referrer_id", referrer.UserID).Warn("failed to update badge tier")
		}
	}
	return nil
}

// Login проверяет учётные данные и возвращает токены.
func (s *AuthService) Login(ctx context.Context, in LoginInput, meta SessionMeta) (*AuthResult, error) {
	if err := validation.ValidateEmail(strings.ToLower(strings.TrimSpace(in.Email))); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, apperror.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}
	if !user.CanSignIn() {
		return nil, apperror.ErrAccountBlocked
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.log.WithError(err).WithField("user_id", user.ID).Warn("не удалось обновить last_login_at")
	}

	return s.openSession(ctx, user, meta)
}

// Refresh выпускает новую пару токенов, удаляя использованную сессию.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string, meta SessionMeta) (*AuthResult, error) {
	claims, err := s.tokenManager.ParseRefresh(refreshToken)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	session, err := s.repo.GetSessionByToken(ctx, refreshToken)
	if err != nil {
		return nil, translate(err)
	}
	if session.UserID != userID {
		return nil, apperror.ErrUnauthorized
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, translate(err)
	}
	if !user.CanSignIn() {
		return nil, apperror.ErrAccountBlocked
	}

	if err := s.repo.DeleteSessionByToken(ctx, refreshToken); err != nil {
		return nil, err
	}
	return s.openSession(ctx, user, meta)
}

// Logout завершает сессию.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.repo.DeleteSessionByToken(ctx, refreshToken)
}

// Session возвращает пользователя, его профиль и путь для редиректа SPA.
func (s *AuthService) Session(ctx context.Context, userID uuid.UUID) (*SessionInfo, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, translate(err)
	}
	if !user.CanSignIn() {
		return nil, apperror.ErrAccountBlocked
	}

	info := &SessionInfo{User: user, RedirectTo: models.HomePath(user.Role)}
	switch user.Role {
	case models.RoleProfessional:
		if p, err := s.profiles.ProfessionalProfile(ctx, userID); err == nil {
			info.Profile = p
		}
	case models.RoleClient:
		if p, err := s.profiles.ClientProfile(ctx, userID); err == nil {
			info.Profile = p
		}
	}
	return info, nil
}

// ListSessions возвращает список активных сессий пользователя.
func (s *AuthService) ListSessions(ctx context.Context, userID uuid.UUID) ([]models.Session, error) {
	return s.repo.ListSessions(ctx, userID)
}

// DeleteSession удаляет сессию по идентификатору.
func (s *AuthService) DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) error {
	if err := s.repo.DeleteSession(ctx, userID, sessionID); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return apperror.New(apperror.ErrCodeNotFound, "сессия не найдена")
		}
		return err
	}
	return nil
}

func (s *AuthService) openSession(ctx context.Context, user *models.User, meta SessionMeta) (*AuthResult, error) {
	tokenPair, refreshExp, err := s.tokenManager.GeneratePair(user)
	if err != nil {
		return nil, fmt.Errorf("auth service: generate tokens: %w", err)
	}

	session := &models.Session{
		UserID:       user.ID,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    refreshExp,
	}
	if meta.UserAgent != "" {
		ua := meta.UserAgent
		session.UserAgent = &ua
	}
	if meta.IP != "" {
		ip := meta.IP
		session.IPAddress = &ip
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	return &AuthResult{User: user, TokenPair: tokenPair, RedirectTo: models.HomePath(user.Role)}, nil
}
