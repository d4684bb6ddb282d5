package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/indievia/indievia-backend/internal/logger"
	"github.com/indievia/indievia-backend/internal/models"
	"github.com/indievia/indievia-backend/internal/pkg/apperror"
	"github.com/indievia/indievia-backend/internal/validation"
)

// MaxVerificationAttempts после стольких ошибок код перестаёт приниматься.
const MaxVerificationAttempts = 5

// VerificationRepository хранилище кодов подтверждения.
type VerificationRepository interface {
	Create(ctx context.Context, code *models.VerificationCode) error
	GetActive(ctx context.Context, userID uuid.UUID, channel string) (*models.VerificationCode, error)
	IncrementAttempts(ctx context.Context, id uuid.UUID) error
	MarkUsed(ctx context.Context, id uuid.UUID) error
}

// VerificationUsers обновляет флаги подтверждения у пользователя.
type VerificationUsers interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ConfirmEmail(ctx context.Context, id uuid.UUID) error
	SetPhoneVerified(ctx context.Context, id uuid.UUID, phone string) error
}

// CodeSender доставляет код пользователю (почта, SMS).
type CodeSender interface {
	Send(ctx context.Context, channel, target, code string) error
}

// LogCodeSender пишет коды в лог. Используется, пока нет почтового и SMS шлюза.
type LogCodeSender struct {
	log *logrus.Entry
}

// NewLogCodeSender создаёт отправителя, пишущего в logrus.
func NewLogCodeSender() *LogCodeSender {
	return &LogCodeSender{log: logger.WithComponent("verification")}
}

func (s *LogCodeSender) Send(_ context.Context, channel, target, code string) error {
	s.log.WithFields(logrus.Fields{"channel": channel, "target": target, "code": code}).Info("verification code issued")
	return nil
}

// VerificationService выдаёт и проверяет коды подтверждения email и телефона.
type VerificationService struct {
	codes  VerificationRepository
	users  VerificationUsers
	sender CodeSender
	ttl    time.Duration
}

// NewVerificationService создаёт сервис.
func NewVerificationService(codes VerificationRepository, users VerificationUsers, sender CodeSender, ttl time.Duration) *VerificationService {
	return &VerificationService{codes: codes, users: users, sender: sender, ttl: ttl}
}

// RequestEmailConfirmation выпускает код подтверждения email.
func (s *VerificationService) RequestEmailConfirmation(ctx context.Context, userID uuid.UUID) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return translate(err)
	}
	if user.EmailConfirmed {
		return apperror.New(apperror.ErrCodeConflict, "email уже подтверждён")
	}
	return s.issue(ctx, userID, models.VerificationEmail, user.Email)
}

// ConfirmEmail проверяет код и подтверждает email.
func (s *VerificationService) ConfirmEmail(ctx context.Context, userID uuid.UUID, code string) error {
	vc, err := s.check(ctx, userID, models.VerificationEmail, code)
	if err != nil {
		return err
	}
	return s.users.ConfirmEmail(ctx, vc.UserID)
}

// RequestPhoneVerification выпускает SMS-код для номера в формате E.164.
func (s *VerificationService) RequestPhoneVerification(ctx context.Context, userID uuid.UUID, phone string) error {
	if err := validation.ValidatePhone(phone); err != nil {
		return apperror.Validation(err)
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return translate(err)
	}
	return s.issue(ctx, userID, models.VerificationPhone, phone)
}

// VerifyPhone проверяет SMS-код и сохраняет подтверждённый номер.
func (s *VerificationService) VerifyPhone(ctx context.Context, userID uuid.UUID, code string) error {
	vc, err := s.check(ctx, userID, models.VerificationPhone, code)
	if err != nil {
		return err
	}
	return s.users.SetPhoneVerified(ctx, vc.UserID, vc.Target)
}

func (s *VerificationService) issue(ctx context.Context, userID uuid.UUID, channel, target string) error {
	code, err := newNumericCode(6)
	if err != nil {
		return fmt.Errorf("verification service: generate code: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("verification service: hash code: %w", err)
	}

	vc := &models.VerificationCode{
		UserID:    userID,
		Channel:   channel,
		Target:    target,
		CodeHash:  string(hash),
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.codes.Create(ctx, vc); err != nil {
		return err
	}
	return s.sender.Send(ctx, channel, target, code)
}

func (s *VerificationService) check(ctx context.Context, userID uuid.UUID, channel, code string) (*models.VerificationCode, error) {
	vc, err := s.codes.GetActive(ctx, userID, channel)
	if err != nil {
		return nil, translate(err)
	}
	if vc.Attempts >= MaxVerificationAttempts {
		return nil, apperror.ErrInvalidCode
	}
	if bcrypt.CompareHashAndPassword([]byte(vc.CodeHash), []byte(code)) != nil {
		if err := s.codes.IncrementAttempts(ctx, vc.ID); err != nil {
			return nil, err
		}
		return nil, apperror.ErrInvalidCode
	}
	if err := s.codes.MarkUsed(ctx, vc.ID); err != nil {
		return nil, err
	}
	return vc, nil
}

func newNumericCode(digits int) (string, error) {
	buf := make([]byte, digits)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		buf[i] = byte('0' + n.Int64())
	}
	return string(buf), nil
}
