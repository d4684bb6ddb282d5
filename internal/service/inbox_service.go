package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/indievia/indievia-backend/internal/models"
	"github.com/indievia/indievia-backend/internal/pkg/apperror"
	"github.com/indievia/indievia-backend/internal/validation"
	"github.com/indievia/indievia-backend/pkg/pagination"
)

// InboxRepository хранилище обращений.
type InboxRepository interface {
	Create(ctx context.Context, m *models.InboxMessage) error
	List(ctx context.Context, status, kind string, limit, offset int) ([]models.InboxMessage, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.InboxMessage, error)
}

// InboxInput обращение из формы обратной связи.
type InboxInput struct {
	Kind    string `json:"kind" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

// InboxService обращения в поддержку.
type InboxService struct {
	repo InboxRepository
}

// NewInboxService создаёт сервис.
func NewInboxService(repo InboxRepository) *InboxService {
	return &InboxService{repo: repo}
}

// Submit сохраняет обращение. userID заполняется, если отправитель вошёл.
func (s *InboxService) Submit(ctx context.Context, userID *uuid.UUID, in InboxInput) (*models.InboxMessage, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Subject = strings.TrimSpace(in.Subject)
	in.Body = strings.TrimSpace(in.Body)

	if _, ok := models.ValidInboxKinds[in.Kind]; !ok {
		return nil, apperror.New(apperror.ErrCodeValidation, "kind должен быть bug_report, support или contact")
	}
	if err := validation.ValidateLength("name", in.Name, 1, validation.MaxFullNameLength); err != nil {
		return nil, apperror.Validation(err)
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, apperror.Validation(err)
	}
	if err := validation.ValidateLength("subject", in.Subject, 1, validation.MaxSubjectLength); err != nil {
		return nil, apperror.Validation(err)
	}
	if err := validation.ValidateLength("body", in.Body, 1, validation.MaxInboxBodyLength); err != nil {
		return nil, apperror.Validation(err)
	}

	msg := &models.InboxMessage{
		Kind:    in.Kind,
		UserID:  userID,
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Body:    in.Body,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// List возвращает обращения для админки.
func (s *InboxService) List(ctx context.Context, status, kind string, params pagination.Params) (*pagination.Page[models.InboxMessage], error) {
	items, total, err := s.repo.List(ctx, status, kind, params.Limit(), params.Offset())
	if err != nil {
		return nil, err
	}
	page := pagination.NewPage(items, params, total)
	return &page, nil
}

// UpdateStatus открывает или закрывает обращение.
func (s *InboxService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.InboxMessage, error) {
	if status != models.InboxStatusOpen && status != models.InboxStatusClosed {
		return nil, apperror.New(apperror.ErrCodeValidation, "status должен быть open или closed")
	}
	msg, err := s.repo.UpdateStatus(ctx, id, status)
	return msg, translate(err)
}
