package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/indievia/indievia-backend/internal/logger"
	"github.com/indievia/indievia-backend/internal/metrics"
	"github.com/indievia/indievia-backend/internal/models"
	"github.com/indievia/indievia-backend/pkg/pagination"
)

// NotificationEvent имя события WebSocket для новых уведомлений.
const NotificationEvent = "notification"

// NotificationRepository описывает взаимодействие сервиса с хранилищем уведомлений.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]models.Notification, int, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// Publisher доставляет события подключённым клиентам пользователя.
type Publisher interface {
	BroadcastToUser(userID uuid.UUID, event string, data interface{})
}

// Notifier создаёт уведомления. Его используют сервисы отзывов и модерации.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, kind models.NotificationKind, metadata interface{}) (*models.Notification, error)
}

// NotificationService содержит бизнес-логику работы с уведомлениями.
type NotificationService struct {
	repo      NotificationRepository
	publisher Publisher
	schemas   NotificationSchemas
	log       *logrus.Entry
}

// NewNotificationService создаёт новый сервис уведомлений. publisher может быть nil.
func NewNotificationService(repo NotificationRepository, publisher Publisher, schemas NotificationSchemas) *NotificationService {
	return &NotificationService{
		repo:      repo,
		publisher: publisher,
		schemas:   schemas,
		log:       logger.WithComponent("notifications"),
	}
}

// Notify проверяет metadata по схеме типа, сохраняет уведомление и
// отправляет его в открытые WebSocket соединения пользователя.
func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, kind models.NotificationKind, metadata interface{}) (*models.Notification, error) {
	raw, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("notification service: marshal metadata %w", err)
	}
	if err := s.validate(ctx, kind, raw); err != nil {
		return nil, err
	}

	n := &models.Notification{UserID: userID, Kind: kind, Metadata: raw}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	metrics.RecordNotification(string(kind))

	if s.publisher != nil {
		s.publisher.BroadcastToUser(userID, NotificationEvent, n)
	}
	return n, nil
}

func (s *NotificationService) validate(ctx context.Context, kind models.NotificationKind, raw []byte) error {
	schema, ok := s.schemas[kind]
	if !ok {
		return fmt.Errorf("notification service: unknown kind %q", kind)
	}
	keyErrs, err := schema.ValidateBytes(ctx, raw)
	if err != nil {
		return fmt.Errorf("notification service: validate %s: %w", kind, err)
	}
	if len(keyErrs) > 0 {
		msgs := make([]string, 0, len(keyErrs))
		for _, ke := range keyErrs {
			msgs = append(msgs, ke.PropertyPath+": "+ke.Message)
		}
		return fmt.Errorf("notification service: invalid %s metadata: %s", kind, strings.Join(msgs, "; "))
	}
	return nil
}

// List возвращает страницу уведомлений пользователя.
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params pagination.Params) (*pagination.Page[models.Notification], error) {
	items, total, err := s.repo.List(ctx, userID, unreadOnly, params.Limit(), params.Offset())
	if err != nil {
		return nil, err
	}
	page := pagination.NewPage(items, params, total)
	return &page, nil
}

// CountUnread возвращает количество непрочитанных уведомлений.
func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}

// MarkRead отмечает уведомление пользователя прочитанным.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return translate(s.repo.MarkRead(ctx, id, userID))
}

// MarkAllRead отмечает все уведомления пользователя прочитанными.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}

// Delete удаляет уведомление пользователя.
func (s *NotificationService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return translate(s.repo.Delete(ctx, id, userID))
}

// notifyQuietly отправляет уведомление, не прерывая основную операцию при ошибке.
func notifyQuietly(ctx context.Context, notifier Notifier, log *logrus.Entry, userID uuid.UUID, kind models.NotificationKind, metadata interface{}) {
	if notifier == nil {
		return
	}
	if _, err := notifier.Notify(ctx, userID, kind, metadata); err != nil {
		log.WithError(err).WithFields(logrus.Fields{"user_id": userID, "kind": kind}).Warn("notification not delivered")
	}
}

var _ Notifier = (*NotificationService)(nil)
