package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/indievia/indievia-backend/internal/logger"
	"github.com/indievia/indievia-backend/internal/metrics"
	"github.com/indievia/indievia-backend/internal/models"
	"github.com/indievia/indievia-backend/internal/pkg/apperror"
	"github.com/indievia/indievia-backend/pkg/pagination"
)

// banReason текст ban_outcome для автора заблокированного отзыва.
const banReason = "review violated community guidelines"

// ProfileInvalidator сбрасывает кэш публичной страницы мастера.
type ProfileInvalidator interface {
	InvalidateProfile(ctx context.Context, userID uuid.UUID)
}

// ModerationService рассмотрение жалоб на отзывы.
type ModerationService struct {
	reports  ReportRepository
	notifier Notifier
	profiles ProfileInvalidator
	log      *logrus.Entry
}

// NewModerationService создаёт сервис модерации.
func NewModerationService(reports ReportRepository, notifier Notifier, profiles ProfileInvalidator) *ModerationService {
	return &ModerationService{
		reports:  reports,
		notifier: notifier,
		profiles: profiles,
		log:      logger.WithComponent("moderation"),
	}
}

// List возвращает жалобы со снимком отзыва. Пустой status означает все.
func (s *ModerationService) List(ctx context.Context, status string, params pagination.Params) (*pagination.Page[models.ModerationItem], error) {
	items, total, err := s.reports.List(ctx, status, params.Limit(), params.Offset())
	if err != nil {
		return nil, err
	}
	page := pagination.NewPage(items, params, total)
	return &page, nil
}

// Resolve применяет действие модератора к открытой жалобе и уведомляет
// жалобщика, а при бане и автора отзыва.
func (s *ModerationService) Resolve(ctx context.Context, adminID, reportID uuid.UUID, action string) (*models.ModerationResolution, error) {
	if _, ok := models.StatusForAction(action); !ok {
		return nil, apperror.New(apperror.ErrCodeValidation, "action должен быть ignore, block или block_and_ban")
	}

	res, err := s.reports.Resolve(ctx, reportID, adminID, action)
	if err != nil {
		return nil, translate(err)
	}
	metrics.RecordReportResolved(action)

	s.log.WithFields(logrus.Fields{
		"report_id": reportID,
		"admin_id":  adminID,
		"action":    action,
	}).Info("report resolved")

	notifyQuietly(ctx, s.notifier, s.log, res.Report.ReporterID, models.NotificationReportOutcome, models.ReportOutcomeMetadata{
		ReportID: res.Report.ID,
		ReviewID: res.Report.ReviewID,
		Status:   res.Report.Status,
	})
	if action == models.ModerationActionBlockAndBan {
		notifyQuietly(ctx, s.notifier, s.log, res.ReviewClientID, models.NotificationBanOutcome, models.BanOutcomeMetadata{
			ReviewID: res.Report.ReviewID,
			Reason:   banReason,
		})
	}
	if action != models.ModerationActionIgnore && s.profiles != nil {
		s.profiles.InvalidateProfile(ctx, res.ProfessionalID)
	}
	return res, nil
}
