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
)

type stubInvalidator struct {
	calls []uuid.UUID
}

func (s *stubInvalidator) InvalidateProfile(_ context.Context, userID uuid.UUID) {
	s.calls = append(s.calls, userID)
}

func resolution(action, status string) *models.ModerationResolution {
	return &models.ModerationResolution{
		Report: models.ModerationReport{
			ID:         uuid.New(),
			ReviewID:   uuid.New(),
			ReporterID: uuid.New(),
			Status:     status,
		},
		Action:         action,
		ReviewClientID: uuid.New(),
		ProfessionalID: uuid.New(),
	}
}

func TestModerationService_Resolve_BlockAndBan(t *testing.T) {
	ctx := context.Background()
	reports := new(mockReportRepo)
	notifier := new(mockNotifier)
	profiles := &stubInvalidator{}
	svc := NewModerationService(reports, notifier, profiles)

	adminID, reportID := uuid.New(), uuid.New()
	res := resolution(models.ModerationActionBlockAndBan, models.ReportStatusBlockedAndBanned)

	reports.On("Resolve", ctx, reportID, adminID, models.ModerationActionBlockAndBan).Return(res, nil)
	notifier.On("Notify", ctx, res.Report.ReporterID, models.NotificationReportOutcome, models.ReportOutcomeMetadata{
		ReportID: res.Report.ID,
		ReviewID: res.Report.ReviewID,
		Status:   models.ReportStatusBlockedAndBanned,
	}).Return(&models.Notification{}, nil)
	notifier.On("Notify", ctx, res.ReviewClientID, models.NotificationBanOutcome, mock.AnythingOfType("models.BanOutcomeMetadata")).
		Return(&models.Notification{}, nil)

	got, err := svc.Resolve(ctx, adminID, reportID, models.ModerationActionBlockAndBan)
	require.NoError(t, err)
	assert.Equal(t, res, got)
	notifier.AssertExpectations(t)
	assert.Equal(t, []uuid.UUID{res.ProfessionalID}, profiles.calls)
}

func TestModerationService_Resolve_IgnoreNotifiesReporterOnly(t *testing.T) {
	ctx := context.Background()
	reports := new(mockReportRepo)
	notifier := new(mockNotifier)
	profiles := &stubInvalidator{}
	svc := NewModerationService(reports, notifier, profiles)

	res := resolution(models.ModerationActionIgnore, models.ReportStatusIgnored)
	reports.On("Resolve", ctx, mock.Anything, mock.Anything, models.ModerationActionIgnore).Return(res, nil)
	notifier.On("Notify", ctx, res.Report.ReporterID, models.NotificationReportOutcome, mock.Anything).Return(&models.Notification{}, nil)

	_, err := svc.Resolve(ctx, uuid.New(), uuid.New(), models.ModerationActionIgnore)
	require.NoError(t, err)
	notifier.AssertNumberOfCalls(t, "Notify", 1)
	assert.Empty(t, profiles.calls)
}

func TestModerationService_Resolve_Errors(t *testing.T) {
	ctx := context.Background()
	reports := new(mockReportRepo)
	svc := NewModerationService(reports, nil, nil)

	_, err := svc.Resolve(ctx, uuid.New(), uuid.New(), "delete")
	assert.True(t, apperror.IsValidation(err))
	reports.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	reports.On("Resolve", ctx, mock.Anything, mock.Anything, models.ModerationActionBlock).Return(nil, repository.ErrReportAlreadyResolved)
	_, err = svc.Resolve(ctx, uuid.New(), uuid.New(), models.ModerationActionBlock)
	assert.ErrorIs(t, err, apperror.ErrReportAlreadyResolved)
	assert.True(t, apperror.IsConflict(err))
}
