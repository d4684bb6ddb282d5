package service

import (
	"errors"

	"github.com/indievia/indievia-backend/internal/pkg/apperror"
	"github.com/indievia/indievia-backend/internal/repository"
)

var repositoryErrors = []struct {
	repo error
	app  *apperror.AppError
}{
	{repository.ErrUserNotFound, apperror.ErrUserNotFound},
	{repository.ErrEmailTaken, apperror.ErrEmailTaken},
	{repository.ErrProfessionalNotFound, apperror.ErrProfessionalNotFound},
	{repository.ErrSlugTaken, apperror.ErrSlugTaken},
	{repository.ErrClientNotFound, apperror.ErrClientNotFound},
	{repository.ErrReviewNotFound, apperror.ErrReviewNotFound},
	{repository.ErrReplyNotFound, apperror.ErrReplyNotFound},
	{repository.ErrReplyExists, apperror.ErrReplyExists},
	{repository.ErrReportNotFound, apperror.ErrReportNotFound},
	{repository.ErrReportAlreadyResolved, apperror.ErrReportAlreadyResolved},
	{repository.ErrAlreadyReported, apperror.ErrAlreadyReported},
	{repository.ErrNotificationNotFound, apperror.ErrNotificationNotFound},
	{repository.ErrInboxMessageNotFound, apperror.ErrInboxMessageNotFound},
	{repository.ErrSessionNotFound, apperror.ErrUnauthorized},
	{repository.ErrVerificationCodeNotFound, apperror.ErrInvalidCode},
}

// translate заменяет sentinel-ошибки репозиториев бизнес-ошибками.
// Остальные ошибки возвращаются как есть и маскируются на уровне HTTP.
func translate(err error) error {
	if err == nil {
		return nil
	}
	for _, m := range repositoryErrors {
		if errors.Is(err, m.repo) {
			return m.app
		}
	}
	return err
}
