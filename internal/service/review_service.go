package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/indievia/indievia-backend/internal/cache"
	"github.com/indievia/indievia-backend/internal/logger"
	"github.com/indievia/indievia-backend/internal/metrics"
	"github.com/indievia/indievia-backend/internal/models"
	"github.com/indievia/indievia-backend/internal/pkg/apperror"
	"github.com/indievia/indievia-backend/internal/validation"
	"github.com/indievia/indievia-backend/pkg/pagination"
	"github.com/indievia/indievia-backend/pkg/upload"
)

// ReviewRepository хранилище отзывов и ответов мастеров.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error)
	List(ctx context.Context, filter models.ReviewFilter, limit, offset int) ([]models.Review, int, error)
	CreateReply(ctx context.Context, reviewID, professionalID uuid.UUID, body string) (*models.ReviewReply, error)
	UpdateReply(ctx context.Context, reviewID uuid.UUID, body string) (*models.ReviewReply, error)
	DeleteReply(ctx context.Context, reviewID uuid.UUID) error
}

// ReportRepository хранилище жалоб на отзывы.
type ReportRepository interface {
	Create(ctx context.Context, report *models.ModerationReport) error
	List(ctx context.Context, status string, limit, offset int) ([]models.ModerationItem, int, error)
	Resolve(ctx context.Context, reportID, adminID uuid.UUID, action string) (*models.ModerationResolution, error)
}

// ProfessionalLookup чтение профилей мастеров для отзывов.
type ProfessionalLookup interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.ProfessionalProfile, error)
	GetBySlug(ctx context.Context, slug string) (*models.ProfessionalProfile, error)
}

// ClientLookup чтение профилей клиентов для отзывов.
type ClientLookup interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.ClientProfile, error)
}

// CreateReviewInput данные нового отзыва.
type CreateReviewInput struct {
	ProfessionalID uuid.UUID `json:"professional_id" binding:"required"`
	Rating         int       `json:"rating" binding:"required"`
	Body           string    `json:"body" binding:"required"`
}

// ReportInput жалоба на отзыв.
type ReportInput struct {
	Reason  string  `json:"reason" binding:"required"`
	Details *string `json:"details"`
}

// ReviewService создание отзывов, ответы мастеров и жалобы.
type ReviewService struct {
	reviews       ReviewRepository
	reports       ReportRepository
	professionals ProfessionalLookup
	clients       ClientLookup
	media         Uploader
	notifier      Notifier
	cache         *cache.Cache
	log           *logrus.Entry
}

// NewReviewService создаёт сервис отзывов. notifier может быть nil.
func NewReviewService(
	reviews ReviewRepository,
	reports ReportRepository,
	professionals ProfessionalLookup,
	clients ClientLookup,
	media Uploader,
	notifier Notifier,
	c *cache.Cache,
) *ReviewService {
	return &ReviewService{
		reviews:       reviews,
		reports:       reports,
		professionals: professionals,
		clients:       clients,
		media:         media,
		notifier:      notifier,
		cache:         c,
		log:           logger.WithComponent("reviews"),
	}
}

// Create сохраняет отзыв клиента с вложениями, пересчитывает рейтинг мастера
// и уведомляет его о новом отзыве.
func (s *ReviewService) Create(ctx context.Context, clientID uuid.UUID, in CreateReviewInput, files []UploadFile) (*models.Review, error) {
	in.Body = strings.TrimSpace(in.Body)
	if err := validation.ValidateRating(in.Rating); err != nil {
		return nil, apperror.Validation(err)
	}
	if err := validation.ValidateReviewBody(in.Body); err != nil {
		return nil, apperror.Validation(err)
	}
	if in.ProfessionalID == clientID {
		return nil, apperror.New(apperror.ErrCodeBadRequest, "нельзя оставить отзыв самому себе")
	}

	client, err := s.clients.GetByUserID(ctx, clientID)
	if err != nil {
		return nil, translate(err)
	}
	professional, err := s.professionals.GetByUserID(ctx, in.ProfessionalID)
	if err != nil {
		return nil, translate(err)
	}

	var media []string
	if len(files) > 0 {
		media, err = s.media.Upload(ctx, clientID, upload.ReviewMedia, files)
		if err != nil {
			return nil, err
		}
	}

	review := &models.Review{
		ClientID:       clientID,
		ProfessionalID: in.ProfessionalID,
		Rating:         in.Rating,
		Body:           in.Body,
		Media:          media,
	}
	if review.Media == nil {
		review.Media = []string{}
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		for _, u := range media {
			s.media.Remove(ctx, u)
		}
		return nil, translate(err)
	}
	review.ClientName = &client.FullName
	review.ClientPicture = client.ProfilePicture

	metrics.RecordReviewCreated()
	s.invalidateProfessional(ctx, professional.Slug)
	notifyQuietly(ctx, s.notifier, s.log, professional.UserID, models.NotificationNewReview, models.NewReviewMetadata{
		ReviewID:   review.ID,
		ClientID:   clientID,
		ClientName: client.FullName,
		Rating:     review.Rating,
	})

	s.log.WithFields(logrus.Fields{
		"review_id":       review.ID,
		"professional_id": review.ProfessionalID,
		"rating":          review.Rating,
	}).Info("review created")
	return review, nil
}

// Get возвращает отзыв. Заблокированные отзывы видны только автору и мастеру.
func (s *ReviewService) Get(ctx context.Context, id, viewerID uuid.UUID, viewerRole string) (*models.Review, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if review.IsBlocked && viewerRole != models.RoleAdmin && viewerID != review.ClientID && viewerID != review.ProfessionalID {
		return nil, apperror.ErrReviewNotFound
	}
	return review, nil
}

// ListForProfessional публичная лента отзывов мастера без заблокированных.
func (s *ReviewService) ListForProfessional(ctx context.Context, slug, sort string, params pagination.Params) (*pagination.Page[models.Review], error) {
	if !validation.IsSlug(slug) {
		return nil, apperror.ErrProfessionalNotFound
	}
	professional, err := s.professionals.GetBySlug(ctx, slug)
	if err != nil {
		return nil, translate(err)
	}
	return s.list(ctx, models.ReviewFilter{ProfessionalID: &professional.UserID, Sort: sort}, params)
}

// ListForOwner отзывы в кабинете мастера, включая заблокированные.
func (s *ReviewService) ListForOwner(ctx context.Context, professionalID uuid.UUID, sort string, params pagination.Params) (*pagination.Page[models.Review], error) {
	return s.list(ctx, models.ReviewFilter{ProfessionalID: &professionalID, IncludeBlocked: true, Sort: sort}, params)
}

// ListByClient отзывы, написанные клиентом.
func (s *ReviewService) ListByClient(ctx context.Context, clientID uuid.UUID, params pagination.Params) (*pagination.Page[models.Review], error) {
	return s.list(ctx, models.ReviewFilter{ClientID: &clientID, IncludeBlocked: true}, params)
}

func (s *ReviewService) list(ctx context.Context, filter models.ReviewFilter, params pagination.Params) (*pagination.Page[models.Review], error) {
	switch filter.Sort {
	case "", models.ReviewSortNewest, models.ReviewSortHighest, models.ReviewSortLowest:
	default:
		return nil, apperror.New(apperror.ErrCodeValidation, "sort должен быть newest, highest или lowest")
	}
	items, total, err := s.reviews.List(ctx, filter, params.Limit(), params.Offset())
	if err != nil {
		return nil, err
	}
	page := pagination.NewPage(items, params, total)
	return &page, nil
}

// PostReply добавляет ответ мастера на отзыв о нём.
func (s *ReviewService) PostReply(ctx context.Context, professionalID, reviewID uuid.UUID, body string) (*models.ReviewReply, error) {
	body = strings.TrimSpace(body)
	if err := validation.ValidateReply(body); err != nil {
		return nil, apperror.Validation(err)
	}
	review, err := s.ownedReview(ctx, professionalID, reviewID)
	if err != nil {
		return nil, err
	}
	if review.Reply != nil {
		return nil, apperror.ErrReplyExists
	}

	reply, err := s.reviews.CreateReply(ctx, reviewID, professionalID, body)
	if err != nil {
		return nil, translate(err)
	}
	metrics.RecordReplyMutation("create")

	professional, err := s.professionals.GetByUserID(ctx, professionalID)
	if err != nil {
		s.log.WithError(err).Warn("reply posted but professional profile unavailable")
		return reply, nil
	}
	s.invalidateProfessional(ctx, professional.Slug)
	notifyQuietly(ctx, s.notifier, s.log, review.ClientID, models.NotificationReviewReply, models.ReviewReplyMetadata{
		ReviewID:         reviewID,
		ProfessionalID:   professionalID,
		ProfessionalName: professional.FullName,
		ProfessionalSlug: professional.Slug,
	})
	return reply, nil
}

// EditReply меняет текст ответа.
func (s *ReviewService) EditReply(ctx context.Context, professionalID, reviewID uuid.UUID, body string) (*models.ReviewReply, error) {
	body = strings.TrimSpace(body)
	if err := validation.ValidateReply(body); err != nil {
		return nil, apperror.Validation(err)
	}
	if _, err := s.ownedReview(ctx, professionalID, reviewID); err != nil {
		return nil, err
	}
	reply, err := s.reviews.UpdateReply(ctx, reviewID, body)
	if err != nil {
		return nil, translate(err)
	}
	metrics.RecordReplyMutation("update")
	return reply, nil
}

// DeleteReply удаляет ответ.
func (s *ReviewService) DeleteReply(ctx context.Context, professionalID, reviewID uuid.UUID) error {
	if _, err := s.ownedReview(ctx, professionalID, reviewID); err != nil {
		return err
	}
	if err := s.reviews.DeleteReply(ctx, reviewID); err != nil {
		return translate(err)
	}
	metrics.RecordReplyMutation("delete")
	return nil
}

// Report создаёт открытую жалобу на отзыв. Админ и автор отзыва жаловаться не могут.
func (s *ReviewService) Report(ctx context.Context, reporterID uuid.UUID, reporterRole string, reviewID uuid.UUID, in ReportInput) (*models.ModerationReport, error) {
	if reporterRole == models.RoleAdmin {
		return nil, apperror.New(apperror.ErrCodeForbidden, "администратор блокирует отзывы напрямую")
	}
	in.Reason = strings.TrimSpace(in.Reason)
	if err := validation.ValidateLength("reason", in.Reason, 1, validation.MaxReportReason); err != nil {
		return nil, apperror.Validation(err)
	}
	if err := validation.ValidateOptional("details", in.Details, validation.MaxReportDetails); err != nil {
		return nil, apperror.Validation(err)
	}

	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, translate(err)
	}
	if review.ClientID == reporterID {
		return nil, apperror.New(apperror.ErrCodeForbidden, "нельзя пожаловаться на собственный отзыв")
	}
	if review.IsBlocked {
		return nil, apperror.New(apperror.ErrCodeConflict, "отзыв уже заблокирован")
	}

	report := &models.ModerationReport{
		ReviewID:   reviewID,
		ReporterID: reporterID,
		Reason:     in.Reason,
		Details:    in.Details,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, translate(err)
	}
	metrics.RecordReportCreated()
	s.log.WithFields(logrus.Fields{"report_id": report.ID, "review_id": reviewID}).Info("review reported")
	return report, nil
}

func (s *ReviewService) ownedReview(ctx context.Context, professionalID, reviewID uuid.UUID) (*models.Review, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, translate(err)
	}
	if review.ProfessionalID != professionalID {
		return nil, apperror.ErrForbidden
	}
	return review, nil
}

// invalidateProfessional сбрасывает профиль и поиск: в обоих есть рейтинг.
func (s *ReviewService) invalidateProfessional(ctx context.Context, slug *string) {
	if slug != nil && *slug != "" {
		s.cache.Delete(ctx, cache.ProfessionalKey(*slug))
	}
	s.cache.InvalidateByPrefix(ctx, cache.SearchPrefix)
}
