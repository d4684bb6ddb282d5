package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/indievia/indievia-backend/internal/dto"
	"github.com/indievia/indievia-backend/internal/http/handlers/common"
	"github.com/indievia/indievia-backend/internal/models"
	"github.com/indievia/indievia-backend/internal/service"
	"github.com/indievia/indievia-backend/pkg/pagination"
)

type reviewService interface {
	Create(ctx context.Context, clientID uuid.UUID, in service.CreateReviewInput, files []service.UploadFile) (*models.Review, error)
	Get(ctx context.Context, id, viewerID uuid.UUID, viewerRole string) (*models.Review, error)
	ListForProfessional(ctx context.Context, slug, sort string, params pagination.Params) (*pagination.Page[models.Review], error)
	ListForOwner(ctx context.Context, professionalID uuid.UUID, sort string, params pagination.Params) (*pagination.Page[models.Review], error)
	ListByClient(ctx context.Context, clientID uuid.UUID, params pagination.Params) (*pagination.Page[models.Review], error)
	PostReply(ctx context.Context, professionalID, reviewID uuid.UUID, body string) (*models.ReviewReply, error)
	EditReply(ctx context.Context, professionalID, reviewID uuid.UUID, body string) (*models.ReviewReply, error)
	DeleteReply(ctx context.Context, professionalID, reviewID uuid.UUID) error
	Report(ctx context.Context, reporterID uuid.UUID, reporterRole string, reviewID uuid.UUID, in service.ReportInput) (*models.ModerationReport, error)
}

// ReviewHandler отзывы, ответы мастеров и жалобы.
type ReviewHandler struct {
	reviews reviewService
}

// NewReviewHandler создаёт хэндлер.
func NewReviewHandler(reviews reviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// Create обрабатывает POST /review. Принимает JSON или multipart с полем media.
func (h *ReviewHandler) Create(c *gin.Context) {
	clientID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req service.CreateReviewInput
	var files []service.UploadFile
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		var form dto.ReviewForm
		if err := c.ShouldBind(&form); err != nil {
			common.RespondBadRequest(c, "professional_id, rating и body обязательны")
			return
		}
		req = service.CreateReviewInput{
			ProfessionalID: uuid.MustParse(form.ProfessionalID),
			Rating:         form.Rating,
			Body:           form.Body,
		}
		headers, err := common.FormFiles(c, "media")
		if err != nil {
			common.RespondBadRequest(c, "некорректная форма")
			return
		}
		if len(headers) > 0 {
			var closeFiles func()
			files, closeFiles, err = common.UploadFiles(headers)
			if err != nil {
				common.RespondBadRequest(c, "не удалось прочитать файл")
				return
			}
			defer closeFiles()
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "professional_id, rating и body обязательны")
		return
	}

	review, err := h.reviews.Create(c.Request.Context(), clientID, req, files)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}
	common.RespondData(c, http.StatusCreated, review)
}

// Get обрабатывает GET /reviews/:id.
func (h *ReviewHandler) Get(c *gin.Context) {
	reviewID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, "неверный идентификатор отзыва")
		return
	}

	var viewerID uuid.UUID
	if id := common.OptionalUserID(c); id != nil {
		viewerID = *id
	}
	role, _ := common.CurrentUserRole(c)

	review, err := h.reviews.Get(c.Request.Context(), reviewID, viewerID, role)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}
	common.RespondData(c, http.StatusOK, review)
}

// ListForProfessional обрабатывает GET /professionals/:slug/reviews.
func (h *ReviewHandler) ListForProfessional(c *gin.Context) {
	var uri dto.SlugURI
	if err := c.ShouldBindUri(&uri); err != nil {
		common.RespondNotFound(c, "мастер не найден")
		return
	}

	page, err := h.reviews.ListForProfessional(c.Request.Context(), uri.Slug, c.Query("sort"), common.PageParams(c))
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}
	common.RespondData(c, http.StatusOK, page)
}

// ListMine обрабатывает GET /professional/reviews - кабинет мастера.
func (h *ReviewHandler) ListMine(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	page, err := h.reviews.ListForOwner(c.Request.Context(), userID, c.Query("sort"), common.PageParams(c))
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}
	common.RespondData(c, http.StatusOK, page)
}

// ListAuthored обрабатывает GET /client/reviews.
func (h *ReviewHandler) ListAuthored(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	page, err := h.reviews.ListByClient(c.Request.Context(), userID, common.PageParams(c))
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}
	common.RespondData(c, http.StatusOK, page)
}

// PostReply обрабатывает POST /reviews/:id/reply.
func (h *ReviewHandler) PostReply(c *gin.Context) {
	userID, reviewID, req, ok := replyRequest(c)
	if !ok {
		return
	}

	reply, err := h.reviews.PostReply(c.Request.Context(), userID, reviewID, req.Body)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}
	common.RespondData(c, http.StatusCreated, reply)
}

// EditReply обрабатывает PATCH /reviews/:id/reply.
func (h *ReviewHandler) EditReply(c *gin.Context) {
	userID, reviewID, req, ok := replyRequest(c)
	if !ok {
		return
	}

	reply, err := h.reviews.EditReply(c.Request.Context(), userID, reviewID, req.Body)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}
	common.RespondData(c, http.StatusOK, reply)
}

// DeleteReply обрабатывает DELETE /reviews/:id/reply.
func (h *ReviewHandler) DeleteReply(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	reviewID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, "неверный идентификатор отзыва")
		return
	}

	if err := h.reviews.DeleteReply(c.Request.Context(), userID, reviewID); err != nil {
		common.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Report обрабатывает POST /reviews/:id/report.
func (h *ReviewHandler) Report(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}
	role, _ := common.CurrentUserRole(c)

	reviewID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, "неверный идентификатор отзыва")
		return
	}

	var req service.ReportInput
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "reason обязателен")
		return
	}

	report, err := h.reviews.Report(c.Request.Context(), userID, role, reviewID, req)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}
	common.RespondData(c, http.StatusCreated, report)
}

func replyRequest(c *gin.Context) (uuid.UUID, uuid.UUID, dto.ReplyRequest, bool) {
	var req dto.ReplyRequest
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return uuid.Nil, uuid.Nil, req, false
	}

	reviewID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, "неверный идентификатор отзыва")
		return uuid.Nil, uuid.Nil, req, false
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "текст ответа обязателен")
		return uuid.Nil, uuid.Nil, req, false
	}
	return userID, reviewID, req, true
}
