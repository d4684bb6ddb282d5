package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/indievia/indievia-backend/internal/dto"
	"github.com/indievia/indievia-backend/internal/http/handlers/common"
	"github.com/indievia/indievia-backend/internal/models"
	"github.com/indievia/indievia-backend/pkg/pagination"
)

type moderationService interface {
	List(ctx context.Context, status string, params pagination.Params) (*pagination.Page[models.ModerationItem], error)
	Resolve(ctx context.Context, adminID, reportID uuid.UUID, action string) (*models.ModerationResolution, error)
}

// ModerationHandler очередь жалоб для администратора.
type ModerationHandler struct {
	moderation moderationService
}

func NewModerationHandler(moderation moderationService) *ModerationHandler {
	return &ModerationHandler{moderation: moderation}
}

// List обрабатывает GET /admin/moderation?status=.
func (h *ModerationHandler) List(c *gin.Context) {
	page, err := h.moderation.List(c.Request.Context(), c.Query("status"), common.PageParams(c))
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}
	common.RespondData(c, http.StatusOK, page)
}

// Resolve обрабатывает PATCH /admin/moderation/:id.
func (h *ModerationHandler) Resolve(c *gin.Context) {
	adminID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	reportID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, "неверный идентификатор жалобы")
		return
	}

	var req dto.ModerationActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "action должен быть ignore, block или block_and_ban")
		return
	}

	res, err := h.moderation.Resolve(c.Request.Context(), adminID, reportID, req.Action)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}
	common.RespondData(c, http.StatusOK, res)
}
