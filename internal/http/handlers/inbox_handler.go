package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/indievia/indievia-backend/internal/dto"
	"github.com/indievia/indievia-backend/internal/http/handlers/common"
	"github.com/indievia/indievia-backend/internal/models"
	"github.com/indievia/indievia-backend/internal/service"
	"github.com/indievia/indievia-backend/pkg/pagination"
)

type inboxService interface {
	Submit(ctx context.Context, userID *uuid.UUID, in service.InboxInput) (*models.InboxMessage, error)
	List(ctx context.Context, status, kind string, params pagination.Params) (*pagination.Page[models.InboxMessage], error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.InboxMessage, error)
}

// InboxHandler обращения пользователей: баг-репорты, поддержка, контакты.
type InboxHandler struct {
	inbox inboxService
}

func NewInboxHandler(inbox inboxService) *InboxHandler {
	return &InboxHandler{inbox: inbox}
}

// Submit обрабатывает POST /inbox. Авторизация не обязательна.
func (h *InboxHandler) Submit(c *gin.Context) {
	var req service.InboxInput
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "kind, name, email, subject и body обязательны")
		return
	}

	msg, err := h.inbox.Submit(c.Request.Context(), common.OptionalUserID(c), req)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}
	common.RespondData(c, http.StatusCreated, msg)
}

// List обрабатывает GET /admin/inbox?status=&kind=.
func (h *InboxHandler) List(c *gin.Context) {
	page, err := h.inbox.List(c.Request.Context(), c.Query("status"), c.Query("kind"), common.PageParams(c))
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}
	common.RespondData(c, http.StatusOK, page)
}

// UpdateStatus обрабатывает PATCH /admin/inbox/:id.
func (h *InboxHandler) UpdateStatus(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, "неверный идентификатор обращения")
		return
	}

	var req dto.InboxStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "status должен быть open или closed")
		return
	}

	msg, err := h.inbox.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}
	common.RespondData(c, http.StatusOK, msg)
}
