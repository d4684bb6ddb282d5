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

type adminService interface {
	ListUsers(ctx context.Context, role string, params pagination.Params) (*pagination.Page[models.User], error)
	SetBan(ctx context.Context, adminID, userID uuid.UUID, banned bool) (*models.User, error)
	Stats(ctx context.Context) (*models.AdminStats, error)
}

// AdminHandler пользователи и статистика для админки.
type AdminHandler struct {
	admin adminService
}

func NewAdminHandler(admin adminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// ListUsers обрабатывает GET /admin/users?role=.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, err := h.admin.ListUsers(c.Request.Context(), c.Query("role"), common.PageParams(c))
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}
	common.RespondData(c, http.StatusOK, page)
}

// SetBan обрабатывает PATCH /admin/users/:id/ban.
func (h *AdminHandler) SetBan(c *gin.Context) {
	adminID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	userID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, "неверный идентификатор пользователя")
		return
	}

	var req dto.BanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "banned обязателен")
		return
	}

	user, err := h.admin.SetBan(c.Request.Context(), adminID, userID, *req.Banned)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}
	common.RespondData(c, http.StatusOK, user)
}

// Stats обрабатывает GET /admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.admin.Stats(c.Request.Context())
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}
	common.RespondData(c, http.StatusOK, stats)
}
