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
)

type clientService interface {
	Profile(ctx context.Context, userID uuid.UUID) (*models.ClientProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in service.UpdateClientInput) (*models.ClientProfile, error)
	SetProfilePicture(ctx context.Context, userID uuid.UUID, file service.UploadFile) (string, error)
}

type ClientHandler struct {
	clients clientService
}

func NewClientHandler(clients clientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

// PublicProfile обрабатывает GET /clients/:id.
func (h *ClientHandler) PublicProfile(c *gin.Context) {
	clientID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, "неверный идентификатор клиента")
		return
	}

	profile, err := h.clients.Profile(c.Request.Context(), clientID)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}
	common.RespondData(c, http.StatusOK, profile)
}

// MyProfile обрабатывает GET /client/profile.
func (h *ClientHandler) MyProfile(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	profile, err := h.clients.Profile(c.Request.Context(), userID)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}
	common.RespondData(c, http.StatusOK, profile)
}

// UpdateProfile обрабатывает PUT /client/profile.
func (h *ClientHandler) UpdateProfile(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req service.UpdateClientInput
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "full_name обязателен")
		return
	}

	profile, err := h.clients.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}
	common.RespondData(c, http.StatusOK, profile)
}

// SetPicture обрабатывает POST /client/picture.
func (h *ClientHandler) SetPicture(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	file, closeFile, ok := singleUpload(c)
	if !ok {
		return
	}
	defer closeFile()

	url, err := h.clients.SetProfilePicture(c.Request.Context(), userID, file)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}
	common.RespondData(c, http.StatusOK, dto.URLResponse{URL: url})
}
