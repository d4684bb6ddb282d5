package handlers

import (
	"context"
	"mime/multipart"
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

type professionalService interface {
	PublicProfile(ctx context.Context, slug string) (*models.ProfessionalProfile, error)
	Search(ctx context.Context, filter models.ProfessionalFilter, params pagination.Params) (*pagination.Page[models.ProfessionalProfile], error)
	MyProfile(ctx context.Context, userID uuid.UUID) (*models.ProfessionalProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in service.UpdateProfessionalInput) (*models.ProfessionalProfile, error)
	SetSlug(ctx context.Context, userID uuid.UUID, raw string) (string, error)
	AddGalleryItems(ctx context.Context, userID uuid.UUID, files []service.UploadFile) ([]string, error)
	RemoveGalleryItem(ctx context.Context, userID uuid.UUID, url string) error
	SetProfilePicture(ctx context.Context, userID uuid.UUID, file service.UploadFile) (string, error)
	Referrals(ctx context.Context, userID uuid.UUID) (*models.ReferralProgress, error)
}

// ProfessionalHandler публичные страницы мастеров и личный кабинет мастера.
type ProfessionalHandler struct {
	professionals professionalService
}

// NewProfessionalHandler создаёт хэндлер.
func NewProfessionalHandler(professionals professionalService) *ProfessionalHandler {
	return &ProfessionalHandler{professionals: professionals}
}

// PublicProfile обрабатывает GET /professionals/:slug.
func (h *ProfessionalHandler) PublicProfile(c *gin.Context) {
	var uri dto.SlugURI
	if err := c.ShouldBindUri(&uri); err != nil {
		common.RespondNotFound(c, "мастер не найден")
		return
	}

	profile, err := h.professionals.PublicProfile(c.Request.Context(), uri.Slug)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}
	common.RespondData(c, http.StatusOK, profile)
}

// Search обрабатывает GET /professionals?q=&city=.
func (h *ProfessionalHandler) Search(c *gin.Context) {
	filter := models.ProfessionalFilter{
		Query: strings.TrimSpace(c.Query("q")),
		City:  strings.TrimSpace(c.Query("city")),
	}

	page, err := h.professionals.Search(c.Request.Context(), filter, common.PageParams(c))
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}
	common.RespondData(c, http.StatusOK, page)
}

// MyProfile обрабатывает GET /professional/profile.
func (h *ProfessionalHandler) MyProfile(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	profile, err := h.professionals.MyProfile(c.Request.Context(), userID)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}
	common.RespondData(c, http.StatusOK, profile)
}

// UpdateProfile обрабатывает PUT /professional/profile.
func (h *ProfessionalHandler) UpdateProfile(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req service.UpdateProfessionalInput
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "full_name обязателен")
		return
	}

	profile, err := h.professionals.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}
	common.RespondData(c, http.StatusOK, profile)
}

// SetSlug обрабатывает PUT /professional/slug.
func (h *ProfessionalHandler) SetSlug(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req dto.SlugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "slug обязателен")
		return
	}

	slug, err := h.professionals.SetSlug(c.Request.Context(), userID, req.Slug)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}
	common.RespondData(c, http.StatusOK, dto.SlugResponse{Slug: slug})
}

// AddGallery обрабатывает POST /professional/gallery (multipart, поле files).
func (h *ProfessionalHandler) AddGallery(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	headers, err := common.FormFiles(c, "files")
	if err != nil || len(headers) == 0 {
		common.RespondBadRequest(c, "выберите хотя бы один файл")
		return
	}

	files, closeFiles, err := common.UploadFiles(headers)
	if err != nil {
		common.RespondBadRequest(c, "не удалось прочитать файл")
		return
	}
	defer closeFiles()

	urls, err := h.professionals.AddGalleryItems(c.Request.Context(), userID, files)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}
	common.RespondData(c, http.StatusCreated, dto.URLsResponse{URLs: urls})
}

// RemoveGallery обрабатывает DELETE /professional/gallery.
func (h *ProfessionalHandler) RemoveGallery(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req dto.GalleryRemoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "url обязателен")
		return
	}

	if err := h.professionals.RemoveGalleryItem(c.Request.Context(), userID, req.URL); err != nil {
		common.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetPicture обрабатывает POST /professional/picture (multipart, поле file).
func (h *ProfessionalHandler) SetPicture(c *gin.Context) {
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

	url, err := h.professionals.SetProfilePicture(c.Request.Context(), userID, file)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}
	common.RespondData(c, http.StatusOK, dto.URLResponse{URL: url})
}

// Referrals обрабатывает GET /professional/referrals.
func (h *ProfessionalHandler) Referrals(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	progress, err := h.professionals.Referrals(c.Request.Context(), userID)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}
	common.RespondData(c, http.StatusOK, progress)
}

// singleUpload читает поле file. При ошибке ответ уже отправлен.
func singleUpload(c *gin.Context) (service.UploadFile, func(), bool) {
	header, err := c.FormFile("file")
	if err != nil {
		common.RespondBadRequest(c, "файл не найден")
		return service.UploadFile{}, nil, false
	}

	files, closeFiles, err := common.UploadFiles([]*multipart.FileHeader{header})
	if err != nil {
		common.RespondBadRequest(c, "не удалось прочитать файл")
		return service.UploadFile{}, nil, false
	}
	return files[0], closeFiles, true
}
