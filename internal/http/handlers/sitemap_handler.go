package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/indievia/indievia-backend/internal/http/handlers/common"
)

type sitemapService interface {
	XML(ctx context.Context) ([]byte, error)
}

// SitemapHandler отдаёт sitemap.xml для поисковиков.
type SitemapHandler struct {
	sitemap sitemapService
}

func NewSitemapHandler(sitemap sitemapService) *SitemapHandler {
	return &SitemapHandler{sitemap: sitemap}
}

// Sitemap обрабатывает GET /sitemap.xml.
func (h *SitemapHandler) Sitemap(c *gin.Context) {
	body, err := h.sitemap.XML(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		common.RespondError(c, http.StatusInternalServerError, "не удалось сформировать sitemap")
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}
