package service

import (
	"context"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/indievia/indievia-backend/internal/cache"
	"github.com/indievia/indievia-backend/internal/models"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// StaticSitemapPaths страницы, которые всегда попадают в sitemap.
var StaticSitemapPaths = []string{"/", "/about", "/terms", "/privacy"}

// SlugLister перечисляет slug всех публичных мастеров.
type SlugLister interface {
	ListSlugs(ctx context.Context) ([]models.ProfessionalSlug, error)
}

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
}

// SitemapService собирает sitemap.xml.
type SitemapService struct {
	slugs   SlugLister
	cache   *cache.Cache
	siteURL string
	ttl     time.Duration
}

// NewSitemapService создаёт сервис. siteURL без завершающего слэша.
func NewSitemapService(slugs SlugLister, c *cache.Cache, siteURL string, ttl time.Duration) *SitemapService {
	return &SitemapService{slugs: slugs, cache: c, siteURL: siteURL, ttl: ttl}
}

// XML возвращает документ из кэша или строит его заново.
func (s *SitemapService) XML(ctx context.Context) ([]byte, error) {
	return s.cache.GetOrSetBytes(ctx, cache.SitemapKey, s.ttl, s.build)
}

func (s *SitemapService) build(ctx context.Context) ([]byte, error) {
	slugs, err := s.slugs.ListSlugs(ctx)
	if err != nil {
		return nil, fmt.Errorf("sitemap: list slugs %w", err)
	}
	return RenderSitemap(s.siteURL, slugs)
}

// RenderSitemap формирует urlset из статических страниц и профилей мастеров.
func RenderSitemap(siteURL string, slugs []models.ProfessionalSlug) ([]byte, error) {
	set := urlset{Xmlns: sitemapNamespace, URLs: make([]sitemapURL, 0, len(StaticSitemapPaths)+len(slugs))}
	for _, p := range StaticSitemapPaths {
		set.URLs = append(set.URLs, sitemapURL{Loc: siteURL + p})
	}
	for _, ps := range slugs {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        siteURL + "/professional/" + ps.Slug,
			LastMod:    ps.UpdatedAt.UTC().Format("2006-01-02"),
			ChangeFreq: "weekly",
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("sitemap: marshal %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
