package cache

import (
	"strconv"
	"strings"
)

const (
	// ProfessionalPrefix префикс публичных профилей мастеров.
	ProfessionalPrefix = "professional:"
	// SearchPrefix префикс страниц поиска мастеров.
	SearchPrefix = "search:professionals:"
	// SitemapKey ключ готового sitemap.xml.
	SitemapKey = "sitemap:xml"
)

// ProfessionalKey ключ публичного профиля по slug.
func ProfessionalKey(slug string) string {
	return ProfessionalPrefix + slug
}

// SearchKey ключ страницы поиска. Регистр запроса и города не важен.
func SearchKey(query, city string, page, perPage int) string {
	return SearchPrefix + strings.Join([]string{
		strings.ToLower(strings.TrimSpace(query)),
		strings.ToLower(strings.TrimSpace(city)),
		strconv.Itoa(page),
		strconv.Itoa(perPage),
	}, "|")
}
