package validation

import (
	"fmt"
	"regexp"
	"strings"
)

const MaxSlugLength = 60

var (
	slugSpaces    = regexp.MustCompile(`\s+`)
	slugInvalid   = regexp.MustCompile(`[^\w-]+`)
	slugHyphens   = regexp.MustCompile(`-+`)
	slugCanonical = regexp.MustCompile(`^[a-z0-9_]+(-[a-z0-9_]+)*$`)
)

// Slugify приводит произвольный ввод к slug для URL профиля:
// нижний регистр, пробелы в дефис, всё кроме букв, цифр, "_" и "-" удаляется,
// повторяющиеся дефисы схлопываются.
//
//	Slugify("My Studio!! 2024") == "my-studio-2024"
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// IsSlug проверяет, что строка уже является каноничным slug.
func IsSlug(s string) bool {
	return slugCanonical.MatchString(s)
}

// ValidateSlug проверяет slug, выбранный мастером.
func ValidateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("адрес профиля не может быть пустым")
	}
	if len(slug) > MaxSlugLength {
		return fmt.Errorf("адрес профиля должен быть не длиннее %d символов", MaxSlugLength)
	}
	if !IsSlug(slug) {
		return fmt.Errorf("адрес профиля может содержать только латиницу, цифры и дефис")
	}
	return nil
}
