package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Константы валидации
const (
	MinFullNameLength   = 2
	MaxFullNameLength   = 100
	MaxBioLength        = 1000
	MaxPositionLength   = 100
	MaxAddressLength    = 200
	MaxCityLength       = 100
	MaxURLLength        = 500
	MinReviewBodyLength = 10
	MaxReviewBodyLength = 3000
	MinReplyLength      = 1
	MaxReplyLength      = 2000
	MaxReportReason     = 200
	MaxReportDetails    = 2000
	MaxSubjectLength    = 200
	MaxInboxBodyLength  = 5000
	MinRating           = 1
	MaxRating           = 5
)

var (
	emailLocalRegex  = regexp.MustCompile(`^[a-z0-9._+-]+$`)
	emailDomainRegex = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	phoneRegex       = regexp.MustCompile(`^\+[1-9][0-9]{7,14}$`)
	fullNameRegex    = regexp.MustCompile(`^[\p{L}\p{M}0-9\s\-'.,&()]+$`)
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("некорректный формат email")
	}

	localPart, domainPart := parts[0], parts[1]
	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}
	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("доменная часть email должна быть от 1 до 255 символов")
	}
	if !emailLocalRegex.MatchString(localPart) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}
	if !emailDomainRegex.MatchString(domainPart) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}
	return nil
}

// ValidatePhone проверяет номер в формате E.164.
func ValidatePhone(phone string) error {
	if !phoneRegex.MatchString(strings.TrimSpace(phone)) {
		return fmt.Errorf("телефон должен быть в международном формате, например +33612345678")
	}
	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// ValidateFullName проверяет отображаемое имя мастера или клиента.
func ValidateFullName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("имя обязательно")
	}
	if err := ValidateLength("имя", name, MinFullNameLength, MaxFullNameLength); err != nil {
		return err
	}
	if !fullNameRegex.MatchString(name) {
		return fmt.Errorf("имя содержит недопустимые символы")
	}
	return nil
}

// ValidateOptional проверяет необязательное текстовое поле по максимальной длине.
func ValidateOptional(fieldName string, value *string, max int) error {
	if value == nil || *value == "" {
		return nil
	}
	return ValidateLength(fieldName, strings.TrimSpace(*value), 0, max)
}

// ValidateURL проверяет необязательную внешнюю ссылку (соцсети, сайт).
func ValidateURL(fieldName string, link *string) error {
	if link == nil || *link == "" {
		return nil
	}
	linkStr := strings.TrimSpace(*link)
	if err := ValidateLength(fieldName, linkStr, 0, MaxURLLength); err != nil {
		return err
	}

	parsedURL, err := url.Parse(linkStr)
	if err != nil {
		return fmt.Errorf("%s: некорректный формат URL", fieldName)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s: ссылка должна начинаться с http:// или https://", fieldName)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s: ссылка должна содержать доменное имя", fieldName)
	}
	return nil
}

// ValidateRating проверяет оценку отзыва.
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("рейтинг должен быть от %d до %d", MinRating, MaxRating)
	}
	return nil
}

// ValidateReviewBody проверяет текст отзыва.
func ValidateReviewBody(body string) error {
	body = strings.TrimSpace(body)
	if body == "" {
		return fmt.Errorf("текст отзыва обязателен")
	}
	return ValidateLength("текст отзыва", body, MinReviewBodyLength, MaxReviewBodyLength)
}

// ValidateReply проверяет текст ответа мастера.
func ValidateReply(body string) error {
	body = strings.TrimSpace(body)
	if body == "" {
		return fmt.Errorf("ответ не может быть пустым")
	}
	return ValidateLength("ответ", body, MinReplyLength, MaxReplyLength)
}
