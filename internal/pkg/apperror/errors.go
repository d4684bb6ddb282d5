package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeBadRequest   ErrorCode = "BAD_REQUEST"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
)

// AppError бизнес-ошибка с кодом и HTTP статусом.
type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is сравнивает ошибки по коду и сообщению, чтобы errors.Is работал с копиями.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

// Validation оборачивает ошибку проверки ввода.
func Validation(err error) *AppError {
	return &AppError{
		Code:       ErrCodeValidation,
		Message:    err.Error(),
		HTTPStatus: http.StatusBadRequest,
		Cause:      err,
	}
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeBadRequest, ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// As извлекает AppError из цепочки.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsNotFound(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == ErrCodeNotFound
}

func IsForbidden(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == ErrCodeForbidden
}

func IsConflict(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == ErrCodeConflict
}

func IsValidation(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == ErrCodeValidation
}

var (
	ErrUserNotFound          = New(ErrCodeNotFound, "пользователь не найден")
	ErrProfessionalNotFound  = New(ErrCodeNotFound, "профиль мастера не найден")
	ErrClientNotFound        = New(ErrCodeNotFound, "профиль клиента не найден")
	ErrReviewNotFound        = New(ErrCodeNotFound, "отзыв не найден")
	ErrReplyNotFound         = New(ErrCodeNotFound, "ответ на отзыв не найден")
	ErrReportNotFound        = New(ErrCodeNotFound, "жалоба не найдена")
	ErrNotificationNotFound  = New(ErrCodeNotFound, "уведомление не найдено")
	ErrInboxMessageNotFound  = New(ErrCodeNotFound, "обращение не найдено")
	ErrUnauthorized          = New(ErrCodeUnauthorized, "требуется авторизация")
	ErrInvalidCredentials    = New(ErrCodeUnauthorized, "неверный email или пароль")
	ErrAccountBlocked        = New(ErrCodeForbidden, "аккаунт заблокирован")
	ErrForbidden             = New(ErrCodeForbidden, "недостаточно прав")
	ErrEmailTaken            = New(ErrCodeConflict, "email уже зарегистрирован")
	ErrSlugTaken             = New(ErrCodeConflict, "этот адрес профиля уже занят")
	ErrReplyExists           = New(ErrCodeConflict, "на отзыв уже есть ответ")
	ErrReportAlreadyResolved = New(ErrCodeConflict, "жалоба уже рассмотрена")
	ErrAlreadyReported       = New(ErrCodeConflict, "вы уже пожаловались на этот отзыв")
	ErrInvalidCode           = New(ErrCodeBadRequest, "неверный или просроченный код")
)
