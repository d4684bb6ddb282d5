package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_IsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("review service: %w", ErrReviewNotFound)
	assert.True(t, errors.Is(err, ErrReviewNotFound))
	assert.True(t, IsNotFound(err))
	assert.False(t, IsConflict(err))
}

func TestValidation_StatusAndMessage(t *testing.T) {
	err := Validation(errors.New("рейтинг должен быть от 1 до 5"))
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
	assert.Equal(t, "рейтинг должен быть от 1 до 5", err.Message)
	assert.True(t, IsValidation(err))
}

func TestCodeToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusConflict, ErrSlugTaken.HTTPStatus)
	assert.Equal(t, http.StatusForbidden, ErrForbidden.HTTPStatus)
	assert.Equal(t, http.StatusUnauthorized, ErrInvalidCredentials.HTTPStatus)
	assert.Equal(t, http.StatusInternalServerError, New(ErrCodeInternal, "x").HTTPStatus)
}
