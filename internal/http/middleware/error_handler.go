package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/indievia/indievia-backend/internal/dto"
	"github.com/indievia/indievia-backend/internal/logger"
	"github.com/indievia/indievia-backend/internal/pkg/apperror"
	"github.com/indievia/indievia-backend/pkg/upload"
)

const internalErrorMessage = "внутренняя ошибка сервера"

// ErrorResponse переводит ошибку в HTTP статус и тело ответа.
// Бизнес-ошибки (apperror) отдаются как есть, всё остальное маскируется.
func ErrorResponse(err error) (int, dto.ErrorResponse) {
	var uploadErr *upload.Error
	if errors.As(err, &uploadErr) {
		return http.StatusBadRequest, dto.ErrorResponse{Error: uploadErr.Message, Field: uploadErr.Field, File: uploadErr.File}
	}
	if appErr, ok := apperror.As(err); ok {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		if status >= http.StatusInternalServerError {
			return status, dto.ErrorResponse{Error: internalErrorMessage}
		}
		return status, dto.ErrorResponse{Error: appErr.Message}
	}
	return http.StatusInternalServerError, dto.ErrorResponse{Error: internalErrorMessage}
}

// ErrorHandler отвечает на ошибки, добавленные через c.Error, если
// обработчик сам ничего не записал.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status, body := ErrorResponse(err)
		if status >= http.StatusInternalServerError {
			logger.WithComponent("http").WithFields(logrus.Fields{
				"error":  err.Error(),
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
			}).Error("request error")
		}
		c.JSON(status, body)
	}
}
