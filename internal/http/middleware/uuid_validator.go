package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/indievia/indievia-backend/internal/dto"
)

// UUIDValidator проверяет, что параметр с указанным именем является валидным UUID.
// Использование: router.PATCH("/reviews/:id/reply", UUIDValidator("id"), handler.EditReply)
func UUIDValidator(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param(paramName)
		if idStr == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "параметр " + paramName + " обязателен"})
			return
		}

		if _, err := uuid.Parse(idStr); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "параметр " + paramName + " должен быть валидным UUID"})
			return
		}

		c.Next()
	}
}
