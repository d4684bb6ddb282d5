package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/indievia/indievia-backend/internal/dto"
	"github.com/indievia/indievia-backend/internal/http/handlers/common"
)

type verificationService interface {
	RequestEmailConfirmation(ctx context.Context, userID uuid.UUID) error
	ConfirmEmail(ctx context.Context, userID uuid.UUID, code string) error
	RequestPhoneVerification(ctx context.Context, userID uuid.UUID, phone string) error
	VerifyPhone(ctx context.Context, userID uuid.UUID, code string) error
}

type VerificationHandler struct {
	svc verificationService
}

func NewVerificationHandler(s verificationService) *VerificationHandler {
	return &VerificationHandler{svc: s}
}

// RequestEmailCode POST /auth/confirm/request
func (h *VerificationHandler) RequestEmailCode(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	if err := h.svc.RequestEmailConfirmation(c.Request.Context(), userID); err != nil {
		common.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// ConfirmEmail POST /auth/confirm
func (h *VerificationHandler) ConfirmEmail(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req dto.CodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "код должен состоять из 6 цифр")
		return
	}

	if err := h.svc.ConfirmEmail(c.Request.Context(), userID, req.Code); err != nil {
		common.RespondServiceError(c, err)
		return
	}
	common.RespondData(c, http.StatusOK, gin.H{"email_confirmed": true})
}

// RequestPhoneCode POST /auth/verify-phone/request
func (h *VerificationHandler) RequestPhoneCode(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req dto.PhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "телефон должен быть в формате +79991234567")
		return
	}

	if err := h.svc.RequestPhoneVerification(c.Request.Context(), userID, req.Phone); err != nil {
		common.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// VerifyPhone POST /auth/verify-phone
func (h *VerificationHandler) VerifyPhone(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req dto.CodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "код должен состоять из 6 цифр")
		return
	}

	if err := h.svc.VerifyPhone(c.Request.Context(), userID, req.Code); err != nil {
		common.RespondServiceError(c, err)
		return
	}
	common.RespondData(c, http.StatusOK, gin.H{"phone_verified": true})
}
