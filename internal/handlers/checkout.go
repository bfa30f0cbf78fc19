// internal/handlers/checkout.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/vanleybasso/ladiversite/internal/i18n"
	"github.com/vanleybasso/ladiversite/internal/services"
	"github.com/vanleybasso/ladiversite/internal/utils"
)

type CheckoutHandler struct {
	checkoutService *services.CheckoutService
}

func NewCheckoutHandler(checkoutService *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// POST /checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	quote, err := h.checkoutService.PlaceOrder(c.Request.Context(), userID, &req)
	if err != nil {
		if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
			utils.ValidationErrorResponse(c, validationErrors)
			return
		}
		if errors.Is(err, services.ErrCartEmpty) {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyCartEmpty))
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCheckoutQuoted),
		"quote":   quote,
	})
}

// POST /payments/confirm
func (h *CheckoutHandler) ConfirmPayment(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}
	email := c.GetString("email")
	fullName := c.GetString("full_name")

	var req services.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	order, err := h.checkoutService.ConfirmPayment(c.Request.Context(), userID, email, fullName, &req)
	if err != nil {
		if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
			utils.ValidationErrorResponse(c, validationErrors)
			return
		}
		switch {
		case errors.Is(err, services.ErrDraftNotFound):
			utils.NotFoundResponse(c, i18n.KeyCheckoutDraftNotFound)
		case errors.Is(err, services.ErrDraftConsumed):
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyCheckoutDraftConsumed))
		case errors.Is(err, services.ErrCardDetails):
			utils.BadRequestResponse(c, err.Error(), nil)
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPaymentConfirmed),
		"order":   order,
	})
}
