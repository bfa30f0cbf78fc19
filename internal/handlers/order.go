// internal/handlers/order.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vanleybasso/ladiversite/internal/i18n"
	"github.com/vanleybasso/ladiversite/internal/models"
	"github.com/vanleybasso/ladiversite/internal/services"
	"github.com/vanleybasso/ladiversite/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	// Admins may inspect another shopper's order history.
	if target := c.Query("user_id"); target != "" && utils.IsAdminFromContext(c) {
		userID = target
	}

	orders, err := h.orderService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"orders": orders,
	})
}

// GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.NotFoundResponse(c, i18n.KeyOrderNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	// Another shopper's order is indistinguishable from a missing one.
	if order.UserID != userID && !utils.IsAdminFromContext(c) {
		utils.NotFoundResponse(c, i18n.KeyOrderNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"order": order,
	})
}

// POST /orders/:id/reviews
func (h *OrderHandler) AttachReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}
	reviewerName := c.GetString("full_name")

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	var req services.AttachReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	order, err := h.orderService.AttachReview(c.Request.Context(), orderID, userID, reviewerName, &req)
	if err != nil {
		if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
			utils.ValidationErrorResponse(c, validationErrors)
			return
		}
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			utils.NotFoundResponse(c, i18n.KeyOrderNotFound)
		case errors.Is(err, services.ErrNotOrderOwner):
			utils.ForbiddenResponse(c, err.Error())
		case errors.Is(err, models.ErrReviewRating):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyReviewInvalid), nil)
		case errors.Is(err, models.ErrItemNotInOrder):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyReviewNotInOrd), nil)
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyReviewSaved),
		"order":   order,
	})
}
