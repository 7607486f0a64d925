package handlers

import (
	"errors"
	"net/http"

	"github.com/sseleimend/e-commerce/internal/services"
	"github.com/sseleimend/e-commerce/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// respondServiceError maps service sentinel errors to the API error
// envelope. Unknown errors surface as a generic server fault.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid checkout input")
	case errors.Is(err, services.ErrCouponNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "COUPON_NOT_FOUND", "Coupon not found")
	case errors.Is(err, services.ErrCouponInactive):
		utils.ErrorResponse(c, http.StatusBadRequest, "COUPON_INACTIVE", "Coupon is not active")
	case errors.Is(err, services.ErrCouponExpired):
		utils.ErrorResponse(c, http.StatusBadRequest, "COUPON_EXPIRED", "Coupon has expired")
	case errors.Is(err, services.ErrInvalidCoupon):
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_COUPON", "Invalid coupon")
	case errors.Is(err, services.ErrPaymentProvider):
		utils.ErrorResponse(c, http.StatusBadGateway, "PAYMENT_PROVIDER_ERROR", "Payment provider error")
	case errors.Is(err, services.ErrPaymentNotCompleted):
		utils.ErrorResponse(c, http.StatusBadRequest, "PAYMENT_NOT_COMPLETED", "Payment not completed")
	case errors.Is(err, services.ErrSessionNotFound):
		utils.NotFoundResponse(c, "Checkout session")
	case errors.Is(err, services.ErrProductNotFound):
		utils.NotFoundResponse(c, "Product")
	case errors.Is(err, services.ErrCartItemNotFound):
		utils.NotFoundResponse(c, "Cart item")
	case errors.Is(err, services.ErrOrderNotFound):
		utils.NotFoundResponse(c, "Order")
	default:
		utils.InternalServerErrorResponse(c)
	}
}

func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}

	objectID, ok := userID.(primitive.ObjectID)
	if !ok {
		utils.BadRequestResponse(c, "Invalid user ID")
		return primitive.NilObjectID, false
	}

	return objectID, true
}
