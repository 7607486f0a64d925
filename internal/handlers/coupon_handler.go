package handlers

import (
	"github.com/sseleimend/e-commerce/internal/models"
	"github.com/sseleimend/e-commerce/internal/services"
	"github.com/sseleimend/e-commerce/internal/utils"

	"github.com/gin-gonic/gin"
)

type CouponHandler struct {
	couponService services.CouponService
}

func NewCouponHandler(couponService services.CouponService) *CouponHandler {
	return &CouponHandler{
		couponService: couponService,
	}
}

// GetCoupon returns the caller's most recent active coupon, if any
func (h *CouponHandler) GetCoupon(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	coupon, err := h.couponService.GetCoupon(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Coupon retrieved", coupon)
}

// ValidateCoupon checks a coupon code against the caller's coupons
func (h *CouponHandler) ValidateCoupon(c *gin.Context) {
	var request models.ValidateCouponRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	coupon, err := h.couponService.ValidateCoupon(c.Request.Context(), request.Code, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Coupon is valid", coupon)
}
