package routes

import (
	"github.com/sseleimend/e-commerce/internal/handlers"
	"github.com/sseleimend/e-commerce/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupCouponRoutes sets up routes for coupon lookup and validation
func SetupCouponRoutes(r *gin.RouterGroup, couponHandler *handlers.CouponHandler, jwtSecret string) {
	coupons := r.Group("/coupons")
	coupons.Use(middleware.AuthRequired(jwtSecret))
	{
		coupons.GET("/", couponHandler.GetCoupon)
		coupons.POST("/validate", couponHandler.ValidateCoupon)
	}
}
