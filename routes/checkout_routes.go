package routes

import (
	"github.com/sseleimend/e-commerce/internal/handlers"
	"github.com/sseleimend/e-commerce/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupCheckoutRoutes sets up routes for the checkout flow
func SetupCheckoutRoutes(r *gin.RouterGroup, checkoutHandler *handlers.CheckoutHandler, jwtSecret string) {
	payments := r.Group("/payments")
	payments.Use(middleware.AuthRequired(jwtSecret))
	{
		payments.POST("/create-checkout-session", checkoutHandler.CreateCheckoutSession)
		payments.POST("/checkout-success", checkoutHandler.ConfirmCheckout)
	}
}
