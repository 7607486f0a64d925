package routes

import (
	"github.com/sseleimend/e-commerce/internal/handlers"
	"github.com/sseleimend/e-commerce/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupCartRoutes sets up routes for cart management
func SetupCartRoutes(r *gin.RouterGroup, cartHandler *handlers.CartHandler, jwtSecret string) {
	cart := r.Group("/cart")
	cart.Use(middleware.AuthRequired(jwtSecret))
	{
		cart.GET("/", cartHandler.GetCartProducts)
		cart.POST("/", cartHandler.AddToCart)
		cart.DELETE("/", cartHandler.RemoveFromCart)
		cart.PUT("/:id", cartHandler.UpdateQuantity)
	}
}
