package routes

import (
	"github.com/sseleimend/e-commerce/internal/handlers"
	"github.com/sseleimend/e-commerce/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupProductRoutes sets up routes for the product catalog
func SetupProductRoutes(r *gin.RouterGroup, productHandler *handlers.ProductHandler, jwtSecret string) {
	products := r.Group("/products")
	products.Use(middleware.AuthRequired(jwtSecret))
	{
		// Public catalog reads (any authenticated user)
		products.GET("/featured", productHandler.GetFeaturedProducts)
		products.GET("/category/:category", productHandler.GetProductsByCategory)
		products.GET("/recommendations", productHandler.GetRecommendations)
	}

	// Admin catalog management
	admin := r.Group("/products")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.GET("/", productHandler.GetAllProducts)
		admin.POST("/", productHandler.CreateProduct)
		admin.PATCH("/:id", productHandler.ToggleFeatured)
		admin.DELETE("/:id", productHandler.DeleteProduct)
	}
}
