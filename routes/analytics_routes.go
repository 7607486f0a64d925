package routes

import (
	"github.com/sseleimend/e-commerce/internal/handlers"
	"github.com/sseleimend/e-commerce/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAnalyticsRoutes sets up admin routes for sales analytics
func SetupAnalyticsRoutes(r *gin.RouterGroup, analyticsHandler *handlers.AnalyticsHandler, jwtSecret string) {
	analytics := r.Group("/analytics")
	analytics.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		analytics.GET("/", analyticsHandler.GetAnalytics)
	}
}
