package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/deal_management/internal/handlers"
)

// Handlers aggregates the constructed handler set the router wires up.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Deals     *handlers.DealHandler
	Files     *handlers.FileHandler
	Analytics *handlers.AnalyticsHandler
}

// SetupRoutes registers every route of the application.
func SetupRoutes(router *gin.Engine, h *Handlers) {
	api := router.Group("/api")
	SetupAuthRoutes(api, h.Auth)
	SetupDealRoutes(api, h)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
