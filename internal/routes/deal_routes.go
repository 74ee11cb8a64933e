package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/deal_management/internal/auth"
)

// SetupDealRoutes registers the deal, file and analytics routes. All of them
// require an authenticated caller; per-deal authorization happens in the
// service layer.
func SetupDealRoutes(router *gin.RouterGroup, h *Handlers) {
	apiV1 := router.Group("/v1")
	apiV1.Use(auth.JWTMiddleware())
	{
		deals := apiV1.Group("/deals")
		{
			deals.POST("", h.Deals.CreateDeal)
			deals.GET("", h.Deals.GetDeals)
			deals.GET("/:id", h.Deals.GetDeal)
			deals.PUT("/:id", h.Deals.UpdateDeal)
			deals.DELETE("/:id", h.Deals.DeleteDeal)
			deals.GET("/:id/history", h.Deals.GetDealHistory)
			deals.POST("/:id/files", h.Files.AddFile)
			deals.GET("/:id/files", h.Files.ListFiles)
		}

		// DELETE /api/v1/files/:id
		apiV1.DELETE("/files/:id", h.Files.DeleteFile)

		// GET /api/v1/analytics
		apiV1.GET("/analytics", h.Analytics.GetAnalytics)
	}
}
