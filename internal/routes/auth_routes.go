package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/deal_management/internal/auth"
	"github.com/deal_management/internal/handlers"
)

// SetupAuthRoutes registers the authentication routes.
func SetupAuthRoutes(router *gin.RouterGroup, h *handlers.AuthHandler) {
	apiV1 := router.Group("/v1")
	{
		// Public routes: register and login.
		publicAuthGroup := apiV1.Group("/auth")
		{
			// POST /api/v1/auth/register
			publicAuthGroup.POST("/register", h.Register)
			// POST /api/v1/auth/login
			publicAuthGroup.POST("/login", h.Login)
		}

		// Logout needs a valid token to know which JTI to denylist.
		protectedAuthGroup := apiV1.Group("/auth")
		protectedAuthGroup.Use(auth.JWTMiddleware())
		{
			// POST /api/v1/auth/logout
			protectedAuthGroup.POST("/logout", h.Logout)
		}
	}
}
