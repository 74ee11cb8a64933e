package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/deal_management/configs"
	"github.com/deal_management/internal/handlers"
	"github.com/deal_management/internal/repositories"
	"github.com/deal_management/internal/routes"
	"github.com/deal_management/internal/services"
	"github.com/deal_management/pkg/db"
)

// @title Deal Management API
// @version 1.0
// @description Internal deal-tracking service: deals, status history, file links and analytics.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()
	configs.LoadConfig()

	db.InitDB()
	defer db.CloseDB()
	gormDB := db.GetDB()

	dealRepo := repositories.NewGormDealRepository(gormDB)
	historyRepo := repositories.NewGormStatusHistoryRepository(gormDB)
	fileRepo := repositories.NewGormFileRepository(gormDB)
	userRepo := repositories.NewGormUserRepository(gormDB)

	notifier := services.NewEmailNotifier()
	dealService := services.NewDealService(dealRepo, historyRepo, notifier)
	fileService := services.NewFileService(fileRepo, dealRepo)
	analyticsService := services.NewAnalyticsService(dealRepo)
	userService := services.NewUserService(userRepo)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{configs.AppConfig.FrontendBaseURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	routes.SetupRoutes(router, &routes.Handlers{
		Auth:      handlers.NewAuthHandler(userService),
		Deals:     handlers.NewDealHandler(dealService),
		Files:     handlers.NewFileHandler(fileService),
		Analytics: handlers.NewAnalyticsHandler(analyticsService),
	})

	port := configs.AppConfig.ServerPort
	log.Printf("Server starting on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
