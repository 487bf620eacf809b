package api

import (
	"drawing-tutor-backend/config"
	_ "drawing-tutor-backend/docs"
	"drawing-tutor-backend/internal/api/v1/tutorial"
	"drawing-tutor-backend/internal/database"
	"drawing-tutor-backend/internal/middleware"
	"drawing-tutor-backend/internal/services"
	"drawing-tutor-backend/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

func NewRouter(cfg *config.Config) (*gin.Engine, error) {
	// Store connectivity is a degraded mode, not a startup failure:
	// generation keeps working, history stays empty.
	if _, err := database.Connect(cfg.DSN()); err != nil {
		logger.Log.Warn("Could not connect to database, tutorial history will not be saved", zap.Error(err))
	}
	if err := database.ConnectRedis(cfg); err != nil {
		logger.Log.Warn("Could not connect to redis, response caching disabled", zap.Error(err))
	}

	store := database.NewStore(database.DB)
	if store.Available() {
		if err := store.Migrate(); err != nil {
			return nil, err
		}
	}

	geminiClient := services.NewGeminiClient(cfg.GeminiAPIKey)
	tutorialService := services.NewTutorialService(store, geminiClient, cfg)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logger())

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Generated and uploaded images are served straight from disk
	router.Static("/static/uploads", cfg.UploadDir)
	router.Static("/static/tutorials", cfg.TutorialDir)

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Drawing Tutor API", "version": "1.0.0"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	apiGroup := router.Group("/api")
	{
		tutorial.RegisterRoutes(apiGroup, tutorial.NewHandler(tutorialService, cfg.MaxUploadSize))
	}

	return router, nil
}
