package main

import (
	"log"

	"drawing-tutor-backend/config"
	"drawing-tutor-backend/internal/api"
	"drawing-tutor-backend/pkg/logger"
)

// @title Drawing Tutor API
// @version 1.0
// @description API for generating step-by-step drawing tutorials.

// @host localhost:8000
// @BasePath /api

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	err = logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	router, err := api.NewRouter(cfg)
	if err != nil {
		log.Fatalf("failed to create router: %v", err)
	}

	if err := router.Run(":8000"); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
