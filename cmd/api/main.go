package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/kurihiro0119/course-site/internal/api"
	"github.com/kurihiro0119/course-site/internal/config"
	"github.com/kurihiro0119/course-site/internal/generator"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	// Initialize storage
	store, err := generator.OpenStorage(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize storage", zap.String("type", cfg.StorageType), zap.Error(err))
	}
	defer store.Close()

	handler := api.NewHandler(store)
	router := api.SetupRoutes(handler, cfg.SiteDir)

	// Start server
	addr := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	logger.Info("Starting preview server", zap.String("addr", addr), zap.String("site_dir", cfg.SiteDir))

	if err := router.Run(addr); err != nil {
		logger.Error("Failed to start server", zap.Error(err))
	}
}
