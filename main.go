package main

import (
	"context"
	"log"
	"time"

	"filme-catalog/cmd"
	"filme-catalog/internal/data/repository"
	"filme-catalog/internal/wire"
	"filme-catalog/pkg/database"
	"filme-catalog/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)

	if config.App.SeedOnStart {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if _, err := cmd.Seed(ctx, repos.Filme, logger); err != nil {
			logger.Error("Failed to seed database", zap.Error(err))
		}
		cancel()
	}

	app := wire.Wiring(repos, config, logger)
	defer app.Close()

	if err := cmd.APIServer(app.Router, config.App.Port, config.App.ShutdownTimeout, logger); err != nil {
		logger.Error("Server exited with error", zap.Error(err))
	}
}
