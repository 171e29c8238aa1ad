package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gimhantharuke456/policeappbackend/internal/adapters/http/middleware"
	"github.com/gimhantharuke456/policeappbackend/internal/adapters/http/routes"
	"github.com/gimhantharuke456/policeappbackend/internal/adapters/persistence/models"
	"github.com/gimhantharuke456/policeappbackend/internal/adapters/storage"
	"github.com/gimhantharuke456/policeappbackend/internal/config"
	"github.com/gimhantharuke456/policeappbackend/internal/core/services"
	"github.com/gimhantharuke456/policeappbackend/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	_ "github.com/gimhantharuke456/policeappbackend/docs" // Swagger docs
)

const shutdownTimeout = 15 * time.Second

// @title Police App API
// @version 1.0
// @description Officer accounts and tourist violation records for the tourist police mobile app
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey AdminKey
// @in header
// @name X-Admin-Key

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to load configuration")
	}

	logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to connect to database")
	}
	defer func() {
		if err := config.CloseDatabase(db); err != nil {
			log.Error().Err(err).Msg("❌ Error closing database")
		}
	}()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to auto migrate")
	}
	log.Info().Msg("✅ Database migration completed")

	if cfg.IsDev() {
		if err := config.NewSeeder(db).Run(context.Background(), cfg.RosterSeed); err != nil {
			log.Warn().Err(err).Msg("⚠️ Warning: Failed to seed data")
		}
	}

	// Object stores
	uploads, err := storage.NewLocalStore(cfg.Upload.Dir, "/uploads")
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to open upload store")
	}
	tracks, err := storage.Open(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Storage.Backend).Msg("❌ Failed to open track store")
	}
	defer tracks.Close()

	// Scheduled voice record sync
	audioSync := services.NewAudioSyncService(cfg.AudioSync.SourceDir, tracks, cfg.Storage.TracksPrefix, cfg.AudioSync.Schedule)
	if err := audioSync.Start(); err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to schedule audio sync")
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Police App API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    int(cfg.Upload.MaxBytes) + 1<<20,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg, routes.Stores{Uploads: uploads, Tracks: tracks})

	// Graceful shutdown
	go gracefulShutdown(app, audioSync)

	// Start server
	log.Info().Str("port", cfg.Port).Str("mode", cfg.AppMode).Msg("🚀 Server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error().Err(err).Msg("❌ Failed to start server")
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App, audioSync *services.AudioSyncService) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := audioSync.Stop(ctx); err != nil {
		log.Error().Err(err).Msg("❌ Error stopping audio sync")
	}
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("❌ Error during shutdown")
	}
	log.Info().Msg("✅ Server stopped gracefully")
}
