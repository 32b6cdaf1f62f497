package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dias221467/Wallpaper_Hub/internal/config"
	"github.com/Dias221467/Wallpaper_Hub/internal/database"
	"github.com/Dias221467/Wallpaper_Hub/internal/handlers"
	"github.com/Dias221467/Wallpaper_Hub/internal/repository"
	"github.com/Dias221467/Wallpaper_Hub/internal/services"
	"github.com/Dias221467/Wallpaper_Hub/internal/storage"
	"github.com/Dias221467/Wallpaper_Hub/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load configuration from the environment and optional .env file
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	logger.InitLogger(cfg.LogLevel, cfg.LogFormat)
	logger.Log.Info("Logger initialized")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		stop()
		logger.Log.WithError(err).Fatal("Server stopped with error")
	}
}

// run serves until ctx is cancelled. Every exit path after the database
// connection is established disconnects the client.
func run(ctx context.Context, cfg *config.Config) error {
	// Connect to MongoDB
	client, db, err := database.ConnectDB(ctx, cfg)
	if err != nil {
		return fmt.Errorf("database connection error: %w", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Log.WithError(err).Error("Failed to disconnect from MongoDB")
			return
		}
		logger.Log.Info("Disconnected from MongoDB")
	}()

	if err := database.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("index creation error: %w", err)
	}

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("object store initialization error: %w", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	wallpaperRepo := repository.NewWallpaperRepository(db)

	// --- Services ---
	userService := services.NewUserService(userRepo, cfg.JWTSecret, cfg.TokenExpiry)
	wallpaperService := services.NewWallpaperService(wallpaperRepo, userRepo, store, cfg.Categories, cfg.MaxPageLimit)

	// --- Handlers ---
	routerCfg := handlers.RouterConfig{
		Users:      handlers.NewUserHandler(userService),
		Wallpapers: handlers.NewWallpaperHandler(wallpaperService, cfg.MaxUploadSize),
		Health: handlers.NewHealthHandler(func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		}),
		JWTSecret:   cfg.JWTSecret,
		CORSOrigins: cfg.CORSOrigins,
	}
	if cfg.Storage.Driver == config.StorageLocal {
		routerCfg.UploadDir = cfg.Storage.UploadDir
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(routerCfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Log.WithField("port", cfg.Port).Info("Server running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
	case <-ctx.Done():
	}
	logger.Log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
