package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reelhub/internal/core"
	httpProtocol "reelhub/internal/protocols/http"
	"reelhub/internal/reddit"
	"reelhub/internal/repository"
	"reelhub/internal/storage"
	"reelhub/pkg/config"
	"reelhub/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	logger.Info("Starting reelhub server...")

	// Open the storage backend
	store, err := openStore(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close()

	logger.Infof("Storage backend ready (driver=%s)", cfg.Storage.Driver)

	// Optional Redis listing cache; nil cache means every request goes upstream
	var listingCache *reddit.ListingCache
	if cfg.Redis.Enabled {
		listingCache = reddit.NewListingCache(cfg.Redis)
		if listingCache == nil {
			logger.Warn("Redis unreachable, listing cache disabled")
		}
	}

	redditClient := reddit.NewClient(cfg.Reddit, listingCache)

	// Initialize repositories
	userRepo := repository.NewUserRepository(store)
	statsRepo := repository.NewStatsRepository(store)
	boardRepo := repository.NewLeaderboardRepository(store)
	favoritesRepo := repository.NewFavoritesRepository(store)

	// Initialize core services
	authSvc := core.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	listingSvc := core.NewListingService(redditClient, cfg.Reddit.Subreddits)
	favoritesSvc := core.NewFavoritesService(favoritesRepo)
	challengeSvc := core.NewChallengeService(time.Second)
	achieveSvc := core.NewAchievementService(statsRepo, nil)
	boardSvc := core.NewLeaderboardService(boardRepo, nil)

	logger.Info("Initialized all core services")

	httpServer := httpProtocol.NewServer(
		cfg,
		authSvc,
		listingSvc,
		favoritesSvc,
		challengeSvc,
		achieveSvc,
		boardSvc,
		store,
	)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorf("HTTP server panic recovered: %v", r)
			}
		}()
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		logger.Infof("Starting HTTP server on %s", addr)
		if err := httpServer.Start(addr); err != nil {
			logger.Errorf("HTTP server error: %v", err)
		}
	}()

	logger.Info("Press Ctrl+C to shutdown")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	logger.Infof("Received signal: %v", sig)

	logger.Info("Shutting down...")
	challengeSvc.Shutdown()
	logger.Info("Shutdown complete")
}

// openStore selects the storage backend from config.
func openStore(cfg config.StorageConfig) (storage.Store, error) {
	switch cfg.Driver {
	case "memory":
		return storage.NewMemoryStore(), nil
	case "sqlite", "":
		return storage.NewSQLiteStore(cfg.Path)
	case "postgres":
		return storage.NewPostgresStore(cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
	}
}
