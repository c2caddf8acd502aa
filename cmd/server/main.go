package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newsportal/internal/api"
	"newsportal/internal/app/service"
	"newsportal/internal/common/security"
	"newsportal/internal/domain/repository"
	"newsportal/internal/platform/cache"
	"newsportal/internal/platform/config"
	"newsportal/internal/platform/database"
	"newsportal/internal/platform/storage"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// 1. Load Configuration
	config.Load()
	log.Info().Msg("Configuration loaded")

	// 2. Initialize JWT
	security.InitJWT()
	log.Info().Msg("JWT initialized")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()

	if err := database.Migrate(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}
	log.Info().Msg("Database migrations applied")

	// 4. Initialize Redis (token denylist)
	cache.ConnectRedis()
	defer cache.CloseRedis()
	denylist := cache.NewTokenDenylist(cache.RDB)

	// 5. Initialize Image Store
	images, err := storage.NewLocalImageStore(config.AppConfig.UploadDir, config.AppConfig.UploadPrefix)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize image store")
	}

	// 6. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	newsRepo := repository.NewPgNewsRepository(database.DB)

	// 7. Initialize Services
	authService := service.NewAuthService(userRepo)
	newsService := service.NewNewsService(newsRepo)
	statsService := service.NewStatsService(newsRepo, userRepo, config.AppConfig.RecentStatsLimit)

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(authService, newsService, statsService, userRepo, denylist, images)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", config.AppConfig.APIPort).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Str("port", config.AppConfig.APIPort).Msg("Could not listen")
		}
	}()

	<-stop // Wait for interrupt signal

	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Server stopped gracefully")
}
