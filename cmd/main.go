package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"kaktovottak/referralhub/internal/config"
	"kaktovottak/referralhub/internal/handler"
	"kaktovottak/referralhub/internal/model"
	"kaktovottak/referralhub/internal/platform"
	"kaktovottak/referralhub/internal/repository"
	"kaktovottak/referralhub/internal/service"
	jwtpkg "kaktovottak/referralhub/pkg/jwt"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Initialize logger
	var logger *zap.Logger
	if cfg.Log.Format == "json" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	// 3. Connect to PostgreSQL
	db, err := config.NewPostgresDB(cfg.Database.Postgres)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}

	// 4. Auto-migrate if enabled
	if cfg.Database.Postgres.AutoMigrate {
		if err := model.AutoMigrate(db); err != nil {
			logger.Fatal("failed to auto-migrate", zap.Error(err))
		}
		logger.Info("database migration completed")
	}

	// 5. Initialize state store (Redis or in-memory)
	var stateStore repository.StateStore
	switch cfg.State.Backend {
	case "redis":
		redisClient, err := config.NewRedisClient(cfg.Database.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		stateStore = repository.NewRedisStateStore(redisClient)
		logger.Info("using Redis state store")
	case "memory":
		stateStore = repository.NewMemoryStateStore()
		logger.Info("using in-memory state store")
	default:
		logger.Fatal("unknown state backend", zap.String("backend", cfg.State.Backend))
	}

	// 6. Initialize repositories
	linkRepo := repository.NewPGInviteLinkRepository(db)
	invitedRepo := repository.NewPGInvitedUserRepository(db)
	progressRepo := repository.NewPGRewardProgressRepository(db)

	// 7. Initialize platform client
	telegram, err := platform.NewTelegramClient(cfg.Telegram)
	if err != nil {
		logger.Fatal("failed to init telegram client", zap.Error(err))
	}

	// 8. Initialize JWT manager for the dispatch-layer caller
	jwtManager := jwtpkg.NewManager(cfg.Auth.SigningKey, cfg.Auth.Issuer, cfg.Auth.TokenTTL)

	// 9. Initialize services
	linkService := service.NewLinkService(linkRepo, progressRepo, telegram, cfg.Telegram.ChatLink)
	statsService := service.NewStatsService(invitedRepo, stateStore, cfg.Leaderboard.CacheTTL, cfg.Leaderboard.Limit, logger)
	joinService := service.NewJoinService(linkRepo, invitedRepo, logger)
	rewardService := service.NewRewardService(invitedRepo, progressRepo, telegram, telegram, logger)

	// 10. Initialize handlers
	referralHandler := handler.NewReferralHandler(linkService, statsService)
	adminHandler := handler.NewAdminHandler(rewardService)
	webhookHandler := handler.NewWebhookHandler(joinService)

	// 11. Setup router
	router := handler.SetupRouter(cfg, logger, jwtManager, referralHandler, adminHandler, webhookHandler)

	// 12. Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 13. Start server with graceful shutdown
	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// 14. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited gracefully")
}
