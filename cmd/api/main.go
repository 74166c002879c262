package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"marketplace/internal/adapter/api"
	"marketplace/internal/adapter/api/handler"
	apimiddleware "marketplace/internal/adapter/api/middleware"
	"marketplace/internal/adapter/api/router"
	"marketplace/internal/adapter/repository"
	domainrepo "marketplace/internal/domain/repository"
	"marketplace/internal/infrastructure/firebase"
	"marketplace/internal/infrastructure/i18n"
	"marketplace/internal/infrastructure/ratelimit"
	"marketplace/internal/infrastructure/websocket"
	"marketplace/internal/usecase"
	"marketplace/pkg/config"
	"marketplace/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, closeStorage, err := newStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize %s storage: %v", cfg.StorageBackend, err)
	}
	defer closeStorage()

	verifier, err := newVerifier(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize %s auth: %v", cfg.AuthMode, err)
	}

	userRepo := repository.NewKVUserRepository(storage)
	productRepo := repository.NewKVProductRepository(storage)

	if cfg.IsDevelopment() {
		seedDevelopmentData(ctx, userRepo, productRepo)
	}

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	validator := api.NewValidator()
	translator := i18n.NewTranslator(cfg.DefaultLanguage)
	settingsStore := usecase.NewSettingsStore(ctx, storage, translator, validator.Engine())

	opts := []usecase.StoreOption{
		usecase.WithPusher(settingsStore.GatePusher(wsManager)),
		usecase.WithLocation(cfg.Location()),
	}
	sessions := usecase.NewSessionManager(storage, translator, opts...)
	marketingStore := usecase.NewMarketingStore(ctx, storage, productRepo, sessions.Notifier(), opts...)

	limiter := ratelimit.NewRateLimiter(ratelimit.DefaultPolicies(cfg.MessageRateLimit))
	limiter.StartCleanupRoutine(ctx)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, apimiddleware.UserIDHeader},
	}))

	e.Validator = validator

	router.Setup(e, router.Handlers{
		Conversation: handler.NewConversationHandler(sessions, productRepo),
		Notification: handler.NewNotificationHandler(sessions),
		Marketing:    handler.NewMarketingHandler(marketingStore, productRepo, cfg.Location()),
		Settings:     handler.NewSettingsHandler(settingsStore, translator),
		Health:       handler.NewHealthHandler(storage, sessions),
		WebSocket:    handler.NewWebSocketHandler(wsManager, cfg.AllowedOrigins),
	}, apimiddleware.NewAuthMiddleware(verifier, userRepo), apimiddleware.NewAdminMiddleware(), limiter)

	go func() {
		logger.Info("Starting server on port %s (storage=%s, auth=%s)", cfg.ServerPort, cfg.StorageBackend, cfg.AuthMode)
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			logger.Error("Server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
	logger.Info("Server stopped")
}

func newStorage(ctx context.Context, cfg *config.Config) (domainrepo.Storage, func(), error) {
	switch cfg.StorageBackend {
	case "redis":
		client := repository.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, err
		}
		return repository.NewRedisStorage(client, cfg.StoragePrefix), func() { client.Close() }, nil

	case "firestore":
		opts := firebase.ClientOptions(cfg.FirebaseCredentialsJSON, cfg.FirebaseCredentialsPath)
		client, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewFirestoreStorage(client, cfg.FirestoreCollection), func() { client.Close() }, nil
	}

	logger.Warn("Using in-memory storage; data is lost on restart")
	return repository.NewMemoryStorage(), func() {}, nil
}

func newVerifier(ctx context.Context, cfg *config.Config) (apimiddleware.TokenVerifier, error) {
	if cfg.AuthMode == "firebase" {
		opts := firebase.ClientOptions(cfg.FirebaseCredentialsJSON, cfg.FirebaseCredentialsPath)
		client, err := firebase.NewFirebaseAuthClient(ctx, cfg.FirebaseProject, opts...)
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	if !cfg.IsDevelopment() {
		logger.Warn("Header auth is enabled outside development; any caller can pick a user id")
	}
	return apimiddleware.HeaderVerifier{}, nil
}
