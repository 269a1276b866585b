package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/materials-service/internal/api/http"
	"github.com/spec-kit/materials-service/internal/api/http/handlers"
	"github.com/spec-kit/materials-service/internal/auth"
	"github.com/spec-kit/materials-service/internal/config"
	"github.com/spec-kit/materials-service/internal/events"
	"github.com/spec-kit/materials-service/internal/observability"
	"github.com/spec-kit/materials-service/internal/persistence"
	"github.com/spec-kit/materials-service/internal/repository"
	"github.com/spec-kit/materials-service/internal/service"
	"github.com/spec-kit/materials-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	materialRepo := repository.NewMaterialRepository(pool)
	chatRepo := repository.NewChatMessageRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	searchCache := persistence.NewSearchCache(redis, cfg.Catalog.SearchCacheTTL(), logger)

	authService := service.NewAuthService(*cfg, userRepo, dispatcher)
	profileService := service.NewProfileService(userRepo, materialRepo, dispatcher)
	catalogService := service.NewCatalogService(materialRepo, searchCache, dispatcher)
	// No text-generation collaborator is wired; the advisory endpoint logs
	// the question and reports the service unavailable.
	advisoryService := service.NewAdvisoryService(chatRepo, materialRepo, nil, dispatcher)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewMiddleware(authService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Profile:        handlers.NewProfileHandler(profileService),
		Catalog:        handlers.NewCatalogHandler(catalogService, advisoryService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
