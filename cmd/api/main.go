package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/volunteerhub/internal/api/http"
	"github.com/spec-kit/volunteerhub/internal/api/http/handlers"
	"github.com/spec-kit/volunteerhub/internal/auth"
	"github.com/spec-kit/volunteerhub/internal/config"
	"github.com/spec-kit/volunteerhub/internal/events"
	"github.com/spec-kit/volunteerhub/internal/observability"
	"github.com/spec-kit/volunteerhub/internal/persistence"
	"github.com/spec-kit/volunteerhub/internal/realtime"
	"github.com/spec-kit/volunteerhub/internal/repository"
	"github.com/spec-kit/volunteerhub/internal/service"
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

	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		logger.Fatal("failed to create upload directory", zap.Error(err))
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	applicationRepo := repository.NewApplicationRepository(pool)
	statsRepo := repository.NewStatsRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	hub := realtime.NewHub(logger)
	realtime.NewBridge(hub, logger).Register(dispatcher)

	presence := service.NewPresenceService(redis.Client, logger)
	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		StatsRepo:  statsRepo,
		Presence:   presence,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	projectService := service.NewProjectService(service.ProjectDependencies{
		ProjectRepo: projectRepo,
		StatsRepo:   statsRepo,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	applicationService := service.NewApplicationService(service.ApplicationDependencies{
		ApplicationRepo: applicationRepo,
		ProjectRepo:     projectRepo,
		StatsRepo:       statsRepo,
		Dispatcher:      dispatcher,
		Logger:          logger,
		LegacyCounters:  cfg.Compat.LegacyCounters,
	})
	statsService := service.NewStatsService(statsRepo, cfg.Stats.CacheTTL(), logger)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: int(cfg.Uploads.MaxBytes) + 1024*1024,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(authService, cfg.Uploads),
		Projects:       handlers.NewProjectsHandler(projectService),
		Applications:   handlers.NewApplicationsHandler(applicationService),
		Stats:          handlers.NewStatsHandler(statsService),
		Contact:        handlers.NewContactHandler(logger),
		AuthMiddleware: authMiddleware,
		Hub:            hub,
		UploadDir:      cfg.Uploads.Dir,
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
