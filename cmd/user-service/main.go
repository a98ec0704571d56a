package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/smartcity/internal/api/http"
	"github.com/spec-kit/smartcity/internal/api/http/handlers"
	"github.com/spec-kit/smartcity/internal/auth"
	"github.com/spec-kit/smartcity/internal/config"
	"github.com/spec-kit/smartcity/internal/events"
	"github.com/spec-kit/smartcity/internal/observability"
	"github.com/spec-kit/smartcity/internal/persistence"
	"github.com/spec-kit/smartcity/internal/repository"
	"github.com/spec-kit/smartcity/internal/rpc"
	"github.com/spec-kit/smartcity/internal/service"
	"github.com/spec-kit/smartcity/internal/worker"
)

func main() {
	cfg, err := config.Load("user-service", "8081")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Postgres.MigrationsDir == "" {
		cfg.Postgres.MigrationsDir = "migrations/user"
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Name)
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	citizenRepo := repository.NewCitizenRepository(pool)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	blacklist := auth.NewBlacklist(redis.Client)
	workerClient := rpc.NewWorkerClient(cfg.Services)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(dispatcher, logger)

	userService := service.NewUserService(service.UserDependencies{
		UserRepo:     userRepo,
		CitizenRepo:  citizenRepo,
		WorkerClient: workerClient,
		Tokens:       tokens,
		Blacklist:    blacklist,
		BcryptCost:   cfg.Auth.BcryptCost,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	authMiddleware := auth.NewMiddleware(tokens, blacklist, cfg.Services.InternalToken)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterUserRoutes(app, httptransport.UserRoutes{
		Health:         handlers.NewHealthHandler(metrics, map[string]handlers.Pinger{"postgres": pg, "redis": redis}),
		Users:          handlers.NewUsersHandler(userService),
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
