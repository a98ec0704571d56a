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
	"github.com/spec-kit/smartcity/internal/lock"
	"github.com/spec-kit/smartcity/internal/observability"
	"github.com/spec-kit/smartcity/internal/persistence"
	"github.com/spec-kit/smartcity/internal/repository"
	"github.com/spec-kit/smartcity/internal/rpc"
	"github.com/spec-kit/smartcity/internal/service"
	"github.com/spec-kit/smartcity/internal/worker"
)

func main() {
	cfg, err := config.Load("worker-service", "8082")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Postgres.MigrationsDir == "" {
		cfg.Postgres.MigrationsDir = "migrations/worker"
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

	pool := pg.PoolHandle()
	workerRepo := repository.NewWorkerRepository(pool)
	assignmentRepo := repository.NewAssignmentRepository(pool)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	complaintClient := rpc.NewComplaintClient(cfg.Services)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(dispatcher, logger)

	workerService := service.NewWorkerService(workerRepo, complaintClient, logger)
	assignmentService := service.NewAssignmentService(service.AssignmentDependencies{
		AssignmentRepo:  assignmentRepo,
		WorkerRepo:      workerRepo,
		ComplaintClient: complaintClient,
		Locks:           lock.New(),
		Dispatcher:      dispatcher,
		Logger:          logger,
	})
	authMiddleware := auth.NewMiddleware(tokens, nil, cfg.Services.InternalToken)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterWorkerRoutes(app, httptransport.WorkerRoutes{
		Health:         handlers.NewHealthHandler(metrics, map[string]handlers.Pinger{"postgres": pg}),
		Workers:        handlers.NewWorkersHandler(workerService),
		Assignments:    handlers.NewAssignmentsHandler(assignmentService),
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
