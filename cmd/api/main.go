package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/calendarapp/calendar-service/internal/api/http"
	"github.com/calendarapp/calendar-service/internal/api/http/handlers"
	"github.com/calendarapp/calendar-service/internal/auth"
	"github.com/calendarapp/calendar-service/internal/config"
	"github.com/calendarapp/calendar-service/internal/events"
	"github.com/calendarapp/calendar-service/internal/observability"
	"github.com/calendarapp/calendar-service/internal/persistence"
	"github.com/calendarapp/calendar-service/internal/repository"
	"github.com/calendarapp/calendar-service/internal/repository/memory"
	"github.com/calendarapp/calendar-service/internal/service"
	"github.com/calendarapp/calendar-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
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

	var (
		userRepo  repository.UserRepository
		eventRepo repository.EventRepository
	)
	if pg.Available() {
		userRepo = repository.NewUserRepository(pg.PoolHandle())
		eventRepo = repository.NewEventRepository(pg.PoolHandle())
	} else {
		logger.Warn("using in-memory storage; data is lost on restart")
		users := memory.NewUserRepository()
		userRepo = users
		eventRepo = memory.NewEventRepository(users)
	}

	readiness := map[string]handlers.Pinger{}
	if pg.Available() {
		readiness["postgres"] = pg
	}

	rdb, err := persistence.NewRedis(ctx, cfg.Redis, logger)
	if err != nil {
		logger.Fatal("invalid redis configuration", zap.Error(err))
	}
	var attempts repository.LoginAttemptRepository
	if rdb != nil {
		defer rdb.Close()
		attempts = repository.NewLoginAttemptRepository(rdb.Client)
		readiness["redis"] = rdb
	} else {
		attempts = memory.NewLoginAttemptRepository(nil)
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	if err != nil {
		logger.Fatal("invalid token configuration", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger, metrics))

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:      userRepo,
		LoginAttempts: attempts,
		Dispatcher:    dispatcher,
		Tokens:        tokens,
		Logger:        logger,
	})
	eventService := service.NewEventService(eventRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler(logger, metrics),
	})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:       logger,
		Metrics:      metrics,
		Timeout:      cfg.App.RequestTimeout(),
		AllowOrigins: cfg.App.CORSAllowOrigins,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, readiness),
		Auth:    handlers.NewAuthHandler(authService),
		Events:  handlers.NewEventsHandler(eventService),
		Gate:    auth.NewGate(tokens, logger),
		Metrics: metrics,
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
