package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/shubh1628/Dabba-delight/internal/api/http"
	"github.com/shubh1628/Dabba-delight/internal/api/http/handlers"
	"github.com/shubh1628/Dabba-delight/internal/auth"
	"github.com/shubh1628/Dabba-delight/internal/config"
	"github.com/shubh1628/Dabba-delight/internal/events"
	"github.com/shubh1628/Dabba-delight/internal/observability"
	"github.com/shubh1628/Dabba-delight/internal/persistence"
	"github.com/shubh1628/Dabba-delight/internal/repository"
	"github.com/shubh1628/Dabba-delight/internal/service"
	"github.com/shubh1628/Dabba-delight/internal/session"
	"github.com/shubh1628/Dabba-delight/internal/worker"
)

const shutdownTimeout = 15 * time.Second

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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	dispatcher := events.NewInMemoryDispatcher(logger)

	var (
		redis   *persistence.Redis
		backend session.Backend
	)
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		redis, err = persistence.NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Fatal("failed to connect redis", zap.Error(err))
		}
		defer redis.Close()
		backend = session.NewRedisBackend(redis.Client, session.ChannelName(cfg.Session.KeyPrefix))
	default:
		backend = session.NewMemoryBackend()
	}
	store := session.NewStore(backend, dispatcher, logger, cfg.Session.KeyPrefix)

	activity := service.NewActivityService(store, logger)
	relayDone := worker.StartSessionWorkers(ctx, store, activity, logger)

	userRepo := repository.NewUserRepository(pg.PoolHandle())
	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo: userRepo,
		Sessions: store,
		Logger:   logger,
	})

	tokens := auth.NewTokenManager(cfg.Auth.ScopeSecret, cfg.Auth.ScopeTTLMinutes)
	sessionMiddleware := auth.NewSessionMiddleware(tokens, store, cfg.Session, logger)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	sessionHandler := handlers.NewSessionHandler(store, sessionMiddleware, logger)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, handlers.HealthDependencies{
			Postgres: pg,
			Redis:    redis,
			Sessions: store,
			Metrics:  metrics,
		}),
		Auth:              handlers.NewAuthHandler(authService, sessionMiddleware),
		Session:           sessionHandler,
		Pages:             handlers.NewPagesHandler(),
		Users:             handlers.NewUsersHandler(authService),
		SessionMiddleware: sessionMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	sessionHandler.Close()
	activity.Close()
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("fiber shutdown", zap.Error(err))
	}
	cancel()
	<-relayDone
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
