package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/api/http"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/api/http/handlers"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/apiclient"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/config"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/events"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/observability"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/persistence"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/service"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/session"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/tokenstore"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()
	dependencies := map[string]handlers.Pinger{}

	var tokens tokenstore.Store
	var purger worker.Purger
	switch cfg.Session.Store {
	case config.SessionStorePostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), persistence.DefaultMigrationsDir, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		store := tokenstore.NewPostgres(pg.PoolHandle())
		tokens, purger = store, store
		dependencies["postgres"] = pg
	case config.SessionStoreRedis:
		redis := persistence.NewRedis(ctx, cfg.Redis, logger)
		defer redis.Close()
		tokens = tokenstore.NewRedis(redis.Client, cfg.Redis.KeyPrefix)
		dependencies["redis"] = redis
	default:
		tokens = tokenstore.NewMemory()
	}

	if cfg.Session.Secret != "" {
		sealed, err := tokenstore.NewSealed(tokens, cfg.Session.Secret)
		if err != nil {
			logger.Fatal("failed to init token sealing", zap.Error(err))
		}
		tokens = sealed
	} else {
		logger.Warn("SESSION_SECRET not set; tokens are stored unsealed")
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	api := apiclient.New(cfg.Backend, apiclient.WithLogger(logger), apiclient.WithMetrics(metrics))
	registry := session.NewRegistry(api, tokens, cfg.Session.IdleTimeout(), session.Options{
		TokenTTL: cfg.Session.TokenTTL(),
		Events:   dispatcher,
		Logger:   logger,
	})

	janitor := worker.NewSessionJanitor(registry, purger, cfg.Session.SweepInterval(), logger)
	go janitor.Run(ctx)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:       logger,
		Metrics:      metrics,
		Timeout:      cfg.App.RequestTimeout(),
		Production:   cfg.App.IsProduction(),
		CSRF:         true,
		CookieSecure: cfg.Session.CookieSecure,
	})

	cookies := httptransport.NewSessionCookies(cfg.Session)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Registry:      registry,
		Cookies:       cookies,
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, metrics, dependencies),
		Auth:          handlers.NewAuthHandler(api, registry, cookies, logger),
		Dashboard:     handlers.NewDashboardHandler(),
		Events:        handlers.NewEventsHandler(),
		Announcements: handlers.NewAnnouncementsHandler(),
		Donations:     handlers.NewDonationsHandler(),
		Users:         handlers.NewUsersHandler(),
		Contacts:      handlers.NewContactsHandler(api),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
