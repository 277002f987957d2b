package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/petshopzn/storefront-gateway/internal/api/http"
	"github.com/petshopzn/storefront-gateway/internal/api/http/handlers"
	"github.com/petshopzn/storefront-gateway/internal/config"
	"github.com/petshopzn/storefront-gateway/internal/gateway"
	"github.com/petshopzn/storefront-gateway/internal/observability"
	"github.com/petshopzn/storefront-gateway/internal/session"
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

	metrics := observability.NewMetrics()

	var store session.Store
	var redisStore *session.RedisStore
	if cfg.Session.Store == "memory" {
		logger.Warn("sessions held in memory, they will not survive a restart")
		store = session.NewMemoryStore()
	} else {
		redisStore = session.NewRedisStore(cfg.Redis, logger)
		defer redisStore.Close()
		store = redisStore
	}

	backend := gateway.NewClient(cfg.Backend, logger)
	cookies := session.NewCookieCodec(cfg.Session)
	sessions := session.NewManager(store, backend, cfg.Session.TTL(), logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	var storePinger handlers.Pinger
	if redisStore != nil {
		storePinger = redisStore
	}

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, storePinger),
		Auth:      handlers.NewAuthHandler(sessions, cookies),
		Catalog:   handlers.NewCatalogHandler(backend, sessions, cookies),
		Orders:    handlers.NewOrdersHandler(backend, sessions, cookies),
		Dashboard: handlers.NewDashboardHandler(backend, sessions, cookies),
		Sessions:  sessions,
		Cookies:   cookies,
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
