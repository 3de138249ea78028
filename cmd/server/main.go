package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ParsimonyGit/shipstation-integration/internal/api"
	"github.com/ParsimonyGit/shipstation-integration/internal/api/handlers"
	"github.com/ParsimonyGit/shipstation-integration/internal/config"
	"github.com/ParsimonyGit/shipstation-integration/internal/poller"
	"github.com/ParsimonyGit/shipstation-integration/internal/repository/postgres"
	"github.com/ParsimonyGit/shipstation-integration/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	db, err := postgres.Open(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	repos := postgres.NewRepositories(db, logger)
	clients := service.DefaultHubClientFactory(logger)

	customers := service.NewCustomerService(repos, logger)
	items := service.NewItemService(repos, logger, nil)
	orders := service.NewOrderService(repos, logger, clients, customers, items,
		nil, nil, cfg.Sync.Lookback)
	shipments := service.NewShipmentService(repos, logger, clients, cfg.Sync.Lookback)
	labels := service.NewLabelService(repos, logger, clients)
	settings := service.NewSettingsService(repos, logger, clients, items)
	webhooks := service.NewWebhookService(repos, logger, clients, orders, shipments)

	router := api.NewRouter(cfg, &handlers.Services{
		Webhook:   webhooks,
		Orders:    orders,
		Shipments: shipments,
		Labels:    labels,
		Settings:  settings,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := poller.New(orders, shipments, cfg.Sync.PollInterval, logger)
	go p.Run(ctx)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	if cfg.Environment == "production" {
		zcfg := zap.NewProductionConfig()
		zcfg.Level = zap.NewAtomicLevelAt(level)
		return zcfg.Build()
	}
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}
