package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vinifranco48/performace/internal/api"
	"github.com/vinifranco48/performace/internal/auth"
	"github.com/vinifranco48/performace/internal/backend"
	"github.com/vinifranco48/performace/internal/config"
	"github.com/vinifranco48/performace/internal/domain"
	"github.com/vinifranco48/performace/internal/events"
	"github.com/vinifranco48/performace/internal/logging"
	httptransport "github.com/vinifranco48/performace/internal/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	connector, closeStore, err := backend.NewConnector(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("open store", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}
	defer closeStore()

	opts := []domain.Option{
		domain.WithLogger(logger.Named("domain")),
		domain.WithSheetName(cfg.SpreadsheetName),
	}
	if cfg.EventsEnabled() {
		publisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.EventsTopic)
		defer publisher.Close()
		opts = append(opts, domain.WithPublisher(publisher))
		logger.Info("publishing run events", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.EventsTopic))
	}
	service := domain.NewService(connector, opts...)

	authEnabled := cfg.JWTSecret != ""
	handler := api.NewHandler(service, api.WithLogger(logger.Named("api")), api.WithAuth(authEnabled))
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	var root http.Handler = httptransport.RequestLogger(logger.Named("http"), mux)
	if authEnabled {
		root = auth.NewMiddleware(auth.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer}).Wrap(root)
	} else {
		logger.Warn("JWT_SECRET not set, /v1/ endpoints are unauthenticated")
	}

	server := httptransport.NewServer(httptransport.DefaultServerConfig(cfg.HTTPAddress), root)

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("performace listening", zap.String("address", cfg.HTTPAddress), zap.String("backend", cfg.StoreBackend))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-shutdownCh
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
