package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/vinifranco48/performace/internal/backend"
	"github.com/vinifranco48/performace/internal/cli"
	"github.com/vinifranco48/performace/internal/config"
	"github.com/vinifranco48/performace/internal/domain"
	"github.com/vinifranco48/performace/internal/events"
	"github.com/vinifranco48/performace/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The CLI only logs warnings so command output stays readable.
	level := cfg.LogLevel
	if level == "info" {
		level = "warn"
	}
	logger, err := logging.New(level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	opts := []domain.Option{
		domain.WithLogger(logger),
		domain.WithSheetName(cfg.SpreadsheetName),
	}
	if cfg.EventsEnabled() {
		publisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.EventsTopic)
		defer publisher.Close()
		opts = append(opts, domain.WithPublisher(publisher))
	}

	app := &cli.App{
		Open: func(ctx context.Context) (domain.Connector, func(), error) {
			connector, closeFn, err := backend.NewConnector(ctx, cfg, logger)
			if err != nil {
				logger.Error("open store", zap.String("backend", cfg.StoreBackend), zap.Error(err))
				return nil, nil, err
			}
			return connector, closeFn, nil
		},
		Options: opts,
	}
	return cli.NewRootCommand(app).ExecuteContext(context.Background())
}
