// Package backend selects the table implementation named by STORE_BACKEND.
package backend

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/vinifranco48/performace/internal/config"
	"github.com/vinifranco48/performace/internal/domain"
	"github.com/vinifranco48/performace/internal/persistence/memory"
	"github.com/vinifranco48/performace/internal/persistence/postgres"
	"github.com/vinifranco48/performace/internal/sheets"
)

// Closer releases whatever a connector holds open.
type Closer func()

// connectorFunc adapts a function to domain.Connector.
type connectorFunc func(context.Context) (domain.Table, error)

func (f connectorFunc) Connect(ctx context.Context) (domain.Table, error) {
	return f(ctx)
}

// NewConnector opens the primary store for cfg.
func NewConnector(ctx context.Context, cfg config.Config, logger *zap.Logger) (domain.Connector, Closer, error) {
	return Open(ctx, cfg.StoreBackend, cfg.SpreadsheetName, cfg, logger)
}

// Open builds a connector for the named sheet on the given backend.
//
// The sheets backend reads the secrets file on every Connect so a missing or
// rotated credential surfaces as a connection error of that evaluation rather
// than a startup failure.
func Open(ctx context.Context, kind, name string, cfg config.Config, logger *zap.Logger) (domain.Connector, Closer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch kind {
	case config.BackendSheets:
		path := cfg.SecretsPath
		return connectorFunc(func(ctx context.Context) (domain.Table, error) {
			creds, err := sheets.LoadCredentials(path)
			if err != nil {
				return nil, err
			}
			opts, err := creds.ClientOptions()
			if err != nil {
				return nil, err
			}
			return sheets.NewConnector(name, logger, opts...).Connect(ctx)
		}), func() {}, nil

	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		store := postgres.NewStore(pool, name)
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrate postgres: %w", err)
		}
		return store, pool.Close, nil

	case config.BackendMemory:
		logger.Warn("using in-memory store, rows are lost on exit", zap.String("sheet", name))
		return memory.NewTable(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", kind)
	}
}
