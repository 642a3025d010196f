//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/vinifranco48/performace/internal/domain"
)

func TestStoreRoundTripAndSheetIsolation(t *testing.T) {
	ctx := context.Background()

	pg, err := postgrescontainer.Run(ctx, "postgres:16-alpine",
		postgrescontainer.WithDatabase("performace"),
		postgrescontainer.WithUsername("platform"),
		postgrescontainer.WithPassword("platform"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, waitForDatabase(ctx, connStr))

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	runs := NewStore(pool, "Performace")
	require.NoError(t, runs.Migrate(ctx))
	other := NewStore(pool, "Outra")

	table, err := runs.Connect(ctx)
	require.NoError(t, err)
	require.NoError(t, domain.EnsureSchema(ctx, table))

	entry := domain.NewWorkoutEntry(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), 5, 30*time.Minute, 70.5)
	require.NoError(t, domain.AppendRow(ctx, table, entry.Values()))

	history, err := domain.LoadAll(ctx, table)
	require.NoError(t, err)
	last, ok := history.Last()
	require.True(t, ok)
	require.Equal(t, "6:00", last[domain.ColumnPace])
	require.Equal(t, 70.5, last[domain.ColumnWeight])

	otherTable, err := other.Connect(ctx)
	require.NoError(t, err)
	header, err := otherTable.HeaderRow(ctx)
	require.NoError(t, err)
	require.Empty(t, header, "sheets must not see each other's rows")

	// A drifted header wipes the stored history.
	require.NoError(t, table.Clear(ctx))
	require.NoError(t, table.AppendRow(ctx, []any{"Data", "Tempo"}))
	require.NoError(t, table.AppendRow(ctx, entry.Values()))
	require.NoError(t, domain.EnsureSchema(ctx, table))
	rows, err := table.Rows(ctx)
	require.NoError(t, err)
	require.Equal(t, [][]string{domain.Columns()}, rows)
}

func waitForDatabase(ctx context.Context, connStr string) error {
	deadline := time.Now().Add(30 * time.Second)
	for {
		pool, err := pgxpool.New(ctx, connStr)
		if err == nil {
			err = pool.Ping(ctx)
			pool.Close()
			if err == nil {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(time.Second)
	}
}
