package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vinifranco48/performace/internal/domain"
)

func TestTableBacksTheFormWorkflow(t *testing.T) {
	ctx := context.Background()
	table := NewTable()
	svc := domain.NewService(table)

	page, err := svc.Evaluate(ctx, nil)
	require.NoError(t, err)
	require.Zero(t, page.History.Len())

	header, err := table.HeaderRow(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.Columns(), header)

	date := time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)
	page, err = svc.Evaluate(ctx, &domain.Submission{Date: date, DistanceKm: 10, Minutes: 55, WeightKg: 68})
	require.NoError(t, err)
	require.Equal(t, 1, page.History.Len())
	require.Equal(t, [][]string{{"2024-06-02", "10", "0:55:00", "68", "5:30"}}, page.History.Rows())

	page, err = svc.Evaluate(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, 1, page.History.Len(), "rows persist across evaluations")
}

func TestRowsReturnsCopies(t *testing.T) {
	ctx := context.Background()
	table := NewTable()
	require.NoError(t, table.AppendRow(ctx, []any{"a", 1.5}))

	rows, err := table.Rows(ctx)
	require.NoError(t, err)
	rows[0][0] = "mutated"

	again, err := table.Rows(ctx)
	require.NoError(t, err)
	require.Equal(t, [][]string{{"a", "1.5"}}, again)
}
