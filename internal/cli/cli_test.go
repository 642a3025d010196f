package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vinifranco48/performace/internal/domain"
	"github.com/vinifranco48/performace/internal/persistence/memory"
)

func run(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand(app)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func memoryApp(table *memory.Table) *App {
	return &App{Open: func(context.Context) (domain.Connector, func(), error) {
		return table, nil, nil
	}}
}

func TestPaceCommand(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"pace", "--distance", "5", "--duration", "0:25:30"}, "5:06 min/km"},
		{[]string{"pace", "--distance", "10", "--duration", "52m10s"}, "5:13 min/km"},
		{[]string{"pace", "--distance", "0", "--duration", "0:30:00"}, "0:00 min/km"},
	}
	for _, tc := range cases {
		out, err := run(t, &App{}, tc.args...)
		require.NoError(t, err)
		require.Contains(t, out, tc.want)
	}

	_, err := run(t, &App{}, "pace", "--distance", "5", "--duration", "soon")
	require.Error(t, err)
}

func TestRecordAndHistoryCommands(t *testing.T) {
	table := memory.NewTable()
	app := memoryApp(table)

	out, err := run(t, app, "record", "--date", "2024-05-01", "--distance", "5", "--minutes", "25", "--seconds", "30", "--weight", "70")
	require.NoError(t, err)
	require.Contains(t, out, "Dados registrados com sucesso!")
	require.Contains(t, out, "5:06 min/km")
	require.Contains(t, out, "1")

	out, err = run(t, app, "history")
	require.NoError(t, err)
	require.Contains(t, out, "Histórico de Corridas")
	require.Contains(t, out, "2024-05-01")
	require.Contains(t, out, "0:25:30")
}

func TestRecordRejectsInvalidInput(t *testing.T) {
	table := memory.NewTable()
	app := memoryApp(table)

	_, err := run(t, app, "record", "--date", "yesterday")
	require.Error(t, err)

	_, err = run(t, app, "record", "--date", "2024-05-01", "--minutes", "61")
	require.Error(t, err)

	rows, err := table.Rows(context.Background())
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestHistoryOnEmptyStore(t *testing.T) {
	out, err := run(t, memoryApp(memory.NewTable()), "history")
	require.NoError(t, err)
	require.Contains(t, out, "Nenhuma corrida registrada.")
}

func TestVerifySchemaResetsMismatchedHeader(t *testing.T) {
	ctx := context.Background()
	table := memory.NewTable()
	require.NoError(t, table.AppendRow(ctx, []any{"Date", "Km"}))
	require.NoError(t, table.AppendRow(ctx, []any{"2024-05-01", 5}))

	out, err := run(t, memoryApp(table), "verify-schema")
	require.NoError(t, err)
	require.Contains(t, out, "header ok")

	rows, err := table.Rows(ctx)
	require.NoError(t, err)
	require.Equal(t, [][]string{domain.Columns()}, rows)
}

func TestOpenFailureIsReturned(t *testing.T) {
	boom := errors.New("no credentials")
	app := &App{Open: func(context.Context) (domain.Connector, func(), error) {
		return nil, nil, boom
	}}

	_, err := run(t, app, "history")
	require.ErrorIs(t, err, boom)
}
