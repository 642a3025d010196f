// Package memory keeps sheets in process memory for local development.
package memory

import (
	"context"
	"sync"

	"github.com/vinifranco48/performace/internal/domain"
)

// Table stores rows in memory. It survives across Connect calls for the
// lifetime of the process.
type Table struct {
	mu   sync.RWMutex
	rows [][]string
}

// NewTable constructs an empty Table.
func NewTable() *Table {
	return &Table{}
}

// Connect implements domain.Connector by handing out the same table.
func (t *Table) Connect(context.Context) (domain.Table, error) {
	return t, nil
}

// HeaderRow implements domain.Table.
func (t *Table) HeaderRow(context.Context) ([]string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if len(t.rows) == 0 {
		return []string{}, nil
	}
	return append([]string(nil), t.rows[0]...), nil
}

// Clear implements domain.Table.
func (t *Table) Clear(context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rows = nil
	return nil
}

// AppendRow implements domain.Table.
func (t *Table) AppendRow(_ context.Context, values []any) error {
	row := make([]string, len(values))
	for i, v := range values {
		row[i] = domain.FormatCell(v)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows, row)
	return nil
}

// Rows implements domain.Table.
func (t *Table) Rows(context.Context) ([][]string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([][]string, len(t.rows))
	for i, row := range t.rows {
		out[i] = append([]string(nil), row...)
	}
	return out, nil
}
