package domain

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/vinifranco48/performace/internal/observability"
)

// Table is an open handle on the first worksheet of a tabular store.
type Table interface {
	// HeaderRow returns the first row, or an empty slice when the store is empty.
	HeaderRow(ctx context.Context) ([]string, error)
	// Clear removes every row, header included.
	Clear(ctx context.Context) error
	// AppendRow writes values after the last non-empty row.
	AppendRow(ctx context.Context, values []any) error
	// Rows returns every row, header included, as displayed strings.
	Rows(ctx context.Context) ([][]string, error)
}

// Connector authorizes against a store and opens its table.
type Connector interface {
	Connect(ctx context.Context) (Table, error)
}

// EnsureSchema verifies the header row and, when it differs from Columns,
// clears the whole store and writes Columns as the only row. Prior rows are lost.
func EnsureSchema(ctx context.Context, t Table) error {
	start := time.Now()
	header, err := t.HeaderRow(ctx)
	observability.ObserveStoreOp("header", start, err)
	if err != nil {
		return &ConnectionError{Err: fmt.Errorf("read header row: %w", err)}
	}

	expected := Columns()
	if slices.Equal(header, expected) {
		return nil
	}

	start = time.Now()
	err = t.Clear(ctx)
	observability.ObserveStoreOp("clear", start, err)
	if err != nil {
		return &ConnectionError{Err: fmt.Errorf("clear store: %w", err)}
	}

	start = time.Now()
	err = t.AppendRow(ctx, toAny(expected))
	observability.ObserveStoreOp("append", start, err)
	if err != nil {
		return &ConnectionError{Err: fmt.Errorf("write header row: %w", err)}
	}
	observability.RecordSchemaReset()
	return nil
}

// LoadAll reads every data row as a Record keyed by the header row.
func LoadAll(ctx context.Context, t Table) (History, error) {
	start := time.Now()
	rows, err := t.Rows(ctx)
	observability.ObserveStoreOp("rows", start, err)
	if err != nil {
		return History{}, &LoadError{Err: err}
	}
	history, err := RecordsFromRows(rows)
	if err != nil {
		return History{}, &LoadError{Err: err}
	}
	return history, nil
}

// AppendRow writes one data row.
func AppendRow(ctx context.Context, t Table, values []any) error {
	start := time.Now()
	err := t.AppendRow(ctx, values)
	observability.ObserveStoreOp("append", start, err)
	if err != nil {
		return &InsertError{Err: err}
	}
	return nil
}

// RecordsFromRows turns raw rows into records. The first row names the keys,
// short rows are padded with "" and numeric cells become int64 or float64.
func RecordsFromRows(rows [][]string) (History, error) {
	if len(rows) == 0 {
		return History{Columns: []string{}, Records: []Record{}}, nil
	}

	keys := append([]string(nil), rows[0]...)
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, dup := seen[k]; dup && k != "" {
			return History{}, fmt.Errorf("%w: %q", ErrDuplicateHeader, k)
		}
		seen[k] = struct{}{}
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(keys))
		for i, key := range keys {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			rec[key] = Numericise(cell)
		}
		records = append(records, rec)
	}
	return History{Columns: keys, Records: records}, nil
}

// Numericise converts integer and decimal strings to numbers and leaves
// everything else untouched.
func Numericise(cell string) any {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return cell
	}
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return cell
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
