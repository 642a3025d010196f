// Package postgres stores sheets as ordered text-array rows in Postgres.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vinifranco48/performace/internal/domain"
)

const schema = `CREATE TABLE IF NOT EXISTS sheet_rows (
    sheet_name TEXT NOT NULL,
    row_num    BIGSERIAL,
    cells      TEXT[] NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (sheet_name, row_num)
)`

// Store provides Postgres-backed sheets keyed by name.
type Store struct {
	pool *pgxpool.Pool
	name string
}

// NewStore constructs a Store that opens the sheet called name.
func NewStore(pool *pgxpool.Pool, name string) *Store {
	return &Store{pool: pool, name: name}
}

// Migrate creates the sheet_rows table when missing.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schema)
	return err
}

// Connect implements domain.Connector. The pool is checked on every call.
func (s *Store) Connect(ctx context.Context) (domain.Table, error) {
	if err := s.pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return &Table{pool: s.pool, name: s.name}, nil
}

// Table is one named sheet inside sheet_rows.
type Table struct {
	pool *pgxpool.Pool
	name string
}

// HeaderRow implements domain.Table.
func (t *Table) HeaderRow(ctx context.Context) ([]string, error) {
	const query = `SELECT cells FROM sheet_rows WHERE sheet_name=$1 ORDER BY row_num LIMIT 1`

	var cells []string
	if err := t.pool.QueryRow(ctx, query, t.name).Scan(&cells); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []string{}, nil
		}
		return nil, err
	}
	return cells, nil
}

// Clear implements domain.Table.
func (t *Table) Clear(ctx context.Context) error {
	_, err := t.pool.Exec(ctx, `DELETE FROM sheet_rows WHERE sheet_name=$1`, t.name)
	return err
}

// AppendRow implements domain.Table.
func (t *Table) AppendRow(ctx context.Context, values []any) error {
	cells := make([]string, len(values))
	for i, v := range values {
		cells[i] = domain.FormatCell(v)
	}
	_, err := t.pool.Exec(ctx, `INSERT INTO sheet_rows (sheet_name, cells) VALUES ($1, $2)`, t.name, cells)
	return err
}

// Rows implements domain.Table.
func (t *Table) Rows(ctx context.Context) ([][]string, error) {
	rows, err := t.pool.Query(ctx, `SELECT cells FROM sheet_rows WHERE sheet_name=$1 ORDER BY row_num`, t.name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([][]string, 0)
	for rows.Next() {
		var cells []string
		if err := rows.Scan(&cells); err != nil {
			return nil, err
		}
		out = append(out, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
