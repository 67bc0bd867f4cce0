// Package postgres persists the ledger document as a single JSONB row through
// a pgx connection pool. Several ledgers can share one database by name.
package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tinoosan/moneyledger/internal/storage/document"
)

//go:embed schema.sql
var schema string

// DefaultName is the row key used when no ledger name is configured.
const DefaultName = "default"

// Store holds a pgx pool and the name of the ledger row it reads and writes.
// All methods are safe for concurrent use.
type Store struct {
	pool *pgxpool.Pool
	name string
}

// Open establishes a pgx pool using dsn and makes sure the documents table exists.
func Open(ctx context.Context, dsn, name string) (*Store, error) {
	if name == "" {
		name = DefaultName
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{pool: pool, name: name}, nil
}

// Name identifies the backend in logs and metrics.
func (s *Store) Name() string { return "postgres" }

// Close releases the underlying pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

// Load reads the ledger row. A missing row yields document.ErrNotExist.
func (s *Store) Load(ctx context.Context) (*document.Document, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `select document from ledger_documents where name = $1`, s.name).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, document.ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("load ledger %q: %w", s.name, err)
	}
	return document.Unmarshal(raw)
}

// Save upserts the ledger row.
func (s *Store) Save(ctx context.Context, doc *document.Document) error {
	b, err := document.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		insert into ledger_documents (name, document, updated_at)
		values ($1, $2::jsonb, now())
		on conflict (name) do update set document = excluded.document, updated_at = excluded.updated_at
	`, s.name, string(b))
	if err != nil {
		return fmt.Errorf("save ledger %q: %w", s.name, err)
	}
	return nil
}

// Delete removes the ledger row if present.
func (s *Store) Delete(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `delete from ledger_documents where name = $1`, s.name)
	return err
}
