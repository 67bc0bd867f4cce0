package cmd

import (
	"context"
	"fmt"

	"github.com/tinoosan/moneyledger/internal/config"
	"github.com/tinoosan/moneyledger/internal/storage/bolt"
	"github.com/tinoosan/moneyledger/internal/storage/jsonfile"
	"github.com/tinoosan/moneyledger/internal/storage/memory"
	pgstore "github.com/tinoosan/moneyledger/internal/storage/postgres"
	"github.com/tinoosan/moneyledger/internal/store"
)

// openBackend opens the configured storage backend. The returned func
// releases it and is never nil.
func openBackend(ctx context.Context, c config.StorageConfig) (store.Persister, func(), error) {
	switch c.Backend {
	case config.BackendFile:
		return jsonfile.New(c.Path), func() {}, nil
	case config.BackendBolt:
		db, err := bolt.Open(c.Path)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	case config.BackendPostgres:
		pg, err := pgstore.Open(ctx, c.DatabaseURL, c.LedgerName)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	case config.BackendMemory:
		return memory.New(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", c.Backend)
	}
}
