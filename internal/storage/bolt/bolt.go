// Package bolt persists the ledger document inside a bbolt database file.
package bolt

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/tinoosan/moneyledger/internal/storage/document"
)

var (
	bucketLedger = []byte("ledger")
	keyDocument  = []byte("document")
)

// Store wraps a bbolt database holding a single ledger document.
type Store struct {
	db   *bolt.DB
	path string
}

// Open opens (or creates) the database at path and initializes the bucket.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketLedger); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucketLedger, err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Name identifies the backend in logs and metrics.
func (s *Store) Name() string { return "bolt" }

// Path is the database file location.
func (s *Store) Path() string { return s.path }

// Load returns the stored document, or document.ErrNotExist when the key is absent.
func (s *Store) Load(_ context.Context) (*document.Document, error) {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketLedger).Get(keyDocument)
		if v == nil {
			return document.ErrNotExist
		}
		// v is only valid for the life of the transaction.
		raw = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return document.Unmarshal(raw)
}

// Save replaces the stored document in one write transaction.
func (s *Store) Save(_ context.Context, doc *document.Document) error {
	data, err := document.Marshal(doc)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketLedger).Put(keyDocument, data)
	})
}

// WriteSnapshot writes a consistent copy of the database file to w.
func (s *Store) WriteSnapshot(w io.Writer) error {
	return s.db.View(func(tx *bolt.Tx) error {
		_, err := tx.WriteTo(w)
		return err
	})
}
