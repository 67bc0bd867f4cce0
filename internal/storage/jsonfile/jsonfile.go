// Package jsonfile persists the ledger document as a single JSON file.
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tinoosan/moneyledger/internal/storage/document"
)

// DefaultPath is the data file used when none is configured.
const DefaultPath = "data/ledger_data.json"

// Store reads and writes one JSON file.
type Store struct {
	path string
}

// New returns a file store rooted at path. Nothing is touched on disk until Save.
func New(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

// Name identifies the backend in logs and metrics.
func (s *Store) Name() string { return "file" }

// Path is the data file location.
func (s *Store) Path() string { return s.path }

// Load reads and decodes the data file. A missing file yields document.ErrNotExist.
func (s *Store) Load(_ context.Context) (*document.Document, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, document.ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	return document.Unmarshal(b)
}

// Save writes the document to a temp file in the same directory and renames it
// over the data file, so a crash never leaves a half-written ledger behind.
func (s *Store) Save(_ context.Context, doc *document.Document) error {
	payload, err := document.Marshal(doc)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp data file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp data file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp data file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp data file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}
