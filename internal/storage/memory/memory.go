// Package memory provides an in-memory persister used for development and tests.
// It keeps the last saved document encoded exactly as a file backend would, so
// a reload exercises the same decode path.
package memory

import (
	"context"
	"sync"

	"github.com/tinoosan/moneyledger/internal/storage/document"
)

// Store keeps one encoded ledger document in memory.
// It is guarded by a mutex so it can back a concurrently served API.
type Store struct {
	mu      sync.Mutex
	data    []byte
	saves   int
	saveErr error
}

// New constructs an empty in-memory store.
func New() *Store { return &Store{} }

// Name identifies the backend in logs and metrics.
func (s *Store) Name() string { return "memory" }

// Load returns the last saved document, or document.ErrNotExist before the first save.
func (s *Store) Load(_ context.Context) (*document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, document.ErrNotExist
	}
	return document.Unmarshal(s.data)
}

// Save replaces the stored document.
func (s *Store) Save(_ context.Context, doc *document.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	b, err := document.Marshal(doc)
	if err != nil {
		return err
	}
	s.data = b
	s.saves++
	return nil
}

// Seed helpers for local dev/tests.

// SeedRaw stores raw bytes as if they had been saved, without validation.
func (s *Store) SeedRaw(b []byte) { s.mu.Lock(); s.data = append([]byte(nil), b...); s.mu.Unlock() }

// Raw returns a copy of the stored bytes.
func (s *Store) Raw() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.data...)
}

// Saves reports how many successful saves happened.
func (s *Store) Saves() int { s.mu.Lock(); defer s.mu.Unlock(); return s.saves }

// FailSaves makes every following Save return err; nil restores normal behavior.
func (s *Store) FailSaves(err error) { s.mu.Lock(); s.saveErr = err; s.mu.Unlock() }
