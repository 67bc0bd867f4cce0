// Package store owns the live ledger: accounts, transactions and both
// category lists. Every read goes through View and every change through
// Update, which persists the whole ledger after the change succeeds.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tinoosan/moneyledger/internal/storage/document"
)

// Persister loads and saves the whole ledger document.
// Load returns document.ErrNotExist when nothing has been saved yet.
type Persister interface {
	Name() string
	Load(ctx context.Context) (*document.Document, error)
	Save(ctx context.Context, doc *document.Document) error
}

// Store serializes access to the ledger state.
type Store struct {
	mu        sync.RWMutex
	state     *State
	persister Persister
	now       func() time.Time
	loc       *time.Location
}

// Option configures a Store at Open.
type Option func(*Store)

// WithClock overrides the clock used to stamp new transactions.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLocation sets the zone persisted timestamps are read and written in.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// Open builds a Store from whatever p has persisted. An empty backend yields a
// ledger with the default categories and no accounts.
func Open(ctx context.Context, p Persister, opts ...Option) (*Store, error) {
	s := &Store{persister: p, now: time.Now, loc: time.Local}
	for _, o := range opts {
		o(s)
	}
	doc, err := p.Load(ctx)
	switch {
	case errors.Is(err, document.ErrNotExist):
		doc = &document.Document{}
	case err != nil:
		return nil, fmt.Errorf("load ledger from %s: %w", p.Name(), err)
	}
	st, err := decode(doc, s.loc)
	if err != nil {
		return nil, fmt.Errorf("load ledger from %s: %w", p.Name(), err)
	}
	st.clock = s.clock
	s.state = st
	return s, nil
}

// Backend names the persister in use.
func (s *Store) Backend() string { return s.persister.Name() }

// Persister exposes the underlying backend, e.g. to find its file for backups.
func (s *Store) Persister() Persister { return s.persister }

// Location is the zone timestamps are interpreted in.
func (s *Store) Location() *time.Location { return s.loc }

// View runs fn under the read lock. fn must not modify the state.
func (s *Store) View(fn func(*State) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.state)
}

// Update runs fn under the write lock and persists the ledger if fn returns nil.
// fn must check every precondition before it changes anything.
// A persistence failure is returned wrapped; the in-memory change is kept.
func (s *Store) Update(ctx context.Context, fn func(*State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.state); err != nil {
		return err
	}
	return s.persistLocked(ctx)
}

// Save persists the current state without changing it.
func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persistLocked(ctx)
}

func (s *Store) persistLocked(ctx context.Context) error {
	start := time.Now()
	err := s.persister.Save(ctx, encode(s.state, s.loc))
	observePersist(s.persister.Name(), start, err)
	if err != nil {
		return fmt.Errorf("persist ledger to %s: %w", s.persister.Name(), err)
	}
	return nil
}

func (s *Store) clock() time.Time {
	return s.now().In(s.loc).Truncate(time.Second)
}
