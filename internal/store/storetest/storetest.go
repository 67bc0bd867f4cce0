// Package storetest opens stores over an in-memory backend for tests.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tinoosan/moneyledger/internal/storage/memory"
	"github.com/tinoosan/moneyledger/internal/store"
)

// Clock is a settable time source for store.WithClock.
type Clock struct{ T time.Time }

// Now returns the current fake time.
func (c *Clock) Now() time.Time { return c.T }

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) { c.T = c.T.Add(d) }

// Open returns a fresh UTC store backed by memory, and the backend so tests can
// inspect saves or reopen it.
func Open(t *testing.T, clock *Clock) (*store.Store, *memory.Store) {
	t.Helper()
	p := memory.New()
	return Reopen(t, p, clock), p
}

// Reopen loads a new store from p.
func Reopen(t *testing.T, p *memory.Store, clock *Clock) *store.Store {
	t.Helper()
	opts := []store.Option{store.WithLocation(time.UTC)}
	if clock != nil {
		opts = append(opts, store.WithClock(clock.Now))
	}
	s, err := store.Open(context.Background(), p, opts...)
	require.NoError(t, err)
	return s
}
