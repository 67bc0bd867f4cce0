package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinoosan/moneyledger/internal/storage/document"
)

func getTestDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping Postgres store tests")
	}
	return dsn
}

func mustOpen(t *testing.T, name string) *Store {
	t.Helper()
	dsn := getTestDSN(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s, err := Open(ctx, dsn, name)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Delete(context.Background())
		s.Close()
	})
	return s
}

func TestLoadMissing(t *testing.T) {
	s := mustOpen(t, "test-"+uuid.NewString())
	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, document.ErrNotExist)
}

func TestSaveLoadUpsert(t *testing.T) {
	ctx := context.Background()
	s := mustOpen(t, "test-"+uuid.NewString())
	require.NoError(t, s.Ready(ctx))

	doc := &document.Document{
		Accounts: []document.Account{{Name: "Wallet", Balance: "450.00"}},
		Transactions: []document.Transaction{{
			ID: 1, DateTime: "01-01-2025 12:00:00", Type: "expense",
			Category: "Food", Account: "Wallet", Amount: "50.00", Description: "Lunch",
		}},
		IncomeCategories:  []string{"Salary"},
		ExpenseCategories: []string{"Food"},
	}
	require.NoError(t, s.Save(ctx, doc))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	doc.Accounts[0].Balance = "400.00"
	require.NoError(t, s.Save(ctx, doc))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "400.00", got.Accounts[0].Balance)
}

func TestLedgersAreIsolatedByName(t *testing.T) {
	ctx := context.Background()
	a := mustOpen(t, "test-"+uuid.NewString())
	b := mustOpen(t, "test-"+uuid.NewString())
	require.NoError(t, a.Save(ctx, &document.Document{Accounts: []document.Account{{Name: "A", Balance: "0.00"}}}))
	_, err := b.Load(ctx)
	assert.ErrorIs(t, err, document.ErrNotExist)
}
