package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinoosan/moneyledger/internal/errs"
	"github.com/tinoosan/moneyledger/internal/ledger"
	"github.com/tinoosan/moneyledger/internal/service/transaction"
	"github.com/tinoosan/moneyledger/internal/store/storetest"
)

func TestAddNormalizesAndRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	st, p := storetest.Open(t, nil)
	svc := New(st)

	a, err := svc.Add(ctx, "  cHECKING ", "100")
	require.NoError(t, err)
	assert.Equal(t, "Checking", a.Name)
	assert.Equal(t, "100.00", ledger.FormatAmount(a.Balance))
	assert.Equal(t, 1, p.Saves())

	_, err = svc.Add(ctx, "CHECKING", "5")
	assert.ErrorIs(t, err, errs.ErrAlreadyExists)
	assert.Equal(t, 1, p.Saves())
}

func TestAddValidation(t *testing.T) {
	ctx := context.Background()
	st, p := storetest.Open(t, nil)
	svc := New(st)

	_, err := svc.Add(ctx, "   ", "1")
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
	assert.EqualError(t, err, "Account name cannot be empty.")

	_, err = svc.Add(ctx, "Cash", "-0.01")
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
	assert.EqualError(t, err, "Initial balance cannot be negative.")

	_, err = svc.Add(ctx, "Cash", "ten")
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	assert.Empty(t, svc.List())
	assert.Zero(t, p.Saves())
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	st, _ := storetest.Open(t, nil)
	svc := New(st)
	_, err := svc.Add(ctx, "Cash", "0")
	require.NoError(t, err)

	a, ok, err := svc.Get("cash")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Cash", a.Name)

	_, ok, err = svc.Get("bank")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = svc.Get("")
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestRenameKeepsIdentityPositionAndTransactions(t *testing.T) {
	ctx := context.Background()
	st, _ := storetest.Open(t, nil)
	svc := New(st)
	txs := transaction.New(st)

	bank, err := svc.Add(ctx, "Bank", "10")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "Cash", "0")
	require.NoError(t, err)
	tx, err := txs.Add(ctx, transaction.Input{Type: "expense", Category: "food", Account: "bank", Amount: "2"})
	require.NoError(t, err)

	renamed, err := svc.Rename(ctx, "bank", "savings")
	require.NoError(t, err)
	assert.Equal(t, bank.ID, renamed.ID)
	assert.Equal(t, "Savings", renamed.Name)
	assert.Equal(t, []string{"Savings", "Cash"}, names(svc.List()))

	got, ok := txs.Get(tx.ID)
	require.True(t, ok)
	assert.Equal(t, bank.ID, got.AccountID)

	_, ok, _ = svc.Get("Bank")
	assert.False(t, ok)
}

func TestRenameErrors(t *testing.T) {
	ctx := context.Background()
	st, _ := storetest.Open(t, nil)
	svc := New(st)
	_, err := svc.Add(ctx, "Bank", "0")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "Cash", "0")
	require.NoError(t, err)

	_, err = svc.Rename(ctx, "Wallet", "Purse")
	assert.ErrorIs(t, err, errs.ErrNotFound)
	_, err = svc.Rename(ctx, "Bank", "cash")
	assert.ErrorIs(t, err, errs.ErrAlreadyExists)
	_, err = svc.Rename(ctx, "Bank", " ")
	assert.EqualError(t, err, "New account name cannot be empty.")

	a, err := svc.Rename(ctx, "bank", "BANK")
	require.NoError(t, err, "renaming to the same normalized name is allowed")
	assert.Equal(t, "Bank", a.Name)
}

func TestDeleteCascadesTransactions(t *testing.T) {
	ctx := context.Background()
	st, _ := storetest.Open(t, nil)
	svc := New(st)
	txs := transaction.New(st)

	_, err := svc.Add(ctx, "Bank", "100")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "Cash", "100")
	require.NoError(t, err)
	for _, acc := range []string{"Bank", "Cash", "Bank"} {
		_, err := txs.Add(ctx, transaction.Input{Type: "expense", Category: "Food", Account: acc, Amount: "1"})
		require.NoError(t, err)
	}

	require.NoError(t, svc.Delete(ctx, "bank"))
	left := txs.List(false)
	require.Len(t, left, 1)
	assert.Equal(t, 2, left[0].ID)
	assert.Equal(t, []string{"Cash"}, names(svc.List()))

	assert.ErrorIs(t, svc.Delete(ctx, "bank"), errs.ErrNotFound)
}

func names(accs []ledger.Account) []string {
	out := make([]string, 0, len(accs))
	for _, a := range accs {
		out = append(out, a.Name)
	}
	return out
}
