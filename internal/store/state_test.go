package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinoosan/moneyledger/internal/ledger"
)

func TestRenameAccountKeepsIdentityAndPosition(t *testing.T) {
	st := newState()
	a := st.InsertAccount("Bank", decimal.Zero)
	st.InsertAccount("Cash", decimal.Zero)

	st.RenameAccount(a.ID, "Savings")
	_, ok := st.AccountByName("Bank")
	assert.False(t, ok)
	got, ok := st.AccountByName("Savings")
	require.True(t, ok)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, "Savings", st.Accounts()[0].Name)
}

func TestRemoveAccountCascades(t *testing.T) {
	st := newState()
	a := st.InsertAccount("Bank", decimal.NewFromInt(100))
	b := st.InsertAccount("Cash", decimal.NewFromInt(100))
	st.AppendTransaction(&ledger.Transaction{ID: 1, Type: ledger.TypeExpense, AccountID: a.ID, Amount: decimal.NewFromInt(10)})
	st.AppendTransaction(&ledger.Transaction{ID: 2, Type: ledger.TypeExpense, AccountID: b.ID, Amount: decimal.NewFromInt(10)})
	st.AppendTransaction(&ledger.Transaction{ID: 3, Type: ledger.TypeIncome, AccountID: a.ID, Amount: decimal.NewFromInt(5)})

	assert.Equal(t, 2, st.RemoveAccount(a.ID))
	txs := st.Transactions()
	require.Len(t, txs, 1)
	assert.Equal(t, 2, txs[0].ID)
	assert.Len(t, st.Accounts(), 1)
	_, ok := st.AccountByName("Bank")
	assert.False(t, ok)
}

func TestAppendAndRemoveTransactionKeepBalance(t *testing.T) {
	st := newState()
	a := st.InsertAccount("Bank", decimal.NewFromInt(100))
	st.AppendTransaction(&ledger.Transaction{ID: 1, Type: ledger.TypeExpense, AccountID: a.ID, Amount: decimal.RequireFromString("30.50")})
	assert.True(t, a.Balance.Equal(decimal.RequireFromString("69.50")))
	assert.Equal(t, []int{1}, a.TransactionIDs)

	st.RemoveTransaction(1)
	assert.True(t, a.Balance.Equal(decimal.NewFromInt(100)))
	assert.Empty(t, a.TransactionIDs)
	assert.Empty(t, st.Transactions())
	assert.Equal(t, 1, st.NextTransactionID())
}

func TestCategoryHelpers(t *testing.T) {
	st := newState()
	st.categories[ledger.TypeExpense] = []string{"Food", "Bills"}
	st.categories[ledger.TypeIncome] = []string{"Food"}
	a := st.InsertAccount("Bank", decimal.Zero)
	st.AppendTransaction(&ledger.Transaction{ID: 1, Type: ledger.TypeExpense, Category: "Food", AccountID: a.ID, Amount: decimal.Zero})
	st.AppendTransaction(&ledger.Transaction{ID: 2, Type: ledger.TypeIncome, Category: "Food", AccountID: a.ID, Amount: decimal.Zero})

	assert.Equal(t, 1, st.CategoryUsage(ledger.TypeExpense, "Food"))
	assert.Equal(t, 1, st.RenameCategory(ledger.TypeExpense, "Food", "Groceries"))
	assert.Equal(t, []string{"Groceries", "Bills"}, st.Categories(ledger.TypeExpense))
	txs := st.Transactions()
	assert.Equal(t, "Groceries", txs[0].Category)
	assert.Equal(t, "Food", txs[1].Category, "income transaction must keep its category")

	st.RemoveCategory(ledger.TypeExpense, "Bills")
	assert.Equal(t, []string{"Groceries"}, st.Categories(ledger.TypeExpense))
	assert.False(t, st.HasCategory(ledger.TypeExpense, "Bills"))
}
