package ledger

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a transaction as money coming in or going out.
type TransactionType string

const (
	// TypeIncome increases the owning account's balance.
	TypeIncome TransactionType = "income"
	// TypeExpense decreases the owning account's balance.
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the two known types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Signed returns amount as it affects a balance: positive for income, negative for expense.
func (t TransactionType) Signed(amount decimal.Decimal) decimal.Decimal {
	if t == TypeExpense {
		return amount.Neg()
	}
	return amount
}

// Account is a named pot of money whose balance tracks its transactions.
//
// ID is the stable identity used as the store key; Name is the normalized
// display name and may change on rename. TransactionIDs is a secondary index
// over the store's transaction list, kept in attach order.
type Account struct {
	ID             uuid.UUID
	Name           string
	Balance        decimal.Decimal
	TransactionIDs []int
}

// Apply adds the effect of a transaction to the balance.
func (a *Account) Apply(amount decimal.Decimal, t TransactionType) {
	a.Balance = a.Balance.Add(t.Signed(amount))
}

// Reverse removes the effect of a transaction from the balance.
func (a *Account) Reverse(amount decimal.Decimal, t TransactionType) {
	a.Balance = a.Balance.Sub(t.Signed(amount))
}

// Attach appends a transaction id to the back-reference list.
func (a *Account) Attach(id int) {
	a.TransactionIDs = append(a.TransactionIDs, id)
}

// Detach removes the first occurrence of id from the back-reference list.
func (a *Account) Detach(id int) {
	if i := slices.Index(a.TransactionIDs, id); i >= 0 {
		a.TransactionIDs = slices.Delete(a.TransactionIDs, i, i+1)
	}
}

// Clone returns a copy that shares no memory with a.
func (a Account) Clone() Account {
	a.TransactionIDs = slices.Clone(a.TransactionIDs)
	return a
}

// Transaction records a single categorized movement of money on one account.
type Transaction struct {
	ID          int
	Timestamp   time.Time
	Type        TransactionType
	Category    string
	AccountID   uuid.UUID
	Amount      decimal.Decimal
	Description string
}
