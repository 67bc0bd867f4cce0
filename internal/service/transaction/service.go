// Package transaction records, edits and removes transactions while keeping
// account balances equal to their opening balance plus the net of their
// transactions.
package transaction

import (
	"context"
	"slices"
	"strings"

	"github.com/tinoosan/moneyledger/internal/errs"
	"github.com/tinoosan/moneyledger/internal/ledger"
	"github.com/tinoosan/moneyledger/internal/store"
)

// Store is the part of *store.Store the service needs.
type Store interface {
	View(fn func(*store.State) error) error
	Update(ctx context.Context, fn func(*store.State) error) error
}

// Input carries raw caller fields. On Edit a blank Type, Category, Account or
// Amount keeps the current value; Description is replaced unless
// KeepDescription is set.
type Input struct {
	Type            string
	Category        string
	Account         string
	Amount          string
	Description     string
	KeepDescription bool
}

type Service interface {
	NextID() int
	Add(ctx context.Context, in Input) (ledger.Transaction, error)
	Get(id int) (ledger.Transaction, bool)
	List(reverseChronological bool) []ledger.Transaction
	Edit(ctx context.Context, id int, in Input) (ledger.Transaction, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	store Store
}

func New(st Store) Service { return &service{store: st} }

func (s *service) NextID() int {
	var id int
	_ = s.store.View(func(st *store.State) error {
		id = st.NextTransactionID()
		return nil
	})
	return id
}

// Add validates type, category, account and amount in that order, then stamps
// the transaction with the store clock and applies it to the account.
func (s *service) Add(ctx context.Context, in Input) (ledger.Transaction, error) {
	var out ledger.Transaction
	err := s.store.Update(ctx, func(st *store.State) error {
		t, err := ledger.ParseTransactionType(in.Type)
		if err != nil {
			return err
		}
		category, err := ledger.NormalizeName(in.Category, "Category name")
		if err != nil {
			return err
		}
		if !st.HasCategory(t, category) {
			return errs.NotFound("Category '%s' does not exist.", category)
		}
		name, err := ledger.NormalizeName(in.Account, "Account name")
		if err != nil {
			return err
		}
		acc, ok := st.AccountByName(name)
		if !ok {
			return errs.NotFound("Account '%s' does not exist.", name)
		}
		amount, err := ledger.ParseNonNegativeAmount(in.Amount, "Transaction amount")
		if err != nil {
			return err
		}
		tx := &ledger.Transaction{
			ID:          st.NextTransactionID(),
			Timestamp:   st.Now(),
			Type:        t,
			Category:    category,
			AccountID:   acc.ID,
			Amount:      amount,
			Description: in.Description,
		}
		st.AppendTransaction(tx)
		out = *tx
		return nil
	})
	if err != nil {
		return ledger.Transaction{}, err
	}
	return out, nil
}

func (s *service) Get(id int) (ledger.Transaction, bool) {
	var (
		out ledger.Transaction
		ok  bool
	)
	_ = s.store.View(func(st *store.State) error {
		var tx *ledger.Transaction
		if tx, ok = st.Transaction(id); ok {
			out = *tx
		}
		return nil
	})
	return out, ok
}

// List returns every transaction ordered by timestamp, newest first when
// reverseChronological. Ties keep insertion order.
func (s *service) List(reverseChronological bool) []ledger.Transaction {
	var out []ledger.Transaction
	_ = s.store.View(func(st *store.State) error {
		out = st.Transactions()
		return nil
	})
	slices.SortStableFunc(out, func(a, b ledger.Transaction) int {
		if reverseChronological {
			return b.Timestamp.Compare(a.Timestamp)
		}
		return a.Timestamp.Compare(b.Timestamp)
	})
	return out
}

// Edit resolves every field before touching any balance, so a rejected edit
// leaves the ledger unchanged.
func (s *service) Edit(ctx context.Context, id int, in Input) (ledger.Transaction, error) {
	var out ledger.Transaction
	err := s.store.Update(ctx, func(st *store.State) error {
		tx, ok := st.Transaction(id)
		if !ok {
			return errs.NotFound("Transaction with ID %d not found.", id)
		}

		newType := tx.Type
		if strings.TrimSpace(in.Type) != "" {
			t, err := ledger.ParseTransactionType(in.Type)
			if err != nil {
				return err
			}
			newType = t
		}

		newCategory := tx.Category
		if strings.TrimSpace(in.Category) != "" {
			c, err := ledger.NormalizeName(in.Category, "Category name")
			if err != nil {
				return err
			}
			newCategory = c
		}
		if (newCategory != tx.Category || newType != tx.Type) && !st.HasCategory(newType, newCategory) {
			return errs.NotFound("Category '%s' is not valid for %s transactions.", newCategory, newType)
		}

		oldAcc, _ := st.Account(tx.AccountID)
		newAcc := oldAcc
		if strings.TrimSpace(in.Account) != "" {
			name, err := ledger.NormalizeName(in.Account, "Account name")
			if err != nil {
				return err
			}
			a, ok := st.AccountByName(name)
			if !ok {
				return errs.NotFound("Account '%s' not found.", name)
			}
			newAcc = a
		}

		newAmount := tx.Amount
		if strings.TrimSpace(in.Amount) != "" {
			a, err := ledger.ParseNonNegativeAmount(in.Amount, "Transaction amount")
			if err != nil {
				return err
			}
			newAmount = a
		}

		oldAcc.Reverse(tx.Amount, tx.Type)
		moved := oldAcc.ID != newAcc.ID
		if moved {
			oldAcc.Detach(tx.ID)
		}
		tx.Type = newType
		tx.Category = newCategory
		tx.AccountID = newAcc.ID
		tx.Amount = newAmount
		if !in.KeepDescription {
			tx.Description = strings.TrimSpace(in.Description)
		}
		if moved {
			newAcc.Attach(tx.ID)
		}
		newAcc.Apply(newAmount, newType)

		out = *tx
		return nil
	})
	if err != nil {
		return ledger.Transaction{}, err
	}
	return out, nil
}

// Delete reverses the transaction on its account and removes it.
func (s *service) Delete(ctx context.Context, id int) error {
	return s.store.Update(ctx, func(st *store.State) error {
		if _, ok := st.Transaction(id); !ok {
			return errs.NotFound("Transaction ID '%d' does not exist.", id)
		}
		st.RemoveTransaction(id)
		return nil
	})
}
