// Package account implements the account rules: names are normalized and
// unique, balances start non-negative, and deleting an account takes its
// transactions with it.
package account

import (
	"context"

	"github.com/tinoosan/moneyledger/internal/errs"
	"github.com/tinoosan/moneyledger/internal/ledger"
	"github.com/tinoosan/moneyledger/internal/store"
)

// Store is the part of *store.Store the service needs.
type Store interface {
	View(fn func(*store.State) error) error
	Update(ctx context.Context, fn func(*store.State) error) error
}

type Service interface {
	Add(ctx context.Context, name, initialBalance string) (ledger.Account, error)
	Get(name string) (ledger.Account, bool, error)
	List() []ledger.Account
	Rename(ctx context.Context, oldName, newName string) (ledger.Account, error)
	Delete(ctx context.Context, name string) error
}

type service struct {
	store Store
}

func New(st Store) Service { return &service{store: st} }

func (s *service) Add(ctx context.Context, name, initialBalance string) (ledger.Account, error) {
	name, err := ledger.NormalizeName(name, "Account name")
	if err != nil {
		return ledger.Account{}, err
	}
	var out ledger.Account
	err = s.store.Update(ctx, func(st *store.State) error {
		if _, exists := st.AccountByName(name); exists {
			return errs.AlreadyExists("An account named '%s' already exists.", name)
		}
		bal, err := ledger.ParseNonNegativeAmount(initialBalance, "Initial balance")
		if err != nil {
			return err
		}
		out = st.InsertAccount(name, bal).Clone()
		return nil
	})
	if err != nil {
		return ledger.Account{}, err
	}
	return out, nil
}

// Get reports whether an account with the normalized name exists. Only an
// empty name is an error.
func (s *service) Get(name string) (ledger.Account, bool, error) {
	name, err := ledger.NormalizeName(name, "Account name")
	if err != nil {
		return ledger.Account{}, false, err
	}
	var (
		out ledger.Account
		ok  bool
	)
	_ = s.store.View(func(st *store.State) error {
		var a *ledger.Account
		if a, ok = st.AccountByName(name); ok {
			out = a.Clone()
		}
		return nil
	})
	return out, ok, nil
}

func (s *service) List() []ledger.Account {
	var out []ledger.Account
	_ = s.store.View(func(st *store.State) error {
		out = st.Accounts()
		return nil
	})
	return out
}

// Rename changes an account's name in place; its identity, position and
// transactions are unchanged. Renaming to the same name is a no-op that still persists.
func (s *service) Rename(ctx context.Context, oldName, newName string) (ledger.Account, error) {
	oldName, err := ledger.NormalizeName(oldName, "Old account name")
	if err != nil {
		return ledger.Account{}, err
	}
	newName, err = ledger.NormalizeName(newName, "New account name")
	if err != nil {
		return ledger.Account{}, err
	}
	var out ledger.Account
	err = s.store.Update(ctx, func(st *store.State) error {
		a, ok := st.AccountByName(oldName)
		if !ok {
			return errs.NotFound("Account '%s' does not exist.", oldName)
		}
		if _, taken := st.AccountByName(newName); taken && newName != oldName {
			return errs.AlreadyExists("An account named '%s' already exists.", newName)
		}
		st.RenameAccount(a.ID, newName)
		out = a.Clone()
		return nil
	})
	if err != nil {
		return ledger.Account{}, err
	}
	return out, nil
}

// Delete removes the account and all of its transactions.
func (s *service) Delete(ctx context.Context, name string) error {
	name, err := ledger.NormalizeName(name, "Account name")
	if err != nil {
		return err
	}
	return s.store.Update(ctx, func(st *store.State) error {
		a, ok := st.AccountByName(name)
		if !ok {
			return errs.NotFound("Account '%s' does not exist.", name)
		}
		st.RemoveAccount(a.ID)
		return nil
	})
}
