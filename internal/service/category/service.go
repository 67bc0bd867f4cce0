// Package category manages the income and expense category lists.
package category

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
	Add(ctx context.Context, category, typeInput string) error
	Rename(ctx context.Context, oldCategory, newCategory, typeInput string) error
	Delete(ctx context.Context, category, typeInput string) error
	IsValid(category string, t ledger.TransactionType) bool
	List(t ledger.TransactionType) []string
	All() []string
}

type service struct {
	store Store
}

func New(st Store) Service { return &service{store: st} }

func (s *service) Add(ctx context.Context, category, typeInput string) error {
	t, err := ledger.ParseTransactionType(typeInput)
	if err != nil {
		return err
	}
	category, err = ledger.NormalizeName(category, "Category name")
	if err != nil {
		return err
	}
	return s.store.Update(ctx, func(st *store.State) error {
		if st.HasCategory(t, category) {
			return errs.AlreadyExists("A category named '%s' already exists.", category)
		}
		st.AddCategory(t, category)
		return nil
	})
}

// Rename replaces a category in place and relabels every transaction of the
// same type that uses it.
func (s *service) Rename(ctx context.Context, oldCategory, newCategory, typeInput string) error {
	t, err := ledger.ParseTransactionType(typeInput)
	if err != nil {
		return err
	}
	oldCategory, err = ledger.NormalizeName(oldCategory, "Old category name")
	if err != nil {
		return err
	}
	newCategory, err = ledger.NormalizeName(newCategory, "New category name")
	if err != nil {
		return err
	}
	return s.store.Update(ctx, func(st *store.State) error {
		if !st.HasCategory(t, oldCategory) {
			return errs.NotFound("Category '%s' not found in %s categories.", oldCategory, t)
		}
		if newCategory != oldCategory && st.HasCategory(t, newCategory) {
			return errs.AlreadyExists("Category '%s' already exists. Choose a different name.", newCategory)
		}
		st.RenameCategory(t, oldCategory, newCategory)
		return nil
	})
}

// Delete removes a category that no transaction of its type uses.
func (s *service) Delete(ctx context.Context, category, typeInput string) error {
	t, err := ledger.ParseTransactionType(typeInput)
	if err != nil {
		return err
	}
	category, err = ledger.NormalizeName(category, "Category name")
	if err != nil {
		return err
	}
	return s.store.Update(ctx, func(st *store.State) error {
		if !st.HasCategory(t, category) {
			return errs.NotFound("Category '%s' does not exist.", category)
		}
		if n := st.CategoryUsage(t, category); n > 0 {
			return errs.CategoryInUse(category, n)
		}
		st.RemoveCategory(t, category)
		return nil
	})
}

// IsValid is an exact membership test; category is not normalized.
func (s *service) IsValid(category string, t ledger.TransactionType) bool {
	var ok bool
	_ = s.store.View(func(st *store.State) error {
		ok = st.HasCategory(t, category)
		return nil
	})
	return ok
}

func (s *service) List(t ledger.TransactionType) []string {
	var out []string
	_ = s.store.View(func(st *store.State) error {
		out = st.Categories(t)
		return nil
	})
	return out
}

// All returns income categories followed by expense categories.
func (s *service) All() []string {
	var out []string
	_ = s.store.View(func(st *store.State) error {
		out = append(st.Categories(ledger.TypeIncome), st.Categories(ledger.TypeExpense)...)
		return nil
	})
	return out
}
