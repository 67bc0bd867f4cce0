package store

import (
	"fmt"
	"time"

	"github.com/tinoosan/moneyledger/internal/dictionary"
	"github.com/tinoosan/moneyledger/internal/ledger"
	"github.com/tinoosan/moneyledger/internal/storage/document"
)

// decode rebuilds live state from a persisted document. Account IDs are fresh
// on every load. Balances are taken as persisted, not recomputed.
func decode(doc *document.Document, loc *time.Location) (*State, error) {
	st := newState()

	for i, da := range doc.Accounts {
		if _, dup := st.byName[da.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate account %q", document.ErrCorrupt, da.Name)
		}
		bal, err := ledger.ParseAmount(da.Balance)
		if err != nil {
			return nil, fmt.Errorf("%w: account %d: %v", document.ErrCorrupt, i, err)
		}
		st.InsertAccount(da.Name, bal)
	}

	seen := make(map[int]struct{}, len(doc.Transactions))
	for _, dt := range doc.Transactions {
		if _, dup := seen[dt.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate transaction id %d", document.ErrCorrupt, dt.ID)
		}
		seen[dt.ID] = struct{}{}

		acc, ok := st.AccountByName(dt.Account)
		if !ok {
			return nil, fmt.Errorf("%w: transaction %d references unknown account %q", document.ErrCorrupt, dt.ID, dt.Account)
		}
		typ := ledger.TransactionType(dt.Type)
		if !typ.Valid() {
			return nil, fmt.Errorf("%w: transaction %d has type %q", document.ErrCorrupt, dt.ID, dt.Type)
		}
		amt, err := ledger.ParseAmount(dt.Amount)
		if err != nil {
			return nil, fmt.Errorf("%w: transaction %d: %v", document.ErrCorrupt, dt.ID, err)
		}
		ts, err := ledger.ParseDateTime(dt.DateTime, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: transaction %d datetime %q", document.ErrCorrupt, dt.ID, dt.DateTime)
		}
		acc.Attach(dt.ID)
		st.transactions = append(st.transactions, &ledger.Transaction{
			ID:          dt.ID,
			Timestamp:   ts,
			Type:        typ,
			Category:    dt.Category,
			AccountID:   acc.ID,
			Amount:      amt,
			Description: dt.Description,
		})
	}

	st.categories[ledger.TypeIncome] = categoriesOrDefault(doc.IncomeCategories, ledger.TypeIncome)
	st.categories[ledger.TypeExpense] = categoriesOrDefault(doc.ExpenseCategories, ledger.TypeExpense)
	return st, nil
}

func categoriesOrDefault(list []string, t ledger.TransactionType) []string {
	if list == nil {
		return dictionary.DefaultCategories(t)
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// encode produces the persisted form of st, preserving both insertion orders.
func encode(st *State, loc *time.Location) *document.Document {
	doc := &document.Document{
		Accounts:          make([]document.Account, 0, len(st.order)),
		Transactions:      make([]document.Transaction, 0, len(st.transactions)),
		IncomeCategories:  st.Categories(ledger.TypeIncome),
		ExpenseCategories: st.Categories(ledger.TypeExpense),
	}
	for _, id := range st.order {
		a := st.accounts[id]
		doc.Accounts = append(doc.Accounts, document.Account{
			Name:    a.Name,
			Balance: ledger.FormatAmount(a.Balance),
		})
	}
	for _, t := range st.transactions {
		doc.Transactions = append(doc.Transactions, document.Transaction{
			ID:          t.ID,
			DateTime:    ledger.FormatDateTime(t.Timestamp.In(loc)),
			Type:        string(t.Type),
			Category:    t.Category,
			Account:     st.accounts[t.AccountID].Name,
			Amount:      ledger.FormatAmount(t.Amount),
			Description: t.Description,
		})
	}
	return doc
}
