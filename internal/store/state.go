package store

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tinoosan/moneyledger/internal/ledger"
)

// State is the live ledger. It is only reachable through Store.View and
// Store.Update; methods that change it must only be called inside Update.
//
// The methods here keep the collections consistent with each other (name
// index, back-references, balances). Business validation lives in the services.
type State struct {
	accounts     map[uuid.UUID]*ledger.Account
	byName       map[string]uuid.UUID
	order        []uuid.UUID
	transactions []*ledger.Transaction
	categories   map[ledger.TransactionType][]string
	clock        func() time.Time
}

func newState() *State {
	return &State{
		accounts:   make(map[uuid.UUID]*ledger.Account),
		byName:     make(map[string]uuid.UUID),
		categories: make(map[ledger.TransactionType][]string, 2),
		clock:      func() time.Time { return time.Now().Truncate(time.Second) },
	}
}

// Now is the store clock, truncated to whole seconds.
func (s *State) Now() time.Time { return s.clock() }

// --- accounts ---

// Accounts returns copies of all accounts in insertion order.
func (s *State) Accounts() []ledger.Account {
	out := make([]ledger.Account, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.accounts[id].Clone())
	}
	return out
}

// Account looks an account up by ID.
func (s *State) Account(id uuid.UUID) (*ledger.Account, bool) {
	a, ok := s.accounts[id]
	return a, ok
}

// AccountByName looks an account up by its normalized name.
func (s *State) AccountByName(name string) (*ledger.Account, bool) {
	id, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return s.accounts[id], true
}

// InsertAccount adds a new account at the end of the insertion order.
// The caller has already checked the name is free.
func (s *State) InsertAccount(name string, balance decimal.Decimal) *ledger.Account {
	a := &ledger.Account{ID: uuid.New(), Name: name, Balance: balance}
	s.accounts[a.ID] = a
	s.byName[name] = a.ID
	s.order = append(s.order, a.ID)
	return a
}

// RenameAccount re-keys the name index. ID and position are unchanged.
func (s *State) RenameAccount(id uuid.UUID, name string) {
	a, ok := s.accounts[id]
	if !ok {
		return
	}
	delete(s.byName, a.Name)
	a.Name = name
	s.byName[name] = id
}

// RemoveAccount deletes the account and every transaction that belongs to it.
// Balances are not touched since the owner is gone. It returns how many
// transactions were removed.
func (s *State) RemoveAccount(id uuid.UUID) int {
	a, ok := s.accounts[id]
	if !ok {
		return 0
	}
	before := len(s.transactions)
	s.transactions = slices.DeleteFunc(s.transactions, func(t *ledger.Transaction) bool {
		return t.AccountID == id
	})
	delete(s.byName, a.Name)
	delete(s.accounts, id)
	s.order = slices.DeleteFunc(s.order, func(x uuid.UUID) bool { return x == id })
	return before - len(s.transactions)
}

// --- transactions ---

// Transactions returns copies of all transactions in insertion order.
func (s *State) Transactions() []ledger.Transaction {
	out := make([]ledger.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		out = append(out, *t)
	}
	return out
}

// Transaction looks a transaction up by id.
func (s *State) Transaction(id int) (*ledger.Transaction, bool) {
	for _, t := range s.transactions {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// NextTransactionID is one more than the highest id in use, or 1.
func (s *State) NextTransactionID() int {
	highest := 0
	for _, t := range s.transactions {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest + 1
}

// AppendTransaction records t on its account (balance and back-reference)
// and appends it to the global list. The account must exist.
func (s *State) AppendTransaction(t *ledger.Transaction) {
	a := s.accounts[t.AccountID]
	a.Apply(t.Amount, t.Type)
	a.Attach(t.ID)
	s.transactions = append(s.transactions, t)
}

// RemoveTransaction reverses t on its account and drops it from both lists.
func (s *State) RemoveTransaction(id int) {
	i := slices.IndexFunc(s.transactions, func(t *ledger.Transaction) bool { return t.ID == id })
	if i < 0 {
		return
	}
	t := s.transactions[i]
	if a, ok := s.accounts[t.AccountID]; ok {
		a.Reverse(t.Amount, t.Type)
		a.Detach(t.ID)
	}
	s.transactions = slices.Delete(s.transactions, i, i+1)
}

// --- categories ---

// Categories returns a copy of the category list for t.
func (s *State) Categories(t ledger.TransactionType) []string {
	return slices.Clone(s.categories[t])
}

// HasCategory is an exact membership test.
func (s *State) HasCategory(t ledger.TransactionType, name string) bool {
	return slices.Contains(s.categories[t], name)
}

// AddCategory appends name to the list for t.
func (s *State) AddCategory(t ledger.TransactionType, name string) {
	s.categories[t] = append(s.categories[t], name)
}

// RenameCategory replaces old with name in place and relabels every
// transaction of type t filed under old. It returns the number relabelled.
func (s *State) RenameCategory(t ledger.TransactionType, old, name string) int {
	list := s.categories[t]
	if i := slices.Index(list, old); i >= 0 {
		list[i] = name
	}
	n := 0
	for _, tx := range s.transactions {
		if tx.Type == t && tx.Category == old {
			tx.Category = name
			n++
		}
	}
	return n
}

// RemoveCategory drops name from the list for t.
func (s *State) RemoveCategory(t ledger.TransactionType, name string) {
	s.categories[t] = slices.DeleteFunc(s.categories[t], func(c string) bool { return c == name })
}

// CategoryUsage counts transactions of type t filed under name.
func (s *State) CategoryUsage(t ledger.TransactionType, name string) int {
	n := 0
	for _, tx := range s.transactions {
		if tx.Type == t && tx.Category == name {
			n++
		}
	}
	return n
}
