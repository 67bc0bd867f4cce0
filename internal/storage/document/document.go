// Package document defines the persisted shape of a ledger. Every storage
// backend reads and writes exactly this object; the store converts it to and
// from its live collections.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNotExist is returned by a backend that has nothing persisted yet.
	ErrNotExist = errors.New("ledger document does not exist")
	// ErrCorrupt marks a persisted document that cannot be turned back into a ledger.
	ErrCorrupt = errors.New("corrupt ledger document")
)

// Document is the whole persisted ledger.
//
// A nil category list means the key was absent and defaults apply; an empty
// list is a deliberate empty set.
type Document struct {
	Accounts          []Account     `json:"accounts"`
	Transactions      []Transaction `json:"transactions"`
	IncomeCategories  []string      `json:"income_categories"`
	ExpenseCategories []string      `json:"expense_categories"`
}

// Account is the persisted form of an account. Balance is a two-place decimal string.
type Account struct {
	Name    string `json:"account_name"`
	Balance string `json:"balance"`
}

// Transaction is the persisted form of a transaction. Account holds the
// owning account's name and DateTime uses the DD-MM-YYYY HH:MM:SS layout.
type Transaction struct {
	ID          int    `json:"transaction_id"`
	DateTime    string `json:"datetime"`
	Type        string `json:"transaction_type"`
	Category    string `json:"category"`
	Account     string `json:"account"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// Marshal encodes d as indented JSON. Nil lists are written as empty arrays.
func Marshal(d *Document) ([]byte, error) {
	out := *d
	if out.Accounts == nil {
		out.Accounts = []Account{}
	}
	if out.Transactions == nil {
		out.Transactions = []Transaction{}
	}
	if out.IncomeCategories == nil {
		out.IncomeCategories = []string{}
	}
	if out.ExpenseCategories == nil {
		out.ExpenseCategories = []string{}
	}
	b, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode ledger document: %w", err)
	}
	return b, nil
}

// Unmarshal decodes a JSON document. Syntax and type errors wrap ErrCorrupt.
func Unmarshal(b []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &d, nil
}
