package dictionary

import "github.com/tinoosan/moneyledger/internal/ledger"

// Curated starting categories for a fresh ledger. Every entry is already in
// normalized form so it can be referenced through ledger.NormalizeName.
var curated = map[ledger.TransactionType][]string{
	ledger.TypeIncome: {
		"Salary",
		"Business",
		"Investment",
		"Gift",
		"Other income",
	},
	ledger.TypeExpense: {
		"Food",
		"Transport",
		"Entertainment",
		"Bills",
		"Shopping",
		"Healthcare",
		"Other expense",
	},
}

// DefaultCategories returns a fresh copy of the built-in categories for t.
func DefaultCategories(t ledger.TransactionType) []string {
	list := curated[t]
	out := make([]string, len(list))
	copy(out, list)
	return out
}
