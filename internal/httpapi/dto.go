package httpapi

import (
	"time"

	"github.com/google/uuid"
	"github.com/govalues/money"
	"github.com/shopspring/decimal"

	"github.com/tinoosan/moneyledger/internal/ledger"
	"github.com/tinoosan/moneyledger/internal/service/report"
)

// Amounts travel as decimal strings with two places.

type postAccountRequest struct {
	Name           string `json:"name"`
	InitialBalance string `json:"initial_balance"`
}

type renameRequest struct {
	Name string `json:"name"`
}

type accountResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Balance        string    `json:"balance"`
	Display        string    `json:"display"`
	TransactionIDs []int     `json:"transaction_ids"`
}

type postCategoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type categoryResponse struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type categoryListResponse struct {
	Type       string   `json:"type"`
	Categories []string `json:"categories"`
}

type allCategoriesResponse struct {
	Income  []string `json:"income"`
	Expense []string `json:"expense"`
}

type postTransactionRequest struct {
	Type        string `json:"type"`
	Category    string `json:"category"`
	Account     string `json:"account"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// patchTransactionRequest leaves a field unchanged when it is empty.
// An absent description keeps the current one; "" clears it.
type patchTransactionRequest struct {
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Account     string  `json:"account"`
	Amount      string  `json:"amount"`
	Description *string `json:"description"`
}

type transactionResponse struct {
	ID          int    `json:"id"`
	DateTime    string `json:"datetime"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Account     string `json:"account"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

type summaryResponse struct {
	Period           string    `json:"period"`
	Label            string    `json:"label"`
	Start            time.Time `json:"start"`
	End              time.Time `json:"end"`
	TotalIncome      string    `json:"total_income"`
	TotalExpense     string    `json:"total_expense"`
	Net              string    `json:"net"`
	TransactionCount int       `json:"transaction_count"`
	Display          struct {
		TotalIncome  string `json:"total_income"`
		TotalExpense string `json:"total_expense"`
		Net          string `json:"net"`
	} `json:"display"`
}

type categoryReportResponse struct {
	From       string            `json:"from"`
	To         string            `json:"to"`
	Categories map[string]string `json:"categories"`
	Total      string            `json:"total"`
}

type backupResponse struct {
	Path string `json:"path"`
}

// display renders d with the configured currency, e.g. "GBP 12.50".
// It returns "" when no valid currency is configured.
func (s *Server) display(d decimal.Decimal) string {
	if s.currency == "" {
		return ""
	}
	a, err := money.ParseAmount(s.currency, ledger.FormatAmount(d))
	if err != nil {
		return ""
	}
	return a.String()
}

func (s *Server) toAccountResponse(a ledger.Account) accountResponse {
	ids := a.TransactionIDs
	if ids == nil {
		ids = []int{}
	}
	return accountResponse{
		ID:             a.ID,
		Name:           a.Name,
		Balance:        ledger.FormatAmount(a.Balance),
		Display:        s.display(a.Balance),
		TransactionIDs: ids,
	}
}

func (s *Server) toSummaryResponse(sum report.Summary) summaryResponse {
	out := summaryResponse{
		Period:           string(sum.Period),
		Label:            sum.Label,
		Start:            sum.Start,
		End:              sum.End,
		TotalIncome:      ledger.FormatAmount(sum.TotalIncome),
		TotalExpense:     ledger.FormatAmount(sum.TotalExpense),
		Net:              ledger.FormatAmount(sum.Net),
		TransactionCount: sum.TransactionCount,
	}
	out.Display.TotalIncome = s.display(sum.TotalIncome)
	out.Display.TotalExpense = s.display(sum.TotalExpense)
	out.Display.Net = s.display(sum.Net)
	return out
}

// accountNames maps account IDs to their current names for transaction payloads.
func (s *Server) accountNames() map[uuid.UUID]string {
	accs := s.accounts.List()
	out := make(map[uuid.UUID]string, len(accs))
	for _, a := range accs {
		out[a.ID] = a.Name
	}
	return out
}

func toTransactionResponse(t ledger.Transaction, names map[uuid.UUID]string) transactionResponse {
	return transactionResponse{
		ID:          t.ID,
		DateTime:    ledger.FormatDateTime(t.Timestamp),
		Type:        string(t.Type),
		Category:    t.Category,
		Account:     names[t.AccountID],
		Amount:      ledger.FormatAmount(t.Amount),
		Description: t.Description,
	}
}
