// Package report filters transactions and totals them over calendar periods.
package report

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tinoosan/moneyledger/internal/errs"
	"github.com/tinoosan/moneyledger/internal/ledger"
	"github.com/tinoosan/moneyledger/internal/store"
)

// Store is the read side of *store.Store plus the zone periods are cut in.
type Store interface {
	View(fn func(*store.State) error) error
	Location() *time.Location
}

// Period names the span a Summary covers.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// Summary totals the transactions whose timestamp falls in [Start, End].
type Summary struct {
	Period           Period
	Label            string
	Start            time.Time
	End              time.Time
	TotalIncome      decimal.Decimal
	TotalExpense     decimal.Decimal
	Net              decimal.Decimal
	TransactionCount int
}

type Service interface {
	FilterByCategory(category string) ([]ledger.Transaction, error)
	FilterByAccount(name string) ([]ledger.Transaction, error)
	FilterByType(typeInput string) ([]ledger.Transaction, error)
	Daily(date time.Time) Summary
	Weekly(date time.Time) Summary
	Monthly(year int, month time.Month) (Summary, bool)
	ExpensesByCategory(start, end time.Time) map[string]decimal.Decimal
	IncomeByCategory(start, end time.Time) map[string]decimal.Decimal
}

type service struct {
	store Store
}

func New(st Store) Service { return &service{store: st} }

// FilterByCategory matches the category name across both types.
func (s *service) FilterByCategory(category string) ([]ledger.Transaction, error) {
	category, err := ledger.NormalizeName(category, "Category name")
	if err != nil {
		return nil, err
	}
	var out []ledger.Transaction
	err = s.store.View(func(st *store.State) error {
		if !st.HasCategory(ledger.TypeIncome, category) && !st.HasCategory(ledger.TypeExpense, category) {
			return errs.NotFound("Category '%s' does not exist.", category)
		}
		out = filter(st.Transactions(), func(t ledger.Transaction) bool { return t.Category == category })
		return nil
	})
	return out, err
}

func (s *service) FilterByAccount(name string) ([]ledger.Transaction, error) {
	name, err := ledger.NormalizeName(name, "Account name")
	if err != nil {
		return nil, err
	}
	var out []ledger.Transaction
	err = s.store.View(func(st *store.State) error {
		acc, ok := st.AccountByName(name)
		if !ok {
			return errs.NotFound("Account '%s' does not exist.", name)
		}
		out = filter(st.Transactions(), func(t ledger.Transaction) bool { return t.AccountID == acc.ID })
		return nil
	})
	return out, err
}

// FilterByType selects transactions whose category is currently listed under
// the given type. A category name listed under both types matches both.
func (s *service) FilterByType(typeInput string) ([]ledger.Transaction, error) {
	t, err := ledger.ParseTransactionType(typeInput)
	if err != nil {
		return nil, err
	}
	var out []ledger.Transaction
	_ = s.store.View(func(st *store.State) error {
		cats := st.Categories(t)
		out = filter(st.Transactions(), func(tx ledger.Transaction) bool { return slices.Contains(cats, tx.Category) })
		return nil
	})
	return out, nil
}

// Daily covers the calendar day of date.
func (s *service) Daily(date time.Time) Summary {
	start := s.startOfDay(date)
	end := endOfDay(start)
	return s.summarize(PeriodDay, start.Format(ledger.DateLayout), start, end)
}

// Weekly covers the ISO week (Monday to Sunday) containing date.
func (s *service) Weekly(date time.Time) Summary {
	day := s.startOfDay(date)
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	end := endOfDay(start.AddDate(0, 0, 6))
	label := start.Format(ledger.DateLayout) + " - " + end.Format(ledger.DateLayout)
	return s.summarize(PeriodWeek, label, start, end)
}

// Monthly covers a calendar month. An invalid year or month yields ok == false.
func (s *service) Monthly(year int, month time.Month) (Summary, bool) {
	if year <= 0 || month < time.January || month > time.December {
		return Summary{}, false
	}
	loc := s.store.Location()
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := endOfDay(time.Date(year, month+1, 0, 0, 0, 0, 0, loc))
	return s.summarize(PeriodMonth, month.String()+" "+start.Format("2006"), start, end), true
}

func (s *service) ExpensesByCategory(start, end time.Time) map[string]decimal.Decimal {
	return s.byCategory(ledger.TypeExpense, start, end)
}

func (s *service) IncomeByCategory(start, end time.Time) map[string]decimal.Decimal {
	return s.byCategory(ledger.TypeIncome, start, end)
}

func (s *service) byCategory(t ledger.TransactionType, start, end time.Time) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	if start.After(end) {
		return out
	}
	from, to := s.startOfDay(start), endOfDay(s.startOfDay(end))
	_ = s.store.View(func(st *store.State) error {
		for _, tx := range st.Transactions() {
			if tx.Type != t || !within(tx.Timestamp, from, to) {
				continue
			}
			out[tx.Category] = out[tx.Category].Add(tx.Amount)
		}
		return nil
	})
	return out
}

func (s *service) summarize(p Period, label string, start, end time.Time) Summary {
	sum := Summary{
		Period:       p,
		Label:        label,
		Start:        start,
		End:          end,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	_ = s.store.View(func(st *store.State) error {
		for _, tx := range st.Transactions() {
			if !within(tx.Timestamp, start, end) {
				continue
			}
			sum.TransactionCount++
			if tx.Type == ledger.TypeIncome {
				sum.TotalIncome = sum.TotalIncome.Add(tx.Amount)
			} else {
				sum.TotalExpense = sum.TotalExpense.Add(tx.Amount)
			}
		}
		return nil
	})
	sum.Net = sum.TotalIncome.Sub(sum.TotalExpense)
	return sum
}

// startOfDay takes the calendar date of d and returns its midnight in the store zone.
func (s *service) startOfDay(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, s.store.Location())
}

func endOfDay(start time.Time) time.Time {
	y, m, d := start.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999999*time.Microsecond), start.Location())
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

func filter(in []ledger.Transaction, keep func(ledger.Transaction) bool) []ledger.Transaction {
	out := make([]ledger.Transaction, 0, len(in))
	for _, t := range in {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
