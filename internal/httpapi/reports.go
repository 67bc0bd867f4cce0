package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tinoosan/moneyledger/internal/ledger"
)

const queryDateLayout = "2006-01-02"

func (s *Server) parseDate(v string) (time.Time, error) {
	return time.ParseInLocation(queryDateLayout, v, s.store.Location())
}

// summaryDate reads ?date=, defaulting to today in the ledger's zone.
func (s *Server) summaryDate(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return s.now().In(s.store.Location()), true
	}
	d, err := s.parseDate(raw)
	if err != nil {
		badRequest(w, "invalid date: expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return d, true
}

func (s *Server) dailySummary(w http.ResponseWriter, r *http.Request) {
	d, ok := s.summaryDate(w, r)
	if !ok {
		return
	}
	toJSON(w, http.StatusOK, s.toSummaryResponse(s.reports.Daily(d)))
}

func (s *Server) weeklySummary(w http.ResponseWriter, r *http.Request) {
	d, ok := s.summaryDate(w, r)
	if !ok {
		return
	}
	toJSON(w, http.StatusOK, s.toSummaryResponse(s.reports.Weekly(d)))
}

// monthlySummary answers an out-of-range year or month with an empty object.
func (s *Server) monthlySummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil {
		badRequest(w, "year must be an integer")
		return
	}
	month, err := strconv.Atoi(q.Get("month"))
	if err != nil {
		badRequest(w, "month must be an integer")
		return
	}
	sum, ok := s.reports.Monthly(year, time.Month(month))
	if !ok {
		toJSON(w, http.StatusOK, struct{}{})
		return
	}
	toJSON(w, http.StatusOK, s.toSummaryResponse(sum))
}

func (s *Server) expensesReport(w http.ResponseWriter, r *http.Request) {
	rng := r.Context().Value(ctxKeyDateRange).(dateRange)
	toJSON(w, http.StatusOK, categoryReport(rng, s.reports.ExpensesByCategory(rng.From, rng.To)))
}

func (s *Server) incomeReport(w http.ResponseWriter, r *http.Request) {
	rng := r.Context().Value(ctxKeyDateRange).(dateRange)
	toJSON(w, http.StatusOK, categoryReport(rng, s.reports.IncomeByCategory(rng.From, rng.To)))
}

func categoryReport(rng dateRange, sums map[string]decimal.Decimal) categoryReportResponse {
	out := categoryReportResponse{
		From:       rng.From.Format(queryDateLayout),
		To:         rng.To.Format(queryDateLayout),
		Categories: make(map[string]string, len(sums)),
	}
	total := decimal.Zero
	for c, v := range sums {
		out.Categories[c] = ledger.FormatAmount(v)
		total = total.Add(v)
	}
	out.Total = ledger.FormatAmount(total)
	return out
}
