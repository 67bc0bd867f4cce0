package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinoosan/moneyledger/internal/storage/jsonfile"
	"github.com/tinoosan/moneyledger/internal/store"
	"github.com/tinoosan/moneyledger/internal/store/storetest"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type errResp struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Count int    `json:"count"`
}

type fixture struct {
	h     http.Handler
	clock *storetest.Clock
}

func setup(t *testing.T) fixture {
	t.Helper()
	clock := &storetest.Clock{T: time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)}
	st, _ := storetest.Open(t, clock)
	h := New(st, Options{Currency: "GBP", BackupDir: t.TempDir(), Now: clock.Now}, testLogger()).Handler()
	return fixture{h: h, clock: clock}
}

func (f fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestAccounts(t *testing.T) {
	f := setup(t)

	rec := f.do(t, http.MethodPost, "/v1/accounts", map[string]string{"name": " checking ", "initial_balance": "100"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	acc := decode[accountResponse](t, rec)
	assert.Equal(t, "Checking", acc.Name)
	assert.Equal(t, "100.00", acc.Balance)
	assert.Contains(t, acc.Display, "GBP")
	assert.Equal(t, []int{}, acc.TransactionIDs)

	rec = f.do(t, http.MethodPost, "/v1/accounts", map[string]string{"name": "CHECKING"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "already_exists", decode[errResp](t, rec).Code)

	rec = f.do(t, http.MethodPost, "/v1/accounts", map[string]string{"name": "Cash", "initial_balance": "-1"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	e := decode[errResp](t, rec)
	assert.Equal(t, "invalid_input", e.Code)
	assert.Equal(t, "Initial balance cannot be negative.", e.Error)

	for _, bal := range []string{"1e30", "1e10000000"} {
		rec = f.do(t, http.MethodPost, "/v1/accounts", map[string]string{"name": "Vault", "initial_balance": bal})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, bal)
		assert.Equal(t, "'"+bal+"' is not a valid amount.", decode[errResp](t, rec).Error)
	}
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/v1/accounts/vault", nil).Code)

	rec = f.do(t, http.MethodPost, "/v1/accounts", map[string]string{"name": "Cash", "colour": "red"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "unknown fields are rejected")

	req := httptest.NewRequest(http.MethodPost, "/v1/accounts", bytes.NewBufferString(`{"name":"Cash"}`))
	rec = httptest.NewRecorder()
	f.h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	rec = f.do(t, http.MethodGet, "/v1/accounts/checking", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, acc.ID, decode[accountResponse](t, rec).ID)

	rec = f.do(t, http.MethodGet, "/v1/accounts/savings", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Account 'Savings' does not exist.", decode[errResp](t, rec).Error)

	rec = f.do(t, http.MethodPatch, "/v1/accounts/checking", map[string]string{"name": "main"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	renamed := decode[accountResponse](t, rec)
	assert.Equal(t, acc.ID, renamed.ID)
	assert.Equal(t, "Main", renamed.Name)

	rec = f.do(t, http.MethodGet, "/v1/accounts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]accountResponse](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "Main", list[0].Name)

	assert.Equal(t, http.StatusNoContent, f.do(t, http.MethodDelete, "/v1/accounts/main", nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodDelete, "/v1/accounts/main", nil).Code)
}

func TestTransactionsAndDailySummary(t *testing.T) {
	f := setup(t)
	require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/v1/accounts", map[string]string{"name": "Checking", "initial_balance": "100.00"}).Code)

	rec := f.do(t, http.MethodPost, "/v1/transactions", map[string]string{"type": "income", "category": "Salary", "account": "Checking", "amount": "50.00", "description": "pay"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	tx := decode[transactionResponse](t, rec)
	assert.Equal(t, 1, tx.ID)
	assert.Equal(t, "05-03-2025 12:00:00", tx.DateTime)
	assert.Equal(t, "Checking", tx.Account)

	f.clock.Advance(time.Minute)
	rec = f.do(t, http.MethodPost, "/v1/transactions", map[string]string{"type": "expense", "category": "Food", "account": "Checking", "amount": "30.00"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodPost, "/v1/transactions", map[string]string{"type": "expense", "category": "Salary", "account": "Checking", "amount": "1"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	acc := decode[accountResponse](t, f.do(t, http.MethodGet, "/v1/accounts/Checking", nil))
	assert.Equal(t, "120.00", acc.Balance)
	assert.Equal(t, []int{1, 2}, acc.TransactionIDs)

	rec = f.do(t, http.MethodGet, "/v1/summaries/daily?date=2025-03-05", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sum := decode[summaryResponse](t, rec)
	assert.Equal(t, "50.00", sum.TotalIncome)
	assert.Equal(t, "30.00", sum.TotalExpense)
	assert.Equal(t, "20.00", sum.Net)
	assert.Equal(t, 2, sum.TransactionCount)
	assert.Contains(t, sum.Display.Net, "20.00")

	sum = decode[summaryResponse](t, f.do(t, http.MethodGet, "/v1/summaries/daily", nil))
	assert.Equal(t, 2, sum.TransactionCount, "defaults to today")

	sum = decode[summaryResponse](t, f.do(t, http.MethodGet, "/v1/summaries/weekly?date=2025-03-09", nil))
	assert.Equal(t, "03-03-2025 - 09-03-2025", sum.Label)
	assert.Equal(t, 2, sum.TransactionCount)

	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/v1/summaries/daily?date=05-03-2025", nil).Code)

	list := decode[[]transactionResponse](t, f.do(t, http.MethodGet, "/v1/transactions", nil))
	require.Len(t, list, 2)
	assert.Equal(t, 2, list[0].ID, "newest first by default")
	list = decode[[]transactionResponse](t, f.do(t, http.MethodGet, "/v1/transactions?order=asc&type=expense", nil))
	require.Len(t, list, 1)
	assert.Equal(t, "Food", list[0].Category)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/v1/transactions?type=income&account=Checking", nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/v1/transactions?category=Rent", nil).Code)
}

func TestTransactionByID(t *testing.T) {
	f := setup(t)
	require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/v1/accounts", map[string]string{"name": "Cash", "initial_balance": "10"}).Code)
	require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/v1/transactions", map[string]string{"type": "expense", "category": "Food", "account": "Cash", "amount": "4", "description": "lunch"}).Code)

	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/v1/transactions/abc", nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/v1/transactions/9", nil).Code)

	rec := f.do(t, http.MethodPatch, "/v1/transactions/1", map[string]string{"amount": "6"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	tx := decode[transactionResponse](t, rec)
	assert.Equal(t, "6.00", tx.Amount)
	assert.Equal(t, "lunch", tx.Description, "absent description is kept")

	rec = f.do(t, http.MethodPatch, "/v1/transactions/1", map[string]string{"description": ""})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[transactionResponse](t, rec).Description)

	acc := decode[accountResponse](t, f.do(t, http.MethodGet, "/v1/accounts/cash", nil))
	assert.Equal(t, "4.00", acc.Balance)

	assert.Equal(t, http.StatusNoContent, f.do(t, http.MethodDelete, "/v1/transactions/1", nil).Code)
	acc = decode[accountResponse](t, f.do(t, http.MethodGet, "/v1/accounts/cash", nil))
	assert.Equal(t, "10.00", acc.Balance)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodDelete, "/v1/transactions/1", nil).Code)
}

func TestCategories(t *testing.T) {
	f := setup(t)
	rec := f.do(t, http.MethodPost, "/v1/categories", map[string]string{"name": "pets", "type": "expense"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, categoryResponse{Name: "Pets", Type: "expense"}, decode[categoryResponse](t, rec))

	list := decode[categoryListResponse](t, f.do(t, http.MethodGet, "/v1/categories?type=expense", nil))
	assert.Contains(t, list.Categories, "Pets")
	all := decode[allCategoriesResponse](t, f.do(t, http.MethodGet, "/v1/categories", nil))
	assert.Contains(t, all.Income, "Salary")
	assert.Contains(t, all.Expense, "Pets")
	assert.Equal(t, http.StatusUnprocessableEntity, f.do(t, http.MethodGet, "/v1/categories?type=transfer", nil).Code)

	require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/v1/accounts", map[string]string{"name": "Cash", "initial_balance": "10"}).Code)
	require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/v1/transactions", map[string]string{"type": "expense", "category": "pets", "account": "Cash", "amount": "1"}).Code)

	rec = f.do(t, http.MethodDelete, "/v1/categories/expense/pets", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	e := decode[errResp](t, rec)
	assert.Equal(t, "category_in_use", e.Code)
	assert.Equal(t, 1, e.Count)

	rec = f.do(t, http.MethodPatch, "/v1/categories/expense/pets", map[string]string{"name": "animals"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	list2 := decode[[]transactionResponse](t, f.do(t, http.MethodGet, "/v1/transactions?category=animals", nil))
	require.Len(t, list2, 1)

	assert.Equal(t, http.StatusNoContent, f.do(t, http.MethodDelete, "/v1/categories/expense/bills", nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodDelete, "/v1/categories/expense/bills", nil).Code)
}

func TestMonthlyAndReports(t *testing.T) {
	f := setup(t)
	require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/v1/accounts", map[string]string{"name": "Cash", "initial_balance": "100"}).Code)
	for _, amt := range []string{"1.10", "2.20"} {
		require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/v1/transactions", map[string]string{"type": "expense", "category": "Food", "account": "Cash", "amount": amt}).Code)
	}

	rec := f.do(t, http.MethodGet, "/v1/summaries/monthly?year=2025&month=13", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())

	sum := decode[summaryResponse](t, f.do(t, http.MethodGet, "/v1/summaries/monthly?year=2025&month=3", nil))
	assert.Equal(t, "March 2025", sum.Label)
	assert.Equal(t, "-3.30", sum.Net)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/v1/summaries/monthly?year=x&month=3", nil).Code)

	rep := decode[categoryReportResponse](t, f.do(t, http.MethodGet, "/v1/reports/expenses?from=2025-03-01&to=2025-03-05", nil))
	assert.Equal(t, map[string]string{"Food": "3.30"}, rep.Categories)
	assert.Equal(t, "3.30", rep.Total)

	rep = decode[categoryReportResponse](t, f.do(t, http.MethodGet, "/v1/reports/income?from=2025-03-06&to=2025-03-01", nil))
	assert.Empty(t, rep.Categories)
	assert.Equal(t, "0.00", rep.Total)

	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/v1/reports/expenses?from=2025-03-01", nil).Code)
}

func TestBackups(t *testing.T) {
	f := setup(t)
	rec := f.do(t, http.MethodPost, "/v1/backups", nil)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)

	dir := t.TempDir()
	st, err := store.Open(context.Background(), jsonfile.New(filepath.Join(dir, "ledger.json")), store.WithLocation(time.UTC))
	require.NoError(t, err)
	h := New(st, Options{BackupDir: filepath.Join(dir, "backups"), Now: f.clock.Now}, testLogger()).Handler()

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/accounts", bytes.NewBufferString(`{"name":"Cash","initial_balance":"1"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}
	require.Equal(t, http.StatusCreated, post().Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/backups", nil))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	path := decode[backupResponse](t, rec).Path
	assert.Equal(t, "ledger_backup_05-03-2025_12-00-00.json", filepath.Base(path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"account_name": "Cash"`)
}

func TestHealthAndMetrics(t *testing.T) {
	f := setup(t)
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/healthz", nil).Code)
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/readyz", nil).Code)
	f.do(t, http.MethodGet, "/v1/accounts", nil)
	rec := f.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ledger_http_requests_total")
}
