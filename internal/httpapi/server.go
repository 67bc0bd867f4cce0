// Package httpapi exposes the ledger over a small JSON API.
// Handlers stay thin: they decode input, call a service and map the result.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tinoosan/moneyledger/internal/service/account"
	"github.com/tinoosan/moneyledger/internal/service/category"
	"github.com/tinoosan/moneyledger/internal/service/report"
	"github.com/tinoosan/moneyledger/internal/service/transaction"
	"github.com/tinoosan/moneyledger/internal/store"
)

// Options tune presentation and side features of the API.
type Options struct {
	// Currency is the ISO code used for display strings. Amounts are never converted.
	Currency string
	// BackupDir receives POST /v1/backups snapshots.
	BackupDir string
	// Now defaults to time.Now; tests pin it.
	Now func() time.Time
}

// Server wires handlers and middleware using Chi.
type Server struct {
	store        *store.Store
	accounts     account.Service
	categories   category.Service
	transactions transaction.Service
	reports      report.Service
	currency     string
	backupDir    string
	now          func() time.Time
	log          *slog.Logger
	rt           *chi.Mux
}

// New constructs the HTTP server with routes and middleware over st.
func New(st *store.Store, opts Options, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)

	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Server{
		store:        st,
		accounts:     account.New(st),
		categories:   category.New(st),
		transactions: transaction.New(st),
		reports:      report.New(st),
		currency:     strings.ToUpper(strings.TrimSpace(opts.Currency)),
		backupDir:    opts.BackupDir,
		now:          opts.Now,
		log:          logger,
		rt:           r,
	}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints and attaches any per-route middleware.
func (s *Server) routes() {
	s.rt.Route("/v1/accounts", func(r chi.Router) {
		r.Post("/", s.postAccount)
		r.Get("/", s.listAccounts)
		r.Get("/{name}", s.getAccount)
		r.Patch("/{name}", s.renameAccount)
		r.Delete("/{name}", s.deleteAccount)
	})
	s.rt.Route("/v1/categories", func(r chi.Router) {
		r.Get("/", s.listCategories)
		r.Post("/", s.postCategory)
		r.Patch("/{type}/{name}", s.renameCategory)
		r.Delete("/{type}/{name}", s.deleteCategory)
	})
	s.rt.Route("/v1/transactions", func(r chi.Router) {
		r.Post("/", s.postTransaction)
		r.Get("/", s.listTransactions)
		r.With(s.withTransactionID()).Get("/{id}", s.getTransaction)
		r.With(s.withTransactionID()).Patch("/{id}", s.editTransaction)
		r.With(s.withTransactionID()).Delete("/{id}", s.deleteTransaction)
	})
	s.rt.Get("/v1/summaries/daily", s.dailySummary)
	s.rt.Get("/v1/summaries/weekly", s.weeklySummary)
	s.rt.Get("/v1/summaries/monthly", s.monthlySummary)
	s.rt.With(s.withDateRange()).Get("/v1/reports/expenses", s.expensesReport)
	s.rt.With(s.withDateRange()).Get("/v1/reports/income", s.incomeReport)
	s.rt.Post("/v1/backups", s.postBackup)

	// Health (unversioned)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	s.rt.Handle("/metrics", metricsHandler())
}

type readiness interface {
	Ready(ctx context.Context) error
}
