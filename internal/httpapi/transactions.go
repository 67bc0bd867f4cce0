package httpapi

import (
	"net/http"
	"slices"

	"github.com/tinoosan/moneyledger/internal/errs"
	"github.com/tinoosan/moneyledger/internal/ledger"
	"github.com/tinoosan/moneyledger/internal/service/transaction"
)

func (s *Server) postTransaction(w http.ResponseWriter, r *http.Request) {
	var req postTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	tx, err := s.transactions.Add(r.Context(), transaction.Input{
		Type:        req.Type,
		Category:    req.Category,
		Account:     req.Account,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	toJSON(w, http.StatusCreated, toTransactionResponse(tx, s.accountNames()))
}

// listTransactions accepts at most one of category, account or type, and
// order=desc (default, newest first) or order=asc.
func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	desc := true
	switch q.Get("order") {
	case "", "desc":
	case "asc":
		desc = false
	default:
		badRequest(w, "order must be asc or desc")
		return
	}

	filters := 0
	for _, k := range []string{"category", "account", "type"} {
		if q.Has(k) {
			filters++
		}
	}
	if filters > 1 {
		badRequest(w, "only one of category, account or type may be given")
		return
	}

	var (
		txs []ledger.Transaction
		err error
	)
	switch {
	case q.Has("category"):
		txs, err = s.reports.FilterByCategory(q.Get("category"))
	case q.Has("account"):
		txs, err = s.reports.FilterByAccount(q.Get("account"))
	case q.Has("type"):
		txs, err = s.reports.FilterByType(q.Get("type"))
	default:
		txs = s.transactions.List(desc)
	}
	if err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	if filters == 1 {
		slices.SortStableFunc(txs, func(a, b ledger.Transaction) int {
			if desc {
				return b.Timestamp.Compare(a.Timestamp)
			}
			return a.Timestamp.Compare(b.Timestamp)
		})
	}

	names := s.accountNames()
	out := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionResponse(tx, names))
	}
	toJSON(w, http.StatusOK, out)
}

func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.Context().Value(ctxKeyTransactionID).(int)
	tx, ok := s.transactions.Get(id)
	if !ok {
		s.writeServiceErr(w, r, errs.NotFound("Transaction with ID %d not found.", id))
		return
	}
	toJSON(w, http.StatusOK, toTransactionResponse(tx, s.accountNames()))
}

func (s *Server) editTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.Context().Value(ctxKeyTransactionID).(int)
	var req patchTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in := transaction.Input{
		Type:     req.Type,
		Category: req.Category,
		Account:  req.Account,
		Amount:   req.Amount,
	}
	if req.Description != nil {
		in.Description = *req.Description
	} else {
		in.KeepDescription = true
	}
	tx, err := s.transactions.Edit(r.Context(), id, in)
	if err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	toJSON(w, http.StatusOK, toTransactionResponse(tx, s.accountNames()))
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.Context().Value(ctxKeyTransactionID).(int)
	if err := s.transactions.Delete(r.Context(), id); err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
