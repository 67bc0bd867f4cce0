package httpapi

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/tinoosan/moneyledger/internal/errs"
	"github.com/tinoosan/moneyledger/internal/ledger"
)

func (s *Server) postAccount(w http.ResponseWriter, r *http.Request) {
	var req postAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.InitialBalance == "" {
		req.InitialBalance = "0"
	}
	a, err := s.accounts.Add(r.Context(), req.Name, req.InitialBalance)
	if err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	toJSON(w, http.StatusCreated, s.toAccountResponse(a))
}

func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	accs := s.accounts.List()
	out := make([]accountResponse, 0, len(accs))
	for _, a := range accs {
		out = append(out, s.toAccountResponse(a))
	}
	toJSON(w, http.StatusOK, out)
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	a, ok, err := s.accounts.Get(chi.URLParam(r, "name"))
	if err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	if !ok {
		name, _ := ledger.NormalizeName(chi.URLParam(r, "name"), "Account name")
		s.writeServiceErr(w, r, errs.NotFound("Account '%s' does not exist.", name))
		return
	}
	toJSON(w, http.StatusOK, s.toAccountResponse(a))
}

func (s *Server) renameAccount(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	a, err := s.accounts.Rename(r.Context(), chi.URLParam(r, "name"), req.Name)
	if err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	toJSON(w, http.StatusOK, s.toAccountResponse(a))
}

func (s *Server) deleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.accounts.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
