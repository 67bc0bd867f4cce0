package httpapi

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/tinoosan/moneyledger/internal/ledger"
)

// listCategories returns one list when ?type= is given, otherwise both.
func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("type"); raw != "" {
		t, err := ledger.ParseTransactionType(raw)
		if err != nil {
			s.writeServiceErr(w, r, err)
			return
		}
		toJSON(w, http.StatusOK, categoryListResponse{Type: string(t), Categories: nonNil(s.categories.List(t))})
		return
	}
	toJSON(w, http.StatusOK, allCategoriesResponse{
		Income:  nonNil(s.categories.List(ledger.TypeIncome)),
		Expense: nonNil(s.categories.List(ledger.TypeExpense)),
	})
}

func (s *Server) postCategory(w http.ResponseWriter, r *http.Request) {
	var req postCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.categories.Add(r.Context(), req.Name, req.Type); err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	toJSON(w, http.StatusCreated, normalizedCategory(req.Name, req.Type))
}

func (s *Server) renameCategory(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	typ := chi.URLParam(r, "type")
	if err := s.categories.Rename(r.Context(), chi.URLParam(r, "name"), req.Name, typ); err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	toJSON(w, http.StatusOK, normalizedCategory(req.Name, typ))
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.categories.Delete(r.Context(), chi.URLParam(r, "name"), chi.URLParam(r, "type")); err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// normalizedCategory echoes inputs that the service has already accepted.
func normalizedCategory(name, typ string) categoryResponse {
	n, _ := ledger.NormalizeName(name, "Category name")
	t, _ := ledger.ParseTransactionType(typ)
	return categoryResponse{Name: n, Type: string(t)}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
