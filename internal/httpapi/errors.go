package httpapi

import (
	"errors"
	"net/http"

	"github.com/tinoosan/moneyledger/internal/errs"
)

// errorResponse is the standard error payload for the API.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Count int    `json:"count,omitempty"`
}

func writeErr(w http.ResponseWriter, status int, msg, code string) {
	toJSON(w, status, errorResponse{Error: msg, Code: code})
}

func badRequest(w http.ResponseWriter, msg string) { writeErr(w, http.StatusBadRequest, msg, "bad_request") }

// writeServiceErr maps ledger errors onto status codes. Anything outside the
// ledger taxonomy is logged and reported as 500.
func (s *Server) writeServiceErr(w http.ResponseWriter, r *http.Request, err error) {
	var e *errs.Error
	if !errors.As(err, &e) {
		s.log.Error("request failed", "req_id", reqID(r), "err", err)
		writeErr(w, http.StatusInternalServerError, "internal error", "internal_error")
		return
	}
	status := http.StatusInternalServerError
	switch e.Kind {
	case errs.KindInvalidInput:
		status = http.StatusUnprocessableEntity
	case errs.KindNotFound:
		status = http.StatusNotFound
	case errs.KindAlreadyExists, errs.KindCategoryInUse:
		status = http.StatusConflict
	}
	toJSON(w, status, errorResponse{Error: e.Msg, Code: e.Kind.String(), Count: e.Count})
}
