package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const (
	ctxKeyTransactionID ctxKey = "transactionID"
	ctxKeyDateRange     ctxKey = "dateRange"
)

// requestLogger logs basic request info at INFO and panics at ERROR.
func requestLogger(l *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			reqID := chimw.GetReqID(r.Context())
			l.Debug("request started", "req_id", reqID, "method", r.Method, "path", r.URL.Path)

			next.ServeHTTP(ww, r)

			l.Info("request complete",
				"req_id", reqID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).String(),
			)
		})
	}
}

// recoverer logs panics as ERROR and returns 500.
func recoverer(l *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					reqID := chimw.GetReqID(r.Context())
					l.Error("panic", "req_id", reqID, "err", rec, "stack", string(debug.Stack()))
					writeErr(w, http.StatusInternalServerError, "internal error", "internal_error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// withTransactionID parses the {id} path segment and stores it in the request context.
func (s *Server) withTransactionID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := strconv.Atoi(chi.URLParam(r, "id"))
			if err != nil || id <= 0 {
				badRequest(w, "invalid transaction id")
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyTransactionID, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type dateRange struct {
	From time.Time
	To   time.Time
}

// withDateRange parses the required from/to query dates for category reports.
func (s *Server) withDateRange() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("from") == "" || q.Get("to") == "" {
				badRequest(w, "from and to are required")
				return
			}
			from, err := s.parseDate(q.Get("from"))
			if err != nil {
				badRequest(w, "invalid from")
				return
			}
			to, err := s.parseDate(q.Get("to"))
			if err != nil {
				badRequest(w, "invalid to")
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyDateRange, dateRange{From: from, To: to})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
