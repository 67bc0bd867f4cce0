package httpapi

import (
	"errors"
	"net/http"

	"github.com/tinoosan/moneyledger/internal/backup"
)

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

// readyz pings the storage backend when it supports it.
func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	if rd, ok := s.store.Persister().(readiness); ok {
		if err := rd.Ready(r.Context()); err != nil {
			s.log.Warn("storage not ready", "req_id", reqID(r), "backend", s.store.Backend(), "err", err)
			writeErr(w, http.StatusServiceUnavailable, "storage unavailable", "not_ready")
			return
		}
	}
	w.WriteHeader(http.StatusOK)
}

// postBackup snapshots file-backed ledgers into the configured backup dir.
func (s *Server) postBackup(w http.ResponseWriter, r *http.Request) {
	src, err := backup.For(s.store.Persister())
	if errors.Is(err, backup.ErrUnsupported) {
		writeErr(w, http.StatusNotImplemented, "backend "+s.store.Backend()+" does not support backups", "backup_unsupported")
		return
	}
	path, err := backup.Create(src, s.backupDir, s.now())
	if err != nil {
		s.log.Error("backup failed", "req_id", reqID(r), "err", err)
		writeErr(w, http.StatusInternalServerError, "backup failed", "backup_failed")
		return
	}
	s.log.Info("backup created", "req_id", reqID(r), "path", path)
	toJSON(w, http.StatusCreated, backupResponse{Path: path})
}
