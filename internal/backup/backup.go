// Package backup writes timestamped copies of the persisted ledger.
package backup

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

const (
	filePrefix  = "ledger_backup_"
	stampLayout = "02-01-2006_15-04-05"

	// DefaultDir is used when no backup directory is configured.
	DefaultDir = "data/backups"
)

// ErrUnsupported is returned for backends that have no file to copy.
var ErrUnsupported = errors.New("backend does not support file backups")

// Source is a file-backed ledger that can write a consistent copy of itself.
type Source interface {
	Path() string
	WriteSnapshot(w io.Writer) error
}

// Name is the backup file name for src taken at now, e.g.
// ledger_backup_05-03-2025_14-30-15.json.
func Name(src string, now time.Time) string {
	return filePrefix + now.Format(stampLayout) + filepath.Ext(src)
}

// Run copies the file at src into dir (created if missing) and reports whether
// it worked. Failures are not returned; callers only need yes or no.
func Run(src, dir string, now time.Time) bool {
	_, err := Create(File(src), dir, now)
	return err == nil
}

// Create writes a snapshot of src into dir and returns the new file's path.
// A partially written backup is removed.
func Create(src Source, dir string, now time.Time) (string, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}
	dst := filepath.Join(dir, Name(src.Path(), now))
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create backup file: %w", err)
	}
	if err := src.WriteSnapshot(f); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("write backup: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("close backup file: %w", err)
	}
	return dst, nil
}

// For returns the backup source of a storage backend. Backends that can
// snapshot themselves are used directly; anything else exposing Path is copied
// as a plain file. Other backends yield ErrUnsupported.
func For(backend any) (Source, error) {
	switch b := backend.(type) {
	case Source:
		return b, nil
	case interface{ Path() string }:
		return File(b.Path()), nil
	default:
		return nil, ErrUnsupported
	}
}

// File is a Source that copies the file at its path byte for byte.
type File string

func (f File) Path() string { return string(f) }

func (f File) WriteSnapshot(w io.Writer) error {
	in, err := os.Open(string(f))
	if err != nil {
		return err
	}
	defer in.Close()
	_, err = io.Copy(w, in)
	return err
}
