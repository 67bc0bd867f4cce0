package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tinoosan/moneyledger/internal/httpapi"
	"github.com/tinoosan/moneyledger/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the ledger HTTP API",
	Long: `Load the ledger from the configured backend and serve the JSON API
until interrupted. Every accepted change is persisted before it is answered.

Example:
  LEDGER_STORAGE_BACKEND=bolt LEDGER_STORAGE_PATH=data/ledger.db ledgerd serve`,
	Run: runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	exitOnError(err, "invalid configuration")

	logger := buildLogger(os.Stdout, cfg.Log)
	slog.SetDefault(logger)

	loc, _ := cfg.Location()
	backend, closeFn, err := openBackend(ctx, cfg.Storage)
	exitOnError(err, "failed to open storage")
	defer closeFn()

	st, err := store.Open(ctx, backend, store.WithLocation(loc))
	exitOnError(err, "failed to load ledger")
	logger.Info("ledger loaded", "backend", st.Backend(), "timezone", loc.String())

	api := httpapi.New(st, httpapi.Options{
		Currency:  cfg.Ledger.Currency,
		BackupDir: cfg.Storage.BackupDir,
	}, logger)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.Handler(),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	err = listenAndServe(ctx, srv, logger)
	if err != nil {
		stop()
		closeFn()
	}
	exitOnError(err, "server error")
}

// listenAndServe runs srv until ctx ends, then shuts it down gracefully.
// A listener failure is returned.
func listenAndServe(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("ledger service listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}
