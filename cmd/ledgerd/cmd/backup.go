package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tinoosan/moneyledger/internal/backup"
	"github.com/tinoosan/moneyledger/internal/config"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write a timestamped copy of the ledger",
	Long: `Copy the persisted ledger into the backup directory as
ledger_backup_DD-MM-YYYY_HH-MM-SS with the source file's extension.
Only the file and bolt backends can be backed up.

Example:
  ledgerd backup`,
	Run: runBackup,
}

func runBackup(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	exitOnError(err, "invalid configuration")
	slog.SetDefault(buildLogger(os.Stderr, cfg.Log))

	loc, _ := cfg.Location()
	now := time.Now().In(loc)

	if cfg.Storage.Backend == config.BackendFile {
		if !backup.Run(cfg.Storage.Path, cfg.Storage.BackupDir, now) {
			exitOnError(fmt.Errorf("could not copy %s", cfg.Storage.Path), "backup failed")
		}
		fmt.Println("Backup created in", cfg.Storage.BackupDir)
		return
	}

	backend, closeFn, err := openBackend(context.Background(), cfg.Storage)
	exitOnError(err, "failed to open storage")
	defer closeFn()

	src, err := backup.For(backend)
	if err != nil {
		closeFn()
		exitOnError(fmt.Errorf("%s backend: %w", cfg.Storage.Backend, err), "backup failed")
	}
	path, err := backup.Create(src, cfg.Storage.BackupDir, now)
	if err != nil {
		closeFn()
		exitOnError(err, "backup failed")
	}
	slog.Debug("backup written", "backend", cfg.Storage.Backend, "path", path)
	fmt.Println("Backup created:", path)
}
