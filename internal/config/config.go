// Package config loads runtime settings from an optional .env file, an
// optional YAML file and LEDGER_* environment variables, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/govalues/money"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendFile     = "file"
	BackendBolt     = "bolt"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

var (
	validBackends   = []string{BackendFile, BackendBolt, BackendPostgres, BackendMemory}
	validLogLevels  = []string{"debug", "info", "warn", "warning", "error"}
	validLogFormats = []string{"json", "text"}
)

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type StorageConfig struct {
	Backend     string `mapstructure:"backend"`
	Path        string `mapstructure:"path"`
	BackupDir   string `mapstructure:"backup_dir"`
	DatabaseURL string `mapstructure:"database_url"`
	LedgerName  string `mapstructure:"ledger_name"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type LedgerConfig struct {
	Currency string `mapstructure:"currency"`
	Timezone string `mapstructure:"timezone"`
}

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	Ledger  LedgerConfig  `mapstructure:"ledger"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.path", "data/ledger_data.json")
	v.SetDefault("storage.backup_dir", "data/backups")
	v.SetDefault("storage.database_url", "")
	v.SetDefault("storage.ledger_name", "default")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("ledger.currency", "GBP")
	v.SetDefault("ledger.timezone", "Local")
}

// Load reads configuration. path names a YAML file; when empty, ledger.yaml in
// the working directory is used if present. Environment variables such as
// LEDGER_STORAGE_BACKEND override file values, and DATABASE_URL is accepted
// for storage.database_url.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("LEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("storage.database_url", "LEDGER_STORAGE_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, err
	}

	if path == "" {
		v.SetConfigName("ledger")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	c.Ledger.Currency = strings.ToUpper(strings.TrimSpace(c.Ledger.Currency))
	return &c, nil
}

// Validate validates the configuration and returns every problem at once.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Server.Addr) == "" {
		problems = append(problems, "server address cannot be empty")
	}

	if !slices.Contains(validBackends, c.Storage.Backend) {
		problems = append(problems, fmt.Sprintf("invalid storage backend '%s': must be one of %v", c.Storage.Backend, validBackends))
	}
	switch c.Storage.Backend {
	case BackendFile, BackendBolt:
		if strings.TrimSpace(c.Storage.Path) == "" {
			problems = append(problems, fmt.Sprintf("storage path cannot be empty when using %s backend", c.Storage.Backend))
		}
	case BackendPostgres:
		if strings.TrimSpace(c.Storage.DatabaseURL) == "" {
			problems = append(problems, "database URL is required when using postgres backend")
		}
		if strings.TrimSpace(c.Storage.LedgerName) == "" {
			problems = append(problems, "ledger name cannot be empty when using postgres backend")
		}
	}

	if !slices.Contains(validLogLevels, c.Log.Level) {
		problems = append(problems, fmt.Sprintf("invalid log level '%s': must be one of %v", c.Log.Level, validLogLevels))
	}
	if !slices.Contains(validLogFormats, c.Log.Format) {
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be one of %v", c.Log.Format, validLogFormats))
	}

	if _, err := money.ParseCurr(c.Ledger.Currency); err != nil {
		problems = append(problems, fmt.Sprintf("invalid currency '%s': %v", c.Ledger.Currency, err))
	}
	if _, err := c.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("invalid timezone '%s': %v", c.Ledger.Timezone, err))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// Location resolves Ledger.Timezone; empty and "Local" mean the host zone.
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Ledger.Timezone)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(tz)
}
