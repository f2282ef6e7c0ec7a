package config

import (
	"fmt"
	"strings"
	"time"
)

// Storage backends for penalty tables.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// DataConfig selects where penalty tables are read from.
type DataConfig struct {
	Backend    string
	Dir        string // CSV export directory
	SQLitePath string
	// LoadTimeout bounds a single chart request.
	LoadTimeout time.Duration
	// RetryAttempts and RetryBackoff govern retries of transient load errors
	// such as a locked SQLite database.
	RetryAttempts int
	RetryBackoff  time.Duration
}

func loadData() DataConfig {
	return DataConfig{
		Backend:       strings.ToLower(strings.TrimSpace(envOrDefault(envDataBackend, defaultDataBackend))),
		Dir:           envOrDefault(envDataDir, defaultDataDir),
		SQLitePath:    envOrDefault(envSQLitePath, defaultSQLitePath),
		LoadTimeout:   durationEnvOrDefault(envLoadTimeout, defaultLoadTimeout),
		RetryAttempts: intEnvOrDefault(envLoadRetries, defaultLoadRetries),
		RetryBackoff:  durationEnvOrDefault(envLoadBackoff, defaultLoadBackoff),
	}
}

// Validate rejects unknown backends.
func (c DataConfig) Validate() error {
	switch c.Backend {
	case BackendCSV, BackendSQLite:
		return nil
	default:
		return fmt.Errorf("unsupported data backend %q (want %s or %s)", c.Backend, BackendCSV, BackendSQLite)
	}
}
