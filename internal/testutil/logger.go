package testutil

import (
	"bytes"
	"log/slog"

	"github.com/preston-bernstein/nhl-penalty-service/internal/logging"
)

// NewBufferLogger returns a debug-level text logger writing to the returned
// buffer, so tests can assert on aggregation and table-load logs too.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := logging.NewLogger(logging.Config{Level: "debug", Format: "text", Output: &buf})
	return logger, &buf
}
