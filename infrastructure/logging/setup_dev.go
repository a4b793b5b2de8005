//go:build !prod

package logging

import (
	"log/slog"
	"os"
)

// Setup initializes console logging for development builds.
// Entries go to stderr so they never mix with anything the annotator prints;
// Dir and the rotation settings are ignored.
func Setup(cfg *Config) (*slog.Logger, func() error, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	logger := slog.New(newHandler(os.Stderr, cfg))
	setGlobal(logger)

	return logger, func() error { return nil }, nil
}
