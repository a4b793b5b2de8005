//go:build prod

package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup initializes logging for release builds: entries go to
// <dir>/multilabel.log, rotated by lumberjack. The returned function closes
// the active file.
func Setup(cfg *Config) (*slog.Logger, func() error, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	dir := cfg.Dir
	if dir == "" {
		dir = DefaultLogDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	lj := &lumberjack.Logger{
		Filename:   filepath.Join(dir, FileName),
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}

	logger := slog.New(newHandler(lj, cfg))
	setGlobal(logger)
	logger.Debug("Logging to file", "path", lj.Filename)

	return logger, lj.Close, nil
}
