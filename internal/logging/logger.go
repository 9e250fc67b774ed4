// Package logging builds the slog logger used by the transport command.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config describes log output.
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // text or json
	File       string // rotate into this file; empty writes to stderr
	MaxSize    int    // MB per file before rotation
	MaxBackups int    // rotated files kept
	MaxAge     int    // days rotated files are kept
	Compress   bool   // gzip rotated files
}

// Logger wraps *slog.Logger with the run identifier stamped on every record.
type Logger struct {
	*slog.Logger
	RunID  string
	closer io.Closer
}

// ParseLevel maps a level name onto slog.Level; unknown names are an error.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", s)
	}
}

// New builds a Logger writing to stderr, or to a lumberjack-rotated file when
// cfg.File is set.
func New(cfg Config) (*Logger, error) {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg Config, stderr io.Writer) (*Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var (
		w      = stderr
		closer io.Closer
	)
	if cfg.File != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		w, closer = lj, lj
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Key = "timestamp"
			}

			return a
		},
	}

	var h slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("logging: unknown format %q", cfg.Format)
	}

	runID := uuid.NewString()

	return &Logger{
		Logger: slog.New(h).With(slog.String("run_id", runID)),
		RunID:  runID,
		closer: closer,
	}, nil
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}

	return l.closer.Close()
}
