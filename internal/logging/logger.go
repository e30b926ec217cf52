// Package logging builds the process logger. Output is JSON lines with a
// timestamp, rotated through lumberjack when written to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New. Zero rotation values take the defaults.
type Options struct {
	Level string
	// File is the log file path. Empty logs to the fallback writer.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	// Pretty switches the fallback writer to human readable output.
	Pretty bool
}

const (
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 5
	defaultMaxAgeDays = 7
)

// New returns a logger configured by opts. Without a file, logs go to
// fallback. The returned func closes the log file.
//
// The level can be one of: debug, info, warn, error, fatal.
func New(opts Options, fallback io.Writer) (zerolog.Logger, func(), error) {
	closer := func() {}

	level := opts.Level
	if level == "" {
		level = "info"
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, closer, err
	}

	writer := fallback
	if opts.Pretty && opts.File == "" {
		writer = zerolog.ConsoleWriter{Out: fallback, TimeFormat: time.RFC3339}
	}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return zerolog.Logger{}, closer, fmt.Errorf("create logs dir: %w", err)
		}
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, defaultMaxSizeMB),
			MaxBackups: orDefault(opts.MaxBackups, defaultMaxBackups),
			MaxAge:     orDefault(opts.MaxAgeDays, defaultMaxAgeDays),
			Compress:   opts.Compress,
		}
		closer = func() { _ = rotator.Close() }
		writer = rotator
	}

	l := zerolog.New(writer).
		With().
		Timestamp().
		Logger().
		Level(lvl)

	return l, closer, nil
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

// Component creates a new logger with a component identifier.
// Uses the "cmp" key for consistency with zerolog conventions.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}
