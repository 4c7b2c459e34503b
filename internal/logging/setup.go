// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger settings.
type Config struct {
	Level  string
	Format string // "console" or "json"
	File   FileConfig
}

// FileConfig enables a rotated log file next to the console output.
type FileConfig struct {
	Enabled    bool
	Path       string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// New creates a logger writing to out, and to a rotated file when enabled.
// The returned cleanup closes the file writer and is never nil.
func New(cfg Config, out io.Writer) (zerolog.Logger, func(), error) {
	cleanup := func() {}
	if out == nil {
		out = os.Stderr
	}

	var console io.Writer = out
	if !strings.EqualFold(cfg.Format, "json") {
		console = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	level, levelErr := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if levelErr != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	writer := console
	if cfg.File.Enabled {
		if cfg.File.Path == "" {
			return zerolog.Nop(), cleanup, fmt.Errorf("log file path is required when file logging is enabled")
		}
		// Owner only
		if err := os.MkdirAll(filepath.Dir(cfg.File.Path), 0o700); err != nil {
			return zerolog.Nop(), cleanup, fmt.Errorf("failed to create log directory: %w", err)
		}

		fileWriter := &lumberjack.Logger{
			Filename:   cfg.File.Path,
			MaxSize:    cfg.File.MaxSize,
			MaxBackups: cfg.File.MaxBackups,
			MaxAge:     cfg.File.MaxAge,
			Compress:   cfg.File.Compress,
		}
		cleanup = func() { _ = fileWriter.Close() }

		// The file always receives JSON lines.
		writer = zerolog.MultiLevelWriter(console, fileWriter)
	}

	log := zerolog.New(writer).Level(level).With().Timestamp().Logger()

	if levelErr != nil && cfg.Level != "" {
		log.Warn().Str("invalid_level", cfg.Level).Msg("invalid log level, using info")
	}
	if cfg.File.Enabled {
		if err := os.Chmod(cfg.File.Path, 0o600); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("file", cfg.File.Path).Msg("failed to set secure permissions on log file")
		}
	}

	return log, cleanup, nil
}
