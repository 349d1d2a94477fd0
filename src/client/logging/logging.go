// Package logging provides CLI logging configuration.
// Logs are structured JSON written to a rotating file so that stdout and
// stderr stay reserved for command output and the final error message.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/apimgr/swapi/src/client/paths"
)

// Config holds logging configuration
type Config struct {
	Level    string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	File     string `mapstructure:"file"`
	MaxSize  int    `mapstructure:"max_size" validate:"gte=0"`
	MaxFiles int    `mapstructure:"max_files" validate:"gte=0"`
}

// ParseLevel maps a config level name to a slog level (default: warn)
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// New creates a JSON logger over a rotating log file. The returned closer
// releases the file.
func New(cfg Config) (*slog.Logger, io.Closer, error) {
	logPath := cfg.File
	if logPath == "" {
		logPath = paths.LogFile()
	}
	logPath = paths.ExpandHome(logPath)

	if err := paths.EnsureParent(logPath); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	maxSize := cfg.MaxSize
	if maxSize == 0 {
		maxSize = 10 // MB
	}
	maxFiles := cfg.MaxFiles
	if maxFiles == 0 {
		maxFiles = 5
	}

	rotatingWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    maxSize,
		MaxBackups: maxFiles,
		MaxAge:     30, // days
		Compress:   true,
	}

	handler := slog.NewJSONHandler(rotatingWriter, &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	})
	return slog.New(handler), rotatingWriter, nil
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
