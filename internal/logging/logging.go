// Package logging wires the process-wide slog logger: a console handler
// plus rotating main and error log files.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logging configuration.
type Config struct {
	Level    string         `yaml:"level"`  // debug, info, warn, error
	Format   string         `yaml:"format"` // text, json
	Dir      string         `yaml:"dir"`
	Console  bool           `yaml:"console"`
	File     bool           `yaml:"file"`
	Rotation RotationConfig `yaml:"rotation"`
}

// RotationConfig holds log rotation settings.
type RotationConfig struct {
	MaxSize    int  `yaml:"max_size"`    // MB
	MaxBackups int  `yaml:"max_backups"` // number of files
	MaxAge     int  `yaml:"max_age"`     // days
	Compress   bool `yaml:"compress"`
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:   "info",
		Format:  "text",
		Dir:     "logs",
		Console: true,
		File:    true,
		Rotation: RotationConfig{
			MaxSize:    100,
			MaxBackups: 10,
			MaxAge:     30,
			Compress:   true,
		},
	}
}

var (
	logFiles   []*lumberjack.Logger
	logFilesMu sync.Mutex
)

// Initialize sets up the global logger based on configuration.
func Initialize(cfg Config) error {
	logger, err := NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	slog.SetDefault(logger)
	slog.Info("Logging initialized",
		"level", cfg.Level,
		"format", cfg.Format,
		"dir", cfg.Dir,
		"console", cfg.Console,
		"file", cfg.File,
	)
	return nil
}

// NewLogger creates a logger instance with the given configuration.
func NewLogger(cfg Config) (*slog.Logger, error) {
	level := parseLevel(cfg.Level)

	var handlers []slog.Handler
	if cfg.Console {
		handlers = append(handlers, createHandler(os.Stdout, cfg.Format, level))
	}

	if cfg.File {
		if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		mainFile := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, "docuflow.log"),
			MaxSize:    cfg.Rotation.MaxSize,
			MaxBackups: cfg.Rotation.MaxBackups,
			MaxAge:     cfg.Rotation.MaxAge,
			Compress:   cfg.Rotation.Compress,
		}
		registerLogFile(mainFile)
		handlers = append(handlers, createHandler(mainFile, cfg.Format, level))

		// Warnings and errors additionally land in their own file.
		errorFile := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, "errors.log"),
			MaxSize:    cfg.Rotation.MaxSize,
			MaxBackups: cfg.Rotation.MaxBackups,
			MaxAge:     cfg.Rotation.MaxAge,
			Compress:   cfg.Rotation.Compress,
		}
		registerLogFile(errorFile)
		errorHandler := NewLevelFilter(createHandler(errorFile, cfg.Format, slog.LevelWarn), slog.LevelWarn)
		handlers = append(handlers, errorHandler)
	}

	var handler slog.Handler
	switch len(handlers) {
	case 0:
		handler = slog.NewTextHandler(io.Discard, nil)
	case 1:
		handler = handlers[0]
	default:
		handler = NewMultiHandler(handlers...)
	}

	return slog.New(handler), nil
}

// Shutdown closes all log files.
func Shutdown() error {
	logFilesMu.Lock()
	defer logFilesMu.Unlock()

	for _, logFile := range logFiles {
		if err := logFile.Close(); err != nil {
			return fmt.Errorf("failed to close log file: %w", err)
		}
	}
	logFiles = nil
	return nil
}

func registerLogFile(logFile *lumberjack.Logger) {
	logFilesMu.Lock()
	defer logFilesMu.Unlock()
	logFiles = append(logFiles, logFile)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func createHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
