// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/TimBroddin/raybun/internal/config"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Manager manages multiple loggers for different packages
type Manager struct {
	config         *config.LogConfig
	globalLogger   zerolog.Logger
	packageLoggers map[string]zerolog.Logger
	mu             sync.RWMutex
	closers        []io.Closer
}

// output is a configured writer together with the output type it came from.
type output struct {
	kind string
	w    io.Writer
}

// NewManager creates a new logger manager
func NewManager(cfg *config.LogConfig) (*Manager, error) {
	m := &Manager{
		config:         cfg,
		packageLoggers: make(map[string]zerolog.Logger),
	}

	globalLevel := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(globalLevel)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	outputs, err := m.createOutputs(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create log writers: %w", err)
	}

	var w io.Writer
	switch len(outputs) {
	case 0:
		// Nothing enabled. The TUI owns the terminal, so stay silent rather
		// than falling back to stderr.
		w = io.Discard
	case 1:
		w = outputs[0].w
	default:
		writers := make([]io.Writer, len(outputs))
		for i, o := range outputs {
			writers[i] = o.w
		}
		w = io.MultiWriter(writers...)
	}

	m.globalLogger = m.createLogger(w, globalLevel)

	// Do not override the default logger to avoid affecting other libraries
	// Each package should explicitly get its logger via GetLogger()

	return m, nil
}

// createOutputs creates all configured output writers
func (m *Manager) createOutputs(cfg *config.LogConfig) ([]output, error) {
	var outputs []output

	for _, out := range cfg.Output {
		if !out.Enabled {
			continue
		}

		switch out.Type {
		case "console":
			var w io.Writer = os.Stderr
			if cfg.Format == "console" {
				w = consoleWriter(os.Stderr, "15:04:05.000", false)
			}
			outputs = append(outputs, output{kind: out.Type, w: w})

		case "file":
			if out.Path == "" {
				return nil, fmt.Errorf("file output requires a path")
			}
			if err := os.MkdirAll(filepath.Dir(out.Path), 0o755); err != nil {
				return nil, fmt.Errorf("failed to create log directory: %w", err)
			}

			var fw io.WriteCloser
			if out.Rotate.MaxSizeMB > 0 {
				fw = &lumberjack.Logger{
					Filename:   out.Path,
					MaxSize:    out.Rotate.MaxSizeMB,
					MaxBackups: out.Rotate.MaxBackups,
					MaxAge:     out.Rotate.MaxAgeDays,
					Compress:   out.Rotate.Compress,
				}
			} else {
				file, err := os.OpenFile(out.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return nil, fmt.Errorf("failed to open log file %s: %w", out.Path, err)
				}
				fw = file
			}
			m.closers = append(m.closers, fw)

			var w io.Writer = fw
			if cfg.Format == "console" {
				w = consoleWriter(fw, "2006-01-02 15:04:05.000", true)
			}
			outputs = append(outputs, output{kind: out.Type, w: w})

		default:
			return nil, fmt.Errorf("unsupported output type: %s", out.Type)
		}
	}

	return outputs, nil
}

func consoleWriter(w io.Writer, timeFormat string, noColor bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: timeFormat,
		NoColor:    noColor,
		FormatLevel: func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
		},
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprintf("%s:", i)
		},
	}
}

// createLogger creates a configured zerolog logger
func (m *Manager) createLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	l := zerolog.New(w).Level(level)

	if m.config.Context.IncludeTimestamp {
		l = l.With().Timestamp().Logger()
	}

	if m.config.Context.IncludeCaller {
		l = l.With().Caller().Logger()
	}

	if m.config.Context.IncludeStackTrace != "" {
		l = l.With().Stack().Logger()
	}

	if m.config.Sampling.Enabled {
		l = l.Sample(&zerolog.BurstSampler{
			Burst:       m.config.Sampling.Initial,
			Period:      m.config.Sampling.Tick,
			NextSampler: &zerolog.BasicSampler{N: m.config.Sampling.Thereafter},
		})
	}

	return l
}

// GetLogger returns a logger for a specific package
func (m *Manager) GetLogger(pkg string) zerolog.Logger {
	m.mu.RLock()
	if logger, exists := m.packageLoggers[pkg]; exists {
		m.mu.RUnlock()
		return logger
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Check again in case it was created while waiting for lock
	if logger, exists := m.packageLoggers[pkg]; exists {
		return logger
	}

	level := parseLevel(m.config.Level)
	if pkgLevel, exists := m.config.Levels[pkg]; exists {
		level = parseLevel(pkgLevel)
	}

	logger := m.globalLogger.With().Str("pkg", pkg).Logger().Level(level)
	m.packageLoggers[pkg] = logger

	return logger
}

// SetPackageLevel dynamically sets the log level for a package
func (m *Manager) SetPackageLevel(pkg string, level string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config.Levels == nil {
		m.config.Levels = make(map[string]string)
	}
	m.config.Levels[pkg] = level

	if logger, exists := m.packageLoggers[pkg]; exists {
		m.packageLoggers[pkg] = logger.Level(parseLevel(level))
	}
}

// Close closes all file writers
func (m *Manager) Close() error {
	var firstErr error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// parseLevel converts string level to zerolog.Level
func parseLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "FATAL":
		return zerolog.FatalLevel
	case "PANIC":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}

var (
	globalManager *Manager
	globalMu      sync.RWMutex
)

// Initialize initializes the global logger manager. Calling it again replaces
// the previous manager and closes its files.
func Initialize(cfg *config.LogConfig) error {
	m, err := NewManager(cfg)
	if err != nil {
		return err
	}
	globalMu.Lock()
	prev := globalManager
	globalManager = m
	globalMu.Unlock()
	if prev != nil {
		_ = prev.Close()
	}
	return nil
}

// GetLogger returns a logger for the specified package
func GetLogger(pkg string) zerolog.Logger {
	globalMu.RLock()
	m := globalManager
	globalMu.RUnlock()
	if m == nil {
		// Return a discard logger if not initialized to avoid stdout/stderr pollution
		return zerolog.New(io.Discard).With().Timestamp().Logger()
	}
	return m.GetLogger(pkg)
}

// CloseGlobal closes the global logger manager
func CloseGlobal() error {
	globalMu.Lock()
	m := globalManager
	globalManager = nil
	globalMu.Unlock()
	if m != nil {
		return m.Close()
	}
	return nil
}
