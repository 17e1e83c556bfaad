// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// AppConfig holds all application configuration.
// It is instantiated by NewConfig() and passed to components that need it (dependency injection).
type AppConfig struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Store   StoreConfig   `mapstructure:"store" yaml:"store"`
	Preview PreviewConfig `mapstructure:"preview" yaml:"preview"`
	TUI     TUIConfig     `mapstructure:"tui" yaml:"tui"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// ServerConfig holds the HTTP listener configuration.
type ServerConfig struct {
	Host           string   `mapstructure:"host" yaml:"host"`
	Port           int      `mapstructure:"port" yaml:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"` // Empty = allow all
	MaxBodyBytes   int64    `mapstructure:"max_body_bytes" yaml:"max_body_bytes"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// StoreConfig holds payload history configuration.
type StoreConfig struct {
	MaxEntries    int    `mapstructure:"max_entries" yaml:"max_entries"`
	DefaultScreen string `mapstructure:"default_screen" yaml:"default_screen"`
}

// PreviewConfig controls the one-line summaries shown in the list.
type PreviewConfig struct {
	MaxLength int `mapstructure:"max_length" yaml:"max_length"`
}

// TUIConfig holds viewer configuration.
type TUIConfig struct {
	SyntaxStyle string  `mapstructure:"syntax_style" yaml:"syntax_style"` // chroma style name
	Formatter   string  `mapstructure:"formatter" yaml:"formatter"`       // chroma formatter name
	ShowHidden  bool    `mapstructure:"show_hidden" yaml:"show_hidden"`
	DetailRatio float64 `mapstructure:"detail_ratio" yaml:"detail_ratio"` // share of the width used by the detail pane
}

// LogConfig holds comprehensive logging configuration
type LogConfig struct {
	Level    string            `mapstructure:"level" yaml:"level"`
	Format   string            `mapstructure:"format" yaml:"format"`
	Output   []LogOutputConfig `mapstructure:"output" yaml:"output"`
	Levels   map[string]string `mapstructure:"levels" yaml:"levels"`
	Context  LogContextConfig  `mapstructure:"context" yaml:"context"`
	Sampling LogSamplingConfig `mapstructure:"sampling" yaml:"sampling"`
}

// LogOutputConfig defines where logs are written
type LogOutputConfig struct {
	Type    string          `mapstructure:"type" yaml:"type"` // "file", "console"
	Enabled bool            `mapstructure:"enabled" yaml:"enabled"`
	Path    string          `mapstructure:"path" yaml:"path,omitempty"` // For file output
	Rotate  LogRotateConfig `mapstructure:"rotate" yaml:"rotate"`       // For file output
}

// LogRotateConfig defines log rotation settings
type LogRotateConfig struct {
	MaxSizeMB  int  `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int  `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int  `mapstructure:"max_age_days" yaml:"max_age_days"`
	Compress   bool `mapstructure:"compress" yaml:"compress"`
}

// LogContextConfig defines what context to include in logs
type LogContextConfig struct {
	IncludeCaller     bool   `mapstructure:"include_caller" yaml:"include_caller"`
	IncludeTimestamp  bool   `mapstructure:"include_timestamp" yaml:"include_timestamp"`
	IncludeStackTrace string `mapstructure:"include_stack_trace" yaml:"include_stack_trace"`
}

// LogSamplingConfig defines log sampling settings
type LogSamplingConfig struct {
	Enabled    bool          `mapstructure:"enabled" yaml:"enabled"`
	Initial    uint32        `mapstructure:"initial" yaml:"initial"`
	Thereafter uint32        `mapstructure:"thereafter" yaml:"thereafter"`
	Tick       time.Duration `mapstructure:"tick" yaml:"tick"`
}

// NewConfig creates a new AppConfig by reading from a file, environment variables,
// and applying defaults.
func NewConfig(configPath string) (*AppConfig, error) {
	cfg := defaultConfig()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.raybun")
	}

	v.SetEnvPrefix("RAYBUN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	// A missing config file is fine; defaults and env still apply.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(configPath != "" && errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.expandPaths()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// bindEnv registers the keys that can be overridden from the environment even
// when no config file mentions them (viper only consults AutomaticEnv for
// keys it already knows about).
func bindEnv(v *viper.Viper) {
	for _, key := range []string{
		"server.host", "server.port", "server.allowed_origins", "server.max_body_bytes",
		"store.max_entries", "store.default_screen",
		"preview.max_length",
		"tui.syntax_style", "tui.formatter", "tui.show_hidden", "tui.detail_ratio",
		"log.level", "log.format",
	} {
		_ = v.BindEnv(key)
	}
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	cfg := defaultConfig()
	return &cfg
}

// defaultConfig returns an AppConfig with default values.
// This is more type-safe than using viper.SetDefault().
func defaultConfig() AppConfig {
	return AppConfig{
		Server: ServerConfig{
			Host:         "127.0.0.1",
			Port:         23517,
			MaxBodyBytes: 10 << 20,
		},
		Store: StoreConfig{
			MaxEntries:    1000,
			DefaultScreen: "default",
		},
		Preview: PreviewConfig{
			MaxLength: 50,
		},
		TUI: TUIConfig{
			SyntaxStyle: "monokai",
			Formatter:   "terminal256",
			DetailRatio: 0.5,
		},
		Log: LogConfig{
			Level:  "INFO",
			Format: "console",
			Output: []LogOutputConfig{
				{
					Type:    "file",
					Enabled: true,
					Path:    "$HOME/.raybun/logs/raybun.log",
					Rotate: LogRotateConfig{
						MaxSizeMB:  20,
						MaxBackups: 3,
						MaxAgeDays: 14,
						Compress:   true,
					},
				},
				{
					Type:    "console",
					Enabled: false, // Disabled by default for TUI
				},
			},
			Levels: map[string]string{
				"main":   "INFO",
				"api":    "INFO",
				"store":  "INFO",
				"notify": "INFO",
				"tui":    "WARN",
				"cli":    "INFO",
			},
			Context: LogContextConfig{
				IncludeCaller:     false,
				IncludeTimestamp:  true,
				IncludeStackTrace: "ERROR",
			},
			Sampling: LogSamplingConfig{
				Enabled:    false,
				Initial:    100,
				Thereafter: 100,
				Tick:       time.Second,
			},
		},
	}
}

// EnableConsoleLog switches on console output, used by the headless server.
func (c *AppConfig) EnableConsoleLog() {
	for i := range c.Log.Output {
		if c.Log.Output[i].Type == "console" {
			c.Log.Output[i].Enabled = true
			return
		}
	}
	c.Log.Output = append(c.Log.Output, LogOutputConfig{Type: "console", Enabled: true})
}

// YAML renders the configuration as a YAML document.
func (c *AppConfig) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return out, nil
}

// expandPaths expands ~ and environment variables in path configuration values
func (c *AppConfig) expandPaths() {
	for i := range c.Log.Output {
		if c.Log.Output[i].Path != "" {
			c.Log.Output[i].Path = expandPath(c.Log.Output[i].Path)
		}
	}
}

// expandPath expands ~ to home directory and environment variables
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(homeDir, path[1:])
		}
	}

	return os.ExpandEnv(path)
}

// Validate checks if the configuration is valid.
func (c *AppConfig) Validate() error {
	validLogLevels := map[string]bool{
		"TRACE": true, "DEBUG": true, "INFO": true, "WARN": true, "ERROR": true, "FATAL": true, "PANIC": true,
	}
	if !validLogLevels[strings.ToUpper(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New("server.max_body_bytes must be positive")
	}

	if c.Store.MaxEntries < 1 {
		return fmt.Errorf("store.max_entries must be at least 1, got: %d", c.Store.MaxEntries)
	}
	if strings.TrimSpace(c.Store.DefaultScreen) == "" {
		return errors.New("store.default_screen is required")
	}

	if c.Preview.MaxLength < 4 {
		return fmt.Errorf("preview.max_length must be at least 4, got: %d", c.Preview.MaxLength)
	}

	if c.TUI.DetailRatio <= 0 || c.TUI.DetailRatio >= 1 {
		return fmt.Errorf("tui.detail_ratio must be between 0 and 1, got: %v", c.TUI.DetailRatio)
	}

	return nil
}
