// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/TimBroddin/raybun/internal/config"
)

// commonOptions are the flags shared by every command that reads config.
type commonOptions struct {
	configPath string
	host       string
	port       int
	maxEntries int
}

func newFlagSet(name string, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SortFlags = false
	return fs
}

func (o *commonOptions) register(fs *pflag.FlagSet) {
	fs.StringVarP(&o.configPath, "config", "c", "", "Path to config file")
	fs.StringVar(&o.host, "host", "", "Listen or target host (overrides server.host)")
	fs.IntVarP(&o.port, "port", "p", 0, "Listen or target port (overrides server.port)")
	fs.IntVar(&o.maxEntries, "max-entries", 0, "Entries kept in history (overrides store.max_entries)")
}

// load reads the configuration and applies the flags that were set.
func (o *commonOptions) load(fs *pflag.FlagSet) (*config.AppConfig, error) {
	cfg, err := config.NewConfig(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if fs.Changed("host") {
		cfg.Server.Host = o.host
	}
	if fs.Changed("port") {
		cfg.Server.Port = o.port
	}
	if fs.Changed("max-entries") {
		cfg.Store.MaxEntries = o.maxEntries
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}
