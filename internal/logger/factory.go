// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package logger

import (
	"github.com/rs/zerolog"
)

// Static logger getters that map directly to config.yaml log.levels
// These ensure consistent logger names across the codebase

// GetMainLogger returns a logger for process startup and shutdown
func GetMainLogger() zerolog.Logger {
	return GetLogger("main")
}

// GetAPILogger returns a logger for the HTTP boundary
func GetAPILogger() zerolog.Logger {
	return GetLogger("api")
}

// GetStoreLogger returns a logger for the payload store
func GetStoreLogger() zerolog.Logger {
	return GetLogger("store")
}

// GetTUILogger returns a logger for TUI components
func GetTUILogger() zerolog.Logger {
	return GetLogger("tui")
}

// GetCLILogger returns a logger for sub-commands
func GetCLILogger() zerolog.Logger {
	return GetLogger("cli")
}
