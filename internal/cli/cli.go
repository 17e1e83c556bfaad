// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli dispatches raybun's sub-commands.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	appName    = "raybun"
	appVersion = "0.1.0"
)

// Execute runs the CLI application
func Execute() error {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}

// Run dispatches args to a sub-command. With no command, or when the first
// argument is a flag, the viewer starts.
func Run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") && !isHelpFlag(args[0]) {
		return tuiCommand(args, stdout, stderr)
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "tui":
		return tuiCommand(args, stdout, stderr)
	case "serve":
		return serveCommand(args, stdout, stderr)
	case "send":
		return sendCommand(args, stdout, stderr)
	case "config":
		return configCommand(args, stdout, stderr)
	case "version":
		fmt.Fprintf(stdout, "%s version %s\n", appName, appVersion)
		return nil
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", command)
		printUsage(stderr)
		return fmt.Errorf("unknown command %q", command)
	}
}

func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help"
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `%s - terminal viewer for Ray debug payloads

Usage:
  %s [command] [flags]

Commands:
  tui            Receive payloads and show them in the terminal (default)
  serve          Receive payloads without the viewer, logging to the console
  send [values]  Send a payload to a running instance
  config         Print the effective configuration as YAML
  version        Print version information
  help           Show this help message

Common flags:
  -c, --config string     config file (default: ./config.yaml, ./config, ~/.raybun)
      --host string       listen or target host
  -p, --port int          listen or target port

Examples:
  %s
  %s serve --port 23517
  %s send "hello" --label greeting --color green
  echo '{"a":1}' | %s send --type json

`, appName, appName, appName, appName, appName, appName)
}
