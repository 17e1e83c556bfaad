// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/TimBroddin/raybun/internal/logger"
	"github.com/TimBroddin/raybun/internal/server"
	"github.com/TimBroddin/raybun/internal/tui"
)

func tuiCommand(args []string, stdout, stderr io.Writer) error {
	var opts commonOptions
	fs := newFlagSet("tui", stderr)
	opts.register(fs)
	showHidden := fs.Bool("show-hidden", false, "Start with hidden entries shown")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := opts.load(fs)
	if err != nil {
		return err
	}
	if fs.Changed("show-hidden") {
		cfg.TUI.ShowHidden = *showHidden
	}

	// Logging stays file-only here so the alternate screen is not corrupted
	if err := logger.Initialize(&cfg.Log); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.CloseGlobal()

	mainLog := logger.GetMainLogger()
	mainLog.Info().Str("addr", cfg.Server.Addr()).Msg("Starting raybun viewer")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	st := newStore(cfg)
	srv := server.New(cfg, st)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Run(ctx)
	}()

	tuiErr := make(chan error, 1)
	go func() {
		tuiErr <- tui.StartTUI(ctx, st, tui.OptionsFromConfig(cfg))
	}()

	// Whichever ends first takes the other down with it
	select {
	case err = <-tuiErr:
		cancel()
		if srvErr := <-serverErr; srvErr != nil && !errors.Is(srvErr, http.ErrServerClosed) {
			mainLog.Error().Err(srvErr).Msg("Server error")
		}
	case err = <-serverErr:
		// The listener failed (port in use); stop the viewer and report it
		cancel()
		<-tuiErr
		if err != nil {
			err = fmt.Errorf("server failed: %w", err)
		}
	}

	if err != nil {
		mainLog.Error().Err(err).Msg("Viewer stopped with error")
		return err
	}
	mainLog.Info().Msg("Viewer closed")
	return nil
}
