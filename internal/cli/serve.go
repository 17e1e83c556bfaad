// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/TimBroddin/raybun/internal/config"
	"github.com/TimBroddin/raybun/internal/logger"
	"github.com/TimBroddin/raybun/internal/notify"
	"github.com/TimBroddin/raybun/internal/server"
	"github.com/TimBroddin/raybun/internal/store"
)

func newStore(cfg *config.AppConfig) *store.Store {
	return store.New(notify.New(), store.Options{
		MaxEntries:    cfg.Store.MaxEntries,
		DefaultScreen: cfg.Store.DefaultScreen,
	})
}

func serveCommand(args []string, stdout, stderr io.Writer) error {
	var opts commonOptions
	fs := newFlagSet("serve", stderr)
	opts.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := opts.load(fs)
	if err != nil {
		return err
	}

	// Headless: log lines are the only output, so they go to the console
	cfg.EnableConsoleLog()
	if err := logger.Initialize(&cfg.Log); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.CloseGlobal()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, cfg, newStore(cfg), stdout)
}

// serve runs the API server until ctx is done.
func serve(ctx context.Context, cfg *config.AppConfig, st *store.Store, stdout io.Writer) error {
	mainLog := logger.GetMainLogger()
	mainLog.Info().
		Str("addr", cfg.Server.Addr()).
		Int("max_entries", st.MaxEntries()).
		Msg("Starting raybun server")
	fmt.Fprintf(stdout, "%s %s listening on http://%s\n", appName, appVersion, cfg.Server.Addr())

	srv := server.New(cfg, st)
	if err := srv.Run(ctx); err != nil {
		mainLog.Error().Err(err).Msg("Server error")
		return fmt.Errorf("server failed: %w", err)
	}

	mainLog.Info().Msg("Server shut down")
	return nil
}
