// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tui is the interactive terminal viewer for received payloads.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TimBroddin/raybun/internal/config"
	"github.com/TimBroddin/raybun/internal/store"
	"github.com/TimBroddin/raybun/internal/tui/highlight"
	"github.com/TimBroddin/raybun/internal/tui/messages"
	"github.com/TimBroddin/raybun/internal/tui/screens/payloads"
)

// OptionsFromConfig builds the payload screen options from the app config
func OptionsFromConfig(cfg *config.AppConfig) payloads.Options {
	return payloads.Options{
		PreviewLength: cfg.Preview.MaxLength,
		ShowHidden:    cfg.TUI.ShowHidden,
		DetailRatio:   cfg.TUI.DetailRatio,
		Highlighter:   highlight.New(cfg.TUI.SyntaxStyle, cfg.TUI.Formatter),
		ListenAddr:    cfg.Server.Addr(),
	}
}

// StartTUI runs the viewer until the user quits or ctx is cancelled. Every
// store notification triggers a redraw; bursts are coalesced by the bus.
func StartTUI(ctx context.Context, st *store.Store, opts payloads.Options) error {
	p := tea.NewProgram(NewMainModel(st, opts), tea.WithAltScreen(), tea.WithContext(ctx))

	changes, cancel := st.Bus().Watch()
	defer cancel()

	go func() {
		for range changes {
			p.Send(messages.StoreChangedMsg{})
		}
	}()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
