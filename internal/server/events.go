// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server is the HTTP boundary. It accepts payload requests from
// debug clients, answers lock polls, exposes the history as JSON and pushes
// change signals to WebSocket clients.
package server

import (
	"context"
	"sync"

	"github.com/TimBroddin/raybun/internal/logger"
	"github.com/TimBroddin/raybun/internal/store"

	"github.com/rs/zerolog"
)

var (
	log     *zerolog.Logger
	logOnce sync.Once
)

func getLog() *zerolog.Logger {
	logOnce.Do(func() {
		l := logger.GetAPILogger()
		log = &l
	})
	return log
}

// ChangeEvent is pushed to WebSocket clients after the history changed.
type ChangeEvent struct {
	Type          string   `json:"type"`
	CurrentScreen string   `json:"current_screen"`
	Count         int      `json:"count"`
	Locks         []string `json:"locks,omitempty"`
}

// ChangeBroadcaster watches the store and fans change events out to all
// connected WebSocket clients.
type ChangeBroadcaster struct {
	store   *store.Store
	clients *ClientRegistry
}

// NewChangeBroadcaster creates a broadcaster for st.
func NewChangeBroadcaster(st *store.Store, clients *ClientRegistry) *ChangeBroadcaster {
	return &ChangeBroadcaster{
		store:   st,
		clients: clients,
	}
}

// Run forwards store changes until the context is cancelled. Bursts of
// changes are coalesced into one event.
func (b *ChangeBroadcaster) Run(ctx context.Context) {
	changes, cancel := b.store.Bus().Watch()
	defer cancel()

	for {
		select {
		case _, ok := <-changes:
			if !ok {
				getLog().Info().Msg("Change broadcaster stopped (watch closed)")
				return
			}
			b.dispatch()
		case <-ctx.Done():
			getLog().Info().Msg("Change broadcaster stopped (context cancelled)")
			return
		}
	}
}

func (b *ChangeBroadcaster) snapshot() ChangeEvent {
	sum := b.store.Summary()
	return ChangeEvent{
		Type:          "changed",
		CurrentScreen: sum.CurrentScreen,
		Count:         sum.Count,
		Locks:         sum.Locks,
	}
}

func (b *ChangeBroadcaster) dispatch() {
	if b.clients != nil {
		b.clients.Broadcast(b.snapshot())
	}
}
