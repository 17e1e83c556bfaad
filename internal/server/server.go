// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"net/http"
	"time"

	"github.com/TimBroddin/raybun/internal/config"
	"github.com/TimBroddin/raybun/internal/store"

	"github.com/go-chi/chi/v5"
)

// Server is the payload intake and read API server.
type Server struct {
	httpServer  *http.Server
	broadcaster *ChangeBroadcaster
	clients     *ClientRegistry
}

// New creates and wires up the API server. It does NOT start listening;
// call Run() for that.
func New(cfg *config.AppConfig, st *store.Store) *Server {
	registry := NewClientRegistry()
	broadcaster := NewChangeBroadcaster(st, registry)
	handlers := NewHandlers(st, cfg.Preview.MaxLength)

	r := chi.NewRouter()

	// Global middleware
	r.Use(RequestID)
	r.Use(Recovery)
	r.Use(Logger)
	r.Use(CORS(cfg.Server.AllowedOrigins))

	limitBody := MaxBodySize(cfg.Server.MaxBodyBytes)

	// Debug client protocol
	r.With(limitBody).Post("/", handlers.Ingest)
	r.Get("/locks/{name}", handlers.GetLock)

	// REST routes
	r.Route("/api/v1", func(r chi.Router) {
		r.With(limitBody).Post("/payloads", handlers.Ingest)
		r.Get("/payloads", handlers.ListPayloads)
		r.Delete("/payloads", handlers.ClearPayloads)
		r.Get("/payloads/{id}", handlers.GetPayload)
		r.Get("/screens", handlers.GetScreens)

		r.Get("/locks", handlers.GetLocks)
		r.Delete("/locks", handlers.ReleaseAllLocks)
		r.Delete("/locks/{name}", handlers.ReleaseLock)
	})

	// WebSocket
	r.Get("/ws", HandleWebSocket(registry, cfg.Server.AllowedOrigins))

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Server.Addr(),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		broadcaster: broadcaster,
		clients:     registry,
	}
}

// Handler returns the routed handler, for embedding and tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Run starts the change broadcaster goroutine and the HTTP server.
// Blocks until the server is shut down or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		const maxRetries = 3
		for attempt := 1; attempt <= maxRetries; attempt++ {
			func() {
				defer func() {
					if r := recover(); r != nil {
						getLog().Error().Interface("panic", r).Int("attempt", attempt).Msg("Change broadcaster panic")
					}
				}()
				s.broadcaster.Run(ctx)
			}()

			// Normal return (context cancelled), exit without retry.
			if ctx.Err() != nil {
				return
			}

			if attempt < maxRetries {
				getLog().Warn().Int("attempt", attempt).Msg("Restarting change broadcaster after panic")
				time.Sleep(1 * time.Second)
			}
		}
		getLog().Error().Msg("Change broadcaster exhausted retries - WebSocket clients will no longer be notified")
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			getLog().Error().Err(err).Msg("Server shutdown failed")
		}
	}()

	getLog().Info().Str("addr", s.httpServer.Addr).Msg("API server listening")
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
