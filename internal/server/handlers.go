// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/TimBroddin/raybun/internal/classify"
	"github.com/TimBroddin/raybun/internal/protocol"
	"github.com/TimBroddin/raybun/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	store         *store.Store
	previewLength int
}

// NewHandlers creates the handler set.
func NewHandlers(st *store.Store, previewLength int) *Handlers {
	return &Handlers{store: st, previewLength: previewLength}
}

// IngestResponse acknowledges a payload request.
type IngestResponse struct {
	Status     string `json:"status"`
	Received   int    `json:"received"`
	Created    int    `json:"created"`
	Directives int    `json:"directives"`
	Skipped    int    `json:"skipped"`
}

// LockResponse answers a lock poll.
type LockResponse struct {
	Active        bool `json:"active"`
	StopExecution bool `json:"stop_execution"`
}

// PayloadResponse is one stored entry as exposed by the read API.
type PayloadResponse struct {
	ID        uint64           `json:"id"`
	UUID      string           `json:"uuid"`
	Type      string           `json:"type"`
	Screen    string           `json:"screen"`
	Color     string           `json:"color,omitempty"`
	Label     string           `json:"label,omitempty"`
	Size      string           `json:"size,omitempty"`
	Hidden    bool             `json:"hidden"`
	CreatedAt time.Time        `json:"created_at"`
	Preview   string           `json:"preview"`
	Category  string           `json:"category"`
	Content   any              `json:"content,omitempty"`
	Origin    *protocol.Origin `json:"origin,omitempty"`
	Meta      *protocol.Meta   `json:"meta,omitempty"`
}

// ScreensResponse lists the screens present in the history.
type ScreensResponse struct {
	Current string   `json:"current"`
	Screens []string `json:"screens"`
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		getLog().Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func writeError(w http.ResponseWriter, status int, msg, context string) {
	body := map[string]string{"error": msg}
	if context != "" {
		body["context"] = context
	}
	writeJSON(w, status, body)
}

func (h *Handlers) toResponse(e store.Entry) PayloadResponse {
	var content any = e.Content
	if u, ok := e.Content.(protocol.Unknown); ok {
		content = u.Raw
	}
	return PayloadResponse{
		ID:        e.ID,
		UUID:      e.UUID,
		Type:      e.Type.String(),
		Screen:    e.Screen,
		Color:     e.Color,
		Label:     e.Label,
		Size:      e.Size,
		Hidden:    e.Hidden,
		CreatedAt: e.CreatedAt,
		Preview:   classify.Preview(e.Content, h.previewLength),
		Category:  string(classify.CategoryOf(e.Type)),
		Content:   content,
		Origin:    e.Origin,
		Meta:      e.Meta,
	}
}

// --- ingest ---

// Ingest handles POST / and POST /api/v1/payloads. The store is updated and
// observers are notified before the response is written.
func (h *Handlers) Ingest(w http.ResponseWriter, r *http.Request) {
	var req protocol.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large", err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	res := h.store.AddRequest(req)
	annotate(r, func(info *requestInfo) {
		info.uuid = req.UUID
		info.payloads = len(req.Payloads)
		info.created = res.Created
		info.skipped = res.Skipped
	})

	writeJSON(w, http.StatusOK, IngestResponse{
		Status:     "ok",
		Received:   len(req.Payloads),
		Created:    res.Created,
		Directives: res.Directives,
		Skipped:    res.Skipped,
	})
}

// --- locks ---

// GetLock handles GET /locks/{name}
func (h *Handlers) GetLock(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	active := h.store.LockActive(name)
	annotate(r, func(info *requestInfo) {
		info.lock = name
		info.active = active
	})
	writeJSON(w, http.StatusOK, LockResponse{Active: active})
}

// GetLocks handles GET /api/v1/locks
func (h *Handlers) GetLocks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"locks": h.store.ActiveLocks()})
}

// ReleaseLock handles DELETE /api/v1/locks/{name}
func (h *Handlers) ReleaseLock(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !h.store.ReleaseLock(name) {
		writeError(w, http.StatusNotFound, "Lock not found", name)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "released"})
}

// ReleaseAllLocks handles DELETE /api/v1/locks
func (h *Handlers) ReleaseAllLocks(w http.ResponseWriter, r *http.Request) {
	n := h.store.ReleaseAllLocks()
	writeJSON(w, http.StatusOK, map[string]int{"released": n})
}

// --- reads ---

// ListPayloads handles GET /api/v1/payloads[?screen=name&all=true]
func (h *Handlers) ListPayloads(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	all, _ := strconv.ParseBool(q.Get("all"))
	screen := q.Get("screen")

	var entries []store.Entry
	switch {
	case all:
		entries = h.store.All()
		if screen != "" {
			entries = lo.Filter(entries, func(e store.Entry, _ int) bool { return e.Screen == screen })
		}
	case screen != "":
		entries = h.store.VisibleOnScreen(screen)
	default:
		entries = h.store.Visible()
	}

	writeJSON(w, http.StatusOK, lo.Map(entries, func(e store.Entry, _ int) PayloadResponse { return h.toResponse(e) }))
}

// GetPayload handles GET /api/v1/payloads/{id}
func (h *Handlers) GetPayload(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload id", err.Error())
		return
	}
	e, ok := h.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Payload not found", strconv.FormatUint(id, 10))
		return
	}
	writeJSON(w, http.StatusOK, h.toResponse(e))
}

// GetScreens handles GET /api/v1/screens
func (h *Handlers) GetScreens(w http.ResponseWriter, r *http.Request) {
	screens := h.store.Screens()
	slices.Sort(screens)
	writeJSON(w, http.StatusOK, ScreensResponse{Current: h.store.CurrentScreen(), Screens: screens})
}

// ClearPayloads handles DELETE /api/v1/payloads
func (h *Handlers) ClearPayloads(w http.ResponseWriter, r *http.Request) {
	h.store.Clear()
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
