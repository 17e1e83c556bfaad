// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey struct{}

// requestInfo travels with a request. RequestID creates it; handlers record
// what they learned about the payload request or lock poll so that the
// access log line can carry it.
type requestInfo struct {
	id       string
	uuid     string
	payloads int
	created  int
	skipped  int
	lock     string
	active   bool
}

var validRequestID = regexp.MustCompile(`^[a-zA-Z0-9\-_]{1,128}$`)

// RequestID attaches a request id, taken from X-Request-ID when it is safe to
// log and generated otherwise.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if !validRequestID.MatchString(id) {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		info := &requestInfo{id: id}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, info)))
	})
}

func infoFrom(ctx context.Context) *requestInfo {
	info, _ := ctx.Value(contextKey{}).(*requestInfo)
	return info
}

// annotate lets a handler add to the access log entry of r.
func annotate(r *http.Request, fn func(*requestInfo)) {
	if info := infoFrom(r.Context()); info != nil {
		fn(info)
	}
}

// GetRequestID returns the id RequestID attached, or "".
func GetRequestID(ctx context.Context) string {
	if info := infoFrom(ctx); info != nil {
		return info.id
	}
	return ""
}

// Recovery turns a panic into a 500 and logs the request that caused it.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			ev := getLog().Error().
				Interface("panic", rec).
				Str("path", r.URL.Path).
				Str("stack", string(debug.Stack()))
			if info := infoFrom(r.Context()); info != nil {
				ev = ev.Str("request_id", info.id).Str("uuid", info.uuid)
			}
			ev.Msg("Recovered from panic")
			writeError(w, http.StatusInternalServerError, "internal server error", "")
		}()
		next.ServeHTTP(w, r)
	})
}

// MaxBodySize limits the body of payload requests. Reads past the limit fail
// with *http.MaxBytesError, which Ingest answers with 413.
func MaxBodySize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// Logger writes one access log line per request. Payload requests carry the
// client uuid and payload counts. Lock polls repeat several times a second
// while a client is paused and are logged at debug level.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		info := infoFrom(r.Context())
		if info == nil {
			info = &requestInfo{}
		}

		var ev *zerolog.Event
		switch {
		case sw.status >= http.StatusInternalServerError:
			ev = getLog().Error()
		case info.lock != "":
			ev = getLog().Debug().Str("lock", info.lock).Bool("active", info.active)
		case info.uuid != "":
			ev = getLog().Info().
				Str("uuid", info.uuid).
				Int("payloads", info.payloads).
				Int("created", info.created).
				Int("skipped", info.skipped)
		default:
			ev = getLog().Info()
		}
		ev.Str("request_id", info.id).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.status).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	})
}

// corsRoutes lists the methods a browser may use per path. The first prefix
// that matches wins; "/" is the payload endpoint.
var corsRoutes = []struct {
	prefix  string
	methods []string
}{
	{prefix: "/api/v1/", methods: []string{http.MethodGet, http.MethodPost, http.MethodDelete}},
	{prefix: "/locks/", methods: []string{http.MethodGet}},
	{prefix: "/ws", methods: []string{http.MethodGet}},
	{prefix: "/", methods: []string{http.MethodPost}},
}

func corsMethods(path string) []string {
	for _, route := range corsRoutes {
		if strings.HasPrefix(path, route.prefix) {
			return route.methods
		}
	}
	return nil
}

// CORS answers preflights with the methods the requested path accepts. An
// empty allowedOrigins permits every origin.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case len(allowedOrigins) == 0:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case slices.Contains(allowedOrigins, origin):
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}

			if r.Method != http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			methods := corsMethods(r.URL.Path)
			if want := r.Header.Get("Access-Control-Request-Method"); want != "" && !slices.Contains(methods, want) {
				writeError(w, http.StatusMethodNotAllowed, "Method not allowed", want+" "+r.URL.Path)
				return
			}
			w.Header().Set("Access-Control-Allow-Methods", strings.Join(append(slices.Clone(methods), http.MethodOptions), ", "))
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
			w.WriteHeader(http.StatusNoContent)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack lets the WebSocket upgrade through the logger.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hj, ok := w.ResponseWriter.(http.Hijacker); ok {
		return hj.Hijack()
	}
	return nil, nil, fmt.Errorf("underlying ResponseWriter does not support hijacking")
}
