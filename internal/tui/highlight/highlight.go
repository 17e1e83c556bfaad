// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package highlight colors detail-pane text with chroma.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/x/ansi"

	"github.com/TimBroddin/raybun/internal/classify"
	"github.com/TimBroddin/raybun/internal/logger"
)

const (
	DefaultStyle     = "monokai"
	DefaultFormatter = "terminal256"
)

// Highlighter renders text for the terminal. Plain text, and text chroma
// cannot handle, comes back unchanged.
type Highlighter struct {
	Style     string
	Formatter string
}

// New returns a Highlighter, filling empty names with the defaults.
func New(style, formatter string) Highlighter {
	if style == "" {
		style = DefaultStyle
	}
	if formatter == "" {
		formatter = DefaultFormatter
	}
	return Highlighter{Style: style, Formatter: formatter}
}

// Highlight colors text as lang.
func (h Highlighter) Highlight(text string, lang classify.Language) string {
	if lang == classify.LanguageNone || text == "" {
		return text
	}
	var b strings.Builder
	if err := quick.Highlight(&b, text, lang.Lexer(), h.Formatter, h.Style); err != nil {
		log := logger.GetTUILogger()
		log.Debug().Err(err).Str("language", string(lang)).Msg("Highlight failed, showing plain text")
		return text
	}
	out := b.String()
	if !strings.HasSuffix(text, "\n") {
		out = trimAddedNewline(out)
	}
	return out
}

// trimAddedNewline drops the final newline chroma's lexers append when only
// escape sequences follow it.
func trimAddedNewline(s string) string {
	i := strings.LastIndexByte(s, '\n')
	if i < 0 || ansi.Strip(s[i+1:]) != "" {
		return s
	}
	return s[:i] + s[i+1:]
}

// Render highlights a rendered body.
func (h Highlighter) Render(r classify.Rendered) string {
	return h.Highlight(r.Text, r.Language)
}
