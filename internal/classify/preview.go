// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package classify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/TimBroddin/raybun/internal/protocol"
	"github.com/charmbracelet/x/ansi"
	"github.com/samber/lo"
)

// DefaultPreviewLength is the preview width used when none is configured.
const DefaultPreviewLength = 50

const (
	ellipsis        = "…"
	separatorMarker = "────────"
)

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// Preview returns a single-line summary of c no wider than max cells. Escape
// sequences and control characters are removed and runs of whitespace,
// newlines included, collapse to one space. A max of zero or less uses
// DefaultPreviewLength.
func Preview(c protocol.Content, max int) string {
	if max <= 0 {
		max = DefaultPreviewLength
	}
	return ansi.Truncate(collapse(Sanitize(summary(c))), max, ellipsis)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func summary(c protocol.Content) string {
	switch v := c.(type) {
	case protocol.LogContent:
		return strings.Join(lo.Map(v.Values, func(raw json.RawMessage, _ int) string { return jsonText(raw) }), ", ")
	case protocol.CustomContent:
		if v.Label != "" {
			return v.Label + ": " + v.Content
		}
		return v.Content
	case protocol.TextContent:
		return v.Content
	case protocol.HTMLContent:
		return html.UnescapeString(htmlTag.ReplaceAllString(v.Content, ""))
	case protocol.XMLContent:
		return v.Content
	case protocol.JSONContent:
		return v.Value
	case protocol.ImageContent:
		return "Image: " + v.Source()
	case protocol.FileContentsContent:
		return v.Content
	case protocol.ExceptionContent:
		return v.Class + ": " + v.Message
	case protocol.QueryContent:
		return v.SQL
	case protocol.TableContent:
		return fmt.Sprintf("Table (%s)", plural(len(v.Rows()), "row"))
	case protocol.TraceContent:
		return fmt.Sprintf("Trace (%s)", plural(len(v.Frames), "frame"))
	case protocol.CallerContent:
		return frameLocation(v.Frame)
	case protocol.MeasureContent:
		if v.IsNewTimer {
			return "Start measuring: " + v.Name
		}
		return fmt.Sprintf("%s: %.2fms", v.Name, v.TotalTime)
	case protocol.BoolContent:
		return strconv.FormatBool(v.Value)
	case protocol.NullContent:
		return "null"
	case protocol.CarbonContent:
		return v.Formatted
	case protocol.ApplicationLogContent:
		return v.Value
	case protocol.SeparatorContent:
		return separatorMarker
	case protocol.NotifyContent:
		return v.Value
	case protocol.LockContent:
		return "Paused: " + v.Name
	}
	// Directives and Unknown.
	return c.Kind().String()
}

// jsonText renders a JSON value for display: strings without quotes,
// everything else compacted.
func jsonText(raw json.RawMessage) string {
	if s, ok := jsonString(raw); ok {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// jsonString unquotes raw if it is a JSON string. A plain Unmarshal would
// also accept null.
func jsonString(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func frameLocation(f protocol.Frame) string {
	if f.FileName == "" {
		return "unknown location"
	}
	return fmt.Sprintf("%s:%d", f.FileName, f.LineNumber)
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
