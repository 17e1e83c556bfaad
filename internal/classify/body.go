// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package classify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/TimBroddin/raybun/internal/protocol"
	"github.com/samber/lo"
)

// Rendered is the detail-pane text for one entry together with the language
// to highlight it as.
type Rendered struct {
	Text     string
	Language Language
}

// Body renders the full content of c for the detail pane. The text is
// sanitized, so it never carries escape sequences of its own.
func Body(c protocol.Content) Rendered {
	r := body(c)
	r.Text = Sanitize(r.Text)
	return r
}

func body(c protocol.Content) Rendered {
	switch v := c.(type) {
	case protocol.LogContent:
		return logBody(v)
	case protocol.CustomContent:
		return detected(v.Content)
	case protocol.TextContent:
		return detected(v.Content)
	case protocol.HTMLContent:
		return Rendered{Text: v.Content, Language: LanguageHTML}
	case protocol.XMLContent:
		return Rendered{Text: v.Content, Language: LanguageXML}
	case protocol.JSONContent:
		if pretty, ok := indentJSON([]byte(v.Value)); ok {
			return Rendered{Text: pretty, Language: LanguageJSON}
		}
		return Rendered{Text: v.Value}
	case protocol.ImageContent:
		return Rendered{Text: v.Source()}
	case protocol.FileContentsContent:
		return detected(v.Content)
	case protocol.ExceptionContent:
		var b strings.Builder
		fmt.Fprintf(&b, "%s\n%s\n", v.Class, v.Message)
		if len(v.Frames) > 0 {
			b.WriteString("\n")
			b.WriteString(framesText(v.Frames))
		}
		return Rendered{Text: strings.TrimRight(b.String(), "\n")}
	case protocol.QueryContent:
		return queryBody(v)
	case protocol.TableContent:
		return tableBody(v)
	case protocol.TraceContent:
		return Rendered{Text: strings.TrimRight(framesText(v.Frames), "\n")}
	case protocol.CallerContent:
		return Rendered{Text: frameText(v.Frame)}
	case protocol.MeasureContent:
		return measureBody(v)
	case protocol.BoolContent:
		return Rendered{Text: strconv.FormatBool(v.Value)}
	case protocol.NullContent:
		return Rendered{Text: "null"}
	case protocol.CarbonContent:
		lines := []string{v.Formatted}
		if v.Timestamp != 0 {
			lines = append(lines, fmt.Sprintf("timestamp: %d", v.Timestamp))
		}
		if v.Timezone != "" {
			lines = append(lines, "timezone: "+v.Timezone)
		}
		return Rendered{Text: strings.Join(lines, "\n")}
	case protocol.ApplicationLogContent:
		if len(v.Context) == 0 || string(v.Context) == "null" || string(v.Context) == "[]" {
			return Rendered{Text: v.Value}
		}
		ctx, ok := indentJSON(v.Context)
		if !ok {
			ctx = string(v.Context)
		}
		return Rendered{Text: v.Value + "\n\n" + ctx}
	case protocol.SeparatorContent:
		return Rendered{Text: separatorMarker}
	case protocol.NotifyContent:
		return Rendered{Text: v.Value}
	case protocol.LockContent:
		return Rendered{Text: fmt.Sprintf("Execution paused on lock %q.\nPress c to continue.", v.Name)}
	case protocol.Unknown:
		if pretty, ok := indentJSON(v.Raw); ok {
			return Rendered{Text: pretty, Language: LanguageJSON}
		}
		return Rendered{Text: string(v.Raw)}
	}
	return Rendered{Text: c.Kind().String()}
}

func detected(text string) Rendered {
	return Rendered{Text: text, Language: DetectLanguage(text)}
}

// logBody prints one value per line. Structured values are indented; a lone
// string is classified like free text.
func logBody(v protocol.LogContent) Rendered {
	if len(v.Values) == 1 {
		if s, ok := jsonString(v.Values[0]); ok {
			return detected(s)
		}
	}

	allStructured := len(v.Values) > 0
	parts := lo.Map(v.Values, func(raw json.RawMessage, _ int) string {
		if s, ok := jsonString(raw); ok {
			allStructured = false
			return s
		}
		if pretty, ok := indentJSON(raw); ok {
			return pretty
		}
		return string(raw)
	})

	r := Rendered{Text: strings.Join(parts, "\n")}
	if allStructured {
		r.Language = LanguageJSON
	}
	return r
}

func queryBody(v protocol.QueryContent) Rendered {
	var b strings.Builder
	b.WriteString(v.SQL)
	if len(v.Bindings) > 0 {
		bindings := lo.Map(v.Bindings, func(raw json.RawMessage, _ int) string {
			var buf bytes.Buffer
			if json.Compact(&buf, raw) != nil {
				return string(raw)
			}
			return buf.String()
		})
		fmt.Fprintf(&b, "\n\n-- bindings: %s", strings.Join(bindings, ", "))
	}
	if v.ConnectionName != "" {
		fmt.Fprintf(&b, "\n-- connection: %s", v.ConnectionName)
	}
	if v.Time > 0 {
		fmt.Fprintf(&b, "\n-- time: %.2fms", v.Time)
	}
	return Rendered{Text: b.String(), Language: LanguageSQL}
}

func tableBody(v protocol.TableContent) Rendered {
	rows := v.Rows()
	width := lo.Max(lo.Map(rows, func(r protocol.TableRow, _ int) int { return len(r.Key) }))

	var b strings.Builder
	if v.Label != "" {
		b.WriteString(v.Label + "\n\n")
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "%-*s  %s\n", width, r.Key, jsonText(r.Value))
	}
	return Rendered{Text: strings.TrimRight(b.String(), "\n")}
}

func measureBody(v protocol.MeasureContent) Rendered {
	if v.IsNewTimer {
		return Rendered{Text: "Start measuring: " + v.Name}
	}
	lines := []string{
		v.Name,
		fmt.Sprintf("total time:           %.2fms", v.TotalTime),
		fmt.Sprintf("since last call:      %.2fms", v.TimeSinceLastCall),
		fmt.Sprintf("max memory (total):   %s", bytesText(v.MaxMemoryUsageDuringTotalTime)),
		fmt.Sprintf("max memory (last):    %s", bytesText(v.MaxMemoryUsageSinceLastCall)),
	}
	return Rendered{Text: strings.Join(lines, "\n")}
}

func framesText(frames []protocol.Frame) string {
	var b strings.Builder
	for _, f := range frames {
		b.WriteString(frameText(f))
		b.WriteString("\n")
	}
	return b.String()
}

func frameText(f protocol.Frame) string {
	loc := frameLocation(f)
	var fn string
	switch {
	case f.Class != "" && f.Method != "":
		fn = f.Class + "::" + f.Method
	case f.Method != "":
		fn = f.Method
	}
	line := "  at " + loc
	if fn != "" {
		line = "  at " + fn + " (" + loc + ")"
	}
	if f.VendorFrame {
		line += " [vendor]"
	}
	return line
}

func indentJSON(raw []byte) (string, bool) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(raw), "", "  "); err != nil {
		return "", false
	}
	return buf.String(), true
}

func bytesText(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
