// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package classify

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimBroddin/raybun/internal/protocol"
)

// samples holds one representative value per known kind.
var samples = map[protocol.Kind]protocol.Content{
	protocol.KindLog:            protocol.LogContent{Values: []json.RawMessage{json.RawMessage(`"hello"`), json.RawMessage(`42`)}},
	protocol.KindCustom:         protocol.CustomContent{Content: "body", Label: "notes.txt"},
	protocol.KindText:           protocol.TextContent{Content: "plain text"},
	protocol.KindHTML:           protocol.HTMLContent{Content: "<p>Hello <b>there</b> &amp; you</p>"},
	protocol.KindXML:            protocol.XMLContent{Content: "<a><b/></a>"},
	protocol.KindJSON:           protocol.JSONContent{Value: `{"a":1}`},
	protocol.KindImage:          protocol.ImageContent{Content: `<img src="https://example.com/cat.png" alt="">`},
	protocol.KindFileContents:   protocol.FileContentsContent{Content: "line one\nline two", Label: "a.txt"},
	protocol.KindException:      protocol.ExceptionContent{Class: "RuntimeException", Message: "boom", Frames: []protocol.Frame{{FileName: "a.php", LineNumber: 3, Class: "A", Method: "run"}}},
	protocol.KindQuery:          protocol.QueryContent{SQL: "select * from users", Bindings: []json.RawMessage{json.RawMessage(`1`)}, ConnectionName: "mysql", Time: 1.5},
	protocol.KindTable:          protocol.TableContent{Values: json.RawMessage(`{"id":1,"name":"Ann"}`)},
	protocol.KindTrace:          protocol.TraceContent{Frames: []protocol.Frame{{FileName: "a.php", LineNumber: 1}, {FileName: "b.php", LineNumber: 2}}},
	protocol.KindCaller:         protocol.CallerContent{Frame: protocol.Frame{FileName: "app.php", LineNumber: 9}},
	protocol.KindMeasure:        protocol.MeasureContent{Name: "boot", TotalTime: 12.25, MaxMemoryUsageDuringTotalTime: 2048},
	protocol.KindBool:           protocol.BoolContent{Value: true},
	protocol.KindNull:           protocol.NullContent{},
	protocol.KindCarbon:         protocol.CarbonContent{Formatted: "2026-01-02 03:04:05", Timestamp: 1767322800, Timezone: "UTC"},
	protocol.KindApplicationLog: protocol.ApplicationLogContent{Value: "User logged in", Context: json.RawMessage(`{"id":7}`)},
	protocol.KindSeparator:      protocol.SeparatorContent{},
	protocol.KindNotify:         protocol.NotifyContent{Value: "Build done"},
	protocol.KindLock:           protocol.LockContent{Name: "checkout"},
	protocol.KindColor:          protocol.ColorContent{Color: "red"},
	protocol.KindLabel:          protocol.LabelContent{Label: "L"},
	protocol.KindSize:           protocol.SizeContent{Size: "lg"},
	protocol.KindNewScreen:      protocol.NewScreenContent{Name: "s"},
	protocol.KindClearAll:       protocol.ClearAllContent{},
	protocol.KindHide:           protocol.HideContent{},
	protocol.KindRemove:         protocol.RemoveContent{},
	protocol.KindShowApp:        protocol.ShowAppContent{},
	protocol.KindHideApp:        protocol.HideAppContent{},
	protocol.KindConfetti:       protocol.ConfettiContent{},
}

func TestSamplesCoverVocabulary(t *testing.T) {
	for _, k := range protocol.Kinds() {
		c, ok := samples[k]
		require.True(t, ok, "no sample for %s", k)
		assert.Equal(t, k, c.Kind())
	}
}

func TestPreviewIsTotal(t *testing.T) {
	for _, k := range protocol.Kinds() {
		p := Preview(samples[k], 0)
		assert.NotEmpty(t, p, k)
		assert.NotContains(t, p, "\n", k)
		assert.LessOrEqual(t, ansi.StringWidth(p), DefaultPreviewLength, k)
	}

	assert.Equal(t, "hologram", Preview(protocol.Unknown{Type: "hologram", Raw: json.RawMessage(`{}`)}, 0))
}

func TestPreview(t *testing.T) {
	tests := []struct {
		kind     protocol.Kind
		content  protocol.Content
		expected string
	}{
		{kind: protocol.KindLog, expected: "hello, 42"},
		{kind: protocol.KindException, expected: "RuntimeException: boom"},
		{kind: protocol.KindQuery, expected: "select * from users"},
		{kind: protocol.KindTable, expected: "Table (2 rows)"},
		{kind: protocol.KindTrace, expected: "Trace (2 frames)"},
		{kind: protocol.KindCaller, expected: "app.php:9"},
		{kind: protocol.KindMeasure, expected: "boot: 12.25ms"},
		{kind: protocol.KindBool, expected: "true"},
		{kind: protocol.KindNull, expected: "null"},
		{kind: protocol.KindCarbon, expected: "2026-01-02 03:04:05"},
		{kind: protocol.KindHTML, expected: "Hello there & you"},
		{kind: protocol.KindImage, expected: "Image: https://example.com/cat.png"},
		{kind: protocol.KindCustom, expected: "notes.txt: body"},
		{kind: protocol.KindFileContents, expected: "line one line two"},
		{kind: protocol.KindJSON, expected: `{"a":1}`},
		{kind: protocol.KindSeparator, expected: "────────"},
		{kind: protocol.KindLock, expected: "Paused: checkout"},
		{kind: protocol.KindNotify, expected: "Build done"},
		{kind: protocol.KindApplicationLog, expected: "User logged in"},
		{kind: protocol.KindColor, expected: "color"},
		{
			kind:     protocol.KindMeasure,
			content:  protocol.MeasureContent{Name: "boot", IsNewTimer: true},
			expected: "Start measuring: boot",
		},
		{
			kind:     protocol.KindTable,
			content:  protocol.TableContent{Values: json.RawMessage(`["only"]`)},
			expected: "Table (1 row)",
		},
		{
			kind:     protocol.KindLog,
			content:  protocol.LogContent{Values: []json.RawMessage{json.RawMessage(`{"a": [1, 2]}`), json.RawMessage(`null`)}},
			expected: `{"a":[1,2]}, null`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			c := tt.content
			if c == nil {
				c = samples[tt.kind]
			}
			assert.Equal(t, tt.expected, Preview(c, 0))
		})
	}
}

func TestPreviewTruncatesAndCollapses(t *testing.T) {
	long := protocol.TextContent{Content: "first line\n\n   second\tline " + strings.Repeat("x", 100)}

	p := Preview(long, 20)
	assert.Equal(t, 20, ansi.StringWidth(p))
	assert.True(t, strings.HasPrefix(p, "first line second"))
	assert.True(t, strings.HasSuffix(p, "…"))

	assert.Equal(t, "short", Preview(protocol.TextContent{Content: "  short  "}, 20))
}

func TestPreviewStripsControlSequences(t *testing.T) {
	tests := []struct {
		name     string
		content  protocol.Content
		expected string
	}{
		{name: "clear screen and cursor home", content: protocol.TextContent{Content: "a\x1b[2J\x1b[Hb"}, expected: "ab"},
		{name: "window title", content: protocol.TextContent{Content: "abc\x1b]0;pwned\adef"}, expected: "abcdef"},
		{name: "colors", content: protocol.LogContent{Values: []json.RawMessage{json.RawMessage(`"\u001b[31mred\u001b[0m"`)}}, expected: "red"},
		{name: "bare control characters", content: protocol.TextContent{Content: "bell\a back\bspace\rline"}, expected: "bell backspaceline"},
		{name: "label", content: protocol.CustomContent{Content: "x", Label: "\x1b[1mname"}, expected: "name: x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Preview(tt.content, 0)
			assert.Equal(t, tt.expected, p)
			assert.NotContains(t, p, "\x1b")
		})
	}

	long := protocol.TextContent{Content: strings.Repeat("\x1b[2J", 200) + strings.Repeat("y", 80)}
	p := Preview(long, 0)
	assert.Equal(t, DefaultPreviewLength, ansi.StringWidth(p))
	assert.Equal(t, DefaultPreviewLength, len([]rune(p)))
}

func TestBodyStripsControlSequences(t *testing.T) {
	r := Body(protocol.TextContent{Content: "one\x1b[2J\r\ntwo\x1b]0;title\a\tthree"})
	assert.Equal(t, "one\ntwo\tthree", r.Text)

	r = Body(protocol.ApplicationLogContent{Value: "\x1b[H\x1b[2Jlogged"})
	assert.Equal(t, "logged", r.Text)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "plain ünïcode ✓", Sanitize("plain ünïcode ✓"))
	assert.Equal(t, "keep\nlines\tand tabs", Sanitize("keep\nlines\tand tabs"))
	assert.Equal(t, "c1", Sanitize("c\u009b1"))
	assert.Empty(t, Sanitize("\x1b[2J\x1b[H\a"))
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Language
	}{
		{"empty", "   ", LanguageNone},
		{"plain", "just some words", LanguageNone},
		{"html", "<div class=\"a\">hi</div>", LanguageHTML},
		{"html self closing", "<br/>", LanguageHTML},
		{"html with script", "<script>const a = 1;</script>", LanguageHTML},
		{"xml declaration", "<?xml version=\"1.0\"?><root/>", LanguageXML},
		{"xml namespace", "<svg xmlns=\"http://www.w3.org/2000/svg\"><rect/></svg>", LanguageXML},
		{"namespace with script stays html", "<svg xmlns=\"http://www.w3.org/2000/svg\"><script>x()</script></svg>", LanguageHTML},
		{"unclosed angle", "<not a tag", LanguageNone},
		{"json object", `{"a":1}`, LanguageJSON},
		{"json array", "[1, 2, 3]", LanguageJSON},
		{"json with sql value", `{"q": "SELECT * FROM users"}`, LanguageJSON},
		{"braces but invalid json", "{not json}", LanguageNone},
		{"sql", "SELECT * FROM users", LanguageSQL},
		{"sql lowercase", "  update users set a = 1", LanguageSQL},
		{"sql with", "WITH t AS (SELECT 1) SELECT * FROM t", LanguageSQL},
		{"keyword without whitespace", "SELECTED", LanguageNone},
		{"php", "<?php echo 'hi';", LanguagePHP},
		{"php short echo", "<?= $name ?>", LanguagePHP},
		{"js function", "function greet(name) { return name; }", LanguageJavaScript},
		{"js const", "const total = a + b;", LanguageJavaScript},
		{"js class", "class Cart extends Base {\n}", LanguageJavaScript},
		{"js import", "import { ref } from 'vue'", LanguageJavaScript},
		{"css rule", "body { color: red; }", LanguageCSS},
		{"css at rule", "@media (max-width: 600px) { a { b: c } }", LanguageCSS},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectLanguage(tt.text)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, got, DetectLanguage(tt.text), "pure function")
		})
	}
}

func TestCategoryCoversVocabulary(t *testing.T) {
	for _, k := range protocol.Kinds() {
		_, ok := categories[k]
		assert.True(t, ok, "no category for %s", k)
	}
	assert.Equal(t, CategoryError, CategoryOf(protocol.KindException))
	assert.Equal(t, CategoryQuery, CategoryOf(protocol.KindQuery))
	assert.Equal(t, CategoryDefault, CategoryOf("hologram"))
}

func TestBodyIsTotal(t *testing.T) {
	for _, k := range protocol.Kinds() {
		assert.NotEmpty(t, Body(samples[k]).Text, k)
	}
}

func TestBody(t *testing.T) {
	t.Run("log mixed values", func(t *testing.T) {
		r := Body(samples[protocol.KindLog])
		assert.Equal(t, "hello\n42", r.Text)
		assert.Equal(t, LanguageNone, r.Language)
	})

	t.Run("log single string is classified", func(t *testing.T) {
		r := Body(protocol.LogContent{Values: []json.RawMessage{json.RawMessage(`"SELECT 1 FROM dual"`)}})
		assert.Equal(t, LanguageSQL, r.Language)
	})

	t.Run("log structured values", func(t *testing.T) {
		r := Body(protocol.LogContent{Values: []json.RawMessage{json.RawMessage(`{"a":1}`)}})
		assert.Equal(t, "{\n  \"a\": 1\n}", r.Text)
		assert.Equal(t, LanguageJSON, r.Language)
	})

	t.Run("json string pretty printed", func(t *testing.T) {
		r := Body(samples[protocol.KindJSON])
		assert.Equal(t, "{\n  \"a\": 1\n}", r.Text)
		assert.Equal(t, LanguageJSON, r.Language)
	})

	t.Run("invalid json string kept", func(t *testing.T) {
		r := Body(protocol.JSONContent{Value: "{oops"})
		assert.Equal(t, "{oops", r.Text)
		assert.Equal(t, LanguageNone, r.Language)
	})

	t.Run("query", func(t *testing.T) {
		r := Body(samples[protocol.KindQuery])
		assert.Equal(t, LanguageSQL, r.Language)
		assert.Contains(t, r.Text, "-- bindings: 1")
		assert.Contains(t, r.Text, "-- connection: mysql")
		assert.Contains(t, r.Text, "-- time: 1.50ms")
	})

	t.Run("exception", func(t *testing.T) {
		r := Body(samples[protocol.KindException])
		assert.Equal(t, "RuntimeException\nboom\n\n  at A::run (a.php:3)", r.Text)
	})

	t.Run("table", func(t *testing.T) {
		r := Body(samples[protocol.KindTable])
		assert.Equal(t, "id    1\nname  Ann", r.Text)
	})

	t.Run("markup", func(t *testing.T) {
		assert.Equal(t, LanguageHTML, Body(samples[protocol.KindHTML]).Language)
		assert.Equal(t, LanguageXML, Body(samples[protocol.KindXML]).Language)
	})

	t.Run("measure", func(t *testing.T) {
		r := Body(samples[protocol.KindMeasure])
		assert.Contains(t, r.Text, "12.25ms")
		assert.Contains(t, r.Text, "2.0 KiB")
	})

	t.Run("unknown", func(t *testing.T) {
		r := Body(protocol.Unknown{Type: "x", Raw: json.RawMessage(`{"k":"v"}`)})
		assert.Equal(t, LanguageJSON, r.Language)
		assert.Contains(t, r.Text, `"k": "v"`)
	})
}
