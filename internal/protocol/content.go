// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package protocol

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
)

// Content is the decoded body of a payload. Every known Kind has exactly one
// variant type below; anything else decodes to Unknown.
type Content interface {
	Kind() Kind
	isContent()
}

// Frame is one stack frame as sent by exception, trace and caller payloads.
type Frame struct {
	FileName    string `json:"file_name"`
	LineNumber  int    `json:"line_number"`
	Class       string `json:"class,omitempty"`
	Method      string `json:"method,omitempty"`
	VendorFrame bool   `json:"vendor_frame,omitempty"`
}

// LogContent holds one or more logged values in their original JSON form.
type LogContent struct {
	Values []json.RawMessage `json:"values"`
}

// CustomContent is free-form content with a caller supplied label. File
// contents arrive this way with the file name as label.
type CustomContent struct {
	Content string `json:"content"`
	Label   string `json:"label,omitempty"`
}

// TextContent is plain text.
type TextContent struct {
	Content string `json:"content"`
	Label   string `json:"label,omitempty"`
}

// HTMLContent is an HTML fragment.
type HTMLContent struct {
	Content string `json:"content"`
	Label   string `json:"label,omitempty"`
}

// XMLContent is an XML document.
type XMLContent struct {
	Content string `json:"content"`
	Label   string `json:"label,omitempty"`
}

// JSONContent is a JSON document carried as a string.
type JSONContent struct {
	Value string `json:"value"`
}

// ImageContent references an image, either as an <img> tag in Content or as
// a plain Location.
type ImageContent struct {
	Content  string `json:"content,omitempty"`
	Location string `json:"location,omitempty"`
	Label    string `json:"label,omitempty"`
}

var imgSrc = regexp.MustCompile(`(?i)src\s*=\s*["']([^"']*)["']`)

// Source returns the image location, extracted from the <img> tag if needed.
func (c ImageContent) Source() string {
	if c.Location != "" {
		return c.Location
	}
	if m := imgSrc.FindStringSubmatch(c.Content); len(m) > 1 {
		return m[1]
	}
	return c.Content
}

// FileContentsContent is the (escaped) text of a file.
type FileContentsContent struct {
	Content string `json:"content"`
	Label   string `json:"label,omitempty"`
}

// ExceptionContent describes a thrown exception.
type ExceptionContent struct {
	Class   string  `json:"class"`
	Message string  `json:"message"`
	Frames  []Frame `json:"frames,omitempty"`
}

// QueryContent is an executed database statement.
type QueryContent struct {
	SQL            string            `json:"sql"`
	Bindings       []json.RawMessage `json:"bindings,omitempty"`
	ConnectionName string            `json:"connection_name,omitempty"`
	Time           float64           `json:"time,omitempty"`
}

// TableContent is a labelled key/value table. Values is an object or array.
type TableContent struct {
	Values json.RawMessage `json:"values"`
	Label  string          `json:"label,omitempty"`
}

// TableRow is one row of a TableContent in document order.
type TableRow struct {
	Key   string
	Value json.RawMessage
}

// Rows returns the table rows in the order they were sent. Array values are
// keyed by their index.
func (c TableContent) Rows() []TableRow {
	dec := json.NewDecoder(bytes.NewReader(c.Values))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '{' && delim != '[') {
		return nil
	}

	var rows []TableRow
	for i := 0; dec.More(); i++ {
		key := strconv.Itoa(i)
		if delim == '{' {
			kt, err := dec.Token()
			if err != nil {
				return rows
			}
			key, _ = kt.(string)
		}
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return rows
		}
		rows = append(rows, TableRow{Key: key, Value: v})
	}
	return rows
}

// TraceContent is a stack trace.
type TraceContent struct {
	Frames []Frame `json:"frames"`
}

// CallerContent is the frame that called the debug function.
type CallerContent struct {
	Frame Frame `json:"frame"`
}

// MeasureContent is a stopwatch reading.
type MeasureContent struct {
	Name                          string  `json:"name"`
	IsNewTimer                    bool    `json:"is_new_timer"`
	TotalTime                     float64 `json:"total_time"`
	MaxMemoryUsageDuringTotalTime int64   `json:"max_memory_usage_during_total_time"`
	TimeSinceLastCall             float64 `json:"time_since_last_call"`
	MaxMemoryUsageSinceLastCall   int64   `json:"max_memory_usage_since_last_call"`
}

// BoolContent is a boolean value.
type BoolContent struct {
	Value bool `json:"value"`
}

// NullContent is an explicit null.
type NullContent struct{}

// CarbonContent is a timestamp.
type CarbonContent struct {
	Formatted string `json:"formatted"`
	Timestamp int64  `json:"timestamp,omitempty"`
	Timezone  string `json:"timezone,omitempty"`
}

// ApplicationLogContent is a line from the application's own log.
type ApplicationLogContent struct {
	Value   string          `json:"value"`
	Context json.RawMessage `json:"context,omitempty"`
}

// SeparatorContent is a visual divider.
type SeparatorContent struct{}

// NotifyContent is a desktop notification text.
type NotifyContent struct {
	Value string `json:"value"`
}

// LockContent pauses the client until the named lock is released.
type LockContent struct {
	Name string `json:"name"`
}

// ColorContent sets the color of the latest entry of a request.
type ColorContent struct {
	Color string `json:"color"`
}

// LabelContent sets the label of the latest entry of a request.
type LabelContent struct {
	Label string `json:"label"`
}

// SizeContent sets the display size of the latest entry of a request.
type SizeContent struct {
	Size string `json:"size"`
}

// NewScreenContent switches the current screen. An empty name returns to the
// default screen.
type NewScreenContent struct {
	Name string `json:"name"`
}

// ClearAllContent empties the history.
type ClearAllContent struct{}

// HideContent hides the latest entry of a request.
type HideContent struct{}

// RemoveContent removes every entry of a request.
type RemoveContent struct{}

// ShowAppContent is accepted and ignored.
type ShowAppContent struct{}

// HideAppContent is accepted and ignored.
type HideAppContent struct{}

// ConfettiContent is accepted and ignored.
type ConfettiContent struct{}

// Unknown carries a payload whose type is not in the known vocabulary.
type Unknown struct {
	Type string
	Raw  json.RawMessage
}

func (LogContent) Kind() Kind            { return KindLog }
func (CustomContent) Kind() Kind         { return KindCustom }
func (TextContent) Kind() Kind           { return KindText }
func (HTMLContent) Kind() Kind           { return KindHTML }
func (XMLContent) Kind() Kind            { return KindXML }
func (JSONContent) Kind() Kind           { return KindJSON }
func (ImageContent) Kind() Kind          { return KindImage }
func (FileContentsContent) Kind() Kind   { return KindFileContents }
func (ExceptionContent) Kind() Kind      { return KindException }
func (QueryContent) Kind() Kind          { return KindQuery }
func (TableContent) Kind() Kind          { return KindTable }
func (TraceContent) Kind() Kind          { return KindTrace }
func (CallerContent) Kind() Kind         { return KindCaller }
func (MeasureContent) Kind() Kind        { return KindMeasure }
func (BoolContent) Kind() Kind           { return KindBool }
func (NullContent) Kind() Kind           { return KindNull }
func (CarbonContent) Kind() Kind         { return KindCarbon }
func (ApplicationLogContent) Kind() Kind { return KindApplicationLog }
func (SeparatorContent) Kind() Kind      { return KindSeparator }
func (NotifyContent) Kind() Kind         { return KindNotify }
func (LockContent) Kind() Kind           { return KindLock }
func (ColorContent) Kind() Kind          { return KindColor }
func (LabelContent) Kind() Kind          { return KindLabel }
func (SizeContent) Kind() Kind           { return KindSize }
func (NewScreenContent) Kind() Kind      { return KindNewScreen }
func (ClearAllContent) Kind() Kind       { return KindClearAll }
func (HideContent) Kind() Kind           { return KindHide }
func (RemoveContent) Kind() Kind         { return KindRemove }
func (ShowAppContent) Kind() Kind        { return KindShowApp }
func (HideAppContent) Kind() Kind        { return KindHideApp }
func (ConfettiContent) Kind() Kind       { return KindConfetti }
func (u Unknown) Kind() Kind             { return Kind(u.Type) }

func (LogContent) isContent()            {}
func (CustomContent) isContent()         {}
func (TextContent) isContent()           {}
func (HTMLContent) isContent()           {}
func (XMLContent) isContent()            {}
func (JSONContent) isContent()           {}
func (ImageContent) isContent()          {}
func (FileContentsContent) isContent()   {}
func (ExceptionContent) isContent()      {}
func (QueryContent) isContent()          {}
func (TableContent) isContent()          {}
func (TraceContent) isContent()          {}
func (CallerContent) isContent()         {}
func (MeasureContent) isContent()        {}
func (BoolContent) isContent()           {}
func (NullContent) isContent()           {}
func (CarbonContent) isContent()         {}
func (ApplicationLogContent) isContent() {}
func (SeparatorContent) isContent()      {}
func (NotifyContent) isContent()         {}
func (LockContent) isContent()           {}
func (ColorContent) isContent()          {}
func (LabelContent) isContent()          {}
func (SizeContent) isContent()           {}
func (NewScreenContent) isContent()      {}
func (ClearAllContent) isContent()       {}
func (HideContent) isContent()           {}
func (RemoveContent) isContent()         {}
func (ShowAppContent) isContent()        {}
func (HideAppContent) isContent()        {}
func (ConfettiContent) isContent()       {}
func (Unknown) isContent()               {}
