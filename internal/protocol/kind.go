// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package protocol

// Kind is a payload type tag. Known kinds are listed below; any other string
// is carried through as-is by the Unknown variant.
type Kind string

// Entry-creating kinds.
const (
	KindLog            Kind = "log"
	KindCustom         Kind = "custom"
	KindText           Kind = "text"
	KindHTML           Kind = "html"
	KindXML            Kind = "xml"
	KindJSON           Kind = "json_string"
	KindImage          Kind = "image"
	KindFileContents   Kind = "file_contents"
	KindException      Kind = "exception"
	KindQuery          Kind = "executed_query"
	KindTable          Kind = "table"
	KindTrace          Kind = "trace"
	KindCaller         Kind = "caller"
	KindMeasure        Kind = "measure"
	KindBool           Kind = "bool"
	KindNull           Kind = "null"
	KindCarbon         Kind = "carbon"
	KindApplicationLog Kind = "application_log"
	KindSeparator      Kind = "separator"
	KindNotify         Kind = "notify"
	KindLock           Kind = "create_lock"
)

// Directive kinds mutate existing state instead of creating an entry.
const (
	KindColor     Kind = "color"
	KindLabel     Kind = "label"
	KindSize      Kind = "size"
	KindNewScreen Kind = "new_screen"
	KindClearAll  Kind = "clear_all"
	KindHide      Kind = "hide"
	KindRemove    Kind = "remove"
	KindShowApp   Kind = "show_app"
	KindHideApp   Kind = "hide_app"
	KindConfetti  Kind = "confetti"
)

var entryKinds = []Kind{
	KindLog, KindCustom, KindText, KindHTML, KindXML, KindJSON, KindImage,
	KindFileContents, KindException, KindQuery, KindTable, KindTrace,
	KindCaller, KindMeasure, KindBool, KindNull, KindCarbon,
	KindApplicationLog, KindSeparator, KindNotify, KindLock,
}

var directiveKinds = []Kind{
	KindColor, KindLabel, KindSize, KindNewScreen, KindClearAll,
	KindHide, KindRemove, KindShowApp, KindHideApp, KindConfetti,
}

// EntryKinds returns every known entry-creating kind.
func EntryKinds() []Kind {
	return append([]Kind(nil), entryKinds...)
}

// DirectiveKinds returns every known directive kind.
func DirectiveKinds() []Kind {
	return append([]Kind(nil), directiveKinds...)
}

// Kinds returns the full known vocabulary.
func Kinds() []Kind {
	return append(EntryKinds(), directiveKinds...)
}

// IsDirective reports whether k mutates state rather than creating an entry.
func (k Kind) IsDirective() bool {
	for _, d := range directiveKinds {
		if d == k {
			return true
		}
	}
	return false
}

// IsKnown reports whether k is part of the known vocabulary.
func (k Kind) IsKnown() bool {
	if k.IsDirective() {
		return true
	}
	for _, e := range entryKinds {
		if e == k {
			return true
		}
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}
