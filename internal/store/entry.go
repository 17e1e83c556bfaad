// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"time"

	"github.com/TimBroddin/raybun/internal/protocol"
)

// Entry is one stored payload. Color, Label, Size and Hidden are only ever
// changed by directives arriving in later requests with the same UUID.
type Entry struct {
	ID        uint64
	UUID      string
	Type      protocol.Kind
	Content   protocol.Content
	Origin    *protocol.Origin
	Meta      *protocol.Meta
	CreatedAt time.Time
	Screen    string

	Color  string
	Label  string
	Size   string
	Hidden bool
}

// Result summarizes what one AddRequest call did. Directives counts every
// consumed directive, including ones that matched no entry.
type Result struct {
	Created    int
	Directives int
	Skipped    int
	Evicted    int
}
