// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store holds the payload history. It applies incoming requests as
// new entries or as mutations of earlier entries, keeps the history within a
// fixed bound and signals observers once per request.
package store

import (
	"slices"
	"sync"
	"time"

	"github.com/TimBroddin/raybun/internal/logger"
	"github.com/TimBroddin/raybun/internal/notify"
	"github.com/TimBroddin/raybun/internal/protocol"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

const (
	DefaultMaxEntries = 1000
	DefaultScreen     = "default"
)

// Options configures a Store. Zero values fall back to the defaults.
type Options struct {
	MaxEntries    int
	DefaultScreen string
	Clock         func() time.Time
}

func (o Options) withDefaults() Options {
	if o.MaxEntries <= 0 {
		o.MaxEntries = DefaultMaxEntries
	}
	if o.DefaultScreen == "" {
		o.DefaultScreen = DefaultScreen
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o
}

// Store is the payload history. Requests are applied one at a time; reads
// may run concurrently and always see a fully applied request.
type Store struct {
	opts Options
	bus  *notify.Bus

	// applyMu serializes mutations together with their notification so the
	// next request starts only after observers have been told about this one.
	applyMu sync.Mutex

	mu            sync.RWMutex
	entries       []Entry
	lastID        uint64
	currentScreen string
	locks         map[string]struct{}
}

// New creates a Store that signals changes on bus. A nil bus gets a private
// one.
func New(bus *notify.Bus, opts Options) *Store {
	if bus == nil {
		bus = notify.New()
	}
	opts = opts.withDefaults()
	return &Store{
		opts:          opts,
		bus:           bus,
		currentScreen: opts.DefaultScreen,
		locks:         make(map[string]struct{}),
	}
}

func (s *Store) log() *zerolog.Logger {
	l := logger.GetStoreLogger()
	return &l
}

// Bus returns the bus this store notifies on.
func (s *Store) Bus() *notify.Bus {
	return s.bus
}

// Subscribe registers fn to be called after every change. The returned
// function unsubscribes.
func (s *Store) Subscribe(fn notify.Listener) func() {
	return s.bus.Subscribe(fn)
}

// MaxEntries returns the retention bound.
func (s *Store) MaxEntries() int {
	return s.opts.MaxEntries
}

// AddRequest applies every payload of req in order, trims the history to the
// retention bound and notifies subscribers once. Payloads whose content is
// unusable are skipped; the request as a whole is never rejected.
func (s *Store) AddRequest(req protocol.Request) Result {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	s.mu.Lock()
	var res Result
	for _, p := range req.Payloads {
		content, err := protocol.Decode(p)
		if err != nil {
			res.Skipped++
			s.log().Debug().Err(err).Str("uuid", req.UUID).Str("type", p.Type).Msg("Skipping payload")
			continue
		}
		if s.apply(req, p, content) {
			res.Created++
		} else {
			res.Directives++
		}
	}
	res.Evicted = s.enforceLimit()
	count := len(s.entries)
	s.mu.Unlock()

	s.log().Debug().
		Str("uuid", req.UUID).
		Int("created", res.Created).
		Int("directives", res.Directives).
		Int("skipped", res.Skipped).
		Int("evicted", res.Evicted).
		Int("entries", count).
		Msg("Request applied")

	s.bus.Notify()
	return res
}

// apply handles one decoded payload and reports whether it created an entry.
// Callers hold s.mu.
func (s *Store) apply(req protocol.Request, p protocol.Payload, content protocol.Content) bool {
	switch c := content.(type) {
	case protocol.ColorContent:
		s.mutateLatest(req.UUID, func(e *Entry) { e.Color = c.Color })
	case protocol.LabelContent:
		s.mutateLatest(req.UUID, func(e *Entry) { e.Label = c.Label })
	case protocol.SizeContent:
		s.mutateLatest(req.UUID, func(e *Entry) { e.Size = c.Size })
	case protocol.HideContent:
		s.mutateLatest(req.UUID, func(e *Entry) { e.Hidden = true })
	case protocol.NewScreenContent:
		s.currentScreen = c.Name
		if s.currentScreen == "" {
			s.currentScreen = s.opts.DefaultScreen
		}
	case protocol.ClearAllContent:
		s.entries = nil
		clear(s.locks)
	case protocol.RemoveContent:
		removed, kept := lo.FilterReject(s.entries, func(e Entry, _ int) bool { return e.UUID == req.UUID })
		s.entries = kept
		s.releaseLocksOf(removed)
	case protocol.ShowAppContent, protocol.HideAppContent, protocol.ConfettiContent:
	default:
		s.create(req, p, content)
		return true
	}
	return false
}

func (s *Store) create(req protocol.Request, p protocol.Payload, content protocol.Content) {
	s.lastID++
	s.entries = append(s.entries, Entry{
		ID:        s.lastID,
		UUID:      req.UUID,
		Type:      content.Kind(),
		Content:   content,
		Origin:    p.Origin,
		Meta:      req.Meta,
		CreatedAt: s.opts.Clock(),
		Screen:    s.currentScreen,
	})
	if lock, ok := content.(protocol.LockContent); ok {
		s.locks[lock.Name] = struct{}{}
	}
}

// mutateLatest applies fn to the newest entry carrying uuid, if any.
func (s *Store) mutateLatest(uuid string, fn func(*Entry)) {
	_, idx, ok := lo.FindLastIndexOf(s.entries, func(e Entry) bool { return e.UUID == uuid })
	if !ok {
		return
	}
	fn(&s.entries[idx])
}

// enforceLimit drops the oldest entries beyond the retention bound. Hidden
// entries count toward the bound like any other.
func (s *Store) enforceLimit() int {
	over := len(s.entries) - s.opts.MaxEntries
	if over <= 0 {
		return 0
	}
	evicted := s.entries[:over]
	s.entries = slices.Clone(s.entries[over:])
	s.releaseLocksOf(evicted)
	return over
}

// releaseLocksOf releases the locks created by gone entries, unless an entry
// still in the history holds a lock of the same name. Callers hold s.mu.
func (s *Store) releaseLocksOf(gone []Entry) {
	for _, e := range gone {
		lock, ok := e.Content.(protocol.LockContent)
		if !ok {
			continue
		}
		if s.holdsLock(lock.Name) {
			continue
		}
		delete(s.locks, lock.Name)
		s.log().Debug().Str("lock", lock.Name).Uint64("entry", e.ID).Msg("Lock released with its entry")
	}
}

func (s *Store) holdsLock(name string) bool {
	return lo.ContainsBy(s.entries, func(e Entry) bool {
		lock, ok := e.Content.(protocol.LockContent)
		return ok && lock.Name == name
	})
}

// Clear empties the history, releases all locks and notifies subscribers.
// The ID counter and the current screen are kept.
func (s *Store) Clear() {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	s.mu.Lock()
	removed := len(s.entries)
	s.entries = nil
	clear(s.locks)
	s.mu.Unlock()

	s.log().Info().Int("removed", removed).Msg("History cleared")
	s.bus.Notify()
}

// All returns every entry, hidden ones included, in creation order.
func (s *Store) All() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}

// Visible returns the entries that are not hidden, in creation order.
func (s *Store) Visible() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Filter(s.entries, func(e Entry, _ int) bool { return !e.Hidden })
}

// VisibleOnScreen returns the non-hidden entries stamped with screen.
func (s *Store) VisibleOnScreen(screen string) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Filter(s.entries, func(e Entry, _ int) bool { return !e.Hidden && e.Screen == screen })
}

// CurrentScreen returns the screen new entries are stamped with.
func (s *Store) CurrentScreen() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentScreen
}

// Get looks up one entry by ID.
func (s *Store) Get(id uint64) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	// IDs are increasing, so the slice is sorted by ID.
	idx, ok := slices.BinarySearchFunc(s.entries, id, func(e Entry, id uint64) int {
		switch {
		case e.ID < id:
			return -1
		case e.ID > id:
			return 1
		}
		return 0
	})
	if !ok {
		return Entry{}, false
	}
	return s.entries[idx], true
}

// Screens returns the distinct screen labels found in the history.
func (s *Store) Screens() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Uniq(lo.Map(s.entries, func(e Entry, _ int) string { return e.Screen }))
}

// Summary is the state observers show in a status line, read in one go.
type Summary struct {
	CurrentScreen string
	Count         int
	Locks         []string
}

// Summary returns the current screen, the entry count and the held locks as
// of a single point between requests.
func (s *Store) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	locks := lo.Keys(s.locks)
	slices.Sort(locks)
	return Summary{
		CurrentScreen: s.currentScreen,
		Count:         len(s.entries),
		Locks:         locks,
	}
}

// Len returns the number of entries, hidden ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
