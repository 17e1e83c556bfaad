// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"slices"

	"github.com/samber/lo"
)

// LockActive reports whether the named lock is still held. Clients poll this
// while paused.
func (s *Store) LockActive(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.locks[name]
	return ok
}

// ActiveLocks returns the names of all held locks, sorted.
func (s *Store) ActiveLocks() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := lo.Keys(s.locks)
	slices.Sort(names)
	return names
}

// ReleaseLock releases one lock and reports whether it was held.
func (s *Store) ReleaseLock(name string) bool {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	s.mu.Lock()
	_, ok := s.locks[name]
	delete(s.locks, name)
	s.mu.Unlock()

	if ok {
		s.log().Info().Str("lock", name).Msg("Lock released")
		s.bus.Notify()
	}
	return ok
}

// ReleaseAllLocks releases every held lock and returns how many there were.
func (s *Store) ReleaseAllLocks() int {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	s.mu.Lock()
	n := len(s.locks)
	clear(s.locks)
	s.mu.Unlock()

	if n > 0 {
		s.log().Info().Int("locks", n).Msg("Locks released")
		s.bus.Notify()
	}
	return n
}
