// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package notify signals "history changed" to presentation layers. Signals
// carry no payload; subscribers re-query the store to learn what changed.
package notify

import (
	"sync"

	"github.com/TimBroddin/raybun/internal/logger"
)

// Listener is called synchronously on the goroutine that calls Notify.
// It must return quickly.
type Listener func()

type subscription struct {
	id uint64
	fn Listener
}

// Bus is a listener registry. The zero value is not usable; use New.
type Bus struct {
	mu     sync.Mutex
	subs   []subscription
	nextID uint64
}

// New constructs a Bus.
func New() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a function that removes it. The returned
// function is safe to call more than once.
func (b *Bus) Subscribe(fn Listener) func() {
	if b == nil || fn == nil {
		return func() {}
	}
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, fn: fn})
	count := len(b.subs)
	b.mu.Unlock()

	log := logger.GetLogger("notify")
	log.Debug().Uint64("sub", id).Int("subs", count).Msg("Subscribed")

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			for i, s := range b.subs {
				if s.id == id {
					b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
					break
				}
			}
			b.mu.Unlock()
			log.Debug().Uint64("sub", id).Msg("Unsubscribed")
		})
	}
}

// Watch returns a channel that receives a value after every Notify. Signals
// are coalesced: if the reader has not drained the previous one, the new one
// is dropped, so a slow reader sees at most one pending signal. The cancel
// function unsubscribes and closes the channel.
func (b *Bus) Watch() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	var mu sync.Mutex
	closed := false

	unsubscribe := b.Subscribe(func() {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case ch <- struct{}{}:
		default:
		}
	})

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			unsubscribe()
			mu.Lock()
			closed = true
			close(ch)
			mu.Unlock()
		})
	}
}

// Notify calls every listener in subscription order. Listeners added or
// removed while Notify runs take effect from the next call.
func (b *Bus) Notify() {
	if b == nil {
		return
	}
	b.mu.Lock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, s := range subs {
		s.fn()
	}
}

// Len returns the number of current subscribers.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
