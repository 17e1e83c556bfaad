// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package testutil

import (
	"sync"

	"github.com/TimBroddin/raybun/internal/notify"
)

// NotifyCapture counts the change signals published on a bus
type NotifyCapture struct {
	mu          sync.Mutex
	count       int
	unsubscribe func()
}

// NewNotifyCapture subscribes a counter to bus
func NewNotifyCapture(bus *notify.Bus) *NotifyCapture {
	c := &NotifyCapture{}
	c.unsubscribe = bus.Subscribe(func() {
		c.mu.Lock()
		c.count++
		c.mu.Unlock()
	})
	return c
}

// Count returns the number of signals seen so far
func (c *NotifyCapture) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Close stops counting
func (c *NotifyCapture) Close() {
	c.unsubscribe()
}
