// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package button turns raw falling edges from the unit-select button into a
// single pending toggle request.
//
// OnEdge runs in whatever context delivers edges (a gpiocdev handler
// goroutine, a periph WaitForEdge goroutine or a TinyGo pin interrupt).
// ConsumeToggle runs in the main loop. The two only share atomics.
package button

import (
	"sync/atomic"
	"time"
)

// DefaultWindow is the minimum spacing between accepted edges.
const DefaultWindow = 300 * time.Millisecond

// Latch is a debounced, single-shot toggle flag.
type Latch struct {
	origin time.Time
	window time.Duration

	// lastAccepted is nanoseconds since origin of the last accepted edge.
	lastAccepted atomic.Int64
	pending      atomic.Bool

	accepted   atomic.Uint64
	suppressed atomic.Uint64
}

// NewLatch creates a latch whose debounce clock starts at origin. Edges
// arriving within window of origin are treated as bounces.
func NewLatch(origin time.Time, window time.Duration) *Latch {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Latch{origin: origin, window: window}
}

// OnEdge records a falling edge observed at now. It returns true when the edge
// was accepted and a toggle is now pending.
func (l *Latch) OnEdge(now time.Time) bool {
	at := int64(now.Sub(l.origin))
	for {
		last := l.lastAccepted.Load()
		if at-last <= int64(l.window) {
			l.suppressed.Add(1)
			return false
		}
		if l.lastAccepted.CompareAndSwap(last, at) {
			l.pending.Store(true)
			l.accepted.Add(1)
			return true
		}
	}
}

// ConsumeToggle reads and clears the pending flag in one step.
func (l *Latch) ConsumeToggle() bool {
	return l.pending.Swap(false)
}

// Window returns the debounce window.
func (l *Latch) Window() time.Duration { return l.window }

// Stats reports how many edges were accepted and suppressed so far.
func (l *Latch) Stats() (accepted, suppressed uint64) {
	return l.accepted.Load(), l.suppressed.Load()
}
