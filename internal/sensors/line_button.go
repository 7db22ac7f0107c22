// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"bufio"
	"context"
	"io"
	"time"
)

// LineButton treats every line read from r (ENTER on a terminal) as a button
// press. Used by the console simulator.
type LineButton struct {
	r io.Reader
}

func NewLineButton(r io.Reader) *LineButton {
	return &LineButton{r: r}
}

func (b *LineButton) Start(ctx context.Context, onEdge func(time.Time)) error {
	go func() {
		scanner := bufio.NewScanner(b.r)
		for scanner.Scan() {
			if ctx.Err() != nil {
				return
			}
			onEdge(time.Now())
		}
	}()
	return nil
}

// Close is a no-op; a blocked read on stdin cannot be interrupted.
func (b *LineButton) Close() error { return nil }
