// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package display

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Console prints each flushed frame as a boxed block of text, one row per
// WriteText call ordered by y.
type Console struct {
	w     io.Writer
	width int
	rows  []consoleRow
}

type consoleRow struct {
	y int
	s string
}

// NewConsole writes frames to w, padding lines to width characters.
func NewConsole(w io.Writer, width int) *Console {
	return &Console{w: w, width: width}
}

func (c *Console) Clear() error {
	c.rows = c.rows[:0]
	return nil
}

func (c *Console) WriteText(s string, x, y int) error {
	c.rows = append(c.rows, consoleRow{y: y, s: strings.Repeat(" ", x/8) + s})
	return nil
}

func (c *Console) Flush() error {
	sort.SliceStable(c.rows, func(i, j int) bool { return c.rows[i].y < c.rows[j].y })

	var b strings.Builder
	border := "+" + strings.Repeat("-", c.width+2) + "+\n"
	b.WriteString(border)
	for _, r := range c.rows {
		fmt.Fprintf(&b, "| %-*s |\n", c.width, r.s)
	}
	b.WriteString(border)

	_, err := io.WriteString(c.w, b.String())
	return err
}
