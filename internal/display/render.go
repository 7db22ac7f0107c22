// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package display

import (
	"errors"
	"fmt"

	"github.com/relabs-tech/env_station/internal/env"
)

// ErrDisplayWrite marks a failed transfer to the panel.
var ErrDisplayWrite = errors.New("display write failed")

// Display is the minimal text surface the station draws on.
type Display interface {
	Clear() error
	WriteText(s string, x, y int) error
	Flush() error
}

// Row positions in pixels, one per line.
var Rows = [4]int{0, 10, 20, 30}

// Text geometry for the 8pt proggy face used on both panels: a line fills
// LineHeight rows, with the baseline Baseline rows below its top.
const (
	LineHeight = 10
	Baseline   = 7
)

// FormatLines builds the four display lines. Temperature is converted for
// display only; the reading itself stays in Celsius.
func FormatLines(r env.Reading, unit env.Unit) [4]string {
	temp := r.TemperatureC
	if unit == env.Fahrenheit {
		temp = env.FahrenheitFromCelsius(temp)
	}
	return [4]string{
		fmt.Sprintf("Temp: %.1f%s", temp, unit.Symbol()),
		fmt.Sprintf("Hum:  %.1f%%", r.HumidityPct),
		fmt.Sprintf("Pres: %.1fhPa", r.PressureHPa),
		fmt.Sprintf("Alt:  %.1fm", r.AltitudeM),
	}
}

// Renderer lays readings out on a Display.
type Renderer struct {
	dev Display
}

func NewRenderer(dev Display) *Renderer {
	return &Renderer{dev: dev}
}

// Render clears the buffer, writes the four lines and flushes.
func (r *Renderer) Render(reading env.Reading, unit env.Unit) error {
	if err := r.dev.Clear(); err != nil {
		return fmt.Errorf("%w: clear: %w", ErrDisplayWrite, err)
	}
	for i, line := range FormatLines(reading, unit) {
		if err := r.dev.WriteText(line, 0, Rows[i]); err != nil {
			return fmt.Errorf("%w: line %d: %w", ErrDisplayWrite, i, err)
		}
	}
	if err := r.dev.Flush(); err != nil {
		return fmt.Errorf("%w: flush: %w", ErrDisplayWrite, err)
	}
	return nil
}

// Blank clears the panel.
func (r *Renderer) Blank() error {
	if err := r.dev.Clear(); err != nil {
		return fmt.Errorf("%w: clear: %w", ErrDisplayWrite, err)
	}
	if err := r.dev.Flush(); err != nil {
		return fmt.Errorf("%w: flush: %w", ErrDisplayWrite, err)
	}
	return nil
}
