// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package env

import (
	"fmt"
	"strings"
)

// Unit selects how temperature is shown on the display.
type Unit uint8

const (
	Fahrenheit Unit = iota
	Celsius
)

// Toggle returns the other unit.
func (u Unit) Toggle() Unit {
	if u == Fahrenheit {
		return Celsius
	}
	return Fahrenheit
}

// Symbol is the suffix printed after the temperature value.
func (u Unit) Symbol() string {
	if u == Celsius {
		return "C"
	}
	return "F"
}

func (u Unit) String() string {
	if u == Celsius {
		return "celsius"
	}
	return "fahrenheit"
}

// ParseUnit accepts "F", "C" or the long names, case-insensitive.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "f", "fahrenheit":
		return Fahrenheit, nil
	case "c", "celsius":
		return Celsius, nil
	default:
		return Fahrenheit, fmt.Errorf("unknown temperature unit %q (want F or C)", s)
	}
}
