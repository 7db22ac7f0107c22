// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package average keeps the short moving averages shown on the display.
//
// Three rings (temperature, pressure, humidity) share a single write cursor so
// they always advance together. Slots start at zero: until Size samples have
// been pushed the mean is pulled toward zero unless the window was primed.
package average

import "github.com/relabs-tech/env_station/internal/env"

// Size is the number of samples averaged.
const Size = 3

// Ring is a fixed store of the last Size values of one quantity.
type Ring [Size]float64

// Put overwrites slot i.
func (r *Ring) Put(i int, v float64) {
	r[i] = v
}

// Mean returns the arithmetic mean over all slots, written or not.
func (r *Ring) Mean() float64 {
	sum := 0.0
	for _, v := range r {
		sum += v
	}
	return sum / Size
}

// Means holds the averaged quantities.
type Means struct {
	Temperature float64
	Pressure    float64
	Humidity    float64
}

// Window groups the three rings and their shared rotating index.
type Window struct {
	Temperature Ring
	Pressure    Ring
	Humidity    Ring

	index  int
	prime  bool
	pushes uint64
}

// NewWindow returns an empty window. With prime set, the first pushed sample
// is copied into every slot so the first mean is not biased toward zero.
func NewWindow(prime bool) *Window {
	return &Window{prime: prime}
}

// Push writes s at the shared index, then advances it (0, 1, 2, 0, ...).
func (w *Window) Push(s env.Sample) {
	if w.prime && w.pushes == 0 {
		for i := 0; i < Size; i++ {
			w.put(i, s)
		}
	} else {
		w.put(w.index, s)
	}
	w.pushes++

	if w.index >= Size-1 {
		w.index = 0
	} else {
		w.index++
	}
}

func (w *Window) put(i int, s env.Sample) {
	w.Temperature.Put(i, s.Temperature)
	w.Pressure.Put(i, s.Pressure)
	w.Humidity.Put(i, s.Humidity)
}

// Means averages each ring.
func (w *Window) Means() Means {
	return Means{
		Temperature: w.Temperature.Mean(),
		Pressure:    w.Pressure.Mean(),
		Humidity:    w.Humidity.Mean(),
	}
}

// Index is the slot the next Push writes.
func (w *Window) Index() int { return w.index }

// Pushes counts samples pushed since creation.
func (w *Window) Pushes() uint64 { return w.pushes }

// Warm reports whether every slot holds a real sample.
func (w *Window) Warm() bool {
	return w.pushes >= Size || (w.prime && w.pushes > 0)
}
