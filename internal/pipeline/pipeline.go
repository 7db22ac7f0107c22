// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package pipeline

import (
	"errors"
	"fmt"

	"github.com/relabs-tech/env_station/internal/average"
	"github.com/relabs-tech/env_station/internal/env"
)

// ErrSensorRead marks a failed bus transaction with the sensor.
var ErrSensorRead = errors.New("sensor read failed")

// Sensor is anything that can provide compensated samples.
type Sensor interface {
	Read() (env.Sample, error)
}

// SensorFunc adapts a function to Sensor.
type SensorFunc func() (env.Sample, error)

func (f SensorFunc) Read() (env.Sample, error) { return f() }

// Pipeline turns one sensor read per tick into a smoothed Reading.
type Pipeline struct {
	sensor Sensor
}

func New(sensor Sensor) *Pipeline {
	return &Pipeline{sensor: sensor}
}

// Tick reads one sample, pushes it into w and returns the averaged values with
// the derived altitude. On a read failure w is left untouched.
func (p *Pipeline) Tick(w *average.Window) (env.Reading, error) {
	s, err := p.sensor.Read()
	if err != nil {
		return env.Reading{}, fmt.Errorf("%w: %w", ErrSensorRead, err)
	}

	w.Push(s)
	m := w.Means()

	return env.Reading{
		TemperatureC: m.Temperature,
		HumidityPct:  m.Humidity,
		PressureHPa:  m.Pressure,
		AltitudeM:    env.Altitude(m.Pressure, m.Temperature),
	}, nil
}
