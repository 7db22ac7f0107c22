// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"math"
	"time"

	"github.com/relabs-tech/env_station/internal/env"
)

type MockSensor struct {
	start time.Time
	now   func() time.Time
}

// NewMockSensor creates a mock BME280 that generates smooth changing values
// around 21 °C, 1005 hPa and 50 %RH.
func NewMockSensor() *MockSensor {
	return &MockSensor{start: time.Now(), now: time.Now}
}

func (m *MockSensor) Read() (env.Sample, error) {
	elapsed := m.now().Sub(m.start).Seconds()

	return env.Sample{
		Temperature: 21 + 2*math.Sin(elapsed/30),
		Pressure:    1005 + 3*math.Cos(elapsed*0.7/30),
		Humidity:    50 + 5*math.Sin(elapsed/45),
	}, nil
}
