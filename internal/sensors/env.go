// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"fmt"
	"log/slog"

	"github.com/relabs-tech/env_station/internal/env"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/bmxx80"
)

// senser is the part of bmxx80.Dev the station needs.
type senser interface {
	Sense(e *physic.Env) error
	Halt() error
}

// BME280 reads compensated temperature, pressure and humidity.
type BME280 struct {
	dev senser
}

// OpenBME280 initializes a BME280 at addr on bus.
func OpenBME280(bus i2c.Bus, addr uint16, log *slog.Logger) (*BME280, error) {
	dev, err := bmxx80.NewI2C(bus, addr, &bmxx80.DefaultOpts)
	if err != nil {
		return nil, fmt.Errorf("bme280 init at 0x%02X: %w", addr, err)
	}
	log.Info("bme280 initialized", "component", "sensor", "addr", fmt.Sprintf("0x%02X", addr), "device", dev.String())
	return &BME280{dev: dev}, nil
}

// Read performs one measurement.
func (b *BME280) Read() (env.Sample, error) {
	var e physic.Env
	if err := b.dev.Sense(&e); err != nil {
		return env.Sample{}, fmt.Errorf("bme280 sense: %w", err)
	}
	return sampleFromEnv(e), nil
}

// Halt puts the sensor to sleep.
func (b *BME280) Halt() error {
	return b.dev.Halt()
}

func sampleFromEnv(e physic.Env) env.Sample {
	pressurePa := float64(e.Pressure) / float64(physic.Pascal)
	return env.Sample{
		Temperature: e.Temperature.Celsius(),
		Pressure:    pressurePa / 100.0, // 1 hPa = 100 Pa
		Humidity:    float64(e.Humidity) / float64(physic.PercentRH),
	}
}
