// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package station wires the loop to hardware and to the console simulator.
package station

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/env_station/internal/app"
	"github.com/relabs-tech/env_station/internal/button"
	"github.com/relabs-tech/env_station/internal/config"
	"github.com/relabs-tech/env_station/internal/display"
	"github.com/relabs-tech/env_station/internal/display/oled"
	"github.com/relabs-tech/env_station/internal/env"
	"github.com/relabs-tech/env_station/internal/pipeline"
	"github.com/relabs-tech/env_station/internal/sensors"
)

// RunStation opens the sensor, panel and button on a Linux board and runs the
// loop until ctx ends.
func RunStation(ctx context.Context, log *slog.Logger) error {
	cfg := config.Get()
	if cfg == nil {
		return fmt.Errorf("config not initialized")
	}

	unit, err := env.ParseUnit(cfg.InitialUnit)
	if err != nil {
		return err
	}

	// Initialize periph
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize periph: %w", err)
	}

	// Open I2C bus shared by sensor and panel
	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return fmt.Errorf("failed to open I2C bus %q: %w", cfg.I2CBus, err)
	}
	defer bus.Close()

	sensor, err := sensors.OpenBME280(bus, cfg.SensorI2CAddr, log)
	if err != nil {
		return err
	}
	defer sensor.Halt()

	panel, err := oled.Open(bus, cfg.DisplayWidth, cfg.DisplayHeight)
	if err != nil {
		return fmt.Errorf("failed to initialize display: %w", err)
	}
	defer panel.Halt()
	log.Info("display initialized", "component", "display", "width", cfg.DisplayWidth, "height", cfg.DisplayHeight)

	renderer := display.NewRenderer(panel)
	if err := renderer.Blank(); err != nil {
		log.Warn("blanking display", "component", "display", "err", err)
	}

	latch := button.NewLatch(time.Now(), cfg.Debounce())
	edges, err := sensors.NewEdgeSource(sensors.ButtonOpts{
		Backend: cfg.ButtonBackend,
		Chip:    cfg.ButtonChip,
		Line:    cfg.ButtonLine,
		Pin:     cfg.ButtonPin,
	}, log)
	if err != nil {
		return err
	}
	if err := edges.Start(ctx, onEdge(latch, log)); err != nil {
		return fmt.Errorf("failed to start button: %w", err)
	}
	defer edges.Close()

	loop := app.NewLoop(latch, pipeline.New(sensor), renderer, app.LoopOpts{
		Interval:    cfg.Interval(),
		InitialUnit: unit,
		Prime:       cfg.PrimeAverage,
		MaxFailures: cfg.MaxConsecutiveFailures,
	}, log)

	err = loop.Run(ctx)

	accepted, suppressed := latch.Stats()
	log.Info("button summary", "component", "button", "accepted", accepted, "suppressed", suppressed)
	return err
}

func onEdge(latch *button.Latch, log *slog.Logger) func(time.Time) {
	return func(at time.Time) {
		if latch.OnEdge(at) {
			log.Debug("edge accepted", "component", "button")
		}
	}
}
