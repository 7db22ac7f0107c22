// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

//go:build tinygo

// Firmware build for a Raspberry Pi Pico W with a BME280 and an SSD1306 on
// I2C0 and the unit-select button on GP6.
//
// Build:
//
//	tinygo flash -target=pico ./cmd/firmware
package main

import (
	"context"
	"image/color"
	"log/slog"
	"machine"
	"time"

	"github.com/lmittmann/tint"
	"tinygo.org/x/drivers/bme280"
	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"github.com/relabs-tech/env_station/internal/app"
	"github.com/relabs-tech/env_station/internal/button"
	"github.com/relabs-tech/env_station/internal/display"
	"github.com/relabs-tech/env_station/internal/env"
	"github.com/relabs-tech/env_station/internal/pipeline"
)

const (
	pinSDA    = machine.GPIO4
	pinSCL    = machine.GPIO5
	pinButton = machine.GPIO6

	// failed ticks in a row before the loop stops feeding the watchdog
	maxFailures = 25

	// must exceed one iteration: interval plus I2C transfers
	watchdogMillis = 2000
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// panel adapts the TinyGo SSD1306 driver to display.Display.
type panel struct {
	dev *ssd1306.Device
}

func (p *panel) Clear() error {
	p.dev.ClearBuffer()
	return nil
}

func (p *panel) WriteText(s string, x, y int) error {
	tinyfont.WriteLine(p.dev, &proggy.TinySZ8pt7b, int16(x), int16(y+display.Baseline), s, white)
	return nil
}

func (p *panel) Flush() error {
	return p.dev.Display()
}

// sensor adapts the TinyGo BME280 driver to pipeline.Sensor.
type sensor struct {
	dev *bme280.Device
}

func (s *sensor) Read() (env.Sample, error) {
	t, err := s.dev.ReadTemperature() // milli °C
	if err != nil {
		return env.Sample{}, err
	}
	p, err := s.dev.ReadPressure() // milli Pa
	if err != nil {
		return env.Sample{}, err
	}
	h, err := s.dev.ReadHumidity() // hundredths of %RH
	if err != nil {
		return env.Sample{}, err
	}
	return env.Sample{
		Temperature: float64(t) / 1000.0,
		Pressure:    float64(p) / 100000.0,
		Humidity:    float64(h) / 100.0,
	}, nil
}

func main() {
	log := slog.New(tint.NewHandler(machine.Serial, &tint.Options{NoColor: true, Level: slog.LevelInfo}))

	machine.I2C0.Configure(machine.I2CConfig{
		SDA:       pinSDA,
		SCL:       pinSCL,
		Frequency: 400 * machine.KHz,
	})

	bme := bme280.New(machine.I2C0)
	bme.Configure()
	if !bme.Connected() {
		log.Error("bme280 not detected", "component", "sensor")
	}

	oled := ssd1306.NewI2C(machine.I2C0)
	oled.Configure(ssd1306.Config{Width: 128, Height: 64, Address: 0x3C})

	renderer := display.NewRenderer(&panel{dev: &oled})
	if err := renderer.Blank(); err != nil {
		log.Warn("blanking display", "component", "display", "err", err)
	}

	latch := button.NewLatch(time.Now(), button.DefaultWindow)
	pinButton.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	if err := pinButton.SetInterrupt(machine.PinFalling, func(machine.Pin) {
		latch.OnEdge(time.Now())
	}); err != nil {
		log.Error("button interrupt", "component", "button", "err", err)
	}

	machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: watchdogMillis})
	machine.Watchdog.Start()

	loop := app.NewLoop(latch, pipeline.New(&sensor{dev: &bme}), renderer, app.LoopOpts{
		Interval:    app.DefaultInterval,
		InitialUnit: env.Fahrenheit,
		MaxFailures: maxFailures,
		Heartbeat:   func() { machine.Watchdog.Update() },
	}, log)

	if err := loop.Run(context.Background()); err != nil {
		log.Error("halting, waiting for watchdog reset", "err", err)
	}
	select {}
}
