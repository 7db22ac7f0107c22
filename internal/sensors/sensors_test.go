// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeSenser struct {
	env    physic.Env
	err    error
	halted bool
}

func (f *fakeSenser) Sense(e *physic.Env) error {
	if f.err != nil {
		return f.err
	}
	*e = f.env
	return nil
}

func (f *fakeSenser) Halt() error {
	f.halted = true
	return nil
}

func TestBME280ReadConvertsUnits(t *testing.T) {
	dev := &fakeSenser{env: physic.Env{
		Temperature: physic.ZeroCelsius + 21500*physic.MilliKelvin,
		Pressure:    100500 * physic.Pascal,
		Humidity:    51 * physic.PercentRH,
	}}
	b := &BME280{dev: dev}

	s, err := b.Read()
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if math.Abs(s.Temperature-21.5) > 1e-9 {
		t.Fatalf("temperature=%v want 21.5", s.Temperature)
	}
	if math.Abs(s.Pressure-1005.0) > 1e-9 {
		t.Fatalf("pressure=%v want 1005", s.Pressure)
	}
	if math.Abs(s.Humidity-51.0) > 1e-9 {
		t.Fatalf("humidity=%v want 51", s.Humidity)
	}

	if err := b.Halt(); err != nil || !dev.halted {
		t.Fatalf("Halt() err=%v halted=%v", err, dev.halted)
	}
}

func TestBME280ReadError(t *testing.T) {
	cause := errors.New("i2c: nack")
	b := &BME280{dev: &fakeSenser{err: cause}}
	if _, err := b.Read(); !errors.Is(err, cause) {
		t.Fatalf("err=%v want wrapped cause", err)
	}
}

func TestPeriphButtonDeliversEdges(t *testing.T) {
	pin := &gpiotest.Pin{N: "GPIO6", Num: 6, EdgesChan: make(chan gpio.Level)}
	b := NewPeriphButton(pin, discard)

	edges := make(chan time.Time, 4)
	if err := b.Start(context.Background(), func(at time.Time) { edges <- at }); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if pin.P != gpio.PullUp {
		t.Fatalf("pull=%v want PullUp", pin.P)
	}

	pin.EdgesChan <- gpio.Low
	select {
	case <-edges:
	case <-time.After(2 * time.Second):
		t.Fatalf("edge not delivered")
	}

	if err := b.Start(context.Background(), func(time.Time) {}); err == nil {
		t.Fatalf("second Start() should fail")
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("second Close() error: %v", err)
	}
}

func TestPeriphButtonStopsOnCancel(t *testing.T) {
	pin := &gpiotest.Pin{N: "GPIO6", Num: 6, EdgesChan: make(chan gpio.Level)}
	b := NewPeriphButton(pin, discard)

	ctx, cancel := context.WithCancel(context.Background())
	if err := b.Start(ctx, func(time.Time) {}); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	cancel()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("watch goroutine did not exit after cancel")
	}
	_ = b.Close()
}

func TestNewEdgeSource(t *testing.T) {
	src, err := NewEdgeSource(ButtonOpts{Backend: BackendGPIOCDev, Chip: "gpiochip0", Line: 6}, discard)
	if err != nil {
		t.Fatalf("NewEdgeSource(gpiocdev) error: %v", err)
	}
	if _, ok := src.(*CDevButton); !ok {
		t.Fatalf("got %T want *CDevButton", src)
	}
	if err := src.Close(); err != nil {
		t.Fatalf("Close() before Start error: %v", err)
	}

	if _, err := NewEdgeSource(ButtonOpts{Backend: "sysfs"}, discard); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
	if _, err := NewEdgeSource(ButtonOpts{Backend: BackendPeriph, Pin: "NO_SUCH_PIN"}, discard); err == nil {
		t.Fatalf("expected error for unknown periph pin")
	}
}

func TestMockSensorStaysInRange(t *testing.T) {
	m := NewMockSensor()
	base := m.start
	for _, sec := range []int{0, 7, 60, 600, 3600} {
		m.now = func() time.Time { return base.Add(time.Duration(sec) * time.Second) }
		s, err := m.Read()
		if err != nil {
			t.Fatalf("Read() error: %v", err)
		}
		if s.Temperature < 19 || s.Temperature > 23 || s.Pressure < 1002 || s.Pressure > 1008 || s.Humidity < 45 || s.Humidity > 55 {
			t.Fatalf("t=%ds sample out of range: %+v", sec, s)
		}
	}
}

func TestLineButtonEdgePerLine(t *testing.T) {
	b := NewLineButton(strings.NewReader("\n\nx\n"))
	edges := make(chan time.Time, 8)
	if err := b.Start(context.Background(), func(at time.Time) { edges <- at }); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	for i := 0; i < 3; i++ {
		select {
		case <-edges:
		case <-time.After(2 * time.Second):
			t.Fatalf("edge %d not delivered", i)
		}
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
}
