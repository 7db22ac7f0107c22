// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/warthog618/go-gpiocdev"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// EdgeSource delivers falling edges of the unit-select button. The callback
// runs asynchronously to the main loop.
type EdgeSource interface {
	Start(ctx context.Context, onEdge func(time.Time)) error
	Close() error
}

// Button backends.
const (
	BackendGPIOCDev = "gpiocdev"
	BackendPeriph   = "periph"
)

// ButtonOpts selects and configures the edge source.
type ButtonOpts struct {
	Backend string
	Chip    string // gpiocdev chip, e.g. "gpiochip0"
	Line    int    // gpiocdev line offset
	Pin     string // periph pin name, e.g. "GPIO6"
}

// NewEdgeSource builds the configured backend. Nothing is requested from the
// kernel until Start.
func NewEdgeSource(opts ButtonOpts, log *slog.Logger) (EdgeSource, error) {
	switch opts.Backend {
	case BackendGPIOCDev, "":
		return &CDevButton{chip: opts.Chip, offset: opts.Line, log: log}, nil
	case BackendPeriph:
		p := gpioreg.ByName(opts.Pin)
		if p == nil {
			return nil, fmt.Errorf("button pin %q not found", opts.Pin)
		}
		return NewPeriphButton(p, log), nil
	default:
		return nil, fmt.Errorf("unknown button backend %q", opts.Backend)
	}
}

// CDevButton watches a GPIO line through the Linux character device. The
// kernel reports edges to a handler goroutine owned by gpiocdev.
type CDevButton struct {
	chip   string
	offset int
	log    *slog.Logger

	mu   sync.Mutex
	line *gpiocdev.Line
}

func (b *CDevButton) Start(ctx context.Context, onEdge func(time.Time)) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.line != nil {
		return fmt.Errorf("button %s:%d already started", b.chip, b.offset)
	}

	line, err := gpiocdev.RequestLine(b.chip, b.offset,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithConsumer("env-station"),
		gpiocdev.WithEventHandler(func(gpiocdev.LineEvent) {
			onEdge(time.Now())
		}),
	)
	if err != nil {
		return fmt.Errorf("request %s line %d: %w", b.chip, b.offset, err)
	}
	b.line = line
	b.log.Info("button watching", "component", "button", "backend", BackendGPIOCDev, "chip", b.chip, "line", b.offset)

	go func() {
		<-ctx.Done()
		_ = b.Close()
	}()
	return nil
}

func (b *CDevButton) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.line == nil {
		return nil
	}
	err := b.line.Close()
	b.line = nil
	return err
}

// edgePoll bounds how long WaitForEdge blocks so cancellation is noticed.
const edgePoll = 250 * time.Millisecond

// PeriphButton waits for edges on a periph pin from its own goroutine.
type PeriphButton struct {
	pin gpio.PinIn
	log *slog.Logger

	wg   sync.WaitGroup
	stop context.CancelFunc
}

func NewPeriphButton(pin gpio.PinIn, log *slog.Logger) *PeriphButton {
	return &PeriphButton{pin: pin, log: log}
}

func (b *PeriphButton) Start(ctx context.Context, onEdge func(time.Time)) error {
	if b.stop != nil {
		return fmt.Errorf("button %s already started", b.pin)
	}
	if err := b.pin.In(gpio.PullUp, gpio.FallingEdge); err != nil {
		return fmt.Errorf("configure %s: %w", b.pin, err)
	}

	ctx, b.stop = context.WithCancel(ctx)
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for ctx.Err() == nil {
			if b.pin.WaitForEdge(edgePoll) {
				onEdge(time.Now())
			}
		}
	}()
	b.log.Info("button watching", "component", "button", "backend", BackendPeriph, "pin", b.pin.Name())
	return nil
}

func (b *PeriphButton) Close() error {
	if b.stop == nil {
		return nil
	}
	b.stop()
	err := b.pin.Halt()
	b.wg.Wait()
	b.stop = nil
	return err
}
