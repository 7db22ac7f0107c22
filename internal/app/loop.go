// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/relabs-tech/env_station/internal/average"
	"github.com/relabs-tech/env_station/internal/display"
	"github.com/relabs-tech/env_station/internal/env"
	"github.com/relabs-tech/env_station/internal/pipeline"
)

// ErrSustainedFault is returned by Run once MaxFailures ticks in a row failed.
var ErrSustainedFault = errors.New("sustained fault")

// DefaultInterval is the pause between ticks.
const DefaultInterval = 200 * time.Millisecond

// Toggler hands out pending unit toggles; *button.Latch implements it.
type Toggler interface {
	ConsumeToggle() bool
}

// LoopState is everything the loop owns between ticks. Nothing here is shared
// with the edge handler.
type LoopState struct {
	Unit     env.Unit
	Window   *average.Window
	Last     env.Reading
	Ticks    uint64
	Failures int // consecutive
}

// LoopOpts tunes the loop.
type LoopOpts struct {
	Interval    time.Duration
	InitialUnit env.Unit
	Prime       bool
	MaxFailures int    // 0 never gives up
	Heartbeat   func() // called after every iteration that does not end the loop
}

// Loop samples, averages and renders until its context ends.
type Loop struct {
	toggles  Toggler
	pipe     *pipeline.Pipeline
	renderer *display.Renderer
	opts     LoopOpts
	log      *slog.Logger

	state LoopState
	sleep func(time.Duration)
}

func NewLoop(toggles Toggler, pipe *pipeline.Pipeline, renderer *display.Renderer, opts LoopOpts, log *slog.Logger) *Loop {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	return &Loop{
		toggles:  toggles,
		pipe:     pipe,
		renderer: renderer,
		opts:     opts,
		log:      log.With("component", "loop"),
		state: LoopState{
			Unit:   opts.InitialUnit,
			Window: average.NewWindow(opts.Prime),
		},
		sleep: time.Sleep,
	}
}

// State returns a snapshot of the loop state.
func (l *Loop) State() LoopState { return l.state }

// Step runs one tick without the trailing sleep: drain the toggle, sample,
// render. A sensor error skips rendering.
func (l *Loop) Step() error {
	if l.toggles.ConsumeToggle() {
		l.state.Unit = l.state.Unit.Toggle()
		l.log.Info("unit toggled", "unit", l.state.Unit)
	}

	reading, err := l.pipe.Tick(l.state.Window)
	if err != nil {
		return err
	}
	l.state.Ticks++
	l.state.Last = reading

	if err := l.renderer.Render(reading, l.state.Unit); err != nil {
		return err
	}

	l.log.Debug("tick",
		"n", l.state.Ticks,
		"temp_c", reading.TemperatureC,
		"humidity_pct", reading.HumidityPct,
		"pressure_hpa", reading.PressureHPa,
		"altitude_m", reading.AltitudeM,
		"unit", l.state.Unit,
		"warm", l.state.Window.Warm(),
	)
	return nil
}

// Run ticks every Interval until ctx is cancelled. Failed ticks are retried
// on the next iteration; with MaxFailures set, that many failures in a row
// end the loop with ErrSustainedFault.
func (l *Loop) Run(ctx context.Context) error {
	l.log.Info("loop started", "interval", l.opts.Interval, "unit", l.state.Unit, "prime", l.opts.Prime)

	for ctx.Err() == nil {
		if err := l.Step(); err != nil {
			l.state.Failures++
			l.log.Warn("tick failed", "err", err, "consecutive", l.state.Failures)
			if l.opts.MaxFailures > 0 && l.state.Failures >= l.opts.MaxFailures {
				l.log.Error("giving up", "consecutive", l.state.Failures)
				return fmt.Errorf("%w: %d consecutive failures: %w", ErrSustainedFault, l.state.Failures, err)
			}
		} else {
			if l.state.Failures > 0 {
				l.log.Info("recovered", "after", l.state.Failures)
			}
			l.state.Failures = 0
		}
		if l.opts.Heartbeat != nil {
			l.opts.Heartbeat()
		}
		l.sleep(l.opts.Interval)
	}

	l.log.Info("loop stopped", "ticks", l.state.Ticks)
	return nil
}
