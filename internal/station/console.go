// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package station

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/relabs-tech/env_station/internal/app"
	"github.com/relabs-tech/env_station/internal/button"
	"github.com/relabs-tech/env_station/internal/display"
	"github.com/relabs-tech/env_station/internal/env"
	"github.com/relabs-tech/env_station/internal/pipeline"
	"github.com/relabs-tech/env_station/internal/sensors"
)

// consoleWidth fits the longest line the station renders.
const consoleWidth = 16

// RunMockConsole runs the station loop against a mock sensor, printing frames
// to out. Each line read from in acts as a button press.
func RunMockConsole(ctx context.Context, in io.Reader, out io.Writer, interval time.Duration, log *slog.Logger) error {
	latch := button.NewLatch(time.Now(), button.DefaultWindow)

	edges := sensors.NewLineButton(in)
	if err := edges.Start(ctx, onEdge(latch, log)); err != nil {
		return err
	}
	defer edges.Close()

	loop := app.NewLoop(latch, pipeline.New(sensors.NewMockSensor()), display.NewRenderer(display.NewConsole(out, consoleWidth)), app.LoopOpts{
		Interval:    interval,
		InitialUnit: env.Fahrenheit,
	}, log)
	return loop.Run(ctx)
}
