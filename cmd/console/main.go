// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/relabs-tech/env_station/internal/station"
	"github.com/relabs-tech/env_station/internal/config"
	"github.com/relabs-tech/env_station/internal/logging"
)

func main() {
	interval := flag.Duration("interval", time.Second, "time between frames")
	flag.Parse()

	log := logging.New(config.Default(), os.Stderr, "envstation-console")
	log.Info("starting env station (mock console), press ENTER to toggle F/C")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := station.RunMockConsole(ctx, os.Stdin, os.Stdout, *interval, log); err != nil {
		log.Error("fatal", "err", err)
		os.Exit(1)
	}
}
