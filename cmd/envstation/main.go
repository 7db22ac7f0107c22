// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/relabs-tech/env_station/internal/station"
	"github.com/relabs-tech/env_station/internal/config"
	"github.com/relabs-tech/env_station/internal/logging"
)

func main() {
	configPath := flag.String("config", "./envstation_config.txt", "path to configuration file (KEY=VALUE or .yaml)")
	flag.Parse()

	// Load configuration; a missing file means defaults
	if err := config.InitGlobal(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: failed to load config from %s: %v\n", *configPath, err)
		os.Exit(1)
	}

	log := logging.New(config.Get(), os.Stderr, "envstation")
	log.Info("starting env station (BME280 → SSD1306)", "config", *configPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := station.RunStation(ctx, log); err != nil {
		log.Error("fatal", "err", err)
		os.Exit(1)
	}
	log.Info("shut down")
}
