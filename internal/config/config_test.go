// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeTempConfig(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return path
}

func TestDefaultsMatchDevice(t *testing.T) {
	cfg := Default()
	if err := cfg.validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if cfg.Debounce() != 300*time.Millisecond {
		t.Fatalf("debounce=%s want 300ms", cfg.Debounce())
	}
	if cfg.Interval() != 200*time.Millisecond {
		t.Fatalf("interval=%s want 200ms", cfg.Interval())
	}
	if cfg.InitialUnit != "F" || cfg.PrimeAverage || cfg.MaxConsecutiveFailures != 0 {
		t.Fatalf("unexpected loop defaults: %+v", cfg)
	}
}

func TestLoadKeyValue(t *testing.T) {
	path := writeTempConfig(t, "station.txt", `
# station overrides
I2C_BUS = 1
SENSOR_I2C_ADDR=0x77
BUTTON_BACKEND=periph
BUTTON_PIN=GPIO17
LOOP_INTERVAL=500
INITIAL_UNIT=C
PRIME_AVERAGE=true
MAX_CONSECUTIVE_FAILURES=25
LOG_FORMAT=json
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.I2CBus != "1" || cfg.SensorI2CAddr != 0x77 {
		t.Fatalf("i2c=%q addr=0x%X", cfg.I2CBus, cfg.SensorI2CAddr)
	}
	if cfg.ButtonBackend != "periph" || cfg.ButtonPin != "GPIO17" {
		t.Fatalf("button backend=%q pin=%q", cfg.ButtonBackend, cfg.ButtonPin)
	}
	if cfg.Interval() != 500*time.Millisecond || cfg.InitialUnit != "C" || !cfg.PrimeAverage {
		t.Fatalf("loop settings not applied: %+v", cfg)
	}
	if cfg.MaxConsecutiveFailures != 25 || cfg.LogFormat != "json" {
		t.Fatalf("failures=%d format=%q", cfg.MaxConsecutiveFailures, cfg.LogFormat)
	}
	// untouched keys keep defaults
	if cfg.DebounceWindow != 300 || cfg.DisplayWidth != 128 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"UnknownKey", "FOO=1\n", `config line 1: unknown config key: "FOO"`},
		{"MissingEquals", "\nLOOP_INTERVAL\n", `invalid config line 2: "LOOP_INTERVAL"`},
		{"BadInt", "LOOP_INTERVAL=fast\n", "config line 1: invalid LOOP_INTERVAL"},
		{"BadBool", "PRIME_AVERAGE=maybe\n", "config line 1: invalid PRIME_AVERAGE"},
		{"ZeroInterval", "LOOP_INTERVAL=0\n", "LOOP_INTERVAL must be > 0, got 0"},
		{"BadUnit", "INITIAL_UNIT=K\n", `INITIAL_UNIT must be F or C, got "K"`},
		{"BadBackend", "BUTTON_BACKEND=sysfs\n", `BUTTON_BACKEND must be gpiocdev or periph, got "sysfs"`},
		{"WideAddr", "SENSOR_I2C_ADDR=0x100\n", "SENSOR_I2C_ADDR must be a 7-bit address, got 0x100"},
		{"BadLevel", "LOG_LEVEL=trace\n", `LOG_LEVEL must be debug, info, warn or error, got "trace"`},
		{"DisplayAddrFixed", "DISPLAY_I2C_ADDR=0x3D\n", `unknown config key: "DISPLAY_I2C_ADDR"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.in))
			if err == nil {
				t.Fatalf("expected error containing %q", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error=%q want it to contain %q", err.Error(), tc.want)
			}
		})
	}
}

func TestSampleConfigMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "envstation_config.txt"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if *cfg != *Default() {
		t.Fatalf("sample config %+v differs from defaults %+v", *cfg, *Default())
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeTempConfig(t, "station.yaml", `
i2c_bus: "1"
sensor_i2c_addr: 0x77
button_backend: gpiocdev
button_chip: gpiochip4
button_line: 17
debounce_window: 250
initial_unit: C
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.SensorI2CAddr != 0x77 || cfg.ButtonChip != "gpiochip4" || cfg.ButtonLine != 17 {
		t.Fatalf("yaml values not applied: %+v", cfg)
	}
	if cfg.Debounce() != 250*time.Millisecond || cfg.InitialUnit != "C" {
		t.Fatalf("debounce=%s unit=%q", cfg.Debounce(), cfg.InitialUnit)
	}
	if cfg.LoopInterval != 200 {
		t.Fatalf("loop interval default lost: %d", cfg.LoopInterval)
	}
}

func TestLoadYAMLRejectsUnknownField(t *testing.T) {
	path := writeTempConfig(t, "station.yml", "loop_intervall: 100\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown yaml field")
	}
}

func TestLoadYAMLEmptyFileUsesDefaults(t *testing.T) {
	path := writeTempConfig(t, "station.yaml", "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.LoopInterval != 200 {
		t.Fatalf("loop interval=%d want default", cfg.LoopInterval)
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.txt"))
	if err != nil {
		t.Fatalf("LoadOrDefault() error: %v", err)
	}
	if cfg.LoopInterval != 200 || cfg.DebounceWindow != 300 {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestInitGlobalOnce(t *testing.T) {
	path := writeTempConfig(t, "station.txt", "LOOP_INTERVAL=250\n")
	if err := InitGlobal(path); err != nil {
		t.Fatalf("InitGlobal() error: %v", err)
	}
	if err := InitGlobal(writeTempConfig(t, "other.txt", "LOOP_INTERVAL=900\n")); err != nil {
		t.Fatalf("second InitGlobal() error: %v", err)
	}
	if got := Get().LoopInterval; got != 250 {
		t.Fatalf("LoopInterval=%d want 250 from first init", got)
	}
}
