// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration values.
type Config struct {
	// I2C
	I2CBus        string `yaml:"i2c_bus"`
	SensorI2CAddr uint16 `yaml:"sensor_i2c_addr"`

	// Display
	DisplayWidth  int `yaml:"display_width"`
	DisplayHeight int `yaml:"display_height"`

	// Button
	ButtonBackend  string `yaml:"button_backend"` // "gpiocdev" or "periph"
	ButtonChip     string `yaml:"button_chip"`
	ButtonLine     int    `yaml:"button_line"`
	ButtonPin      string `yaml:"button_pin"`
	DebounceWindow int    `yaml:"debounce_window"` // milliseconds

	// Loop
	LoopInterval           int    `yaml:"loop_interval"` // milliseconds
	InitialUnit            string `yaml:"initial_unit"`  // "F" or "C"
	PrimeAverage           bool   `yaml:"prime_average"`
	MaxConsecutiveFailures int    `yaml:"max_consecutive_failures"` // 0 = never give up

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"` // "text" or "json"
}

// Default returns the settings the station ships with.
func Default() *Config {
	return &Config{
		I2CBus:         "",
		SensorI2CAddr:  0x76,
		DisplayWidth:   128,
		DisplayHeight:  64,
		ButtonBackend:  "gpiocdev",
		ButtonChip:     "gpiochip0",
		ButtonLine:     6,
		ButtonPin:      "GPIO6",
		DebounceWindow: 300,
		LoopInterval:   200,
		InitialUnit:    "F",
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Debounce returns DebounceWindow as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceWindow) * time.Millisecond
}

// Interval returns LoopInterval as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.LoopInterval) * time.Millisecond
}

// Package-level unexported variables for singleton pattern:
//   - globalConfig: only reachable through InitGlobal/Get.
//   - configOnce: ensures InitGlobal() only runs once.
//   - configMu: write lock for initialization, read lock for Get().
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Load reads the configuration file and returns a Config struct. Files ending
// in .yaml or .yml are parsed as YAML, anything else as KEY=VALUE lines.
// Values not present in the file keep their defaults.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		return parseYAML(file)
	default:
		return Parse(file)
	}
}

// LoadOrDefault is Load, except that a missing file yields Default().
func LoadOrDefault(configPath string) (*Config, error) {
	cfg, err := Load(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse reads KEY=VALUE lines. Blank lines and lines starting with # are skipped.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseYAML(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// I2C
	case "I2C_BUS":
		c.I2CBus = value
	case "SENSOR_I2C_ADDR":
		addr, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid SENSOR_I2C_ADDR %q: %w", value, err)
		}
		c.SensorI2CAddr = uint16(addr)

	// Display
	case "DISPLAY_WIDTH":
		w, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid DISPLAY_WIDTH %q: %w", value, err)
		}
		c.DisplayWidth = w
	case "DISPLAY_HEIGHT":
		h, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid DISPLAY_HEIGHT %q: %w", value, err)
		}
		c.DisplayHeight = h

	// Button
	case "BUTTON_BACKEND":
		c.ButtonBackend = value
	case "BUTTON_CHIP":
		c.ButtonChip = value
	case "BUTTON_LINE":
		line, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid BUTTON_LINE %q: %w", value, err)
		}
		c.ButtonLine = line
	case "BUTTON_PIN":
		c.ButtonPin = value
	case "DEBOUNCE_WINDOW":
		ms, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid DEBOUNCE_WINDOW %q: %w", value, err)
		}
		c.DebounceWindow = ms

	// Loop
	case "LOOP_INTERVAL":
		ms, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid LOOP_INTERVAL %q: %w", value, err)
		}
		c.LoopInterval = ms
	case "INITIAL_UNIT":
		c.InitialUnit = value
	case "PRIME_AVERAGE":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid PRIME_AVERAGE %q: %w", value, err)
		}
		c.PrimeAverage = b
	case "MAX_CONSECUTIVE_FAILURES":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid MAX_CONSECUTIVE_FAILURES %q: %w", value, err)
		}
		c.MaxConsecutiveFailures = n

	// Logging
	case "LOG_LEVEL":
		c.LogLevel = value
	case "LOG_FORMAT":
		c.LogFormat = value

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// validate checks ranges and enumerations.
func (c *Config) validate() error {
	if c.SensorI2CAddr == 0 || c.SensorI2CAddr > 0x7F {
		return fmt.Errorf("SENSOR_I2C_ADDR must be a 7-bit address, got 0x%X", c.SensorI2CAddr)
	}
	if c.DisplayWidth <= 0 || c.DisplayHeight < 40 {
		return fmt.Errorf("display must be at least 1x40 pixels, got %dx%d", c.DisplayWidth, c.DisplayHeight)
	}
	switch c.ButtonBackend {
	case "gpiocdev":
		if c.ButtonChip == "" {
			return fmt.Errorf("BUTTON_CHIP is required for the gpiocdev backend")
		}
		if c.ButtonLine < 0 {
			return fmt.Errorf("BUTTON_LINE must be >= 0, got %d", c.ButtonLine)
		}
	case "periph":
		if c.ButtonPin == "" {
			return fmt.Errorf("BUTTON_PIN is required for the periph backend")
		}
	default:
		return fmt.Errorf("BUTTON_BACKEND must be gpiocdev or periph, got %q", c.ButtonBackend)
	}
	if c.DebounceWindow <= 0 {
		return fmt.Errorf("DEBOUNCE_WINDOW must be > 0, got %d", c.DebounceWindow)
	}
	if c.LoopInterval <= 0 {
		return fmt.Errorf("LOOP_INTERVAL must be > 0, got %d", c.LoopInterval)
	}
	switch strings.ToUpper(c.InitialUnit) {
	case "F", "C":
	default:
		return fmt.Errorf("INITIAL_UNIT must be F or C, got %q", c.InitialUnit)
	}
	if c.MaxConsecutiveFailures < 0 {
		return fmt.Errorf("MAX_CONSECUTIVE_FAILURES must be >= 0, got %d", c.MaxConsecutiveFailures)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// InitGlobal initializes the global configuration from file, falling back to
// defaults when the file does not exist. Only the first call has any effect.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = LoadOrDefault(configPath)
	})
	return err
}

// Get returns the global configuration instance.
// InitGlobal must be called first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
