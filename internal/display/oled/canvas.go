// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package oled draws station frames into a 1-bit buffer and pushes them to an
// SSD1306 over periph. It is host only; the firmware drives its panel through
// the TinyGo driver directly.
package oled

import (
	"fmt"
	"image"
	"image/color"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"github.com/relabs-tech/env_station/internal/display"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// pixels lets tinyfont draw into the frame buffer.
type pixels struct {
	img *image1bit.VerticalLSB
}

func (p pixels) Size() (int16, int16) {
	b := p.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (p pixels) SetPixel(x, y int16, c color.RGBA) {
	if !image.Pt(int(x), int(y)).In(p.img.Bounds()) {
		return
	}
	p.img.SetBit(int(x), int(y), image1bit.Bit(c.R|c.G|c.B != 0))
}

func (p pixels) Display() error { return nil }

// Canvas is a 1-bit frame buffer with a text drawer. Flush hands the frame to
// the sink, normally an SSD1306.
type Canvas struct {
	img   *image1bit.VerticalLSB
	flush func(img image.Image) error
}

// NewCanvas creates a blank canvas of the given size. flush is called with the
// frame on every Flush.
func NewCanvas(width, height int, flush func(img image.Image) error) *Canvas {
	return &Canvas{
		img:   image1bit.NewVerticalLSB(image.Rect(0, 0, width, height)),
		flush: flush,
	}
}

// Clear blanks the frame buffer.
func (c *Canvas) Clear() error {
	for i := range c.img.Pix {
		c.img.Pix[i] = 0
	}
	return nil
}

// WriteText draws s with its top-left corner at (x, y). Glyphs stay within
// display.LineHeight rows below y.
func (c *Canvas) WriteText(s string, x, y int) error {
	if !image.Pt(x, y).In(c.img.Bounds()) {
		return fmt.Errorf("text origin (%d,%d) outside %v", x, y, c.img.Bounds())
	}
	tinyfont.WriteLine(pixels{c.img}, &proggy.TinySZ8pt7b, int16(x), int16(y+display.Baseline), s, white)
	return nil
}

// Flush pushes the frame to the sink.
func (c *Canvas) Flush() error {
	if c.flush == nil {
		return nil
	}
	return c.flush(c.img)
}

// Image exposes the frame buffer.
func (c *Canvas) Image() *image1bit.VerticalLSB { return c.img }

// OLED is a Canvas bound to an SSD1306 panel.
type OLED struct {
	*Canvas
	dev *ssd1306.Dev
}

// Open initializes an SSD1306 on bus. The driver talks to the panel at its
// fixed address 0x3C.
func Open(bus i2c.Bus, width, height int) (*OLED, error) {
	opts := ssd1306.DefaultOpts
	opts.W = width
	opts.H = height
	dev, err := ssd1306.NewI2C(bus, &opts)
	if err != nil {
		return nil, fmt.Errorf("ssd1306 init: %w", err)
	}
	o := &OLED{dev: dev}
	o.Canvas = NewCanvas(width, height, func(img image.Image) error {
		return dev.Draw(dev.Bounds(), img, image.Point{})
	})
	return o, nil
}

// Halt turns the panel off.
func (o *OLED) Halt() error {
	return o.dev.Halt()
}
