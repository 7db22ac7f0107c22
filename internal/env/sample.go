// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package env

// Sample represents a single environmental measurement (BME280).
type Sample struct {
	Temperature float64 `json:"temp_c"`       // °C
	Pressure    float64 `json:"pressure_hpa"` // hPa
	Humidity    float64 `json:"humidity_pct"` // %RH
}

// FromCompensated converts the fixed-point triple returned by the classic
// BME280 compensation routines: temperature in 0.01 °C, pressure in Q24.8 Pa
// and humidity in Q22.10 %RH.
func FromCompensated(tempCenti int32, pressureQ24_8, humidityQ22_10 uint32) Sample {
	return Sample{
		Temperature: float64(tempCenti) / 100.0,
		Pressure:    (float64(pressureQ24_8) / 256.0) / 100.0,
		Humidity:    float64(humidityQ22_10) / 1024.0,
	}
}

// Reading is the smoothed output of one tick: averaged sample values plus
// the altitude derived from them.
type Reading struct {
	TemperatureC float64 `json:"temp_c"`
	HumidityPct  float64 `json:"humidity_pct"`
	PressureHPa  float64 `json:"pressure_hpa"`
	AltitudeM    float64 `json:"altitude_m"`
}
