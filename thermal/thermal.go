// Copyright 2026 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package thermal recovers temperatures from false-color thermal camera
// frames.
//
// The camera prints a vertical scale bar in each frame. Calibrate turns the
// scale bar into a lookup table of colors and temperatures, with the hottest
// end of the scale at the top of the region. Estimate then returns the
// temperature of the scale bar row whose color is the closest to a pixel.
package thermal

import (
	"image"

	"github.com/pkg/errors"
)

var (
	// ErrOutOfBounds is returned when a scale region or a target pixel is not
	// fully inside the frame.
	ErrOutOfBounds = errors.New("out of frame bounds")
	// ErrEmptyMap is returned when estimating against a map without entries.
	ErrEmptyMap = errors.New("empty color temperature map")
)

// DefaultRegion is the scale bar location in frames of the FLIR E6390
// streaming in webcam mode at 320x240.
var DefaultRegion = image.Rect(306, 36, 315, 211)

// ColorSample is the average color of one scale bar row and the temperature it
// represents.
type ColorSample struct {
	Temperature float64
	Color       Color
}

// ColorTemperatureMap is the calibration table, sorted by ascending
// temperature.
type ColorTemperatureMap []ColorSample

// Min returns the lowest temperature of the map.
func (m ColorTemperatureMap) Min() float64 {
	return m[0].Temperature
}

// Max returns the highest temperature of the map.
func (m ColorTemperatureMap) Max() float64 {
	return m[len(m)-1].Temperature
}
