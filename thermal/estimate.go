// Copyright 2026 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package thermal

import (
	"image"
	"math"

	"github.com/pkg/errors"
)

// Estimate returns the temperature at (x, y).
//
// The result is always one of the map's temperatures: the one whose color is
// the closest to the pixel. When several entries are equally close, the lowest
// temperature wins.
func Estimate(img image.Image, m ColorTemperatureMap, x, y int) (float64, error) {
	i, _, err := nearest(img, m, x, y)
	if err != nil {
		return 0, err
	}
	return m[i].Temperature, nil
}

// EstimateInterpolated is like Estimate but blends the closest entry with its
// closest neighbor in the map, weighted by the inverse of their color
// distances.
//
// It yields a continuous value instead of the scale bar's quantization steps.
func EstimateInterpolated(img image.Image, m ColorTemperatureMap, x, y int) (float64, error) {
	i, c, err := nearest(img, m, x, y)
	if err != nil {
		return 0, err
	}
	di := distance(c, m[i].Color)
	if di == 0 {
		return m[i].Temperature, nil
	}
	j, dj := -1, math.Inf(1)
	for _, k := range []int{i - 1, i + 1} {
		if k < 0 || k >= len(m) {
			continue
		}
		if d := distance(c, m[k].Color); d < dj {
			j, dj = k, d
		}
	}
	if j == -1 {
		return m[i].Temperature, nil
	}
	return (m[i].Temperature*dj + m[j].Temperature*di) / (di + dj), nil
}

// nearest returns the index of the map entry closest to the pixel at (x, y)
// and the pixel color.
func nearest(img image.Image, m ColorTemperatureMap, x, y int) (int, Color, error) {
	if !image.Pt(x, y).In(img.Bounds()) {
		return 0, Color{}, errors.Wrapf(ErrOutOfBounds, "point (%d, %d) in frame %s", x, y, img.Bounds())
	}
	if len(m) == 0 {
		return 0, Color{}, ErrEmptyMap
	}
	c := ColorAt(img, x, y)
	best, bestDist := 0, math.Inf(1)
	for i := range m {
		if d := distance(c, m[i].Color); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, c, nil
}
