// Copyright 2026 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package thermal

import (
	"image"
	"sort"

	"github.com/pkg/errors"
)

// Calibrate builds the ColorTemperatureMap of the scale bar located in region
// r of img.
//
// Each row of the region is averaged into one color. The top row maps to
// maxTemp, the bottom row to minTemp and the rows in between are linearly
// interpolated. A single row region maps to maxTemp.
func Calibrate(img image.Image, minTemp, maxTemp float64, r image.Rectangle) (ColorTemperatureMap, error) {
	b := img.Bounds()
	if r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y || !r.In(b) {
		return nil, errors.Wrapf(ErrOutOfBounds, "scale region %s in frame %s", r, b)
	}
	h := r.Dy()
	m := make(ColorTemperatureMap, 0, h)
	for i := 0; i < h; i++ {
		fraction := 0.
		if h > 1 {
			fraction = float64(i) / float64(h-1)
		}
		m = append(m, ColorSample{
			Temperature: maxTemp - fraction*(maxTemp-minTemp),
			Color:       rowMean(img, r.Min.X, r.Max.X, r.Min.Y+i),
		})
	}
	sort.SliceStable(m, func(i, j int) bool {
		return m[i].Temperature < m[j].Temperature
	})
	return m, nil
}
