// Copyright 2026 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package thermal

import (
	"image"
	"math"
)

// Color is a pixel color. Each component is in [0, 255] and the order is
// always R, G, B.
type Color struct {
	R, G, B float64
}

// ColorAt returns the color of the pixel at (x, y).
//
// This is the only conversion from a frame pixel to a Color. Calibrate and
// Estimate both go through it so the scale bar and the target pixels are
// always read with the same channel order.
func ColorAt(img image.Image, x, y int) Color {
	r, g, b, _ := img.At(x, y).RGBA()
	return Color{R: float64(r >> 8), G: float64(g >> 8), B: float64(b >> 8)}
}

// rowMean returns the per-channel mean of the pixels [x0, x1) on line y.
func rowMean(img image.Image, x0, x1, y int) Color {
	var sum Color
	for x := x0; x < x1; x++ {
		c := ColorAt(img, x, y)
		sum.R += c.R
		sum.G += c.G
		sum.B += c.B
	}
	n := float64(x1 - x0)
	return Color{R: sum.R / n, G: sum.G / n, B: sum.B / n}
}

// distance is the euclidean distance between two colors once both are scaled
// to [0, 1].
func distance(a, b Color) float64 {
	dr := a.R/255 - b.R/255
	dg := a.G/255 - b.G/255
	db := a.B/255 - b.B/255
	return math.Sqrt(dr*dr + dg*dg + db*db)
}
