// Copyright 2026 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package thermal

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"sort"
	"testing"

	"github.com/pkg/errors"
)

func TestCalibrate(t *testing.T) {
	img := gradient(1, 100)
	m, err := Calibrate(img, 20, 45, img.Bounds())
	if err != nil {
		t.Fatal(err)
	}
	if len(m) != 100 {
		t.Fatalf("got %d entries", len(m))
	}
	if !sort.SliceIsSorted(m, func(i, j int) bool { return m[i].Temperature < m[j].Temperature }) {
		t.Fatal("not sorted")
	}
	if m.Min() != 20 || m.Max() != 45 {
		t.Fatalf("%g - %g", m.Min(), m.Max())
	}
	// The top row is the hottest.
	if c := ColorAt(img, 0, 0); m.Max() != 45 || m[len(m)-1].Color != c {
		t.Fatalf("%#v != %#v", m[len(m)-1].Color, c)
	}
}

func TestCalibrate_singleRow(t *testing.T) {
	img := gradient(4, 10)
	m, err := Calibrate(img, 0, 80, image.Rect(0, 3, 4, 4))
	if err != nil {
		t.Fatal(err)
	}
	if len(m) != 1 || m[0].Temperature != 80 {
		t.Fatalf("%#v", m)
	}
}

func TestCalibrate_rowMean(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{200, 10, 30, 255})
	img.Set(1, 0, color.RGBA{100, 20, 31, 255})
	m, err := Calibrate(img, 0, 1, img.Bounds())
	if err != nil {
		t.Fatal(err)
	}
	if want := (Color{R: 150, G: 15, B: 30.5}); m[0].Color != want {
		t.Fatalf("%#v != %#v", m[0].Color, want)
	}
}

func TestCalibrate_inverted(t *testing.T) {
	// min > max is a caller error but the map is still sorted.
	img := gradient(1, 10)
	m, err := Calibrate(img, 50, 10, img.Bounds())
	if err != nil {
		t.Fatal(err)
	}
	if m.Min() != 10 || m.Max() != 50 {
		t.Fatalf("%g - %g", m.Min(), m.Max())
	}
	if m[0].Color != ColorAt(img, 0, 0) {
		t.Fatal("top row should map to max temp, which is now the lowest")
	}
}

func TestCalibrate_outOfBounds(t *testing.T) {
	img := gradient(10, 10)
	data := []image.Rectangle{
		image.Rect(-1, 0, 5, 5),
		image.Rect(0, -1, 5, 5),
		image.Rect(0, 0, 11, 5),
		image.Rect(0, 0, 5, 11),
		image.Rect(3, 3, 3, 5),
		image.Rect(3, 3, 5, 3),
		DefaultRegion,
	}
	for _, r := range data {
		if m, err := Calibrate(img, 0, 1, r); !errors.Is(err, ErrOutOfBounds) || m != nil {
			t.Fatalf("%s: %v %v", r, m, err)
		}
	}
}

func TestEstimate_exactMatch(t *testing.T) {
	img := gradient(3, 33)
	m, err := Calibrate(img, 0, 32, image.Rect(0, 0, 1, 33))
	if err != nil {
		t.Fatal(err)
	}
	// Row 12 has temperature 32-12.
	v, err := Estimate(img, m, 2, 12)
	if err != nil {
		t.Fatal(err)
	}
	if v != 20 {
		t.Fatal(v)
	}
	v2, err := Estimate(img, m, 2, 12)
	if err != nil || v2 != v {
		t.Fatalf("not idempotent: %g != %g (%v)", v2, v, err)
	}
}

func TestEstimate_tie(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{0, 0, 0, 255})
	data := []ColorTemperatureMap{
		{{10, Color{R: 255}}, {20, Color{G: 255}}},
		{{10, Color{G: 255}}, {20, Color{R: 255}}},
		{{-5, Color{B: 255}}, {10, Color{G: 255}}, {20, Color{R: 255}}},
	}
	for i, m := range data {
		v, err := Estimate(img, m, 0, 0)
		if err != nil {
			t.Fatal(err)
		}
		if v != m[0].Temperature {
			t.Fatalf("#%d: %g", i, v)
		}
	}
}

func TestEstimate_bounds(t *testing.T) {
	img := gradient(4, 3)
	m := ColorTemperatureMap{{1, Color{}}}
	data := []struct {
		x, y int
		ok   bool
	}{
		{0, 0, true},
		{3, 2, true},
		{-1, 0, false},
		{4, 0, false},
		{0, -1, false},
		{0, 3, false},
	}
	for _, line := range data {
		_, err := Estimate(img, m, line.x, line.y)
		if line.ok != (err == nil) {
			t.Fatalf("(%d, %d): %v", line.x, line.y, err)
		}
		if !line.ok && !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("(%d, %d): %v", line.x, line.y, err)
		}
	}
}

func TestEstimate_emptyMap(t *testing.T) {
	if _, err := Estimate(gradient(1, 1), nil, 0, 0); err != ErrEmptyMap {
		t.Fatal(err)
	}
}

func TestEstimate_gradient(t *testing.T) {
	// 256 rows scale bar from white (100) to black (0) in column 0, target in
	// column 1.
	img := image.NewRGBA(image.Rect(0, 0, 2, 256))
	for y := 0; y < 256; y++ {
		v := uint8(255 - y)
		img.Set(0, y, color.RGBA{v, v, v, 255})
	}
	img.Set(1, 0, color.RGBA{128, 128, 128, 255})
	m, err := Calibrate(img, 0, 100, image.Rect(0, 0, 1, 256))
	if err != nil {
		t.Fatal(err)
	}
	if m[0].Color != (Color{}) || m[255].Color != (Color{255, 255, 255}) {
		t.Fatalf("%#v %#v", m[0], m[255])
	}
	v, err := Estimate(img, m, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(v-50) > 100./255 {
		t.Fatal(v)
	}
}

func TestEstimate_degenerate(t *testing.T) {
	img := gradient(2, 20)
	m, err := Calibrate(img, 33, 33, image.Rect(0, 0, 1, 20))
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range []color.RGBA{{0, 0, 0, 255}, {255, 0, 0, 255}, {12, 200, 7, 255}} {
		img.Set(1, 5, c)
		v, err := Estimate(img, m, 1, 5)
		if err != nil {
			t.Fatal(err)
		}
		if v != 33 {
			t.Fatalf("%v: %g", c, v)
		}
	}

	// A uniform scale bar also collapses to the lowest temperature.
	u := image.NewRGBA(image.Rect(0, 0, 2, 10))
	for y := 0; y < 10; y++ {
		u.Set(0, y, color.RGBA{90, 90, 90, 255})
	}
	m, err = Calibrate(u, 0, 9, image.Rect(0, 0, 1, 10))
	if err != nil {
		t.Fatal(err)
	}
	if v, err := Estimate(u, m, 1, 1); err != nil || v != 0 {
		t.Fatalf("%g %v", v, err)
	}
}

func TestEstimateInterpolated(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{200, 200, 200, 255})
	img.Set(0, 1, color.RGBA{100, 100, 100, 255})
	img.Set(1, 0, color.RGBA{125, 125, 125, 255})
	img.Set(1, 1, color.RGBA{100, 100, 100, 255})
	m, err := Calibrate(img, 10, 20, image.Rect(0, 0, 1, 2))
	if err != nil {
		t.Fatal(err)
	}
	v, err := EstimateInterpolated(img, m, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(v-12.5) > 1e-9 {
		t.Fatal(v)
	}
	if v, err := Estimate(img, m, 1, 0); err != nil || v != 10 {
		t.Fatalf("%g %v", v, err)
	}
	if v, err := EstimateInterpolated(img, m, 1, 1); err != nil || v != 10 {
		t.Fatalf("%g %v", v, err)
	}
	if _, err := EstimateInterpolated(img, m, 2, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Fatal(err)
	}
}

func TestWriteMapCSV(t *testing.T) {
	m := ColorTemperatureMap{
		{10, Color{1, 2, 3}},
		{12.346, Color{4.5, 5, 255}},
	}
	b := bytes.Buffer{}
	if err := WriteMapCSV(&b, m); err != nil {
		t.Fatal(err)
	}
	want := "RowIndex,Temperature,R,G,B\n0,10.00,1.00,2.00,3.00\n1,12.35,4.50,5.00,255.00\n"
	if b.String() != want {
		t.Fatalf("%q", b.String())
	}
}

//

// gradient returns a w x h image where each row is a uniform gray, from white
// at the top going darker by 5 per row.
func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		v := uint8(255 - (5*y)%256)
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return img
}
