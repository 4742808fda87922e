// Copyright 2026 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package thermaltest implements a fake false-color thermal camera.
//
// Frames show a slowly moving scene rendered with an iron palette and the
// palette's scale bar at thermal.DefaultRegion, hottest at the top, like the
// FLIR E6390 streaming in webcam mode.
package thermaltest

import (
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"time"

	"github.com/maruel/go-thermal/framesource"
	"github.com/maruel/go-thermal/thermal"
	"periph.io/x/periph/conn/physic"
)

// Width and Height are the frame size.
const (
	Width  = 320
	Height = 240
)

// Camera is a fake camera. It implements session.FrameSource.
type Camera struct {
	Min    physic.Temperature // Temperature printed at the bottom of the scale bar.
	Max    physic.Temperature // Temperature printed at the top of the scale bar.
	Period time.Duration      // Delay before each frame.
	Frames int                // Number of frames before the end of stream; 0 for infinite.

	noise *noise
	scene [Height][Width]physic.Temperature
	count int
}

// New returns a fake camera with a 20°C-40°C scale at ~9Hz.
func New() *Camera {
	c := &Camera{
		Min:    20*physic.Celsius + physic.ZeroCelsius,
		Max:    40*physic.Celsius + physic.ZeroCelsius,
		Period: 111 * time.Millisecond,
		noise:  makeNoise(),
	}
	c.noise.render(c)
	return c
}

// ToCelsius converts t to a scale bar reading.
func ToCelsius(t physic.Temperature) float64 {
	return float64(t-physic.ZeroCelsius) / float64(physic.Celsius)
}

// TemperatureAt returns the scene temperature at (x, y) in the last frame.
func (c *Camera) TemperatureAt(x, y int) physic.Temperature {
	return c.scene[y][x]
}

// NextFrame renders the next frame.
func (c *Camera) NextFrame() (framesource.Frame, error) {
	if c.Frames != 0 && c.count >= c.Frames {
		return framesource.Frame{}, framesource.ErrEndOfStream
	}
	time.Sleep(c.Period)
	if c.count != 0 {
		c.noise.update()
		c.noise.render(c)
	}
	c.count++
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			img.SetRGBA(x, y, Iron(c.fraction(c.scene[y][x])))
		}
	}
	c.drawScale(img)
	return framesource.Frame{Image: img, ID: fmt.Sprintf("frame_%06d", c.count), Timestamp: time.Now()}, nil
}

func (c *Camera) Close() error {
	return nil
}

// fraction returns where t falls on the scale, clamped to [0, 1].
func (c *Camera) fraction(t physic.Temperature) float64 {
	f := float64(t-c.Min) / float64(c.Max-c.Min)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// drawScale prints the scale bar, one color per row.
func (c *Camera) drawScale(img *image.RGBA) {
	r := thermal.DefaultRegion
	h := r.Dy()
	for i := 0; i < h; i++ {
		col := Iron(1 - float64(i)/float64(h-1))
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, r.Min.Y+i, col)
		}
	}
}

// Iron returns the color of the iron palette at f in [0, 1].
func Iron(f float64) color.RGBA {
	for i := 1; i < len(iron); i++ {
		if f <= iron[i].pos || i == len(iron)-1 {
			a, b := iron[i-1], iron[i]
			t := (f - a.pos) / (b.pos - a.pos)
			return color.RGBA{
				R: lerp(a.c.R, b.c.R, t),
				G: lerp(a.c.G, b.c.G, t),
				B: lerp(a.c.B, b.c.B, t),
				A: 255,
			}
		}
	}
	return iron[0].c
}

type keyframe struct {
	pos float64
	c   color.RGBA
}

var iron = []keyframe{
	{0, color.RGBA{0, 0, 0, 255}},
	{0.2, color.RGBA{32, 0, 140, 255}},
	{0.45, color.RGBA{180, 0, 160, 255}},
	{0.7, color.RGBA{255, 120, 0, 255}},
	{0.9, color.RGBA{255, 220, 0, 255}},
	{1, color.RGBA{255, 255, 255, 255}},
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

//

type vector struct {
	intensity float64
	x         float64
	y         float64
}

// noise is cheezy but gets us going for testing without a camera.
type noise struct {
	rand    *rand.Rand
	vectors []vector
}

func makeNoise() *noise {
	n := &noise{rand: rand.New(rand.NewSource(0))}
	n.vectors = make([]vector, 10)
	for i := range n.vectors {
		n.vectors[i].intensity = n.rand.NormFloat64() * 4000
		n.vectors[i].x = n.rand.NormFloat64()*60 + 150
		n.vectors[i].y = n.rand.NormFloat64()*40 + 120
	}
	return n
}

func (n *noise) update() {
	for i := range n.vectors {
		n.vectors[i].intensity += n.rand.NormFloat64() * 40
		n.vectors[i].x += n.rand.NormFloat64() * 0.5
		n.vectors[i].y += n.rand.NormFloat64() * 0.5
	}
}

// render computes the scene around 30°C, in the middle of the default scale.
func (n *noise) render(c *Camera) {
	base := 30*physic.Celsius + physic.ZeroCelsius
	for y := 0; y < Height; y++ {
		fy := float64(y)
		for x := 0; x < Width; x++ {
			fx := float64(x)
			value := 0.
			for _, vect := range n.vectors {
				distance := (vect.x-fx)*(vect.x-fx) + (vect.y-fy)*(vect.y-fy) + 1
				value += vect.intensity / distance
			}
			// value is in °C relative to base.
			t := base + physic.Temperature(value*float64(physic.Celsius))
			if t > c.Max {
				t = c.Max
			}
			if t < c.Min {
				t = c.Min
			}
			c.scene[y][x] = t
		}
	}
}
