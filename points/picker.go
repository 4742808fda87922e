// Copyright 2026 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package points

import (
	"fmt"
	"image"

	"github.com/pkg/errors"
)

// ErrFull is returned by Picker.Add once the picker reached its capacity.
var ErrFull = errors.New("all points already picked")

// Picker accumulates points chosen by an operator, up to a fixed number.
type Picker struct {
	bounds   image.Rectangle
	capacity int
	pts      []TargetPoint
}

// NewPicker returns a Picker accepting up to capacity points inside bounds.
func NewPicker(capacity int, bounds image.Rectangle) *Picker {
	return &Picker{bounds: bounds, capacity: capacity, pts: make([]TargetPoint, 0, capacity)}
}

// Add appends a point. An empty label is replaced with "Point N".
func (p *Picker) Add(x, y int, label string) error {
	if p.Full() {
		return ErrFull
	}
	if !image.Pt(x, y).In(p.bounds) {
		return errors.Errorf("(%d, %d) is outside %s", x, y, p.bounds)
	}
	if label == "" {
		label = fmt.Sprintf("Point %d", len(p.pts)+1)
	}
	p.pts = append(p.pts, TargetPoint{X: x, Y: y, Label: label})
	return nil
}

// Full returns true once capacity points were added.
func (p *Picker) Full() bool {
	return len(p.pts) >= p.capacity
}

// Points returns a copy of the points picked so far.
func (p *Picker) Points() []TargetPoint {
	return append([]TargetPoint(nil), p.pts...)
}
