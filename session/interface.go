// Copyright 2026 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package session

import (
	"image"
	"io"
	"time"

	"github.com/maruel/go-thermal/framesource"
)

// FrameSource provides the frames. NextFrame returns
// framesource.ErrEndOfStream once exhausted.
type FrameSource interface {
	io.Closer
	NextFrame() (framesource.Frame, error)
}

// RowLogger records each sample. A failure to record stops the session.
type RowLogger interface {
	io.Closer
	WriteRow(row SampleRow) error
}

// Plotter receives one point per successful estimate. Points are only ever
// appended.
type Plotter interface {
	io.Closer
	Append(label string, elapsed time.Duration, temperature float64) error
}

// Archiver saves a sampled frame and returns the name to log it as.
type Archiver interface {
	Save(img image.Image) (string, error)
}

// Clock returns the current time. It can be mocked.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Estimate is the result for one target point in a SampleRow.
type Estimate struct {
	Label       string
	Temperature float64 // Only valid if Err is nil.
	Err         error
}

// SampleRow is one sampling tick. It is not modified once logged.
type SampleRow struct {
	Index     int
	Elapsed   time.Duration // Since the session started.
	Timestamp time.Time
	FrameID   string
	Estimates []Estimate // In the same order as Config.Points.
}

// State is the state of a Session.
type State int

// Valid values for State.
const (
	Idle State = iota
	Running
	Sampling
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case Sampling:
		return "Sampling"
	case Stopped:
		return "Stopped"
	default:
		return "State(?)"
	}
}

type nopPlotter struct{}

func (nopPlotter) Append(string, time.Duration, float64) error { return nil }
func (nopPlotter) Close() error                                 { return nil }
