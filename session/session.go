// Copyright 2026 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package session runs a timed acquisition: it pulls frames, and at a fixed
// interval reads the scale bar, estimates the temperature of each target point
// and logs the result.
package session

import (
	"context"
	"fmt"
	"image"
	"log"
	"math"
	"time"

	"github.com/maruel/go-thermal/framesource"
	"github.com/maruel/go-thermal/points"
	"github.com/maruel/go-thermal/thermal"
	"github.com/pkg/errors"
)

// Config is the acquisition parameters.
type Config struct {
	MinTemp  float64              // Temperature at the bottom of the scale bar.
	MaxTemp  float64              // Temperature at the top of the scale bar.
	Interval time.Duration        // Time between samples.
	Region   image.Rectangle      // Scale bar location; defaults to thermal.DefaultRegion.
	Points   []points.TargetPoint //

	// CacheCalibration reuses the first successfully read scale bar for all
	// the following samples instead of reading it at each sample. Results are
	// wrong if the camera changes its range during the session.
	CacheCalibration bool
	// Interpolate uses thermal.EstimateInterpolated instead of thermal.Estimate.
	Interpolate bool

	Clock    Clock    // Defaults to SystemClock.
	Archiver Archiver // Optional; when set the archived name is logged as the frame ID.
	// OnFrame is called after each frame, sampled or not.
	OnFrame func(f framesource.Frame, elapsed time.Duration, samples int)
}

// Validate returns a *points.ConfigurationError if c cannot run.
func (c *Config) Validate() error {
	if len(c.Points) == 0 {
		return &points.ConfigurationError{Reason: "no target point"}
	}
	if c.Interval <= 0 {
		return &points.ConfigurationError{Reason: fmt.Sprintf("invalid sampling interval %s", c.Interval)}
	}
	for _, v := range []float64{c.MinTemp, c.MaxTemp} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &points.ConfigurationError{Reason: fmt.Sprintf("invalid scale temperature %g", v)}
		}
	}
	return nil
}

// Session is a single acquisition run. It is not reusable.
type Session struct {
	cfg  Config
	src  FrameSource
	log  RowLogger
	plot Plotter

	state  State
	start  time.Time
	last   time.Time
	count  int
	cached thermal.ColorTemperatureMap
}

// New returns a Session in the Idle state. plot may be nil.
//
// The Session takes ownership of src, rows and plot; they are closed when Run
// returns.
func New(cfg Config, src FrameSource, rows RowLogger, plot Plotter) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Region.Empty() {
		cfg.Region = thermal.DefaultRegion
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if plot == nil {
		plot = nopPlotter{}
	}
	return &Session{cfg: cfg, src: src, log: rows, plot: plot}, nil
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Samples returns the number of samples logged so far.
func (s *Session) Samples() int {
	return s.count
}

// Run acquires frames until the source is exhausted or ctx is canceled.
//
// Cancellation is checked once per frame. Both are an orderly stop and return
// nil. The collaborators are closed once before returning.
func (s *Session) Run(ctx context.Context) error {
	if s.state != Idle {
		return errors.Errorf("session is %s", s.state)
	}
	s.start = s.cfg.Clock.Now()
	s.last = s.start
	s.state = Running
	err := s.loop(ctx)
	s.state = Stopped
	if err2 := s.release(); err == nil {
		err = err2
	}
	return err
}

func (s *Session) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		f, err := s.src.NextFrame()
		if errors.Is(err, framesource.ErrEndOfStream) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "failed to read frame")
		}
		now := s.cfg.Clock.Now()
		if now.Sub(s.last) >= s.cfg.Interval {
			s.state = Sampling
			err = s.sample(f, now)
			s.state = Running
			if err != nil {
				return err
			}
		}
		if s.cfg.OnFrame != nil {
			s.cfg.OnFrame(f, now.Sub(s.start), s.count)
		}
	}
}

func (s *Session) sample(f framesource.Frame, now time.Time) error {
	start := time.Now()
	row := SampleRow{
		Index:     s.count,
		Elapsed:   now.Sub(s.start),
		Timestamp: now,
		FrameID:   f.ID,
		Estimates: make([]Estimate, len(s.cfg.Points)),
	}
	if s.cfg.Archiver != nil {
		if name, err := s.cfg.Archiver.Save(f.Image); err != nil {
			log.Printf("failed to archive frame %d: %s", s.count, err)
		} else {
			row.FrameID = name
		}
	}
	m, err := s.calibrate(f)
	if err != nil {
		calibrationErrors.Inc()
		log.Printf("sample %d: %s", s.count, err)
	}
	for i, p := range s.cfg.Points {
		e := Estimate{Label: p.Label, Err: err}
		if err == nil {
			if s.cfg.Interpolate {
				e.Temperature, e.Err = thermal.EstimateInterpolated(f, m, p.X, p.Y)
			} else {
				e.Temperature, e.Err = thermal.Estimate(f, m, p.X, p.Y)
			}
			if e.Err != nil {
				log.Printf("sample %d: %s: %s", s.count, p, e.Err)
			}
		}
		if e.Err != nil {
			estimateErrors.WithLabelValues(p.Label).Inc()
		}
		row.Estimates[i] = e
	}
	if err := s.log.WriteRow(row); err != nil {
		return errors.Wrap(err, "failed to log sample")
	}
	for _, e := range row.Estimates {
		if e.Err != nil {
			continue
		}
		if err := s.plot.Append(e.Label, row.Elapsed, e.Temperature); err != nil {
			log.Printf("failed to plot %s: %s", e.Label, err)
		}
	}
	s.count++
	s.last = now
	samplesTotal.Inc()
	sampleDuration.Observe(time.Since(start).Seconds())
	return nil
}

// calibrate reads the scale bar of f, or returns the cached map.
func (s *Session) calibrate(f framesource.Frame) (thermal.ColorTemperatureMap, error) {
	if s.cached != nil {
		return s.cached, nil
	}
	m, err := thermal.Calibrate(f, s.cfg.MinTemp, s.cfg.MaxTemp, s.cfg.Region)
	if err == nil && s.cfg.CacheCalibration {
		s.cached = m
	}
	return m, err
}

// release closes the collaborators. Run calls it exactly once.
func (s *Session) release() error {
	var out error
	for _, c := range []interface{ Close() error }{s.src, s.log, s.plot} {
		if err := c.Close(); err != nil && out == nil {
			out = err
		}
	}
	return out
}
