// Copyright 2026 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package points loads and saves the pixel locations to measure.
//
// A points file has one point per line, formatted as "x, y" or
// "x, y, label". Points without a label are named "Point N".
package points

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

// TargetPoint is a pixel location where the temperature is estimated.
type TargetPoint struct {
	X     int
	Y     int
	Label string
}

func (t TargetPoint) String() string {
	return fmt.Sprintf("%s (%d, %d)", t.Label, t.X, t.Y)
}

// ConfigurationError is returned when the acquisition parameters are not
// usable. It is only returned before a session starts.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (c *ConfigurationError) Error() string {
	if c.Err != nil {
		return c.Reason + ": " + c.Err.Error()
	}
	return c.Reason
}

func (c *ConfigurationError) Unwrap() error {
	return c.Err
}

// Parse reads points from r.
//
// Blank lines are ignored. Malformed lines are logged and skipped.
func Parse(r io.Reader) ([]TargetPoint, error) {
	var out []TargetPoint
	s := bufio.NewScanner(r)
	for n := 1; s.Scan(); n++ {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		p, err := parseLine(line)
		if err != nil {
			log.Printf("skipping invalid line %d %q: %s", n, line, err)
			continue
		}
		if p.Label == "" {
			p.Label = fmt.Sprintf("Point %d", len(out)+1)
		}
		out = append(out, p)
	}
	return out, s.Err()
}

// Load reads the points file at path.
//
// want is the exact number of points required; 0 means at least one.
func Load(path string, want int) ([]TargetPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ConfigurationError{Reason: "failed to open points file", Err: err}
	}
	defer f.Close()
	pts, err := Parse(f)
	if err != nil {
		return nil, &ConfigurationError{Reason: "failed to read " + path, Err: err}
	}
	if want != 0 && len(pts) != want {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("%s must contain exactly %d points (each with x,y[,label]), got %d", path, want, len(pts))}
	}
	if len(pts) == 0 {
		return nil, &ConfigurationError{Reason: path + " contains no point"}
	}
	return pts, nil
}

// Save writes pts in the format understood by Parse.
func Save(w io.Writer, pts []TargetPoint) error {
	for _, p := range pts {
		if _, err := fmt.Fprintf(w, "%d, %d, %s\n", p.X, p.Y, p.Label); err != nil {
			return err
		}
	}
	return nil
}

func parseLine(line string) (TargetPoint, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 2 && len(parts) != 3 {
		return TargetPoint{}, fmt.Errorf("expected 2 or 3 fields, got %d", len(parts))
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return TargetPoint{}, err
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return TargetPoint{}, err
	}
	p := TargetPoint{X: x, Y: y}
	if len(parts) == 3 {
		p.Label = strings.TrimSpace(parts[2])
	}
	return p, nil
}
