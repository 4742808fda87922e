// Copyright 2026 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// thermal-query reads the scale bar of a single still and prints the
// temperature of the requested points.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/maruel/go-thermal/framesource"
	"github.com/maruel/go-thermal/points"
	"github.com/maruel/go-thermal/thermal"
	"github.com/pkg/errors"
)

func mainImpl() error {
	minTemp := flag.Float64("min", 0, "temperature at the bottom of the scale bar")
	maxTemp := flag.Float64("max", 0, "temperature at the top of the scale bar")
	x := flag.Int("x", -1, "X coordinate of the point to query")
	y := flag.Int("y", -1, "Y coordinate of the point to query")
	pointsPath := flag.String("points", "", "points file to query instead of -x/-y")
	mapPath := flag.String("map", "", "write the color to temperature map as CSV to this file")
	interpolate := flag.Bool("interpolate", false, "interpolate between the two closest scale colors")
	flag.Parse()

	if flag.NArg() != 1 {
		return errors.New("supply path to the image to query")
	}
	var pts []points.TargetPoint
	if *pointsPath != "" {
		var err error
		if pts, err = points.Load(*pointsPath, 0); err != nil {
			return err
		}
	} else if *x >= 0 && *y >= 0 {
		pts = []points.TargetPoint{{X: *x, Y: *y, Label: "Point 1"}}
	} else if *mapPath == "" {
		return errors.New("supply -x and -y, -points or -map")
	}

	f, err := framesource.Load(flag.Arg(0))
	if err != nil {
		return err
	}
	m, err := thermal.Calibrate(f, *minTemp, *maxTemp, thermal.DefaultRegion)
	if err != nil {
		return err
	}
	if *mapPath != "" {
		out, err := os.Create(*mapPath)
		if err != nil {
			return err
		}
		if err := thermal.WriteMapCSV(out, m); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
		fmt.Printf("Saved %d rows to %s\n", len(m), *mapPath)
	}
	for _, p := range pts {
		var t float64
		if *interpolate {
			t, err = thermal.EstimateInterpolated(f, m, p.X, p.Y)
		} else {
			t, err = thermal.Estimate(f, m, p.X, p.Y)
		}
		if err != nil {
			fmt.Printf("%-20s Error: %s\n", p, err)
			continue
		}
		c := thermal.ColorAt(f, p.X, p.Y)
		fmt.Printf("%-20s RGB(%3.0f,%3.0f,%3.0f) %6.2f°C\n", p, c.R, c.G, c.B, t)
	}
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "\nthermal-query: %s.\n", err)
		os.Exit(1)
	}
}
