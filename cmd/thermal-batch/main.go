// Copyright 2026 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// thermal-batch estimates the temperature of target points on every image of a
// directory, in file name order.
package main

import (
	"flag"
	"fmt"
	"image"
	"io/ioutil"
	"log"
	"os"

	"github.com/maruel/go-thermal/csvlog"
	"github.com/maruel/go-thermal/framesource"
	"github.com/maruel/go-thermal/points"
	"github.com/maruel/go-thermal/session"
	"github.com/maruel/go-thermal/thermal"
	"github.com/pkg/errors"
)

type estimator func(img image.Image, m thermal.ColorTemperatureMap, x, y int) (float64, error)

// process builds the row for one still; the file modification time is used
// as the timestamp.
func process(f framesource.Frame, index int, minTemp, maxTemp float64, pts []points.TargetPoint, est estimator) session.SampleRow {
	row := session.SampleRow{
		Index:     index,
		Timestamp: f.Timestamp,
		FrameID:   f.ID,
		Estimates: make([]session.Estimate, len(pts)),
	}
	m, err := thermal.Calibrate(f, minTemp, maxTemp, thermal.DefaultRegion)
	for i, p := range pts {
		row.Estimates[i] = session.Estimate{Label: p.Label, Err: err}
		if err == nil {
			row.Estimates[i].Temperature, row.Estimates[i].Err = est(f, m, p.X, p.Y)
		}
		if e := row.Estimates[i].Err; e != nil {
			log.Printf("%s: %s: %s", f.ID, p, e)
		}
	}
	return row
}

func mainImpl() error {
	minTemp := flag.Float64("min", 0, "temperature at the bottom of the scale bar")
	maxTemp := flag.Float64("max", 0, "temperature at the top of the scale bar")
	pointsPath := flag.String("points", "points.txt", "points file, one 'x, y[, label]' per line")
	want := flag.Int("want", 0, "expected number of points; 0 for any")
	csvPath := flag.String("csv", "temperature_data.csv", "CSV file to write")
	interpolate := flag.Bool("interpolate", false, "interpolate between the two closest scale colors")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()
	if !*verbose {
		log.SetOutput(ioutil.Discard)
	}
	log.SetFlags(log.Lmicroseconds)

	if flag.NArg() != 1 {
		return errors.New("supply the directory of images to process")
	}
	if *minTemp == 0 && *maxTemp == 0 {
		return &points.ConfigurationError{Reason: "specify the scale bar range with -min and -max"}
	}
	pts, err := points.Load(*pointsPath, *want)
	if err != nil {
		return err
	}
	src, err := framesource.NewDir(flag.Arg(0))
	if err != nil {
		return err
	}
	defer src.Close()

	est := estimator(thermal.Estimate)
	if *interpolate {
		est = thermal.EstimateInterpolated
	}
	labels := make([]string, len(pts))
	for i, p := range pts {
		labels[i] = p.Label
	}
	w, err := csvlog.Create(*csvPath, labels)
	if err != nil {
		return err
	}
	total := src.Len()
	n := 0
	for ; ; n++ {
		f, err := src.NextFrame()
		if err == framesource.ErrEndOfStream {
			break
		}
		if err != nil {
			w.Close()
			return err
		}
		if err := w.WriteRow(process(f, n, *minTemp, *maxTemp, pts, est)); err != nil {
			w.Close()
			return err
		}
		fmt.Printf("\r%d/%d", n+1, total)
	}
	fmt.Printf("\n%d rows written to %s\n", n, *csvPath)
	return w.Close()
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "\nthermal-batch: %s.\n", err)
		os.Exit(1)
	}
}
