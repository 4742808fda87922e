// Copyright 2026 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// thermal samples the temperature of target points on a false-color thermal
// camera stream, reading the scale bar printed in each frame.
package main

import (
	"context"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"time"

	"github.com/maruel/go-thermal/capture"
	"github.com/maruel/go-thermal/csvlog"
	"github.com/maruel/go-thermal/framesource"
	"github.com/maruel/go-thermal/plotfeed"
	"github.com/maruel/go-thermal/points"
	"github.com/maruel/go-thermal/session"
	"github.com/maruel/go-thermal/thermaltest"
	"github.com/maruel/interrupt"
	"github.com/pkg/errors"
)

func openSource(ctx context.Context, c *config, dir string, follow, fake bool) (session.FrameSource, error) {
	switch {
	case fake:
		cam := thermaltest.New()
		c.MinTemp = thermaltest.ToCelsius(cam.Min)
		c.MaxTemp = thermaltest.ToCelsius(cam.Max)
		return cam, nil
	case dir != "" && follow:
		return framesource.NewFollow(dir, ctx.Done())
	case dir != "":
		return framesource.NewDir(dir)
	default:
		d, err := capture.Open(c.Device)
		if err != nil {
			return nil, errors.Wrap(err, "if testing without hardware, use -fake to simulate a camera")
		}
		return d, nil
	}
}

func mainImpl() error {
	c := loadConfig()
	flag.Float64Var(&c.MinTemp, "min", c.MinTemp, "temperature at the bottom of the scale bar")
	flag.Float64Var(&c.MaxTemp, "max", c.MaxTemp, "temperature at the top of the scale bar")
	flag.StringVar(&c.Interval, "interval", c.Interval, "sampling interval")
	flag.StringVar(&c.Points, "points", c.Points, "points file, one 'x, y[, label]' per line")
	flag.IntVar(&c.Want, "want", c.Want, "expected number of points; 0 for any")
	flag.StringVar(&c.CSV, "csv", c.CSV, "CSV file to write")
	flag.StringVar(&c.Photos, "photos", c.Photos, "directory to save sampled frames in; empty to disable")
	flag.IntVar(&c.Device, "device", c.Device, "video device index")
	flag.IntVar(&c.Port, "port", c.Port, "http port to serve the live plot on; 0 to disable")
	dir := flag.String("dir", "", "read frames from this directory instead of the camera")
	follow := flag.Bool("follow", false, "with -dir, wait for new frames")
	fake := flag.Bool("fake", false, "use a fake camera")
	cache := flag.Bool("cache", false, "read the scale bar only once")
	interpolate := flag.Bool("interpolate", false, "interpolate between the two closest scale colors")
	writeConfig := flag.Bool("writeConfig", false, "write the config file with the current flags and exit")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()
	if !*verbose {
		log.SetOutput(ioutil.Discard)
	}
	log.SetFlags(log.Lmicroseconds)

	if flag.NArg() != 0 {
		return fmt.Errorf("unexpected argument: %s", flag.Args())
	}
	if *writeConfig {
		return c.write()
	}
	interval, err := time.ParseDuration(c.Interval)
	if err != nil {
		return &points.ConfigurationError{Reason: "invalid -interval", Err: err}
	}
	if !*fake && c.MinTemp == 0 && c.MaxTemp == 0 {
		return &points.ConfigurationError{Reason: "specify the scale bar range with -min and -max"}
	}
	pts, err := points.Load(c.Points, c.Want)
	if err != nil {
		return err
	}

	interrupt.HandleCtrlC()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-interrupt.Channel
		cancel()
	}()

	src, err := openSource(ctx, &c, *dir, *follow, *fake)
	if err != nil {
		return err
	}
	cfg := session.Config{
		MinTemp:          c.MinTemp,
		MaxTemp:          c.MaxTemp,
		Interval:         interval,
		Points:           pts,
		CacheCalibration: *cache,
		Interpolate:      *interpolate,
		OnFrame: func(f framesource.Frame, elapsed time.Duration, samples int) {
			fmt.Printf("\r%s %s elapsed %d samples", f.ID, elapsed.Truncate(time.Second), samples)
		},
	}
	if err := cfg.Validate(); err != nil {
		src.Close()
		return err
	}
	if c.Photos != "" {
		a, err := framesource.NewArchiver(c.Photos)
		if err != nil {
			src.Close()
			return err
		}
		cfg.Archiver = a
	}

	labels := make([]string, len(pts))
	for i, p := range pts {
		labels[i] = p.Label
	}
	rows, err := csvlog.Create(c.CSV, labels)
	if err != nil {
		src.Close()
		return err
	}
	var plot session.Plotter
	if c.Port != 0 {
		s, addr, err := plotfeed.Start(fmt.Sprintf(":%d", c.Port))
		if err != nil {
			src.Close()
			rows.Close()
			return err
		}
		fmt.Printf("Listening on %s\n", addr)
		plot = s
	}

	s, err := session.New(cfg, src, rows, plot)
	if err != nil {
		return err
	}
	err = s.Run(ctx)
	fmt.Printf("\n%d samples written to %s\n", s.Samples(), c.CSV)
	return err
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "\nthermal: %s.\n", err)
		os.Exit(1)
	}
}
