// Copyright 2026 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// thermal-points lets an operator pick the target points on a reference
// still and saves them as a points file.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/maruel/go-thermal/framesource"
	"github.com/maruel/go-thermal/points"
	"github.com/maruel/go-thermal/thermal"
	"github.com/pkg/errors"
)

// parseInput parses "x y [label]"; commas are accepted as separators.
func parseInput(line string) (int, int, string, error) {
	fields := strings.Fields(strings.Replace(line, ",", " ", 2))
	if len(fields) < 2 {
		return 0, 0, "", errors.New("expected: x y [label]")
	}
	x, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, "", errors.Wrap(err, "invalid x")
	}
	y, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, "", errors.Wrap(err, "invalid y")
	}
	return x, y, strings.Join(fields[2:], " "), nil
}

// pick reads points from r until p is full or r is exhausted.
func pick(p *points.Picker, f framesource.Frame, r io.Reader, w io.Writer) {
	s := bufio.NewScanner(r)
	for !p.Full() {
		fmt.Fprintf(w, "point %d> ", len(p.Points())+1)
		if !s.Scan() {
			fmt.Fprintln(w)
			return
		}
		x, y, label, err := parseInput(s.Text())
		if err == nil {
			err = p.Add(x, y, label)
		}
		if err != nil {
			fmt.Fprintf(w, "%s\n", err)
			continue
		}
		pts := p.Points()
		c := thermal.ColorAt(f, x, y)
		fmt.Fprintf(w, "%s RGB(%.0f,%.0f,%.0f)\n", pts[len(pts)-1], c.R, c.G, c.B)
	}
}

func mainImpl() error {
	n := flag.Int("n", 5, "number of points to pick")
	out := flag.String("o", "points.txt", "points file to write")
	flag.Parse()

	if flag.NArg() != 1 {
		return errors.New("supply path to the reference image")
	}
	f, err := framesource.Load(flag.Arg(0))
	if err != nil {
		return err
	}
	fmt.Printf("%s is %dx%d; enter %d points as: x y [label]\n", f.ID, f.Bounds().Dx(), f.Bounds().Dy(), *n)
	p := points.NewPicker(*n, f.Bounds())
	pick(p, f, os.Stdin, os.Stdout)
	pts := p.Points()
	if len(pts) == 0 {
		return errors.New("no point picked")
	}
	o, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := points.Save(o, pts); err != nil {
		o.Close()
		return err
	}
	fmt.Printf("Saved %d points to %s\n", len(pts), *out)
	return o.Close()
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "\nthermal-points: %s.\n", err)
		os.Exit(1)
	}
}
