// Copyright 2026 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// thermal-grab captures a single image.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io/ioutil"
	"log"
	"os"

	"github.com/maruel/go-thermal/capture"
	"github.com/maruel/go-thermal/framesource"
	"github.com/maruel/go-thermal/session"
	"github.com/maruel/go-thermal/thermaltest"
)

func mainImpl() error {
	device := flag.Int("device", 1, "video device index")
	fake := flag.Bool("fake", false, "use a fake camera")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()
	if !*verbose {
		log.SetOutput(ioutil.Discard)
	}
	log.SetFlags(log.Lmicroseconds)

	if flag.NArg() != 1 {
		return errors.New("supply path to PNG to save")
	}

	var src session.FrameSource
	if *fake {
		src = thermaltest.New()
	} else {
		d, err := capture.Open(*device)
		if err != nil {
			return fmt.Errorf("%s\nIf testing without hardware, use -fake to simulate a camera", err)
		}
		src = d
	}
	defer src.Close()
	frame, err := src.NextFrame()
	if errors.Is(err, framesource.ErrEndOfStream) {
		return errors.New("the camera didn't return a frame")
	}
	if err != nil {
		return err
	}
	log.Printf("%s %s", frame.ID, frame.Bounds())
	f, err := os.Create(flag.Args()[0])
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, frame)
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "\nthermal-grab: %s.\n", err)
		os.Exit(1)
	}
}
