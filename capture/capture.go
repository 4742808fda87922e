// Copyright 2026 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package capture reads frames from a camera exposed as a video device, like
// a FLIR thermal camera in webcam mode.
package capture

import (
	"fmt"
	"time"

	"github.com/maruel/go-thermal/framesource"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// Device is an opened video device. It implements session.FrameSource.
type Device struct {
	id    int
	cam   *gocv.VideoCapture
	mat   gocv.Mat
	count int
}

// Open opens the video device with the index id.
func Open(id int) (*Device, error) {
	cam, err := gocv.VideoCaptureDevice(id)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open video device %d", id)
	}
	return &Device{id: id, cam: cam, mat: gocv.NewMat()}, nil
}

// NextFrame grabs a frame. A failed read is reported as the end of the
// stream since the device is gone.
func (d *Device) NextFrame() (framesource.Frame, error) {
	if ok := d.cam.Read(&d.mat); !ok || d.mat.Empty() {
		return framesource.Frame{}, errors.Wrapf(framesource.ErrEndOfStream, "cannot read device %d", d.id)
	}
	img, err := d.mat.ToImage()
	if err != nil {
		return framesource.Frame{}, errors.Wrap(err, "failed to convert frame")
	}
	d.count++
	return framesource.Frame{Image: img, ID: fmt.Sprintf("frame_%d", d.count), Timestamp: time.Now()}, nil
}

func (d *Device) Close() error {
	err := d.mat.Close()
	if err2 := d.cam.Close(); err == nil {
		err = err2
	}
	return err
}
