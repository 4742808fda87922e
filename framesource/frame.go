// Copyright 2026 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package framesource provides frames to a sampling session from still images
// on disk.
package framesource

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	// Formats supported in a frames directory.
	_ "image/jpeg"
	_ "image/png"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// ErrEndOfStream is returned by a source that has no more frames.
var ErrEndOfStream = errors.New("end of stream")

// Frame is a decoded false-color frame.
type Frame struct {
	image.Image
	ID        string    // File name, or sequence number for live sources.
	Timestamp time.Time // Capture time; file modification time for stills.
}

// IsImage returns true if the file name has an extension of a supported image
// format.
func IsImage(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff":
		return true
	default:
		return false
	}
}

// Load decodes the image file at path.
func Load(path string) (Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return Frame{}, err
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return Frame{}, err
	}
	img, _, err := image.Decode(f)
	if err != nil {
		return Frame{}, errors.Wrapf(err, "failed to decode %s", path)
	}
	return Frame{Image: img, ID: filepath.Base(path), Timestamp: fi.ModTime()}, nil
}
