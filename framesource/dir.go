// Copyright 2026 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package framesource

import (
	"io/ioutil"
	"log"
	"path/filepath"
)

// Dir returns the images of a directory in file name order.
type Dir struct {
	root  string
	names []string
}

// NewDir lists the images in root. Files added afterward are ignored; use
// Follow for that.
func NewDir(root string) (*Dir, error) {
	names, err := listImages(root)
	if err != nil {
		return nil, err
	}
	return &Dir{root: root, names: names}, nil
}

// Len returns the number of frames left.
func (d *Dir) Len() int {
	return len(d.names)
}

// NextFrame returns the next image that can be decoded. Unreadable files are
// logged and skipped.
func (d *Dir) NextFrame() (Frame, error) {
	for len(d.names) != 0 {
		name := d.names[0]
		d.names = d.names[1:]
		f, err := Load(filepath.Join(d.root, name))
		if err != nil {
			log.Printf("skipping %s: %s", name, err)
			continue
		}
		return f, nil
	}
	return Frame{}, ErrEndOfStream
}

func (d *Dir) Close() error {
	d.names = nil
	return nil
}

// listImages returns the image file names in root, sorted.
func listImages(root string) ([]string, error) {
	entries, err := ioutil.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && IsImage(e.Name()) {
			out = append(out, e.Name())
		}
	}
	return out, nil
}
