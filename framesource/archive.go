// Copyright 2026 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package framesource

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// Archiver saves sampled frames as image_000.png, image_001.png, etc.
type Archiver struct {
	root string
	next int
}

// NewArchiver creates root if needed.
func NewArchiver(root string) (*Archiver, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, err
	}
	return &Archiver{root: root}, nil
}

// Save writes img and returns its file name.
func (a *Archiver) Save(img image.Image) (string, error) {
	name := fmt.Sprintf("image_%03d.png", a.next)
	a.next++
	f, err := os.Create(filepath.Join(a.root, name))
	if err != nil {
		return "", err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", err
	}
	return name, f.Close()
}
