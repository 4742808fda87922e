// Copyright 2026 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package framesource

import (
	"log"
	"path/filepath"

	fsnotify "gopkg.in/fsnotify.v1"
)

// Follow returns the images already present in a directory, then each image
// written to it afterward, as an external capture tool saves them.
type Follow struct {
	root    string
	stop    <-chan struct{}
	watcher *fsnotify.Watcher
	pending []string
	seen    map[string]bool
}

// NewFollow starts watching root. NextFrame returns ErrEndOfStream once stop is
// closed.
func NewFollow(root string, stop <-chan struct{}) (*Follow, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err = watcher.Add(root); err != nil {
		watcher.Close()
		return nil, err
	}
	names, err := listImages(root)
	if err != nil {
		watcher.Close()
		return nil, err
	}
	return &Follow{root: root, stop: stop, watcher: watcher, pending: names, seen: map[string]bool{}}, nil
}

// NextFrame blocks until a new image is decoded.
func (f *Follow) NextFrame() (Frame, error) {
	for {
		for len(f.pending) != 0 {
			name := f.pending[0]
			f.pending = f.pending[1:]
			fr, err := Load(filepath.Join(f.root, name))
			if err != nil {
				// Likely still being written; the next write event retries it.
				log.Printf("not ready %s: %s", name, err)
				continue
			}
			f.seen[name] = true
			return fr, nil
		}
		select {
		case <-f.stop:
			return Frame{}, ErrEndOfStream
		case err := <-f.watcher.Errors:
			return Frame{}, err
		case e := <-f.watcher.Events:
			name := filepath.Base(e.Name)
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 && IsImage(name) && !f.seen[name] {
				f.queue(name)
			}
		}
	}
}

func (f *Follow) Close() error {
	return f.watcher.Close()
}

func (f *Follow) queue(name string) {
	for _, p := range f.pending {
		if p == name {
			return
		}
	}
	f.pending = append(f.pending, name)
}
