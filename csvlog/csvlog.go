// Copyright 2026 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package csvlog writes sampling session rows as CSV.
//
// Each row is the frame name, the wall clock time then one column per target
// point. Failed estimates are written as "Error" so the temperature columns
// are of mixed type.
package csvlog

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/maruel/go-thermal/session"
)

// TimeFormat is the format of the Timestamp column.
const TimeFormat = "2006-01-02 15:04:05"

// ErrorMarker replaces the temperature of a failed estimate.
const ErrorMarker = "Error"

// Header returns the header line for the target point labels.
func Header(labels []string) []string {
	out := make([]string, 0, 2+len(labels))
	out = append(out, "Photo", "Timestamp")
	for _, l := range labels {
		out = append(out, "Estimated Temperature "+l+" (C)")
	}
	return out
}

// Writer implements session.RowLogger.
type Writer struct {
	w      *csv.Writer
	closer io.Closer
}

// New writes the header to w and returns a Writer.
func New(w io.Writer, labels []string) (*Writer, error) {
	out := &Writer{w: csv.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		out.closer = c
	}
	if err := out.write(Header(labels)); err != nil {
		return nil, err
	}
	return out, nil
}

// Create creates the file at path.
func Create(path string, labels []string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w, err := New(f, labels)
	if err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

// WriteRow writes and flushes one row, so an interrupted session keeps all the
// rows logged so far.
func (w *Writer) WriteRow(r session.SampleRow) error {
	line := make([]string, 0, 2+len(r.Estimates))
	line = append(line, r.FrameID, r.Timestamp.Format(TimeFormat))
	for _, e := range r.Estimates {
		if e.Err != nil {
			line = append(line, ErrorMarker)
		} else {
			line = append(line, strconv.FormatFloat(e.Temperature, 'f', 2, 64))
		}
	}
	return w.write(line)
}

// Close flushes and closes the underlying writer if it is an io.Closer.
func (w *Writer) Close() error {
	w.w.Flush()
	err := w.w.Error()
	if w.closer != nil {
		if err2 := w.closer.Close(); err == nil {
			err = err2
		}
		w.closer = nil
	}
	return err
}

func (w *Writer) write(line []string) error {
	if err := w.w.Write(line); err != nil {
		return err
	}
	w.w.Flush()
	return w.w.Error()
}
