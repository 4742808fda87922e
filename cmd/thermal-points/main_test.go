// Copyright 2026 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"github.com/maruel/go-thermal/framesource"
	"github.com/maruel/go-thermal/points"
)

func TestParseInput(t *testing.T) {
	data := []struct {
		in    string
		x, y  int
		label string
	}{
		{"1 2", 1, 2, ""},
		{"3, 4, hot spot", 3, 4, "hot spot"},
		{"  5 6 a  ", 5, 6, "a"},
	}
	for i, line := range data {
		x, y, label, err := parseInput(line.in)
		if err != nil {
			t.Fatalf("%d: %v", i, err)
		}
		if x != line.x || y != line.y || label != line.label {
			t.Fatalf("%d: got (%d, %d, %q)", i, x, y, label)
		}
	}
	for _, in := range []string{"", "1", "a 2", "1 b"} {
		if _, _, _, err := parseInput(in); err == nil {
			t.Fatalf("%q: expected error", in)
		}
	}
}

func TestPick(t *testing.T) {
	f := framesource.Frame{Image: image.NewRGBA(image.Rect(0, 0, 10, 10))}
	p := points.NewPicker(2, f.Bounds())
	in := strings.NewReader("garbage\n20 20\n1 1 left\n2 2\n3 3\n")
	var out bytes.Buffer
	pick(p, f, in, &out)
	want := []points.TargetPoint{{X: 1, Y: 1, Label: "left"}, {X: 2, Y: 2, Label: "Point 2"}}
	got := p.Points()
	if len(got) != len(want) {
		t.Fatal(got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%d: %v != %v", i, got[i], want[i])
		}
	}
	if !strings.Contains(out.String(), "outside") {
		t.Fatal(out.String())
	}
}
