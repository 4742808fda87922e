// Copyright 2026 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package plotfeed

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/websocket"
)

func TestStream(t *testing.T) {
	s := New()
	ts := httptest.NewServer(s)
	defer ts.Close()

	// Points appended before the client connects are sent too.
	if err := s.Append("Point 1", 2*time.Second, 21.5); err != nil {
		t.Fatal(err)
	}
	ws, err := websocket.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/stream", "", ts.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer ws.Close()
	if err := s.Append("Point 2", 2500*time.Millisecond, -4); err != nil {
		t.Fatal(err)
	}
	want := []Point{{"Point 1", 2, 21.5}, {"Point 2", 2.5, -4}}
	for i, w := range want {
		var p Point
		if err := websocket.JSON.Receive(ws, &p); err != nil {
			t.Fatal(err)
		}
		if p != w {
			t.Fatalf("#%d: %#v != %#v", i, p, w)
		}
	}
	if s.Len() != 2 {
		t.Fatal(s.Len())
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	// The server side hangs up once closed.
	var p Point
	if err := websocket.JSON.Receive(ws, &p); err == nil {
		t.Fatal("expected connection to be closed")
	}
}

func TestPages(t *testing.T) {
	s := New()
	ts := httptest.NewServer(s)
	defer ts.Close()
	defer s.Close()
	data := []struct {
		path   string
		status int
		body   string
	}{
		{"/", 200, "Real-Time Temperature Data"},
		{"/metrics", 200, "go_goroutines"},
		{"/foo", 404, "Not Found"},
	}
	for _, line := range data {
		resp, err := http.Get(ts.URL + line.path)
		if err != nil {
			t.Fatal(err)
		}
		b, err := ioutil.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != line.status || !strings.Contains(string(b), line.body) {
			t.Fatalf("%s: %d %q", line.path, resp.StatusCode, b)
		}
	}
}

func TestStart(t *testing.T) {
	s, addr, err := Start("127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Get("http://" + addr.String() + "/")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatal(resp.StatusCode)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
}
