// Copyright 2026 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package plotfeed serves a live temperature chart.
//
// Points appended to the Server are streamed as JSON over a websocket at
// /stream; the page at / draws one line per label. Prometheus metrics are
// exported at /metrics.
package plotfeed

import (
	"bufio"
	_ "embed"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/websocket"
)

//go:embed static/root.html
var rootHTML []byte

// Point is one sample of a series.
type Point struct {
	Label   string  `json:"label"`
	Elapsed float64 `json:"t"` // Seconds since the session started.
	Value   float64 `json:"v"`
}

// Server implements session.Plotter.
type Server struct {
	cond    sync.Cond
	points  []Point // Never trimmed, so late clients get the whole series.
	closed  bool
	handler http.Handler
	srv     *http.Server
}

// New returns a Server that is not listening. Use it as an http.Handler.
func New() *Server {
	s := &Server{}
	s.cond.L = &sync.Mutex{}
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.root)
	mux.Handle("/stream", websocket.Handler(s.stream))
	mux.Handle("/metrics", promhttp.Handler())
	s.handler = loggingHandler{mux}
	return s
}

// Start listens on addr, e.g. ":8010".
func Start(addr string) (*Server, net.Addr, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, err
	}
	s := New()
	s.srv = &http.Server{Handler: s}
	go s.srv.Serve(ln)
	return s, ln.Addr(), nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Append adds a point to the series named label.
func (s *Server) Append(label string, elapsed time.Duration, temperature float64) error {
	s.cond.L.Lock()
	defer s.cond.L.Unlock()
	s.points = append(s.points, Point{Label: label, Elapsed: elapsed.Seconds(), Value: temperature})
	s.cond.Broadcast()
	return nil
}

// Len returns the number of points appended so far.
func (s *Server) Len() int {
	s.cond.L.Lock()
	defer s.cond.L.Unlock()
	return len(s.points)
}

// Close disconnects the clients and stops listening.
func (s *Server) Close() error {
	s.cond.L.Lock()
	s.closed = true
	s.cond.Broadcast()
	s.cond.L.Unlock()
	if s.srv != nil {
		return s.srv.Close()
	}
	return nil
}

func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	if _, err := w.Write(rootHTML); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// stream sends all the points as they are appended, starting with the oldest.
func (s *Server) stream(w *websocket.Conn) {
	log.Printf("websocket from %s", w.Request().RemoteAddr)
	defer w.Close()
	next := 0
	s.cond.L.Lock()
	defer s.cond.L.Unlock()
	for !s.closed {
		for ; !s.closed && next != len(s.points); next++ {
			p := s.points[next]
			s.cond.L.Unlock()
			// Do the actual I/O without the lock.
			err := websocket.JSON.Send(w, &p)
			s.cond.L.Lock()
			if err != nil {
				log.Printf("websocket err: %s", err)
				return
			}
		}
		if !s.closed {
			s.cond.Wait()
		}
	}
}

// Private details.

type loggingHandler struct {
	handler http.Handler
}

type loggingResponseWriter struct {
	http.ResponseWriter
	length int
	status int
}

func (l *loggingResponseWriter) Write(data []byte) (size int, err error) {
	size, err = l.ResponseWriter.Write(data)
	l.length += size
	return
}

func (l *loggingResponseWriter) WriteHeader(status int) {
	l.ResponseWriter.WriteHeader(status)
	l.status = status
}

// Hijack is needed for websocket.
func (l *loggingResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h := l.ResponseWriter.(http.Hijacker)
	return h.Hijack()
}

// ServeHTTP logs each HTTP request.
func (l loggingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	lrw := &loggingResponseWriter{ResponseWriter: w}
	l.handler.ServeHTTP(lrw, r)
	log.Printf("%s - %3d %6db %4s %s\n", r.RemoteAddr, lrw.status, lrw.length, r.Method, r.RequestURI)
}
