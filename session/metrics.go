// Copyright 2026 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	samplesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "thermal_samples_total",
		Help: "Number of sampling ticks.",
	})
	calibrationErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "thermal_calibration_errors_total",
		Help: "Number of sampling ticks where the scale bar could not be read.",
	})
	estimateErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "thermal_estimate_errors_total",
		Help: "Number of failed estimates per target point.",
	}, []string{"label"})
	sampleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "thermal_sample_duration_seconds",
		Help: "Time spent calibrating, estimating and logging one sample.",
	})
)
