// This file is part of Retrobridge.
//
// Retrobridge is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Retrobridge is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Retrobridge.  If not, see <https://www.gnu.org/licenses/>.

// Package metrics exports counters for the frame handoff, the watchdog and
// the audio drain in the prometheus format.
//
// The metrics are registered with the default prometheus registry when the
// package is initialised. Handler() serves them.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "retrobridge"

var (
	// Frames counts presentation ticks by outcome: "presented" or "duped"
	Frames = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Presentation ticks by outcome",
		},
		[]string{"outcome"},
	)

	// FenceResults counts the result of each wait on the frame fence
	FenceResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fence_results_total",
			Help:      "Frame fence waits by result",
		},
		[]string{"result"},
	)

	// WatchdogTransitions counts pauses and resumes made by the watchdog
	WatchdogTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "watchdog_transitions_total",
			Help:      "Pauses and resumes made by the watchdog",
		},
		[]string{"transition"},
	)

	// AudioFrames counts the stereo frames given to the host
	AudioFrames = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audio_frames_total",
			Help:      "Stereo audio frames given to the host",
		},
	)

	// ContextPool is the number of contexts in each state
	ContextPool = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "context_pool",
			Help:      "Number of GL contexts by state",
		},
		[]string{"state"},
	)

	// TickSeconds is the time taken by each presentation tick
	TickSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_seconds",
			Help:      "Duration of the presentation tick",
			Buckets:   []float64{0.0005, 0.001, 0.002, 0.004, 0.008, 0.016, 0.033, 0.066},
		},
	)
)

// Frame records the outcome of a presentation tick.
func Frame(presented bool) {
	if presented {
		Frames.WithLabelValues("presented").Inc()
	} else {
		Frames.WithLabelValues("duped").Inc()
	}
}

// Fence records the result of a fence wait. The result is the string form
// of fence.Result.
func Fence(result string) {
	FenceResults.WithLabelValues(result).Inc()
}

// Watchdog records a pause or a resume.
func Watchdog(paused bool) {
	if paused {
		WatchdogTransitions.WithLabelValues("pause").Inc()
	} else {
		WatchdogTransitions.WithLabelValues("resume").Inc()
	}
}

// Audio records the number of frames drained.
func Audio(frames int) {
	AudioFrames.Add(float64(frames))
}

// Pool records the number of available and in-use contexts.
func Pool(available int, inUse int) {
	ContextPool.WithLabelValues("available").Set(float64(available))
	ContextPool.WithLabelValues("in_use").Set(float64(inUse))
}

// Tick records the duration of a presentation tick.
func Tick(d time.Duration) {
	TickSeconds.Observe(d.Seconds())
}

// Handler returns the HTTP handler that serves the metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
