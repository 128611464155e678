// Package telemetry collects frame timing and viewer statistics and
// writes them to CSV for offline analysis.
package telemetry

import (
	"time"
)

// FrameCollector accumulates per-frame durations over a fixed wall-clock
// window, then flushes them as one WindowStats record.
type FrameCollector struct {
	window      time.Duration
	windowStart time.Time
	windowIndex int

	frameMs []float64

	// Previous cumulative counters, for per-window deltas
	prevDropped   int64
	prevRecovered int64
}

// NewFrameCollector creates a collector with the given window length in
// seconds.
func NewFrameCollector(windowSec float64) *FrameCollector {
	if windowSec <= 0 {
		windowSec = 5
	}
	return &FrameCollector{
		window:      time.Duration(windowSec * float64(time.Second)),
		windowStart: time.Now(),
	}
}

// RecordFrame adds one frame duration to the current window.
func (c *FrameCollector) RecordFrame(d time.Duration) {
	c.frameMs = append(c.frameMs, float64(d)/float64(time.Millisecond))
}

// WindowReady reports whether the current window has elapsed.
func (c *FrameCollector) WindowReady() bool {
	return time.Since(c.windowStart) >= c.window
}

// Flush aggregates the current window and starts the next one.
// dropped and recovered are cumulative scene counters; the record holds
// their per-window deltas.
func (c *FrameCollector) Flush(entityCount int, dropped, recovered int64, facing, plants, paths int) WindowStats {
	stats := computeWindowStats(c.frameMs)
	stats.WindowIndex = c.windowIndex
	stats.WindowSec = time.Since(c.windowStart).Seconds()
	stats.EntityCount = entityCount
	stats.DroppedSnapshots = dropped - c.prevDropped
	stats.RecoveredPanics = recovered - c.prevRecovered
	stats.CacheFacing = facing
	stats.CachePlants = plants
	stats.CachePaths = paths

	c.prevDropped = dropped
	c.prevRecovered = recovered
	c.frameMs = c.frameMs[:0]
	c.windowStart = time.Now()
	c.windowIndex++

	return stats
}
