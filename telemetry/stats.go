package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated viewer statistics for one time window.
type WindowStats struct {
	WindowIndex int     `csv:"window"`
	WindowSec   float64 `csv:"window_sec"`

	// Frame timing
	Frames      int     `csv:"frames"`
	FPS         float64 `csv:"fps"`
	FrameMsMean float64 `csv:"frame_ms_mean"`
	FrameMsP50  float64 `csv:"frame_ms_p50"`
	FrameMsP90  float64 `csv:"frame_ms_p90"`
	FrameMsP99  float64 `csv:"frame_ms_p99"`

	// Scene state at window end
	EntityCount      int   `csv:"entities"`
	DroppedSnapshots int64 `csv:"dropped_snapshots"`
	RecoveredPanics  int64 `csv:"recovered_panics"`
	CacheFacing      int   `csv:"cache_facing"`
	CachePlants      int   `csv:"cache_plants"`
	CachePaths       int   `csv:"cache_paths"`
}

// computeWindowStats aggregates frame durations (milliseconds).
func computeWindowStats(frameMs []float64) WindowStats {
	ws := WindowStats{Frames: len(frameMs)}
	if len(frameMs) == 0 {
		return ws
	}

	sorted := make([]float64, len(frameMs))
	copy(sorted, frameMs)
	sort.Float64s(sorted)

	ws.FrameMsMean = stat.Mean(sorted, nil)
	ws.FrameMsP50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	ws.FrameMsP90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	ws.FrameMsP99 = stat.Quantile(0.99, stat.Empirical, sorted, nil)
	if ws.FrameMsMean > 0 {
		ws.FPS = 1000 / ws.FrameMsMean
	}
	return ws
}
