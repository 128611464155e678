package telemetry

import (
	"math"
	"testing"
	"time"
)

func TestComputeWindowStatsEmpty(t *testing.T) {
	ws := computeWindowStats(nil)
	if ws.Frames != 0 || ws.FPS != 0 {
		t.Errorf("expected zero stats for empty window, got %+v", ws)
	}
}

func TestComputeWindowStats(t *testing.T) {
	// 100 frames of 10ms each: mean 10ms, 100 fps, flat percentiles.
	frames := make([]float64, 100)
	for i := range frames {
		frames[i] = 10
	}

	ws := computeWindowStats(frames)
	if ws.Frames != 100 {
		t.Errorf("expected 100 frames, got %d", ws.Frames)
	}
	if math.Abs(ws.FrameMsMean-10) > 1e-9 {
		t.Errorf("expected mean 10ms, got %v", ws.FrameMsMean)
	}
	if math.Abs(ws.FPS-100) > 1e-9 {
		t.Errorf("expected 100 fps, got %v", ws.FPS)
	}
	if ws.FrameMsP50 != 10 || ws.FrameMsP99 != 10 {
		t.Errorf("expected flat percentiles at 10ms, got p50=%v p99=%v", ws.FrameMsP50, ws.FrameMsP99)
	}
}

func TestComputeWindowStatsPercentilesOrdered(t *testing.T) {
	frames := []float64{5, 8, 10, 12, 15, 20, 40, 9, 11, 13}
	ws := computeWindowStats(frames)

	if ws.FrameMsP50 > ws.FrameMsP90 || ws.FrameMsP90 > ws.FrameMsP99 {
		t.Errorf("percentiles out of order: p50=%v p90=%v p99=%v",
			ws.FrameMsP50, ws.FrameMsP90, ws.FrameMsP99)
	}
	// Input order must not matter.
	if ws.FrameMsP99 < 20 {
		t.Errorf("expected p99 to capture the 40ms outlier region, got %v", ws.FrameMsP99)
	}
}

func TestFlushResetsWindowAndDeltas(t *testing.T) {
	c := NewFrameCollector(5)
	for i := 0; i < 10; i++ {
		c.RecordFrame(16 * time.Millisecond)
	}

	ws := c.Flush(42, 7, 1, 3, 4, 5)
	if ws.Frames != 10 || ws.EntityCount != 42 {
		t.Errorf("unexpected first window: %+v", ws)
	}
	if ws.DroppedSnapshots != 7 || ws.RecoveredPanics != 1 {
		t.Errorf("expected raw counters on first flush, got %+v", ws)
	}
	if ws.CacheFacing != 3 || ws.CachePlants != 4 || ws.CachePaths != 5 {
		t.Errorf("cache sizes not carried: %+v", ws)
	}

	// Second window: counters grew to 9 and 1; deltas are 2 and 0.
	c.RecordFrame(16 * time.Millisecond)
	ws2 := c.Flush(42, 9, 1, 0, 0, 0)
	if ws2.WindowIndex != 1 {
		t.Errorf("expected window index 1, got %d", ws2.WindowIndex)
	}
	if ws2.Frames != 1 {
		t.Errorf("expected frame buffer reset, got %d frames", ws2.Frames)
	}
	if ws2.DroppedSnapshots != 2 || ws2.RecoveredPanics != 0 {
		t.Errorf("expected deltas 2/0, got %d/%d", ws2.DroppedSnapshots, ws2.RecoveredPanics)
	}
}
