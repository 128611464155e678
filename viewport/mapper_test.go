package viewport

import (
	"math"
	"testing"

	"github.com/tanklab/tankview/world"
)

func TestScaleFactors(t *testing.T) {
	m := New(1088, 612)
	if m.ScaleX() != 1.0 || m.ScaleY() != 1.0 {
		t.Errorf("expected 1:1 scale at native size, got (%f, %f)", m.ScaleX(), m.ScaleY())
	}

	m.Resize(544, 306)
	if m.ScaleX() != 0.5 || m.ScaleY() != 0.5 {
		t.Errorf("expected 0.5 scale at half size, got (%f, %f)", m.ScaleX(), m.ScaleY())
	}
}

func TestRoundtrip(t *testing.T) {
	// Round-trip must hold for any destination size and display scaling.
	sizes := []struct{ w, h float64 }{
		{1088, 612},
		{800, 600},
		{1920, 1080},
		{333, 777},
	}
	scales := []struct{ sx, sy float64 }{
		{1, 1},
		{2, 2},
		{1.5, 1.25},
	}
	points := []struct{ wx, wy float64 }{
		{0, 0},
		{1088, 612},
		{544, 306},
		{100.25, 599.75},
	}

	for _, sz := range sizes {
		for _, sc := range scales {
			m := New(sz.w, sz.h)
			m.SetDisplayScale(sc.sx, sc.sy)
			for _, p := range points {
				sx, sy := m.WorldToScreen(p.wx, p.wy)
				// Pointer events arrive in framebuffer pixels.
				wx, wy, ok := m.ScreenToWorld(sx*sc.sx, sy*sc.sy)
				if !ok {
					t.Fatalf("ScreenToWorld not ok for valid mapper")
				}
				if math.Abs(wx-p.wx) > 1e-9 || math.Abs(wy-p.wy) > 1e-9 {
					t.Errorf("roundtrip %vx%v scale %vx%v: (%f,%f) -> (%f,%f)",
						sz.w, sz.h, sc.sx, sc.sy, p.wx, p.wy, wx, wy)
				}
			}
		}
	}
}

func TestZeroSizeShortCircuits(t *testing.T) {
	m := New(0, 0)
	if m.Valid() {
		t.Fatal("zero-size mapper should be invalid")
	}

	sx, sy := m.WorldToScreen(100, 100)
	if sx != 0 || sy != 0 {
		t.Errorf("expected no-op forward transform, got (%f, %f)", sx, sy)
	}

	_, _, ok := m.ScreenToWorld(100, 100)
	if ok {
		t.Error("expected inverse transform to report not ok")
	}
}

func TestInWorld(t *testing.T) {
	if !InWorld(0, 0) || !InWorld(world.Width, world.Height) {
		t.Error("boundary points should be in world")
	}
	if InWorld(-1, 0) || InWorld(0, world.Height+1) {
		t.Error("points outside bounds should not be in world")
	}
}
