// Package viewport provides the world-to-screen coordinate mapping for
// the tank view.
package viewport

import "github.com/tanklab/tankview/world"

// Mapper projects the fixed 1088x612 world space onto a destination
// surface of arbitrary pixel size. X and Y scale independently, so a
// non-proportional window stretches the tank rather than letterboxing,
// matching the backend's own presentation.
//
// DisplayScale accounts for the OS scaling the framebuffer independently
// of the logical window size (HiDPI). Drawing uses the world scale only;
// pointer input must divide out the display scale first, then the world
// scale, to land back in world units.
type Mapper struct {
	// Destination surface size in logical pixels
	DestW, DestH float64

	// Framebuffer pixels per logical pixel (1.0 on standard displays)
	DisplayScaleX, DisplayScaleY float64
}

// New creates a mapper for the given destination size with no display
// scaling.
func New(destW, destH float64) *Mapper {
	return &Mapper{DestW: destW, DestH: destH, DisplayScaleX: 1, DisplayScaleY: 1}
}

// Valid reports whether the mapper has a usable destination. A zero or
// negative destination (minimized window, torn-down surface) makes every
// transform a no-op.
func (m *Mapper) Valid() bool {
	return m.DestW > 0 && m.DestH > 0 && m.DisplayScaleX > 0 && m.DisplayScaleY > 0
}

// ScaleX returns the world-to-screen X scale factor.
func (m *Mapper) ScaleX() float64 { return m.DestW / world.Width }

// ScaleY returns the world-to-screen Y scale factor.
func (m *Mapper) ScaleY() float64 { return m.DestH / world.Height }

// Resize updates the destination surface size.
func (m *Mapper) Resize(destW, destH float64) {
	m.DestW = destW
	m.DestH = destH
}

// SetDisplayScale records the framebuffer-to-logical pixel ratio.
func (m *Mapper) SetDisplayScale(sx, sy float64) {
	m.DisplayScaleX = sx
	m.DisplayScaleY = sy
}

// WorldToScreen converts world coordinates to logical screen coordinates.
func (m *Mapper) WorldToScreen(wx, wy float64) (sx, sy float64) {
	if !m.Valid() {
		return 0, 0
	}
	return wx * m.ScaleX(), wy * m.ScaleY()
}

// ScreenToWorld converts a raw pointer position (framebuffer pixels) to
// world coordinates. The position is first mapped into logical pixels by
// dividing out the display scale, then into world units.
func (m *Mapper) ScreenToWorld(px, py float64) (wx, wy float64, ok bool) {
	if !m.Valid() {
		return 0, 0, false
	}
	lx := px / m.DisplayScaleX
	ly := py / m.DisplayScaleY
	return lx / m.ScaleX(), ly / m.ScaleY(), true
}

// InWorld reports whether a world point lies inside the tank bounds.
func InWorld(wx, wy float64) bool {
	return wx >= 0 && wx <= world.Width && wy >= 0 && wy <= world.Height
}
