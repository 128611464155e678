package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Number of vertical light bands used for the water shimmer.
const shimmerBands = 32

// Background paints the tank water: a vertical gradient tinted by the
// diurnal cycle, with a drifting simplex-noise shimmer near the surface.
// Pure CPU noise, no shaders, so it renders before any asset resolves.
type Background struct {
	noise opensimplex.Noise
}

// NewBackground creates the water background painter.
func NewBackground() *Background {
	return &Background{noise: opensimplex.NewNormalized(7)}
}

// daylight maps a diurnal phase in [0, 1) to brightness in [0, 1].
// Noon (0.5) is full daylight, midnight (0.0) is darkest.
func daylight(timeOfDay float64) float64 {
	d := math.Sin(2 * math.Pi * (timeOfDay - 0.25))
	if d < 0 {
		return 0
	}
	return d
}

// Draw paints the background across the world rectangle. Coordinates are
// world units; the caller has already applied the world-to-screen scale.
func (b *Background) Draw(worldW, worldH, timeOfDay, elapsed float64) {
	day := daylight(timeOfDay)

	// Surface water is brighter than the depths; both dim at night.
	top := shade(60, 140, 200, 0.35+0.65*day)
	bottom := shade(8, 30, 70, 0.25+0.45*day)
	rl.DrawRectangleGradientV(0, 0, int32(worldW), int32(worldH), top, bottom)

	// Shimmer bands drift horizontally with time.
	bandW := worldW / shimmerBands
	for i := 0; i < shimmerBands; i++ {
		x := float64(i) * bandW
		n := b.noise.Eval2(float64(i)*0.35, elapsed*0.15)
		depth := worldH * (0.08 + 0.18*n)
		alpha := uint8(18 + 30*day*n)
		rl.DrawRectangle(int32(x), 0, int32(bandW+1), int32(depth),
			rl.Color{R: 255, G: 255, B: 255, A: alpha})
	}
}

// shade scales an RGB color by a brightness factor.
func shade(r, g, bl float64, f float64) rl.Color {
	return rl.Color{
		R: uint8(r * f),
		G: uint8(g * f),
		B: uint8(bl * f),
		A: 255,
	}
}
