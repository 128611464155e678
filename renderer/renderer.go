// Package renderer draws snapshot entities into the tank view. All
// drawing happens in world units; the scene applies the world-to-screen
// scale once per frame before calling in.
//
// The renderer owns every per-entity visual cache as an instance field.
// Caches are keyed by entity id and bounded by pruning against the live
// id set each frame, with a periodic wholesale sweep as a backstop.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/tanklab/tankview/assets"
	"github.com/tanklab/tankview/world"
)

// Renderer draws entities and maintains their visual caches.
type Renderer struct {
	sprites *assets.Loader
	bg      *Background

	facing *facingCache
	plants *plantGeomCache
	paths  *pathCache

	disposed bool
}

// New creates a renderer. sprites may still be loading; entities fall
// back to shape placeholders until it resolves.
func New(sprites *assets.Loader) *Renderer {
	return &Renderer{
		sprites: sprites,
		bg:      NewBackground(),
		facing:  newFacingCache(),
		plants:  newPlantGeomCache(),
		paths:   newPathCache(),
	}
}

// Clear paints the water background across the world rectangle. Runs
// regardless of sprite readiness.
func (r *Renderer) Clear(worldW, worldH, timeOfDay, elapsed float64) {
	if r.disposed {
		return
	}
	r.bg.Draw(worldW, worldH, timeOfDay, elapsed)
}

// DrawEntity draws one entity. Entities with missing trait data get a
// deterministic id-derived hue. showEffects gates energy bars and motion
// trails only; it never affects geometry or hit-testing.
func (r *Renderer) DrawEntity(e *world.Entity, elapsed float64, showEffects bool) {
	if r.disposed {
		return
	}

	switch e.Kind {
	case world.KindFish:
		r.drawFish(e, showEffects)
	case world.KindPlant:
		r.drawPlant(e)
	case world.KindFood:
		r.drawDot(e, rl.Color{R: 230, G: 170, B: 60, A: 255}, 0, 0)
	case world.KindPlantNectar:
		r.drawDot(e, rl.Color{R: 240, G: 130, B: 200, A: 255}, 0, 0)
	case world.KindLiveFood:
		// Live food wiggles so it reads as alive even between updates.
		wiggle := math.Sin(elapsed*10+float64(e.ID)) * 1.5
		r.drawDot(e, rl.Color{R: 200, G: 220, B: 120, A: 255}, wiggle, 0)
	case world.KindCrab:
		r.drawCrab(e, showEffects)
	case world.KindBall:
		r.drawBall(e)
	default:
		// Unknown kinds still get a visible marker rather than vanishing.
		r.drawDot(e, rl.Gray, 0, 0)
	}

	if showEffects && (e.Kind == world.KindFish || e.Kind == world.KindCrab) {
		r.drawEnergyBar(e)
	}
}

func (r *Renderer) drawFish(e *world.Entity, showEffects bool) {
	facing := r.facing.Facing(e.ID, e.VelX)
	tint := rl.ColorFromHSV(float32(e.HueOf()), 0.55, 1.0)

	if showEffects {
		t := r.paths.trailFor(e.ID)
		t.push(e.X, e.Y)
		r.drawTrail(t, tint)
	}

	if tex, ok := r.texture("fish"); ok {
		drawSpriteFlipped(tex, e, facing, tint)
		return
	}

	// Placeholder until sprites resolve: oriented triangle.
	drawFacingTriangle(e, facing, tint)
}

func (r *Renderer) drawCrab(e *world.Entity, _ bool) {
	facing := r.facing.Facing(e.ID, e.VelX)
	tint := rl.ColorFromHSV(float32(e.HueOf()), 0.4, 0.95)

	if tex, ok := r.texture("crab"); ok {
		drawSpriteFlipped(tex, e, facing, tint)
		return
	}
	drawFacingTriangle(e, facing, tint)
}

func (r *Renderer) drawPlant(e *world.Entity) {
	geom := r.plants.Geometry(e.ID)
	baseX := e.X
	baseY := e.Y + e.Height/2 // skeleton unit-space y grows upward from the base

	color := rl.ColorFromHSV(float32(e.HueOf()), 0.7, 0.8)
	for _, s := range geom {
		start := rl.NewVector2(float32(baseX+s.X1*e.Width), float32(baseY-s.Y1*e.Height))
		end := rl.NewVector2(float32(baseX+s.X2*e.Width), float32(baseY-s.Y2*e.Height))
		thick := float32(s.Width * e.Width)
		if thick < 1 {
			thick = 1
		}
		rl.DrawLineEx(start, end, thick, color)
	}
}

func (r *Renderer) drawBall(e *world.Entity) {
	radius := float32(e.Width / 2)
	center := rl.NewVector2(float32(e.X), float32(e.Y))
	rl.DrawCircleV(center, radius, rl.RayWhite)
	rl.DrawCircleLines(int32(e.X), int32(e.Y), radius, rl.DarkGray)
}

func (r *Renderer) drawDot(e *world.Entity, color rl.Color, dx, dy float64) {
	radius := float32(e.Width / 2)
	if radius < 1.5 {
		radius = 1.5
	}
	rl.DrawCircleV(rl.NewVector2(float32(e.X+dx), float32(e.Y+dy)), radius, color)
}

func (r *Renderer) drawEnergyBar(e *world.Entity) {
	energy := e.Energy
	if energy < 0 {
		energy = 0
	} else if energy > 1 {
		energy = 1
	}

	barW := float32(e.Width)
	x := float32(e.X) - barW/2
	y := float32(e.Y-e.Height/2) - 6

	rl.DrawRectangleRec(rl.NewRectangle(x, y, barW, 3), rl.Color{R: 0, G: 0, B: 0, A: 140})
	fill := rl.Color{R: uint8(220 * (1 - energy)), G: uint8(200 * energy), B: 40, A: 220}
	rl.DrawRectangleRec(rl.NewRectangle(x, y, barW*float32(energy), 3), fill)
}

func (r *Renderer) drawTrail(t *trail, tint rl.Color) {
	for i := 1; i < len(t.pts); i++ {
		alpha := float32(i) / float32(len(t.pts)) * 0.35
		a := t.pts[i-1]
		b := t.pts[i]
		rl.DrawLineEx(
			rl.NewVector2(float32(a.X), float32(a.Y)),
			rl.NewVector2(float32(b.X), float32(b.Y)),
			1, rl.Fade(tint, alpha),
		)
	}
}

func (r *Renderer) texture(name string) (rl.Texture2D, bool) {
	if r.sprites == nil || !r.sprites.Ready() {
		return rl.Texture2D{}, false
	}
	return r.sprites.Texture(name)
}

// drawSpriteFlipped draws a texture over the entity bounding box,
// mirroring horizontally when facing left. A negative source width is
// raylib's horizontal flip.
func drawSpriteFlipped(tex rl.Texture2D, e *world.Entity, facing float64, tint rl.Color) {
	srcW := float32(tex.Width)
	if facing < 0 {
		srcW = -srcW
	}
	src := rl.NewRectangle(0, 0, srcW, float32(tex.Height))
	dst := rl.NewRectangle(
		float32(e.X-e.Width/2), float32(e.Y-e.Height/2),
		float32(e.Width), float32(e.Height),
	)
	rl.DrawTexturePro(tex, src, dst, rl.NewVector2(0, 0), 0, tint)
}

// drawFacingTriangle draws a left- or right-pointing triangle filling
// the entity bounds.
func drawFacingTriangle(e *world.Entity, facing float64, color rl.Color) {
	hw := e.Width / 2
	hh := e.Height / 2
	nose := rl.NewVector2(float32(e.X+facing*hw), float32(e.Y))
	tailTop := rl.NewVector2(float32(e.X-facing*hw), float32(e.Y-hh))
	tailBot := rl.NewVector2(float32(e.X-facing*hw), float32(e.Y+hh))

	// Counter-clockwise winding depends on facing.
	if facing >= 0 {
		rl.DrawTriangle(nose, tailTop, tailBot, color)
	} else {
		rl.DrawTriangle(nose, tailBot, tailTop, color)
	}
}

// PruneFacing drops facing entries for ids absent from the live set.
// Called once per frame.
func (r *Renderer) PruneFacing(live map[int64]struct{}) {
	r.facing.Prune(live)
}

// PrunePlants drops plant skeletons for ids absent from the live set.
// Called once per frame.
func (r *Renderer) PrunePlants(live map[int64]struct{}) {
	r.plants.Prune(live)
}

// ClearPaths drops all motion trails. Called from the periodic
// maintenance sweep.
func (r *Renderer) ClearPaths() {
	r.paths.Clear()
}

// ClearPlants drops all plant skeletons. Called from the periodic
// maintenance sweep; skeletons regenerate deterministically.
func (r *Renderer) ClearPlants() {
	r.plants.Clear()
}

// CacheSizes reports current cache entry counts for telemetry.
func (r *Renderer) CacheSizes() (facing, plants, paths int) {
	return r.facing.Len(), r.plants.Len(), r.paths.Len()
}

// Unload releases all cached state and the sprite textures. Safe to
// call multiple times; must run on the render thread while the GL
// context is still alive.
func (r *Renderer) Unload() {
	if r.disposed {
		return
	}
	r.disposed = true
	r.facing = newFacingCache()
	r.plants = newPlantGeomCache()
	r.paths = newPathCache()
	if r.sprites != nil {
		r.sprites.Unload()
	}
}
