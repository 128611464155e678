package renderer

import (
	"math"
	"math/rand"
)

// Segment is one branch of a plant's fractal skeleton, in unit space:
// x in [-0.5, 0.5], y in [0, 1] with 0 at the plant base. Drawing scales
// it by the entity's bounding box.
type Segment struct {
	X1, Y1, X2, Y2 float64
	Width          float64
}

// plantGeomCache holds per-plant fractal skeletons. Geometry is
// deterministic in the entity id, so a plant keeps its shape across
// frames and after a cache sweep.
type plantGeomCache struct {
	geoms map[int64][]Segment
}

func newPlantGeomCache() *plantGeomCache {
	return &plantGeomCache{geoms: make(map[int64][]Segment)}
}

// Geometry returns the cached skeleton for a plant, generating it on
// first sight.
func (c *plantGeomCache) Geometry(id int64) []Segment {
	if g, ok := c.geoms[id]; ok {
		return g
	}
	g := generatePlantGeometry(id)
	c.geoms[id] = g
	return g
}

// Prune drops skeletons for ids not in the live set.
func (c *plantGeomCache) Prune(live map[int64]struct{}) {
	for id := range c.geoms {
		if _, ok := live[id]; !ok {
			delete(c.geoms, id)
		}
	}
}

// Clear drops all skeletons. Geometry is deterministic in the id, so
// plants regrow identically on the next draw.
func (c *plantGeomCache) Clear() {
	c.geoms = make(map[int64][]Segment)
}

// Len returns the number of cached skeletons.
func (c *plantGeomCache) Len() int { return len(c.geoms) }

// Branching parameters for the plant fractal.
const (
	plantBranchDepth  = 4
	plantBranchSpread = 0.55 // radians of fan per split
	plantLengthDecay  = 0.62
)

// generatePlantGeometry builds a fractal branch skeleton seeded by the
// entity id.
func generatePlantGeometry(id int64) []Segment {
	rng := rand.New(rand.NewSource(id))

	var segs []Segment
	// Trunk grows straight up from the base with slight lean.
	lean := (rng.Float64() - 0.5) * 0.3
	growBranch(&segs, rng, 0, 0, math.Pi/2+lean, 0.38, plantBranchDepth)
	return segs
}

// growBranch appends one branch segment and recurses into two or three
// children. Angles measure counter-clockwise from +x with y pointing up.
func growBranch(segs *[]Segment, rng *rand.Rand, x, y, angle, length float64, depth int) {
	if depth <= 0 {
		return
	}

	x2 := x + math.Cos(angle)*length
	y2 := y + math.Sin(angle)*length
	*segs = append(*segs, Segment{
		X1: x, Y1: y, X2: x2, Y2: y2,
		Width: 0.015 * float64(depth),
	})

	children := 2
	if rng.Float64() < 0.35 {
		children = 3
	}
	for i := 0; i < children; i++ {
		frac := float64(i)/float64(children-1) - 0.5 // -0.5 .. 0.5
		childAngle := angle + frac*2*plantBranchSpread + (rng.Float64()-0.5)*0.2
		growBranch(segs, rng, x2, y2, childAngle, length*plantLengthDecay, depth-1)
	}
}
