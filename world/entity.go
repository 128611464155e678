// Package world defines the snapshot data model streamed from the
// simulation backend. All values are read-only to the viewer; every
// update replaces the previous snapshot wholesale.
package world

import "hash/fnv"

// World dimensions in logical units. These match the backend's physical
// simulation bounds; all entity coordinates arrive in this space.
const (
	Width  = 1088.0
	Height = 612.0
)

// Kind identifies the entity type on the wire.
type Kind string

const (
	KindFish        Kind = "fish"
	KindPlant       Kind = "plant"
	KindFood        Kind = "food"
	KindLiveFood    Kind = "live_food"
	KindPlantNectar Kind = "plant_nectar"
	KindCrab        Kind = "crab"
	KindBall        Kind = "ball"
)

// Selectable reports whether entities of this kind participate in
// hit-testing. Food, nectar and ball-like decorations are drawn but
// never clickable.
func (k Kind) Selectable() bool {
	switch k {
	case KindFish, KindPlant, KindCrab:
		return true
	}
	return false
}

// Entity is one simulated object as reported by the backend. Position is
// the entity center; Width/Height span the full bounding box.
type Entity struct {
	ID     int64   `json:"id"`
	Kind   Kind    `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	VelX   float64 `json:"vel_x"`
	VelY   float64 `json:"vel_y"`
	Energy float64 `json:"energy"`

	// Visual traits; optional on the wire. Hue is nil when the backend
	// carries no genome data for this entity.
	Hue        *float64 `json:"hue,omitempty"`
	Pattern    string   `json:"pattern,omitempty"`
	Generation int      `json:"generation,omitempty"`
}

// Contains reports whether a world-space point lies inside the entity's
// axis-aligned bounding box.
func (e *Entity) Contains(wx, wy float64) bool {
	hw := e.Width / 2
	hh := e.Height / 2
	return wx >= e.X-hw && wx <= e.X+hw && wy >= e.Y-hh && wy <= e.Y+hh
}

// HueOf returns the entity's hue trait, falling back to a deterministic
// id-derived hue when the backend sent none.
func (e *Entity) HueOf() float64 {
	if e.Hue != nil {
		return *e.Hue
	}
	return FallbackHue(e.ID)
}

// FallbackHue maps an entity id to a stable hue in [0, 360). Entities
// without genome data keep the same color across frames and sessions.
func FallbackHue(id int64) float64 {
	h := fnv.New32a()
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(id >> (8 * i))
	}
	h.Write(buf[:])
	return float64(h.Sum32() % 360)
}
