package renderer

import "testing"

func TestFacingRetainedWhileIdle(t *testing.T) {
	c := newFacingCache()

	if got := c.Facing(1, -2.0); got != -1 {
		t.Fatalf("expected facing -1 while swimming left, got %v", got)
	}
	// Hovering in place keeps the last facing.
	if got := c.Facing(1, 0.01); got != -1 {
		t.Errorf("expected retained facing -1 at near-zero velocity, got %v", got)
	}
	if got := c.Facing(1, 2.0); got != 1 {
		t.Errorf("expected facing 1 after turning right, got %v", got)
	}
}

func TestFacingDefaultsRight(t *testing.T) {
	c := newFacingCache()
	if got := c.Facing(5, 0); got != 1 {
		t.Errorf("expected default facing 1 for unseen idle entity, got %v", got)
	}
}

func TestFacingPrune(t *testing.T) {
	c := newFacingCache()
	for id := int64(0); id < 10; id++ {
		c.Facing(id, 1.0)
	}

	live := map[int64]struct{}{3: {}, 7: {}}
	c.Prune(live)

	if c.Len() != 2 {
		t.Errorf("expected 2 entries after prune, got %d", c.Len())
	}
}

func TestCacheBoundUnderChurn(t *testing.T) {
	// Spawn/despawn cycles with per-cycle pruning: caches must track the
	// live set, never the total of everything ever seen.
	facing := newFacingCache()
	plants := newPlantGeomCache()

	const cycles = 10000
	const liveCount = 5

	live := make(map[int64]struct{}, liveCount)
	for cycle := 0; cycle < cycles; cycle++ {
		clear(live)
		base := int64(cycle * liveCount)
		for i := int64(0); i < liveCount; i++ {
			id := base + i
			live[id] = struct{}{}
			facing.Facing(id, 1.0)
			plants.Geometry(id)
		}
		facing.Prune(live)
		plants.Prune(live)
	}

	if facing.Len() > liveCount {
		t.Errorf("facing cache grew to %d entries, want <= %d", facing.Len(), liveCount)
	}
	if plants.Len() > liveCount {
		t.Errorf("plant cache grew to %d entries, want <= %d", plants.Len(), liveCount)
	}
}

func TestTrailRingBounded(t *testing.T) {
	tr := &trail{}
	for i := 0; i < trailMaxPoints*3; i++ {
		tr.push(float64(i), 0)
	}
	if len(tr.pts) != trailMaxPoints {
		t.Fatalf("trail grew to %d points, want %d", len(tr.pts), trailMaxPoints)
	}
	// Oldest points dropped, newest kept.
	last := tr.pts[len(tr.pts)-1]
	if last.X != float64(trailMaxPoints*3-1) {
		t.Errorf("expected newest point retained, got X=%v", last.X)
	}
}

func TestPathCacheClear(t *testing.T) {
	c := newPathCache()
	for id := int64(0); id < 50; id++ {
		c.trailFor(id).push(1, 2)
	}
	if c.Len() != 50 {
		t.Fatalf("expected 50 trails, got %d", c.Len())
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected empty path cache after clear, got %d", c.Len())
	}
}

func TestPlantGeometryDeterministic(t *testing.T) {
	a := generatePlantGeometry(42)
	b := generatePlantGeometry(42)
	if len(a) == 0 {
		t.Fatal("expected non-empty plant geometry")
	}
	if len(a) != len(b) {
		t.Fatalf("geometry not deterministic: %d vs %d segments", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("segment %d differs between generations", i)
		}
	}

	// Different ids should not share a skeleton.
	other := generatePlantGeometry(43)
	same := len(other) == len(a)
	if same {
		identical := true
		for i := range a {
			if a[i] != other[i] {
				identical = false
				break
			}
		}
		if identical {
			t.Error("distinct plant ids produced identical geometry")
		}
	}
}

func TestUnloadIdempotent(t *testing.T) {
	r := New(nil)
	r.facing.Facing(1, 1.0)
	r.plants.Geometry(1)

	r.Unload()
	r.Unload() // second call must be a no-op, not a panic

	f, p, paths := r.CacheSizes()
	if f != 0 || p != 0 || paths != 0 {
		t.Errorf("expected empty caches after unload, got %d/%d/%d", f, p, paths)
	}
}

// With no sprite loader (or one that failed), texture lookups miss and
// drawing falls back to placeholder shapes.
func TestTextureMissWithoutSprites(t *testing.T) {
	r := New(nil)
	if _, ok := r.texture("fish"); ok {
		t.Error("texture hit with no sprite loader")
	}
}
