package renderer

// Velocity below this keeps the previous facing, so fish don't flip
// while hovering in place.
const facingEpsilon = 0.05

// trailMaxPoints bounds each motion trail ring.
const trailMaxPoints = 24

// facingCache remembers the last horizontal facing per entity id:
// +1 facing right, -1 facing left.
type facingCache struct {
	dirs map[int64]float64
}

func newFacingCache() *facingCache {
	return &facingCache{dirs: make(map[int64]float64)}
}

// Facing returns the facing for the entity given its current horizontal
// velocity, updating the cache when the entity is moving decisively.
func (c *facingCache) Facing(id int64, velX float64) float64 {
	if velX > facingEpsilon {
		c.dirs[id] = 1
		return 1
	}
	if velX < -facingEpsilon {
		c.dirs[id] = -1
		return -1
	}
	if dir, ok := c.dirs[id]; ok {
		return dir
	}
	c.dirs[id] = 1
	return 1
}

// Prune drops entries for ids not in the live set.
func (c *facingCache) Prune(live map[int64]struct{}) {
	for id := range c.dirs {
		if _, ok := live[id]; !ok {
			delete(c.dirs, id)
		}
	}
}

// Len returns the number of cached entries.
func (c *facingCache) Len() int { return len(c.dirs) }

// trail is a bounded ring of recent world positions for one entity.
type trail struct {
	pts []trailPoint
}

type trailPoint struct {
	X, Y float64
}

// push appends a position, dropping the oldest beyond the ring bound.
func (t *trail) push(x, y float64) {
	t.pts = append(t.pts, trailPoint{X: x, Y: y})
	if len(t.pts) > trailMaxPoints {
		copy(t.pts, t.pts[len(t.pts)-trailMaxPoints:])
		t.pts = t.pts[:trailMaxPoints]
	}
}

// pathCache holds motion trails keyed by entity id. Unlike the facing
// and plant caches it is only cleared wholesale on the periodic
// maintenance sweep; the brief flicker on the next draw is the accepted
// cost of bounding memory in long sessions.
type pathCache struct {
	trails map[int64]*trail
}

func newPathCache() *pathCache {
	return &pathCache{trails: make(map[int64]*trail)}
}

func (c *pathCache) trailFor(id int64) *trail {
	t, ok := c.trails[id]
	if !ok {
		t = &trail{}
		c.trails[id] = t
	}
	return t
}

// Clear drops all trails.
func (c *pathCache) Clear() {
	c.trails = make(map[int64]*trail)
}

// Len returns the number of cached trails.
func (c *pathCache) Len() int { return len(c.trails) }
