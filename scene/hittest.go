package scene

import "github.com/tanklab/tankview/world"

// hitTestLocked scans the latest snapshot for a selectable entity
// containing the given world point. Scan order is reverse z-order, so
// the topmost (last drawn) entity wins and scanning stops at the first
// match. Non-selectable kinds (food, nectar, ball) are skipped entirely.
func (s *Scene) hitTestLocked(wx, wy float64) (*world.Entity, bool) {
	entities := s.latest.Entities
	for i := len(entities) - 1; i >= 0; i-- {
		e := &entities[i]
		if !e.Kind.Selectable() {
			continue
		}
		if e.Contains(wx, wy) {
			return e, true
		}
	}
	return nil, false
}

// HandleClick hit-tests a pointer press. px, py are raw framebuffer
// pixels; the mapper divides out display scaling and the world scale. A
// hit selects the entity and fires OnEntityClick; a miss deselects.
func (s *Scene) HandleClick(px, py float64) {
	s.mu.Lock()

	wx, wy, ok := s.mapper.ScreenToWorld(px, py)
	if !ok || !s.hasSnapshot {
		s.mu.Unlock()
		return
	}

	e, hit := s.hitTestLocked(wx, wy)
	if !hit {
		s.hasSelected = false
		s.mu.Unlock()
		return
	}

	s.selectedID = e.ID
	s.hasSelected = true
	id, kind := e.ID, e.Kind
	cb := s.cb.OnEntityClick
	s.mu.Unlock()

	if cb != nil {
		cb(id, kind)
	}
}

// HandleHover hit-tests pointer movement and updates the hover state
// used for tooltips.
func (s *Scene) HandleHover(px, py float64) {
	s.mu.Lock()

	wx, wy, ok := s.mapper.ScreenToWorld(px, py)
	if !ok || !s.hasSnapshot {
		s.mu.Unlock()
		return
	}

	e, hit := s.hitTestLocked(wx, wy)
	if !hit {
		s.hasHovered = false
		s.mu.Unlock()
		return
	}

	changed := !s.hasHovered || s.hoveredID != e.ID
	s.hoveredID = e.ID
	s.hasHovered = true
	id, kind := e.ID, e.Kind
	cb := s.cb.OnEntityHover
	s.mu.Unlock()

	if changed && cb != nil {
		cb(id, kind)
	}
}

// ClearHover drops the hover state, used when the pointer leaves the
// window.
func (s *Scene) ClearHover() {
	s.mu.Lock()
	s.hasHovered = false
	s.mu.Unlock()
}
