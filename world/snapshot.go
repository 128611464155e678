package world

// Stats holds the aggregate counters the backend reports alongside each
// entity list. Only the fields the viewer consumes are decoded; unknown
// fields on the wire are ignored.
type Stats struct {
	FishCount  int `json:"fish_count"`
	PlantCount int `json:"plant_count"`
	FoodCount  int `json:"food_count"`
	Generation int `json:"generation"`

	// TimeOfDay is the diurnal phase in [0, 1); 0 = midnight, 0.5 = noon.
	TimeOfDay float64 `json:"time_of_day"`
}

// Snapshot is one full simulation update. Entity order is z-order:
// later entries render on top of earlier ones.
type Snapshot struct {
	Entities    []Entity `json:"entities"`
	Stats       Stats    `json:"stats"`
	ElapsedTime float64  `json:"elapsed_time"`
	ViewMode    string   `json:"view_mode,omitempty"`
	WorldType   string   `json:"world_type,omitempty"`
}

// LiveIDs collects the ids present in the snapshot into dst, reusing its
// storage. Used for cache pruning every frame, so it avoids allocating
// a fresh map per call.
func (s *Snapshot) LiveIDs(dst map[int64]struct{}) map[int64]struct{} {
	if dst == nil {
		dst = make(map[int64]struct{}, len(s.Entities))
	} else {
		clear(dst)
	}
	for i := range s.Entities {
		dst[s.Entities[i].ID] = struct{}{}
	}
	return dst
}

// Has reports whether an entity with the given id exists in the snapshot.
func (s *Snapshot) Has(id int64) bool {
	for i := range s.Entities {
		if s.Entities[i].ID == id {
			return true
		}
	}
	return false
}

// At returns the entity with the given id, or nil.
func (s *Snapshot) At(id int64) *Entity {
	for i := range s.Entities {
		if s.Entities[i].ID == id {
			return &s.Entities[i]
		}
	}
	return nil
}
