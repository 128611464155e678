package main

import (
	"math"
	"math/rand"
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/tanklab/tankview/world"
)

// Simulation parameters
const (
	initialFish   = 14
	initialPlants = 6
	initialCrabs  = 2
	maxFood       = 25
	foodPerSecond = 1.5

	fishSpeed = 60.0
	crabSpeed = 18.0

	// Seconds per full day/night cycle
	dayLength = 120.0
)

// Position is an entity center in world units.
type Position struct {
	X, Y float64
}

// Velocity is world units per second.
type Velocity struct {
	X, Y float64
}

// Meta carries the wire-visible identity and body of an entity.
type Meta struct {
	ID     int64
	Kind   world.Kind
	W, H   float64
	Energy float64
	Hue    float64
}

// Sim is a toy aquarium that produces plausible snapshots for local
// viewer development. It is not the real backend; it only needs enough
// motion and churn to exercise rendering, hit-testing and cache pruning.
type Sim struct {
	world *ecs.World
	rng   *rand.Rand

	entityMapper *ecs.Map3[Position, Velocity, Meta]
	entityFilter *ecs.Filter3[Position, Velocity, Meta]

	nextID  int64
	elapsed float64
	foodAcc float64
}

// NewSim creates the simulation with a starting population.
func NewSim(seed int64) *Sim {
	w := ecs.NewWorld()

	s := &Sim{
		world:        w,
		rng:          rand.New(rand.NewSource(seed)),
		entityMapper: ecs.NewMap3[Position, Velocity, Meta](w),
		entityFilter: ecs.NewFilter3[Position, Velocity, Meta](w),
		nextID:       1,
	}

	for i := 0; i < initialPlants; i++ {
		w := 50 + s.rng.Float64()*30
		h := 100 + s.rng.Float64()*60
		x := world.Width * (0.1 + 0.8*s.rng.Float64())
		s.spawn(world.KindPlant, x, world.Height-h/2, w, h, Velocity{})
	}
	for i := 0; i < initialFish; i++ {
		x := world.Width * s.rng.Float64()
		y := world.Height * (0.1 + 0.7*s.rng.Float64())
		w := 34 + s.rng.Float64()*14
		h := 18 + s.rng.Float64()*8
		s.spawn(world.KindFish, x, y, w, h, rand2(s.rng, fishSpeed))
	}
	for i := 0; i < initialCrabs; i++ {
		x := world.Width * s.rng.Float64()
		s.spawn(world.KindCrab, x, world.Height-12, 36, 24, Velocity{})
	}

	return s
}

func (s *Sim) spawn(kind world.Kind, x, y, w, h float64, vel Velocity) ecs.Entity {
	id := s.nextID
	s.nextID++

	pos := Position{X: x, Y: y}
	meta := Meta{
		ID:     id,
		Kind:   kind,
		W:      w,
		H:      h,
		Energy: 0.5 + 0.5*s.rng.Float64(),
		Hue:    s.rng.Float64() * 360,
	}
	return s.entityMapper.NewEntity(&pos, &vel, &meta)
}

// Step advances the simulation by dt seconds.
func (s *Sim) Step(dt float64) {
	s.elapsed += dt

	var eaten []ecs.Entity

	query := s.entityFilter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, vel, meta := query.Get()

		switch meta.Kind {
		case world.KindFish:
			s.wander(pos, vel, meta, fishSpeed, dt)
			meta.Energy -= 0.005 * dt
			if meta.Energy < 0.1 {
				meta.Energy = 0.1
			}
		case world.KindCrab:
			// Crabs scuttle along the floor.
			vel.Y = 0
			s.wander(pos, vel, meta, crabSpeed, dt)
			pos.Y = world.Height - meta.H/2
		case world.KindFood:
			// Food sinks and eventually despawns.
			vel.Y = 20
			pos.Y += vel.Y * dt
			if pos.Y > world.Height-meta.H/2 {
				pos.Y = world.Height - meta.H/2
			}
			meta.Energy -= 0.08 * dt
			if meta.Energy <= 0 {
				eaten = append(eaten, entity)
			}
		}
	}

	for _, e := range eaten {
		s.entityMapper.Remove(e)
	}

	// Drip-feed food from the surface.
	s.foodAcc += foodPerSecond * dt
	for s.foodAcc >= 1 {
		s.foodAcc--
		if s.countKind(world.KindFood) < maxFood {
			x := world.Width * s.rng.Float64()
			s.spawn(world.KindFood, x, 10, 8, 8, Velocity{})
		}
	}
}

// wander applies a random heading nudge, integrates position and
// bounces off the tank walls.
func (s *Sim) wander(pos *Position, vel *Velocity, meta *Meta, speed, dt float64) {
	vel.X += (s.rng.Float64() - 0.5) * speed * dt * 2
	vel.Y += (s.rng.Float64() - 0.5) * speed * dt * 2

	mag := math.Hypot(vel.X, vel.Y)
	if mag > speed {
		vel.X *= speed / mag
		vel.Y *= speed / mag
	}

	pos.X += vel.X * dt
	pos.Y += vel.Y * dt

	hw, hh := meta.W/2, meta.H/2
	if pos.X < hw {
		pos.X = hw
		vel.X = math.Abs(vel.X)
	} else if pos.X > world.Width-hw {
		pos.X = world.Width - hw
		vel.X = -math.Abs(vel.X)
	}
	if pos.Y < hh {
		pos.Y = hh
		vel.Y = math.Abs(vel.Y)
	} else if pos.Y > world.Height-hh {
		pos.Y = world.Height - hh
		vel.Y = -math.Abs(vel.Y)
	}
}

func (s *Sim) countKind(kind world.Kind) int {
	n := 0
	query := s.entityFilter.Query()
	for query.Next() {
		_, _, meta := query.Get()
		if meta.Kind == kind {
			n++
		}
	}
	return n
}

// kindZOrder ranks kinds back-to-front for the snapshot entity list.
func kindZOrder(k world.Kind) int {
	switch k {
	case world.KindPlant:
		return 0
	case world.KindFood, world.KindPlantNectar:
		return 1
	case world.KindCrab:
		return 2
	default:
		return 3
	}
}

// Snapshot renders the current world into a wire snapshot. Entities are
// ordered back-to-front so the viewer's z-order matches the backend's.
func (s *Sim) Snapshot() world.Snapshot {
	var entities []world.Entity

	query := s.entityFilter.Query()
	for query.Next() {
		pos, vel, meta := query.Get()
		hue := meta.Hue
		entities = append(entities, world.Entity{
			ID:     meta.ID,
			Kind:   meta.Kind,
			X:      pos.X,
			Y:      pos.Y,
			Width:  meta.W,
			Height: meta.H,
			VelX:   vel.X,
			VelY:   vel.Y,
			Energy: meta.Energy,
			Hue:    &hue,
		})
	}

	sort.Slice(entities, func(i, j int) bool {
		zi, zj := kindZOrder(entities[i].Kind), kindZOrder(entities[j].Kind)
		if zi != zj {
			return zi < zj
		}
		return entities[i].ID < entities[j].ID
	})

	stats := world.Stats{
		TimeOfDay: math.Mod(s.elapsed/dayLength, 1),
	}
	for _, e := range entities {
		switch e.Kind {
		case world.KindFish:
			stats.FishCount++
		case world.KindPlant:
			stats.PlantCount++
		case world.KindFood:
			stats.FoodCount++
		}
	}

	return world.Snapshot{
		Entities:    entities,
		Stats:       stats,
		ElapsedTime: s.elapsed,
		WorldType:   "tank",
	}
}

func rand2(rng *rand.Rand, speed float64) Velocity {
	angle := rng.Float64() * 2 * math.Pi
	return Velocity{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed}
}
