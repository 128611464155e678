package main

import (
	"testing"

	"github.com/tanklab/tankview/world"
)

func TestSnapshotPopulation(t *testing.T) {
	sim := NewSim(42)
	snap := sim.Snapshot()

	if snap.Stats.FishCount != initialFish {
		t.Errorf("expected %d fish, got %d", initialFish, snap.Stats.FishCount)
	}
	if snap.Stats.PlantCount != initialPlants {
		t.Errorf("expected %d plants, got %d", initialPlants, snap.Stats.PlantCount)
	}
}

func TestSnapshotZOrder(t *testing.T) {
	sim := NewSim(42)
	snap := sim.Snapshot()

	// Plants must come before fish so fish render on top.
	lastRank := -1
	for _, e := range snap.Entities {
		rank := kindZOrder(e.Kind)
		if rank < lastRank {
			t.Fatalf("entity order not back-to-front: %s after rank %d", e.Kind, lastRank)
		}
		lastRank = rank
	}
}

func TestStepKeepsEntitiesInBounds(t *testing.T) {
	sim := NewSim(7)
	for i := 0; i < 600; i++ {
		sim.Step(0.1)
	}

	snap := sim.Snapshot()
	for _, e := range snap.Entities {
		if e.X < 0 || e.X > world.Width || e.Y < 0 || e.Y > world.Height {
			t.Errorf("%s #%d escaped the tank: (%f, %f)", e.Kind, e.ID, e.X, e.Y)
		}
	}
}

func TestFoodBounded(t *testing.T) {
	sim := NewSim(7)
	for i := 0; i < 2000; i++ {
		sim.Step(0.1)
	}

	if n := sim.countKind(world.KindFood); n > maxFood {
		t.Errorf("food count %d exceeds cap %d", n, maxFood)
	}
}

func TestStatsTimeOfDayCycles(t *testing.T) {
	sim := NewSim(1)
	for i := 0; i < 100; i++ {
		sim.Step(1.0)
	}
	tod := sim.Snapshot().Stats.TimeOfDay
	if tod < 0 || tod >= 1 {
		t.Errorf("time of day %v outside [0, 1)", tod)
	}
}
