package world

import "testing"

func TestSelectableKinds(t *testing.T) {
	selectable := []Kind{KindFish, KindPlant, KindCrab}
	for _, k := range selectable {
		if !k.Selectable() {
			t.Errorf("expected %s to be selectable", k)
		}
	}

	decorative := []Kind{KindFood, KindLiveFood, KindPlantNectar, KindBall}
	for _, k := range decorative {
		if k.Selectable() {
			t.Errorf("expected %s to not be selectable", k)
		}
	}
}

func TestContains(t *testing.T) {
	e := Entity{ID: 1, Kind: KindFish, X: 100, Y: 50, Width: 40, Height: 20}

	cases := []struct {
		wx, wy float64
		want   bool
	}{
		{100, 50, true}, // center
		{80, 40, true},  // top-left corner
		{120, 60, true}, // bottom-right corner
		{79.9, 50, false},
		{100, 60.1, false},
	}
	for _, tc := range cases {
		if got := e.Contains(tc.wx, tc.wy); got != tc.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tc.wx, tc.wy, got, tc.want)
		}
	}
}

func TestFallbackHueDeterministic(t *testing.T) {
	for _, id := range []int64{0, 1, 42, 999999} {
		a := FallbackHue(id)
		b := FallbackHue(id)
		if a != b {
			t.Errorf("FallbackHue(%d) not deterministic: %v != %v", id, a, b)
		}
		if a < 0 || a >= 360 {
			t.Errorf("FallbackHue(%d) = %v, out of [0, 360)", id, a)
		}
	}
}

func TestHueOfPrefersTrait(t *testing.T) {
	hue := 123.0
	e := Entity{ID: 7, Hue: &hue}
	if got := e.HueOf(); got != 123.0 {
		t.Errorf("expected trait hue 123, got %v", got)
	}

	e.Hue = nil
	if got := e.HueOf(); got != FallbackHue(7) {
		t.Errorf("expected fallback hue, got %v", got)
	}
}

func TestLiveIDsReusesMap(t *testing.T) {
	s := Snapshot{Entities: []Entity{{ID: 1}, {ID: 2}, {ID: 3}}}
	m := s.LiveIDs(nil)
	if len(m) != 3 {
		t.Fatalf("expected 3 live ids, got %d", len(m))
	}

	s2 := Snapshot{Entities: []Entity{{ID: 9}}}
	m2 := s2.LiveIDs(m)
	if len(m2) != 1 {
		t.Errorf("expected reused map with 1 id, got %d", len(m2))
	}
	if _, ok := m2[1]; ok {
		t.Errorf("stale id 1 left in reused map")
	}
}
