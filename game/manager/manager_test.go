package manager

import (
	"testing"

	"snake-torus/game/types"

	"golang.org/x/exp/rand"
)

func TestTargetStaysInsideGrid(t *testing.T) {
	g := types.Grid{Width: 7, Height: 3}
	tm := NewTargetManager(g, rand.New(rand.NewSource(1)), nil)

	for i := 0; i < 500; i++ {
		c := tm.Place()
		if !g.Contains(c) {
			t.Fatalf("target %v outside %dx%d", c, g.Width, g.Height)
		}
		if !tm.CheckCollision(c) {
			t.Fatalf("CheckCollision(%v) = false for current position", c)
		}
	}
	if tm.Placements() != 501 {
		t.Errorf("placements = %d, want 501", tm.Placements())
	}
}

func TestTargetPlacementIsDeterministicPerSeed(t *testing.T) {
	g := types.Grid{Width: 20, Height: 20}
	a := NewTargetManager(g, rand.New(rand.NewSource(42)), nil)
	b := NewTargetManager(g, rand.New(rand.NewSource(42)), nil)

	for i := 0; i < 50; i++ {
		if a.Position() != b.Position() {
			t.Fatalf("placement %d diverged: %v vs %v", i, a.Position(), b.Position())
		}
		a.Place()
		b.Place()
	}
}

func TestTargetCoversWholeGrid(t *testing.T) {
	g := types.Grid{Width: 3, Height: 3}
	tm := NewTargetManager(g, rand.New(rand.NewSource(7)), nil)

	seen := make(map[types.Cell]bool)
	for i := 0; i < 2000; i++ {
		seen[tm.Place()] = true
	}
	if len(seen) != g.Area() {
		t.Errorf("visited %d cells, want %d", len(seen), g.Area())
	}
}

func TestInitialTargetAvoidsOccupiedCells(t *testing.T) {
	g := types.Grid{Width: 3, Height: 2}
	free := types.Cell{X: 1, Y: 1}
	occupied := func(c types.Cell) bool { return c != free }

	for seed := uint64(1); seed <= 200; seed++ {
		tm := NewTargetManager(g, rand.New(rand.NewSource(seed)), occupied)
		if tm.Position() != free {
			t.Fatalf("seed %d: first target %v, want the only free cell %v", seed, tm.Position(), free)
		}
	}
}

func TestInitialTargetOnFullGrid(t *testing.T) {
	g := types.Grid{Width: 2, Height: 2}
	tm := NewTargetManager(g, rand.New(rand.NewSource(5)), func(types.Cell) bool { return true })

	if !g.Contains(tm.Position()) {
		t.Errorf("target %v outside grid", tm.Position())
	}
	if tm.Placements() != 1 {
		t.Errorf("placements = %d, want 1", tm.Placements())
	}
}

func TestLaterPlacementsIgnoreOccupiedCells(t *testing.T) {
	g := types.Grid{Width: 2, Height: 1}
	blocked := types.Cell{X: 0, Y: 0}
	tm := NewTargetManager(g, rand.New(rand.NewSource(9)), func(c types.Cell) bool { return c == blocked })

	hit := false
	for i := 0; i < 100 && !hit; i++ {
		hit = tm.Place() == blocked
	}
	if !hit {
		t.Error("Place never chose the occupied cell in 100 draws")
	}
}

func TestCheckCollisionExactMatch(t *testing.T) {
	tm := NewTargetManager(types.Grid{Width: 5, Height: 5}, rand.New(rand.NewSource(3)), nil)
	tm.MoveTo(types.Cell{X: 2, Y: 2})

	if !tm.CheckCollision(types.Cell{X: 2, Y: 2}) {
		t.Error("expected collision at (2,2)")
	}
	if tm.CheckCollision(types.Cell{X: 2, Y: 3}) {
		t.Error("unexpected collision at (2,3)")
	}
}

func TestStateTransitions(t *testing.T) {
	sm := NewStateManager()
	if sm.State() != Paused {
		t.Fatalf("initial state = %v", sm.State())
	}
	if !sm.Play() || sm.State() != Running {
		t.Fatal("play from paused should run")
	}
	if sm.Play() {
		t.Error("play while running should be a no-op")
	}
	if !sm.Pause() {
		t.Error("pause while running should transition")
	}
	if sm.Pause() {
		t.Error("second pause should be a no-op")
	}
}

func TestEndIsTerminal(t *testing.T) {
	sm := NewStateManager()
	sm.Play()
	sm.End()

	if sm.State() != Paused || !sm.Over() {
		t.Fatalf("after End: state=%v over=%v", sm.State(), sm.Over())
	}
	if sm.Play() {
		t.Error("play after End should be refused")
	}
}
