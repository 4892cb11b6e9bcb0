package manager

import (
	"snake-torus/game/types"

	"golang.org/x/exp/rand"
)

// TargetManager owns the single target cell the snake is chasing.
type TargetManager struct {
	grid     types.Grid
	rng      *rand.Rand
	position types.Cell
	placed   int
}

// NewTargetManager places the first target on a cell occupied reports free,
// chosen uniformly among the free cells. A nil occupied, or a grid with no
// free cell, falls back to a plain Place.
func NewTargetManager(grid types.Grid, rng *rand.Rand, occupied func(types.Cell) bool) *TargetManager {
	tm := &TargetManager{
		grid: grid,
		rng:  rng,
	}
	tm.placeFree(occupied)
	return tm
}

func (tm *TargetManager) placeFree(occupied func(types.Cell) bool) {
	if occupied == nil {
		tm.Place()
		return
	}

	free := make([]types.Cell, 0, tm.grid.Area())
	for y := 0; y < tm.grid.Height; y++ {
		for x := 0; x < tm.grid.Width; x++ {
			if c := (types.Cell{X: x, Y: y}); !occupied(c) {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		tm.Place()
		return
	}

	tm.position = free[tm.rng.Intn(len(free))]
	tm.placed++
}

// Place moves the target to a uniformly random cell. The snake body is not
// avoided, so a target can occasionally land under it.
func (tm *TargetManager) Place() types.Cell {
	tm.position = types.Cell{
		X: tm.rng.Intn(tm.grid.Width),
		Y: tm.rng.Intn(tm.grid.Height),
	}
	tm.placed++
	return tm.position
}

// MoveTo puts the target on c without drawing from the generator.
func (tm *TargetManager) MoveTo(c types.Cell) {
	tm.position = c
}

func (tm *TargetManager) CheckCollision(c types.Cell) bool {
	return tm.position == c
}

func (tm *TargetManager) Position() types.Cell {
	return tm.position
}

// Placements counts every random placement, the initial one included.
func (tm *TargetManager) Placements() int {
	return tm.placed
}
