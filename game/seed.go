package game

import (
	"fmt"

	"snake-torus/game/entity"
	"snake-torus/game/types"
)

// Seed describes the snake a game starts with. Cells, head first, wins when
// set; otherwise the snake starts as the single Tail cell and its front is
// advanced Grow times.
type Seed struct {
	Direction types.Direction
	Cells     []types.Cell
	Tail      types.Cell
	Grow      int
}

func (sd Seed) Build(grid types.Grid) (*entity.Snake, error) {
	if len(sd.Cells) > 0 {
		return entity.NewSnake(grid, sd.Direction, sd.Cells[0], sd.Cells[1:]...)
	}

	if sd.Grow < 0 {
		return nil, fmt.Errorf("negative grow count %d", sd.Grow)
	}
	snake, err := entity.NewSnake(grid, sd.Direction, sd.Tail)
	if err != nil {
		return nil, err
	}
	for i := 0; i < sd.Grow; i++ {
		if !snake.AdvanceFront() {
			return nil, fmt.Errorf("seed overlaps itself after %d of %d cells", i, sd.Grow)
		}
	}
	return snake, nil
}
