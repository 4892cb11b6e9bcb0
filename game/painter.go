package game

import "snake-torus/game/types"

// Frame is what a painter receives once per tick.
type Frame struct {
	Grid      types.Grid
	Tick      int
	Direction types.Direction
	Head      types.Cell
	Body      []types.Cell // head excluded, tail last
	Target    types.Cell
}

// Painter is the rendering side of a session. Calls arrive on the session
// loop, one Clear and one Paint per tick, so a Painter must not call back
// into the Session from inside them.
type Painter interface {
	Clear()
	Paint(Frame)
	GameOver(Summary)
}
