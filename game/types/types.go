package types

import (
	"fmt"
	"strings"
)

// Cell is a grid coordinate in cell units, not pixels.
type Cell struct {
	X, Y int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Grid represents the game grid dimensions. Edges wrap around.
type Grid struct {
	Width  int
	Height int
}

// Contains reports whether c lies inside the grid.
func (g Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// Area is the number of cells in the grid.
func (g Grid) Area() int {
	return g.Width * g.Height
}

// Step returns the neighbour of c in direction d, wrapping at the edges.
func (g Grid) Step(c Cell, d Direction) Cell {
	switch d {
	case Up:
		return Cell{X: c.X, Y: Decrement(c.Y, g.Height)}
	case Down:
		return Cell{X: c.X, Y: Increment(c.Y, g.Height)}
	case Left:
		return Cell{X: Decrement(c.X, g.Width), Y: c.Y}
	case Right:
		return Cell{X: Increment(c.X, g.Width), Y: c.Y}
	}
	return c
}

// Decrement moves coord one step towards zero, reappearing at extent-1.
func Decrement(coord, extent int) int {
	if coord > 0 {
		return coord - 1
	}
	return extent - 1
}

// Increment moves coord one step away from zero, reappearing at 0.
func Increment(coord, extent int) int {
	if coord < extent-1 {
		return coord + 1
	}
	return 0
}

// Direction of travel on the grid.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return d
}

func (d Direction) IsOpposite(other Direction) bool {
	return d.Opposite() == other
}

func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection accepts the lower or upper case name of a direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}
