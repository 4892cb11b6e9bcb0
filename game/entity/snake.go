package entity

import (
	"errors"
	"fmt"
	"snake-torus/game/types"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

const minCapacity = 16

var (
	ErrOutOfBounds = errors.New("cell outside grid")
	ErrOverlap     = errors.New("cells overlap")
	ErrFacingNeck  = errors.New("direction points into the neck")
)

// Snake is an ordered chain of distinct cells, head first. The chain lives in
// a ring buffer so advancing and trimming never allocate per cell, and the
// occupied set makes collision checks constant time.
type Snake struct {
	grid     types.Grid
	cells    []types.Cell
	head     int // index of the head inside cells
	length   int
	occupied mapset.Set[types.Cell]
	pending  *queue.Queue[types.Cell]

	direction types.Direction
	locked    bool
}

// NewSnake creates a snake whose head is at head, followed by trailing cells
// towards the tail. All cells must be inside grid and pairwise distinct.
func NewSnake(grid types.Grid, direction types.Direction, head types.Cell, trailing ...types.Cell) (*Snake, error) {
	if !direction.Valid() {
		return nil, fmt.Errorf("invalid direction %v", direction)
	}

	capacity := minCapacity
	for capacity < 2*(len(trailing)+1) {
		capacity *= 2
	}

	s := &Snake{
		grid:      grid,
		cells:     make([]types.Cell, capacity),
		occupied:  mapset.New[types.Cell](),
		pending:   queue.New[types.Cell](),
		direction: direction,
	}

	for _, c := range append([]types.Cell{head}, trailing...) {
		if !grid.Contains(c) {
			return nil, fmt.Errorf("%w: %v in %dx%d", ErrOutOfBounds, c, grid.Width, grid.Height)
		}
		if s.occupied.Has(c) {
			return nil, fmt.Errorf("%w at %v", ErrOverlap, c)
		}
		s.cells[s.length] = c
		s.length++
		s.occupied.Put(c)
	}

	if s.length > 1 && grid.Step(head, direction) == s.at(1) {
		return nil, fmt.Errorf("%w: %v from %v", ErrFacingNeck, direction, head)
	}

	return s, nil
}

// SetDirection accepts d unless a direction was already accepted since the
// last advance, or d is the exact opposite of the current direction.
// Rejected requests are silently dropped; the result only reports it.
func (s *Snake) SetDirection(d types.Direction) bool {
	if s.locked || !d.Valid() || d.IsOpposite(s.direction) {
		return false
	}
	s.direction = d
	s.locked = true
	return true
}

// AdvanceFront grows the chain by one cell in the current direction. It
// returns false without touching the chain if the new head would land on
// any existing cell.
func (s *Snake) AdvanceFront() bool {
	next := s.grid.Step(s.Head(), s.direction)
	if s.occupied.Has(next) {
		return false
	}

	s.pushFront(next)
	s.locked = false
	return true
}

// TrimTail drops the tail cell, unless the oldest growth request names the
// tail cell: then the request is consumed and the tail stays. A single-cell
// chain is never trimmed. It returns the tail and whether it was removed.
func (s *Snake) TrimTail() (types.Cell, bool) {
	tail := s.Tail()

	if !s.pending.Empty() && s.pending.Peek() == tail {
		s.pending.Dequeue()
		return tail, false
	}
	if s.length == 1 {
		return tail, false
	}

	s.length--
	s.occupied.Remove(tail)
	return tail, true
}

// RequestGrowth schedules c to be kept on the trim that finds it at the tail.
func (s *Snake) RequestGrowth(c types.Cell) {
	s.pending.Enqueue(c)
}

func (s *Snake) Head() types.Cell {
	return s.cells[s.head]
}

func (s *Snake) Tail() types.Cell {
	return s.at(s.length - 1)
}

func (s *Snake) Len() int {
	return s.length
}

func (s *Snake) Direction() types.Direction {
	return s.direction
}

func (s *Snake) DirectionLocked() bool {
	return s.locked
}

func (s *Snake) HasPendingGrowth() bool {
	return !s.pending.Empty()
}

// Occupies reports whether c is part of the chain.
func (s *Snake) Occupies(c types.Cell) bool {
	return s.occupied.Has(c)
}

// Cells returns a copy of the chain, head first.
func (s *Snake) Cells() []types.Cell {
	out := make([]types.Cell, s.length)
	for i := range out {
		out[i] = s.at(i)
	}
	return out
}

func (s *Snake) at(i int) types.Cell {
	return s.cells[(s.head+i)%len(s.cells)]
}

func (s *Snake) pushFront(c types.Cell) {
	if s.length == len(s.cells) {
		s.resize(2 * len(s.cells))
	}
	s.head = (s.head - 1 + len(s.cells)) % len(s.cells)
	s.cells[s.head] = c
	s.length++
	s.occupied.Put(c)
}

func (s *Snake) resize(capacity int) {
	cells := make([]types.Cell, capacity)
	for i := 0; i < s.length; i++ {
		cells[i] = s.at(i)
	}
	s.cells = cells
	s.head = 0
}
