package game

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"snake-torus/game/entity"
	"snake-torus/game/manager"
	"snake-torus/game/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

// DefaultTickInterval is the period between ticks while running.
const DefaultTickInterval = 250 * time.Millisecond

var (
	ErrGameOver = errors.New("game over")
	ErrClosed   = errors.New("session closed")
	ErrRunning  = errors.New("session already run")
)

type Options struct {
	Grid         types.Grid
	Snake        *entity.Snake
	Painter      Painter
	TickInterval time.Duration

	// Optional.
	Target    *types.Cell // fixed first target instead of a random one
	Rand      *rand.Rand
	Logger    *zap.Logger
	NewTicker func(time.Duration) Ticker
}

// Snapshot is a copy of session state taken on the session loop.
type Snapshot struct {
	ID        string
	State     manager.State
	Over      bool
	Tick      int
	Consumed  int
	Direction types.Direction
	Chain     []types.Cell
	Target    types.Cell
	Growing   bool
}

// Session drives one game. All state is owned by the goroutine running Run;
// the exported methods queue work onto it and wait for the result, so ticks
// and input never interleave. Run must be started, once, before any other
// method is called; until then those methods block.
type Session struct {
	UUID string

	grid      types.Grid
	snake     *entity.Snake
	target    *manager.TargetManager
	state     *manager.StateManager
	painter   Painter
	interval  time.Duration
	newTicker func(time.Duration) Ticker
	log       *zap.Logger

	started atomic.Bool

	ticker Ticker
	tasks  chan func()
	done   chan struct{}
	over   chan struct{}

	ticks     int
	consumed  int
	startTime time.Time
	summary   Summary
}

// NewSession validates opts and places the first target. Nothing runs until
// Run is called.
func NewSession(opts Options) (*Session, error) {
	if opts.Grid.Width <= 0 || opts.Grid.Height <= 0 {
		return nil, fmt.Errorf("invalid grid %dx%d", opts.Grid.Width, opts.Grid.Height)
	}
	if opts.Snake == nil {
		return nil, errors.New("missing snake")
	}
	if opts.Painter == nil {
		return nil, errors.New("missing painter")
	}
	if opts.TickInterval <= 0 {
		return nil, fmt.Errorf("invalid tick interval %v", opts.TickInterval)
	}
	if t := opts.Target; t != nil && (!opts.Grid.Contains(*t) || opts.Snake.Occupies(*t)) {
		return nil, fmt.Errorf("first target %v is outside the grid or on the snake", *t)
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	newTicker := opts.NewTicker
	if newTicker == nil {
		newTicker = NewTimeTicker
	}

	id := uuid.New().String()
	s := &Session{
		UUID:      id,
		grid:      opts.Grid,
		snake:     opts.Snake,
		target:    manager.NewTargetManager(opts.Grid, rng, opts.Snake.Occupies),
		state:     manager.NewStateManager(),
		painter:   opts.Painter,
		interval:  opts.TickInterval,
		newTicker: newTicker,
		log:       log.With(zap.String("session", id)),
		tasks:     make(chan func()),
		done:      make(chan struct{}),
		over:      make(chan struct{}),
	}
	if opts.Target != nil {
		s.target.MoveTo(*opts.Target)
	}

	s.log.Debug("session created",
		zap.Int("width", s.grid.Width),
		zap.Int("height", s.grid.Height),
		zap.Int("length", s.snake.Len()),
		zap.Stringer("target", s.target.Position()),
		zap.Duration("interval", s.interval))

	return s, nil
}

// Run owns the session until ctx is cancelled. A second call returns
// ErrRunning.
func (s *Session) Run(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer close(s.done)
	defer s.stopTicker()

	for {
		select {
		case <-ctx.Done():
			s.log.Debug("session loop stopped")
			return nil
		case task := <-s.tasks:
			task()
		case <-s.tickC():
			s.tick()
		}
	}
}

// Over is closed once the snake has collided with itself.
func (s *Session) Over() <-chan struct{} {
	return s.over
}

// Play starts ticking. It is a no-op while running and fails with
// ErrGameOver once the game has ended.
func (s *Session) Play() error {
	var err error
	if e := s.do(func() {
		if s.state.Over() {
			err = ErrGameOver
			return
		}
		if !s.state.Play() {
			return
		}
		if s.startTime.IsZero() {
			s.startTime = time.Now()
		}
		s.ticker = s.newTicker(s.interval)
		s.log.Info("session running", zap.Int("tick", s.ticks))
	}); e != nil {
		return e
	}
	return err
}

// Pause stops ticking; no tick fires until the next Play.
func (s *Session) Pause() error {
	return s.do(func() {
		if !s.state.Pause() {
			return
		}
		s.stopTicker()
		s.log.Info("session paused", zap.Int("tick", s.ticks))
	})
}

// SetDirection forwards an input request to the snake.
func (s *Session) SetDirection(d types.Direction) error {
	return s.do(func() {
		if s.state.Over() {
			return
		}
		if !s.snake.SetDirection(d) {
			s.log.Debug("direction ignored",
				zap.Stringer("requested", d),
				zap.Stringer("current", s.snake.Direction()),
				zap.Bool("locked", s.snake.DirectionLocked()))
		}
	})
}

// Step runs exactly one tick regardless of the play state.
func (s *Session) Step() error {
	var err error
	if e := s.do(func() {
		if s.state.Over() {
			err = ErrGameOver
			return
		}
		s.tick()
	}); e != nil {
		return e
	}
	return err
}

func (s *Session) Snapshot() (Snapshot, error) {
	var snap Snapshot
	err := s.do(func() {
		snap = Snapshot{
			ID:        s.UUID,
			State:     s.state.State(),
			Over:      s.state.Over(),
			Tick:      s.ticks,
			Consumed:  s.consumed,
			Direction: s.snake.Direction(),
			Chain:     s.snake.Cells(),
			Target:    s.target.Position(),
			Growing:   s.snake.HasPendingGrowth(),
		}
	})
	return snap, err
}

// Summary is only meaningful once Over is closed.
func (s *Session) Summary() (Summary, error) {
	var sum Summary
	err := s.do(func() {
		sum = s.summary
	})
	return sum, err
}

// tick consumes the target under the head, paints, then moves: advance
// first and trim after, so the head can never enter the cell the tail is
// leaving on the same tick.
func (s *Session) tick() {
	s.ticks++

	if s.target.CheckCollision(s.snake.Head()) {
		eaten := s.target.Position()
		s.snake.RequestGrowth(eaten)
		s.consumed++
		next := s.target.Place()
		s.log.Debug("target consumed",
			zap.Stringer("at", eaten),
			zap.Stringer("next", next),
			zap.Bool("under_snake", s.snake.Occupies(next)))
	}

	s.painter.Clear()
	s.painter.Paint(s.frame())

	if !s.snake.AdvanceFront() {
		s.finish()
		return
	}
	tail, removed := s.snake.TrimTail()

	s.log.Debug("tick",
		zap.Int("tick", s.ticks),
		zap.Stringer("head", s.snake.Head()),
		zap.Int("length", s.snake.Len()),
		zap.Bool("grew", !removed),
		zap.Bool("pending_growth", s.snake.HasPendingGrowth()),
		zap.Stringer("tail", tail))
}

func (s *Session) finish() {
	s.stopTicker()
	s.state.End()

	s.summary = Summary{
		SessionID:  s.UUID,
		StartTime:  s.startTime,
		EndTime:    time.Now(),
		Ticks:      s.ticks,
		Length:     s.snake.Len(),
		Consumed:   s.consumed,
		Placements: s.target.Placements(),
		Collision:  s.grid.Step(s.snake.Head(), s.snake.Direction()),
	}
	s.log.Info("game over", s.summary.Fields()...)
	s.painter.GameOver(s.summary)
	close(s.over)
}

func (s *Session) frame() Frame {
	chain := s.snake.Cells()
	return Frame{
		Grid:      s.grid,
		Tick:      s.ticks,
		Direction: s.snake.Direction(),
		Head:      chain[0],
		Body:      chain[1:],
		Target:    s.target.Position(),
	}
}

func (s *Session) tickC() <-chan time.Time {
	if s.ticker == nil {
		return nil
	}
	return s.ticker.C()
}

func (s *Session) stopTicker() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
}

// do runs fn on the session loop and waits for it to return.
func (s *Session) do(fn func()) error {
	finished := make(chan struct{})
	select {
	case s.tasks <- func() {
		defer close(finished)
		fn()
	}:
	case <-s.done:
		return ErrClosed
	}
	<-finished
	return nil
}
