package game

import (
	"time"

	"snake-torus/game/types"

	"go.uber.org/zap"
)

// Summary describes a finished game.
type Summary struct {
	SessionID  string
	StartTime  time.Time
	EndTime    time.Time
	Ticks      int
	Length     int
	Consumed   int
	Placements int
	Collision  types.Cell
}
// Duration is zero for games that were only ever single stepped.
func (s Summary) Duration() time.Duration {
	if s.StartTime.IsZero() {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}

func (s Summary) Fields() []zap.Field {
	return []zap.Field{
		zap.String("session", s.SessionID),
		zap.Int("ticks", s.Ticks),
		zap.Int("length", s.Length),
		zap.Int("consumed", s.Consumed),
		zap.Int("placements", s.Placements),
		zap.Stringer("collision", s.Collision),
		zap.Duration("duration", s.Duration()),
	}
}
