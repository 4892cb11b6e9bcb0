package game

import "time"

// Ticker delivers ticks to a session while it is running.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct {
	t *time.Ticker
}

// NewTimeTicker wraps time.Ticker.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

func (tt timeTicker) C() <-chan time.Time {
	return tt.t.C
}

func (tt timeTicker) Stop() {
	tt.t.Stop()
}
