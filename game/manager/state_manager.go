package manager

// State of a game session.
type State int

const (
	Paused State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Paused:
		return "paused"
	case Running:
		return "running"
	}
	return "unknown"
}

// StateManager tracks Paused/Running. Once End is called the manager stays
// Paused for good and Play is refused.
type StateManager struct {
	state State
	over  bool
}

func NewStateManager() *StateManager {
	return &StateManager{state: Paused}
}

// Play reports whether the call moved the state to Running.
func (sm *StateManager) Play() bool {
	if sm.over || sm.state == Running {
		return false
	}
	sm.state = Running
	return true
}

// Pause reports whether the call moved the state to Paused.
func (sm *StateManager) Pause() bool {
	if sm.state == Paused {
		return false
	}
	sm.state = Paused
	return true
}

// End latches the terminal state.
func (sm *StateManager) End() {
	sm.state = Paused
	sm.over = true
}

func (sm *StateManager) State() State {
	return sm.state
}

func (sm *StateManager) Over() bool {
	return sm.over
}
