// Package control turns frontend input into session calls. It is shared by
// the window and terminal frontends.
package control

import (
	"errors"

	"snake-torus/game"
	"snake-torus/game/manager"
	"snake-torus/game/types"
)

// Controller is the part of *game.Session a frontend drives.
type Controller interface {
	Play() error
	Pause() error
	SetDirection(types.Direction) error
	Snapshot() (game.Snapshot, error)
	Over() <-chan struct{}
}

type Action int

const (
	ActionNone Action = iota
	ActionSteer
	ActionToggle
	ActionQuit
)

type Command struct {
	Action    Action
	Direction types.Direction
}

func Steer(d types.Direction) Command {
	return Command{Action: ActionSteer, Direction: d}
}

// Binding ties a frontend key code to a command.
type Binding struct {
	Key     int32
	Command Command
}

// Bindings is checked in order, so keys pressed in the same frame always
// reach the session in the same sequence.
type Bindings []Binding

// ApplyPressed applies the command of every binding whose key pressed
// reports, in table order, and stops early on quit or error.
func (b Bindings) ApplyPressed(ctrl Controller, pressed func(key int32) bool) (bool, error) {
	for _, bind := range b {
		if !pressed(bind.Key) {
			continue
		}
		ok, err := Apply(ctrl, bind.Command)
		if err != nil || !ok {
			return ok, err
		}
	}
	return true, nil
}

// Apply runs cmd against ctrl and reports whether the frontend should keep
// going.
func Apply(ctrl Controller, cmd Command) (bool, error) {
	switch cmd.Action {
	case ActionSteer:
		return true, ctrl.SetDirection(cmd.Direction)
	case ActionToggle:
		return true, Toggle(ctrl)
	case ActionQuit:
		return false, nil
	}
	return true, nil
}

// Toggle pauses a running session and resumes a paused one. A finished
// session is left alone.
func Toggle(ctrl Controller) error {
	snap, err := ctrl.Snapshot()
	if err != nil {
		return err
	}
	if snap.Over {
		return nil
	}
	if snap.State == manager.Running {
		return ctrl.Pause()
	}
	return ctrl.Play()
}

// Focus plays on focus gain and pauses on focus loss.
func Focus(ctrl Controller, focused bool) error {
	if !focused {
		return ctrl.Pause()
	}
	if err := ctrl.Play(); err != nil && !errors.Is(err, game.ErrGameOver) {
		return err
	}
	return nil
}
