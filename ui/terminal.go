package ui

import (
	"context"
	"fmt"

	"snake-torus/game"
	"snake-torus/game/types"
	"snake-torus/ui/control"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// Each grid cell is two terminal columns wide so cells look square.
const cellColumns = 2

var (
	styleBorder = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	styleBody   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleHead   = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
	styleTarget = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// Terminal paints a session with tcell and turns key and focus events into
// session calls.
type Terminal struct {
	screen tcell.Screen
	log    *zap.Logger
}

func NewTerminal(log *zap.Logger) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableFocus()
	screen.HideCursor()

	if log == nil {
		log = zap.NewNop()
	}
	return &Terminal{screen: screen, log: log}, nil
}

func (t *Terminal) Close() {
	t.screen.Fini()
}

func (t *Terminal) Clear() {
	t.screen.Clear()
}

func (t *Terminal) Paint(f game.Frame) {
	t.drawBorder(f.Grid)
	t.setCell(f.Target, '●', styleTarget)
	for _, c := range f.Body {
		t.setCell(c, '█', styleBody)
	}
	t.setCell(f.Head, '█', styleHead)
	t.drawText(0, f.Grid.Height+2, "arrows: steer  space: play/pause  q: quit")
	t.screen.Show()
}

func (t *Terminal) GameOver(s game.Summary) {
	t.drawText(0, 0, fmt.Sprintf(" game over: length %d after %d ticks ", s.Length, s.Ticks))
	t.screen.Show()
}

// Run handles terminal events until q, Esc or Ctrl-C, or until ctx is done.
func (t *Terminal) Run(ctx context.Context, ctrl control.Controller) error {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	if err := ctrl.Play(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			keepGoing, err := t.handle(ctrl, ev)
			if err != nil {
				return err
			}
			if !keepGoing {
				return nil
			}
		}
	}
}

func (t *Terminal) handle(ctrl control.Controller, ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return control.Apply(ctrl, terminalCommand(ev))
	case *tcell.EventFocus:
		t.log.Debug("terminal focus changed", zap.Bool("focused", ev.Focused))
		return true, control.Focus(ctrl, ev.Focused)
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true, nil
}

func terminalCommand(ev *tcell.EventKey) control.Command {
	switch ev.Key() {
	case tcell.KeyUp:
		return control.Steer(types.Up)
	case tcell.KeyDown:
		return control.Steer(types.Down)
	case tcell.KeyLeft:
		return control.Steer(types.Left)
	case tcell.KeyRight:
		return control.Steer(types.Right)
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return control.Command{Action: control.ActionQuit}
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return control.Command{Action: control.ActionToggle}
		case 'q':
			return control.Command{Action: control.ActionQuit}
		}
	}
	return control.Command{}
}

// Grid cell (x, y) starts at column 1+2x, row 1+y, inside the border.
func (t *Terminal) setCell(c types.Cell, r rune, style tcell.Style) {
	col := 1 + c.X*cellColumns
	for i := 0; i < cellColumns; i++ {
		t.screen.SetContent(col+i, 1+c.Y, r, nil, style)
	}
}

func (t *Terminal) drawBorder(g types.Grid) {
	right := 1 + g.Width*cellColumns
	bottom := 1 + g.Height
	for x := 0; x <= right; x++ {
		t.screen.SetContent(x, 0, '─', nil, styleBorder)
		t.screen.SetContent(x, bottom, '─', nil, styleBorder)
	}
	for y := 0; y <= bottom; y++ {
		t.screen.SetContent(0, y, '│', nil, styleBorder)
		t.screen.SetContent(right, y, '│', nil, styleBorder)
	}
	t.screen.SetContent(0, 0, '┌', nil, styleBorder)
	t.screen.SetContent(right, 0, '┐', nil, styleBorder)
	t.screen.SetContent(0, bottom, '└', nil, styleBorder)
	t.screen.SetContent(right, bottom, '┘', nil, styleBorder)
}

func (t *Terminal) drawText(x, y int, text string) {
	for i, r := range []rune(text) {
		t.screen.SetContent(x+i, y, r, nil, styleText)
	}
}
