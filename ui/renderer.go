package ui

import (
	"context"
	"fmt"
	"sync"

	"snake-torus/game"
	"snake-torus/game/types"
	"snake-torus/ui/control"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

const borderPadding = 10 // Padding around game area

var windowKeys = control.Bindings{
	{Key: rl.KeyUp, Command: control.Steer(types.Up)},
	{Key: rl.KeyDown, Command: control.Steer(types.Down)},
	{Key: rl.KeyLeft, Command: control.Steer(types.Left)},
	{Key: rl.KeyRight, Command: control.Steer(types.Right)},
	{Key: rl.KeySpace, Command: control.Command{Action: control.ActionToggle}},
	{Key: rl.KeyQ, Command: control.Command{Action: control.ActionQuit}},
}

// Window paints a session into a raylib window. Paint only stores the frame;
// drawing happens in Run, which must be called from the main goroutine.
type Window struct {
	title        string
	width        int32
	height       int32
	cellSize     int32
	screenWidth  int32
	screenHeight int32
	offsetX      int32
	offsetY      int32

	mu      sync.Mutex
	frame   game.Frame
	painted bool
	summary *game.Summary

	log *zap.Logger
}

func NewWindow(title string, width, height int, log *zap.Logger) *Window {
	if log == nil {
		log = zap.NewNop()
	}
	return &Window{
		title:  title,
		width:  int32(width),
		height: int32(height),
		log:    log,
	}
}

func (w *Window) Clear() {
	w.mu.Lock()
	w.painted = false
	w.mu.Unlock()
}

func (w *Window) Paint(f game.Frame) {
	w.mu.Lock()
	w.frame = f
	w.painted = true
	w.mu.Unlock()
}

func (w *Window) GameOver(s game.Summary) {
	w.mu.Lock()
	w.summary = &s
	w.mu.Unlock()
}

// Run opens the window and drives ctrl from keyboard and focus until the
// window closes, q is pressed or ctx is cancelled.
func (w *Window) Run(ctx context.Context, ctrl control.Controller) error {
	rl.InitWindow(w.width, w.height, w.title)
	rl.SetWindowState(rl.FlagWindowResizable)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	focused := false
	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			return nil
		}

		if now := rl.IsWindowFocused(); now != focused {
			focused = now
			w.log.Debug("window focus changed", zap.Bool("focused", focused))
			if err := control.Focus(ctrl, focused); err != nil {
				return err
			}
		}

		ok, err := windowKeys.ApplyPressed(ctrl, rl.IsKeyPressed)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		w.draw()
	}
	return nil
}

func (w *Window) UpdateDimensions(grid types.Grid) {
	w.screenWidth = int32(rl.GetScreenWidth())
	w.screenHeight = int32(rl.GetScreenHeight())

	cellW := (w.screenWidth - borderPadding*2) / int32(grid.Width)
	cellH := (w.screenHeight - borderPadding*2) / int32(grid.Height)
	w.cellSize = min(cellW, cellH)
	if w.cellSize < 1 {
		w.cellSize = 1
	}

	w.offsetX = (w.screenWidth - w.cellSize*int32(grid.Width)) / 2
	w.offsetY = (w.screenHeight - w.cellSize*int32(grid.Height)) / 2
}

func (w *Window) draw() {
	w.mu.Lock()
	frame := w.frame
	painted := w.painted
	summary := w.summary
	w.mu.Unlock()

	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(rl.Black)

	if !painted {
		return
	}

	w.UpdateDimensions(frame.Grid)
	rl.DrawRectangleLines(
		w.offsetX-1,
		w.offsetY-1,
		w.cellSize*int32(frame.Grid.Width)+2,
		w.cellSize*int32(frame.Grid.Height)+2,
		rl.DarkGreen)

	w.fillCell(frame.Target, rl.Red)
	for _, p := range frame.Body {
		w.fillCell(p, rl.Green)
	}
	w.fillCell(frame.Head, rl.Lime)
	w.drawHeading(frame.Head, frame.Direction)

	if summary != nil {
		fontSize := max(w.screenHeight/20, 10)
		text := fmt.Sprintf("Game over - length %d", summary.Length)
		textWidth := rl.MeasureText(text, fontSize)
		rl.DrawText(text, (w.screenWidth-textWidth)/2, (w.screenHeight-fontSize)/2, fontSize, rl.White)
	}
}

func (w *Window) fillCell(c types.Cell, color rl.Color) {
	rl.DrawRectangle(
		w.offsetX+int32(c.X)*w.cellSize,
		w.offsetY+int32(c.Y)*w.cellSize,
		w.cellSize, w.cellSize, color)
}

// drawHeading marks the head with a triangle pointing where it goes next.
func (w *Window) drawHeading(head types.Cell, d types.Direction) {
	x := float32(w.offsetX + int32(head.X)*w.cellSize)
	y := float32(w.offsetY + int32(head.Y)*w.cellSize)
	size := float32(w.cellSize)
	half := size / 2

	switch d {
	case types.Right:
		rl.DrawTriangle(
			rl.Vector2{X: x + size, Y: y + half},
			rl.Vector2{X: x + half, Y: y},
			rl.Vector2{X: x + half, Y: y + size},
			rl.Yellow)
	case types.Left:
		rl.DrawTriangle(
			rl.Vector2{X: x, Y: y + half},
			rl.Vector2{X: x + half, Y: y + size},
			rl.Vector2{X: x + half, Y: y},
			rl.Yellow)
	case types.Down:
		rl.DrawTriangle(
			rl.Vector2{X: x + half, Y: y + size},
			rl.Vector2{X: x + size, Y: y + half},
			rl.Vector2{X: x, Y: y + half},
			rl.Yellow)
	case types.Up:
		rl.DrawTriangle(
			rl.Vector2{X: x + half, Y: y},
			rl.Vector2{X: x, Y: y + half},
			rl.Vector2{X: x + size, Y: y + half},
			rl.Yellow)
	}
}
