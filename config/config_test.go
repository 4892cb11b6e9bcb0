package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"snake-torus/game/types"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if g := cfg.Grid(); g != (types.Grid{Width: 20, Height: 20}) {
		t.Errorf("grid = %+v, want 20x20", g)
	}
	if cfg.Game.TickInterval != 250*time.Millisecond {
		t.Errorf("tick interval = %v", cfg.Game.TickInterval)
	}
	if target, err := cfg.FirstTarget(); target != nil || err != nil {
		t.Errorf("FirstTarget = %v, %v, want a random target", target, err)
	}

	seed, err := cfg.SnakeSeed()
	if err != nil {
		t.Fatalf("SnakeSeed: %v", err)
	}
	if seed.Direction != types.Left || len(seed.Cells) != 4 || seed.Cells[0] != (types.Cell{X: 10, Y: 2}) {
		t.Errorf("seed = %+v", seed)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "snake.toml", `
[board]
canvas_width = 300
canvas_height = 150
cell_size = 15

[game]
tick_interval = "100ms"
direction = "up"
seed = 7
target = [5, 5]

[snake]
cells = [[3, 3], [3, 4], [3, 5]]

[logging]
level = "debug"
format = "json"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if g := cfg.Grid(); g != (types.Grid{Width: 20, Height: 10}) {
		t.Errorf("grid = %+v", g)
	}
	if cfg.Game.TickInterval != 100*time.Millisecond || cfg.Game.Seed != 7 {
		t.Errorf("game = %+v", cfg.Game)
	}
	if target, err := cfg.FirstTarget(); err != nil || target == nil || *target != (types.Cell{X: 5, Y: 5}) {
		t.Errorf("FirstTarget = %v, %v", target, err)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" || cfg.Logging.Output != "stderr" {
		t.Errorf("logging = %+v", cfg.Logging)
	}

	seed, _ := cfg.SnakeSeed()
	if seed.Direction != types.Up || len(seed.Cells) != 3 {
		t.Errorf("seed = %+v", seed)
	}
}

func TestLoadYAMLTailSeed(t *testing.T) {
	path := writeFile(t, "snake.yaml", `
board:
  canvas_width: 300
  canvas_height: 300
  cell_size: 15
game:
  tick_interval: 250ms
snake:
  tail: [13, 2]
  grow: 4
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	seed, err := cfg.SnakeSeed()
	if err != nil {
		t.Fatalf("SnakeSeed: %v", err)
	}
	if len(seed.Cells) != 0 || seed.Tail != (types.Cell{X: 13, Y: 2}) || seed.Grow != 4 {
		t.Fatalf("seed = %+v", seed)
	}

	snake, err := seed.Build(cfg.Grid())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if snake.Head() != (types.Cell{X: 9, Y: 2}) {
		t.Errorf("head = %v, want (9,2)", snake.Head())
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero cell", "[board]\ncell_size = 0\n"},
		{"cell larger than canvas", "[board]\ncanvas_width = 10\ncell_size = 15\n"},
		{"negative interval", "[game]\ntick_interval = \"-1s\"\n"},
		{"bad direction", "[game]\ndirection = \"sideways\"\n"},
		{"seed out of bounds", "[snake]\ncells = [[25, 2]]\n"},
		{"seed overlap", "[snake]\ncells = [[1, 1], [2, 1], [1, 1]]\n"},
		{"seed faces neck", "[game]\ndirection = \"right\"\n[snake]\ncells = [[1, 1], [2, 1]]\n"},
		{"seed pair length", "[snake]\ncells = [[1, 1, 1]]\n"},
		{"bad log format", "[logging]\nformat = \"xml\"\n"},
		{"target on seed", "[game]\ntarget = [11, 2]\n"},
		{"target out of bounds", "[game]\ntarget = [20, 0]\n"},
		{"target pair length", "[game]\ntarget = [1]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "bad.toml", tt.body))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Load error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Load(writeFile(t, "snake.json", "{}")); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if _, err := Load(writeFile(t, "broken.toml", "[board\n")); err == nil {
		t.Error("expected parse error")
	}
}
