package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"snake-torus/game"
	"snake-torus/game/types"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Board   BoardConfig   `toml:"board" yaml:"board"`
	Game    GameConfig    `toml:"game" yaml:"game"`
	Snake   SnakeConfig   `toml:"snake" yaml:"snake"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// BoardConfig is in pixels; the grid extent is canvas / cell on each axis.
type BoardConfig struct {
	CanvasWidth  int `toml:"canvas_width" yaml:"canvas_width"`
	CanvasHeight int `toml:"canvas_height" yaml:"canvas_height"`
	CellSize     int `toml:"cell_size" yaml:"cell_size"`
}

type GameConfig struct {
	TickInterval time.Duration `toml:"tick_interval" yaml:"tick_interval"`
	Direction    string        `toml:"direction" yaml:"direction"`
	Seed         uint64        `toml:"seed" yaml:"seed"`     // 0 = time based
	Target       []int         `toml:"target" yaml:"target"` // fixed first target, empty = random
}

// SnakeConfig holds either explicit cells (head first) or a tail cell plus
// the number of cells to grow in front of it.
type SnakeConfig struct {
	Cells [][]int `toml:"cells" yaml:"cells"`
	Tail  []int   `toml:"tail" yaml:"tail"`
	Grow  int     `toml:"grow" yaml:"grow"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
	Output string `toml:"output" yaml:"output"` // "stderr", "stdout" or a file path
}

// Load reads a .toml, .yaml or .yml file over the defaults. An empty path
// returns the defaults. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".toml":
			err = toml.Unmarshal(data, cfg)
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, cfg)
		default:
			return nil, fmt.Errorf("config %s: unsupported format %q", path, filepath.Ext(path))
		}
		if err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if len(cfg.Snake.Cells) == 0 && len(cfg.Snake.Tail) == 0 {
		cfg.Snake.Cells = defaultSeed()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default leaves the snake empty; Load fills in the default seed when the
// file did not describe one.
func Default() *Config {
	return &Config{
		Board: BoardConfig{
			CanvasWidth:  100,
			CanvasHeight: 100,
			CellSize:     5,
		},
		Game: GameConfig{
			TickInterval: game.DefaultTickInterval,
			Direction:    "left",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
	}
}

func defaultSeed() [][]int {
	return [][]int{{10, 2}, {11, 2}, {12, 2}, {13, 2}}
}

func (c *Config) Grid() types.Grid {
	if c.Board.CellSize <= 0 {
		return types.Grid{}
	}
	return types.Grid{
		Width:  c.Board.CanvasWidth / c.Board.CellSize,
		Height: c.Board.CanvasHeight / c.Board.CellSize,
	}
}

// SnakeSeed converts the snake section. It does not check the cells against
// the grid; Validate does.
func (c *Config) SnakeSeed() (game.Seed, error) {
	dir, err := types.ParseDirection(c.Game.Direction)
	if err != nil {
		return game.Seed{}, err
	}

	seed := game.Seed{Direction: dir, Grow: c.Snake.Grow}
	if len(c.Snake.Cells) > 0 {
		for i, pair := range c.Snake.Cells {
			cell, err := toCell(pair)
			if err != nil {
				return game.Seed{}, fmt.Errorf("snake cell %d: %w", i, err)
			}
			seed.Cells = append(seed.Cells, cell)
		}
		return seed, nil
	}

	seed.Tail, err = toCell(c.Snake.Tail)
	if err != nil {
		return game.Seed{}, fmt.Errorf("snake tail: %w", err)
	}
	return seed, nil
}

// FirstTarget returns the configured first target, or nil for a random one.
func (c *Config) FirstTarget() (*types.Cell, error) {
	if len(c.Game.Target) == 0 {
		return nil, nil
	}
	cell, err := toCell(c.Game.Target)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	return &cell, nil
}

func (c *Config) Validate() error {
	b := c.Board
	if b.CanvasWidth <= 0 || b.CanvasHeight <= 0 {
		return fmt.Errorf("%w: canvas %dx%d must be positive", ErrInvalid, b.CanvasWidth, b.CanvasHeight)
	}
	if b.CellSize <= 0 {
		return fmt.Errorf("%w: cell size %d must be positive", ErrInvalid, b.CellSize)
	}
	grid := c.Grid()
	if grid.Width < 1 || grid.Height < 1 {
		return fmt.Errorf("%w: cell size %d larger than canvas %dx%d", ErrInvalid, b.CellSize, b.CanvasWidth, b.CanvasHeight)
	}
	if c.Game.TickInterval <= 0 {
		return fmt.Errorf("%w: tick interval %v must be positive", ErrInvalid, c.Game.TickInterval)
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging format %q", ErrInvalid, c.Logging.Format)
	}

	seed, err := c.SnakeSeed()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	snake, err := seed.Build(grid)
	if err != nil {
		return fmt.Errorf("%w: snake seed: %v", ErrInvalid, err)
	}

	target, err := c.FirstTarget()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if target != nil && (!grid.Contains(*target) || snake.Occupies(*target)) {
		return fmt.Errorf("%w: target %v is outside the grid or on the snake", ErrInvalid, *target)
	}
	return nil
}

func toCell(pair []int) (types.Cell, error) {
	if len(pair) != 2 {
		return types.Cell{}, fmt.Errorf("want [x, y], got %v", pair)
	}
	return types.Cell{X: pair[0], Y: pair[1]}, nil
}
