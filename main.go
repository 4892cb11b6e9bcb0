package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"snake-torus/config"
	"snake-torus/game"
	"snake-torus/game/entity"
	"snake-torus/ui"
	"snake-torus/ui/control"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/exp/rand"
)

// frontend paints a session and feeds it input until the player quits.
type frontend interface {
	game.Painter
	Run(ctx context.Context, ctrl control.Controller) error
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", os.Getenv("SNAKE_CONFIG"), "Path to a .toml or .yaml config file")
	mode := flag.String("frontend", "window", "Frontend: window or terminal")
	speed := flag.Int("speed", 0, "Tick interval in milliseconds, overrides the config when > 0")
	flag.Parse()

	// 1. Config
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *speed > 0 {
		cfg.Game.TickInterval = time.Duration(*speed) * time.Millisecond
	}
	if *mode == "terminal" && (cfg.Logging.Output == "stderr" || cfg.Logging.Output == "stdout") {
		// The terminal frontend owns the screen.
		cfg.Logging.Output = "snake-torus.log"
	}

	// 2. Logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Snake
	seed, err := cfg.SnakeSeed()
	if err != nil {
		return fmt.Errorf("snake seed: %w", err)
	}
	snake, err := seed.Build(cfg.Grid())
	if err != nil {
		return fmt.Errorf("snake seed: %w", err)
	}

	// 4. Frontend
	var fe frontend
	switch *mode {
	case "window":
		fe = ui.NewWindow("Snake", cfg.Board.CanvasWidth, cfg.Board.CanvasHeight, log)
	case "terminal":
		term, err := ui.NewTerminal(log)
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		defer term.Close()
		fe = term
	default:
		return fmt.Errorf("unknown frontend %q", *mode)
	}

	// 5. Session
	session, err := newSession(cfg, snake, fe, log)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		session.Run(ctx)
	}()

	log.Info("game ready",
		zap.String("session", session.UUID),
		zap.String("frontend", *mode),
		zap.Int("width", cfg.Grid().Width),
		zap.Int("height", cfg.Grid().Height),
		zap.Duration("tick", cfg.Game.TickInterval))

	err = fe.Run(ctx, session)
	cancel()
	<-loopDone
	return err
}

func newSession(cfg *config.Config, snake *entity.Snake, painter game.Painter, log *zap.Logger) (*game.Session, error) {
	target, err := cfg.FirstTarget()
	if err != nil {
		return nil, err
	}

	rngSeed := cfg.Game.Seed
	if rngSeed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}

	return game.NewSession(game.Options{
		Grid:         cfg.Grid(),
		Snake:        snake,
		Painter:      painter,
		TickInterval: cfg.Game.TickInterval,
		Target:       target,
		Rand:         rand.New(rand.NewSource(rngSeed)),
		Logger:       log,
	})
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		if cfg.Output == "stderr" || cfg.Output == "stdout" {
			zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.Output != "" {
		zapCfg.OutputPaths = []string{cfg.Output}
	}

	return zapCfg.Build()
}
