// Command chopper runs the game.
package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/chopper/internal/config"
	"github.com/plus3/chopper/internal/game"
	"github.com/plus3/chopper/internal/logging"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	path := config.Path()
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	log.Info("starting",
		zap.String("config", path),
		zap.String("level", cfg.Paths.Level),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height))

	g, err := game.New(cfg, log)
	if err != nil {
		return err
	}
	defer g.Close()

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	log.Info("game over")
	return nil
}
