// Command lastdrag-watch runs the autopilot in a terminal, restarting after
// every ending. Use it to soak-test tuning changes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/lastdrag/internal/core/dice"
	"chosenoffset.com/lastdrag/internal/game"
	"chosenoffset.com/lastdrag/internal/simulation"
	"chosenoffset.com/lastdrag/internal/ui/termview"
	"chosenoffset.com/lastdrag/internal/world/citymap"
)

func main() {
	configPath := flag.String("config", "data/tuning.yaml", "simulation tuning file (YAML or JSON)")
	mapsDir := flag.String("maps", "data/maps", "directory of map layouts")
	mapName := flag.String("map", "city", "map to watch: \"city\" or a layout name from -maps")
	seed := flag.Int64("seed", 0, "random seed (0 picks one from the clock)")
	speed := flag.Int("speed", 1, "simulation frames per tick")
	logPath := flag.String("log", "", "write session logs to this file")
	flag.Parse()

	if err := run(*configPath, *mapsDir, *mapName, *seed, *speed, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "lastdrag-watch: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, mapsDir, mapName string, seed int64, speed int, logPath string) error {
	// the terminal belongs to the view, so logs go to a file or nowhere
	var logOut io.Writer = io.Discard
	if logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	log.SetOutput(logOut)

	cfg, err := simulation.LoadConfig(configPath)
	if err != nil {
		return err
	}
	world, err := citymap.Open(mapsDir, mapName)
	if err != nil {
		return err
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("Seed %d, map %s", seed, world.Name())
	rng := rand.New(rand.NewSource(seed))

	g := game.NewGame(world, cfg, rng, 960, 640)
	g.Director.Logger = slog.New(slog.NewTextHandler(logOut, nil))
	g.Control = game.NewAutopilot(dice.Seeded(rng.Int63()))

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	v := termview.New(screen, g)
	if speed > 0 {
		v.Speed = speed
	}
	v.Start()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = v.Run(ctx, 30)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	log.Printf("Watched %d sessions, longest %.1fs", v.Sessions, v.Longest)
	return err
}
