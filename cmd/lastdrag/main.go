package main

import (
	"flag"
	"log"
	"math/rand"
	"time"

	"chosenoffset.com/lastdrag/internal/audio"
	"chosenoffset.com/lastdrag/internal/core/dice"
	"chosenoffset.com/lastdrag/internal/game"
	ebitenrender "chosenoffset.com/lastdrag/internal/render/ebiten"
	"chosenoffset.com/lastdrag/internal/simulation"
	"chosenoffset.com/lastdrag/internal/world/citymap"
)

func main() {
	configPath := flag.String("config", "data/tuning.yaml", "simulation tuning file (YAML or JSON)")
	mapsDir := flag.String("maps", "data/maps", "directory of map layouts")
	mapName := flag.String("map", "city", "map to play: \"city\" or a layout name from -maps")
	seed := flag.Int64("seed", 0, "random seed (0 picks one from the clock)")
	mute := flag.Bool("mute", false, "start with sound muted")
	autoplay := flag.Bool("autoplay", false, "let the autopilot play and restart forever")
	list := flag.Bool("list", false, "list available maps and exit")
	flag.Parse()

	if *list {
		layouts, err := citymap.ScanLayouts(*mapsDir)
		if err != nil {
			log.Fatalf("Failed to scan maps: %v", err)
		}
		log.Println("city (built in)")
		for _, l := range layouts {
			log.Printf("%s (%s)", l.Name, l.Path)
		}
		return
	}

	screenWidth := 960
	screenHeight := 640

	cfg, err := simulation.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load tuning: %v", err)
	}
	world, err := citymap.Open(*mapsDir, *mapName)
	if err != nil {
		log.Fatalf("Failed to load map: %v", err)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	log.Printf("Seed %d, map %s", *seed, world.Name())
	rng := rand.New(rand.NewSource(*seed))

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	g := game.NewGame(world, cfg, rng, screenWidth, screenHeight)
	if *autoplay {
		g.Control = game.NewAutopilot(dice.Seeded(rng.Int63()))
	} else {
		g.Control = game.KeyboardController{Input: inputMgr}
	}

	sound := audio.NewSoundManager()
	if err := sound.Initialize(); err != nil {
		log.Printf("Warning: audio unavailable: %v", err)
	}
	defer sound.Cleanup()
	sound.SetMuted(*mute)

	manager := game.NewManager(g, renderer, inputMgr, screenWidth, screenHeight)
	manager.SetSound(sound)
	manager.Autoplay = *autoplay

	// Set up the window
	engine.SetWindowSize(screenWidth, screenHeight)
	engine.SetWindowTitle("Last Drag")
	engine.SetWindowResizable(true)
	engine.SetTPS(60)

	log.Println("Starting game...")
	if err := engine.RunGame(manager); err != nil {
		log.Fatal(err)
	}
}
