package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/neural-mesh/internal/config"
	"github.com/iburimskiy/neural-mesh/internal/game"
	"github.com/iburimskiy/neural-mesh/internal/logging"
)

var (
	configFlag = flag.String("config", "", "Path to a mesh config JSON file")
	presetFlag = flag.String("preset", "drift", "Preset when no config file is given: drift, elegant, glow")
	pageFlag   = flag.String("page", "/index", "Start page: /index, /products, /focusguard")
	seedFlag   = flag.Int64("seed", 0, "Random seed (0: time based)")
	soundFlag  = flag.Bool("sound", false, "Play a chime on page transitions")
	debugFlag  = flag.Bool("debug", false, "Write logs to "+logging.DefaultDir+"/"+logging.DefaultFile)
)

func fail(err error) {
	fmt.Fprintf(os.Stderr, "neural-mesh: %v\n", err)
	game.ShowError(err)
	os.Exit(1)
}

func main() {
	flag.Parse()

	if logFile := logging.Setup(*debugFlag, logging.DefaultDir, logging.DefaultFile); logFile != nil {
		defer logFile.Close()
	}

	cfg, _, err := config.Resolve(*configFlag, *presetFlag)
	if err != nil {
		fail(err)
	}

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("preset %q, seed %d", cfg.Preset, seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, err := game.New(ctx, game.Options{
		Config: cfg,
		Page:   *pageFlag,
		Sound:  *soundFlag,
		Rand:   rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		fail(err)
	}
	defer g.Close()

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("Neural Mesh - 1-3: pages, P: preset, Esc/Q: quit")

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Printf("run: %v", err)
		fail(err)
	}
}
