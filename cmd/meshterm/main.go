// Command meshterm renders the neural mesh in a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/neural-mesh/internal/config"
	"github.com/iburimskiy/neural-mesh/internal/logging"
	"github.com/iburimskiy/neural-mesh/internal/termview"
)

const logFileName = "meshterm.log"

var (
	configFlag = flag.String("config", "", "Path to a mesh config JSON file")
	presetFlag = flag.String("preset", "drift", "Preset when no config file is given: drift, elegant, glow")
	seedFlag   = flag.Int64("seed", 0, "Random seed (0: time based)")
	fpsFlag    = flag.Int("fps", 60, "Frames per second")
	cellWFlag  = flag.Float64("cell-width", 8, "Surface units per terminal column")
	cellHFlag  = flag.Float64("cell-height", 16, "Surface units per terminal row")
	debugFlag  = flag.Bool("debug", false, "Write logs to "+logging.DefaultDir+"/"+logFileName)
)

func main() {
	flag.Parse()

	// Stdout belongs to the screen; logs only ever go to the file.
	if logFile := logging.Setup(*debugFlag, logging.DefaultDir, logFileName); logFile != nil {
		defer logFile.Close()
	}

	cfg, params, err := config.Resolve(*configFlag, *presetFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "meshterm: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Panic Recovery: Ensure terminal is reset even if rendering crashes
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\nmeshterm crashed: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("preset %q, seed %d, %d fps", cfg.Preset, seed, *fpsFlag)

	app := termview.NewApp(screen, termview.Options{
		Params:     params,
		Background: cfg.BackgroundColor(),
		CellW:      *cellWFlag,
		CellH:      *cellHFlag,
		FrameRate:  *fpsFlag,
		Rand:       rand.New(rand.NewSource(seed)),
		Logger:     log.Default(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		log.Printf("run: %v", err)
	}
}
