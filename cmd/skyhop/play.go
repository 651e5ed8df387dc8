package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skyhop/internal/platform/tui"
)

var flagPlayRecord bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game in the terminal.

Controls:
  Space/Up/W  - Fly (hold to keep climbing)
  Mouse       - Click and hold to fly
  Ctrl+S      - Save a screenshot to ~/.skyhop/screenshots
  Q/Ctrl+C    - Quit

Terminals do not report key releases, so a key counts as held while it
auto-repeats. The mouse reports real press and release.

Examples:
  skyhop play
  skyhop play --seed 42 --record
  skyhop play --config ./my-skyhop.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagPlayRecord, "record", false, "Record the session for replay")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	logger, closeLog := sessionLogger()
	defer closeLog()

	rt := runtimeConfig(width, height)
	logger.Info("starting session", "seed", rt.Seed, "tps", rt.TickRate, "record", flagPlayRecord)

	final, err := tui.Run(tui.Options{
		Config:  cfg,
		Runtime: rt,
		Record:  flagPlayRecord,
		Logger:  logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}

	if g := final.Game(); g != nil {
		fmt.Printf("Best score this session: %d\n", g.HighScore())
		if rec, ok := final.Recording(); ok {
			saveRecording(rec, cfg, g)
		}
	}
}
