package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyhop/internal/platform/desktop"
)

var flagDesktopRecord bool

var desktopCmd = &cobra.Command{
	Use:   "desktop",
	Short: "Play in a desktop window",
	Long: `Open an 800x500 window and play with the keyboard or mouse.

Controls:
  Space/Up/W  - Fly (hold to keep climbing)
  Mouse       - Click and hold to fly
  Esc         - Quit

Examples:
  skyhop desktop
  skyhop desktop --record`,
	Args: cobra.NoArgs,
	Run:  runDesktop,
}

func init() {
	desktopCmd.Flags().BoolVar(&flagDesktopRecord, "record", false, "Record the session for replay")
}

func runDesktop(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := newLogger(os.Stderr, "skyhop")

	host, err := desktop.Run(desktop.Options{
		Config:  cfg,
		Runtime: runtimeConfig(int(cfg.Bounds.Width), int(cfg.Bounds.Height)),
		Record:  flagDesktopRecord,
		Logger:  logger,
	})
	if err != nil {
		logger.Error("desktop window failed", "error", err)
	}
	if host == nil {
		os.Exit(1)
	}

	logger.Info("session ended", "runs", host.Game().Runs(), "best", host.Game().HighScore())
	if rec, ok := host.Recording(); ok {
		saveRecording(rec, cfg, host.Game())
	}
	if err != nil {
		os.Exit(1)
	}
}
