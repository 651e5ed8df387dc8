// skyhop is a one-button arcade flyer for the terminal, the desktop and SSH.
//
// Usage:
//
//	skyhop play              - Play in the terminal
//	skyhop desktop           - Play in a desktop window
//	skyhop serve             - Start SSH server for remote play
//	skyhop replays           - List recorded sessions
//	skyhop replay <id>       - Verify or watch a recorded session
//	skyhop config            - Print the effective game configuration
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--config <path>    - Use a custom game config YAML
//	--db <path>        - Set database path (default: ~/.skyhop/skyhop.db)
//	--log-file <path>  - Write logs to a file while the game owns the terminal
//	--verbose          - Enable debug logging
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagConfig  string
	flagDBPath  string
	flagLogFile string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skyhop",
	Short: "Skyhop - hold to fly through the gaps",
	Long: `Skyhop is a one-button arcade flyer. Tap or hold to climb, let go to
fall, and thread the entity through the gaps in the scrolling obstacles.

Available commands:
  play     - Play in the terminal
  desktop  - Play in a desktop window
  serve    - Start SSH server for remote play
  replays  - List recorded sessions
  replay   - Verify or watch a recorded session
  config   - Print the effective game configuration

Examples:
  skyhop play
  skyhop play --record --seed 42
  skyhop desktop
  skyhop serve --ssh :2222
  skyhop replay 3 --watch`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.skyhop/skyhop.db", "Path to recordings database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while playing")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(desktopCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger creates a logger honoring --verbose.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// sessionLogger returns a logger for code running while a game owns the
// terminal: it writes to --log-file, or nowhere.
func sessionLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	return newLogger(f, "skyhop"), func() { f.Close() }
}

// loadConfig loads the game configuration or exits.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig, newLogger(os.Stderr, "skyhop"))
	if err != nil {
		fatalf("%v", err)
	}
	return cfg
}

// runtimeConfig builds host parameters from the global flags.
func runtimeConfig(width, height int) core.RuntimeConfig {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
