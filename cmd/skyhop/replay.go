package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skyhop/internal/game"
	"github.com/vovakirdan/skyhop/internal/platform/desktop"
	"github.com/vovakirdan/skyhop/internal/platform/tui"
	"github.com/vovakirdan/skyhop/internal/storage"
)

var (
	flagReplayWatch   bool
	flagReplayDesktop bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Verify or watch a recorded session",
	Long: `Re-simulate a recorded session from its seed and input log.

Without flags the recording is replayed headlessly and its final state is
compared with the state saved at the end of the session. The command exits
with status 1 if they differ.

Examples:
  skyhop replay 3
  skyhop replay 3 --watch
  skyhop replay 3 --desktop`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVarP(&flagReplayWatch, "watch", "w", false, "Watch the replay in the terminal")
	replayCmd.Flags().BoolVar(&flagReplayDesktop, "desktop", false, "Watch the replay in a desktop window")
}

func runReplay(_ *cobra.Command, args []string) {
	id, err := strconv.ParseInt(strings.TrimPrefix(args[0], "#"), 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid recording id %q\n", args[0])
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	entry, err := store.RecordingByID(id)
	store.Close()
	if errors.Is(err, storage.ErrRecordingNotFound) {
		fmt.Fprintf(os.Stderr, "Recording #%d not found.\n", id)
		fmt.Fprintln(os.Stderr, "Use 'skyhop replays' to see available recordings.")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading recording: %v\n", err)
		os.Exit(1)
	}

	switch {
	case flagReplayDesktop:
		watchOnDesktop(entry)
	case flagReplayWatch:
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
			height = h
		}
		watchInTerminal(entry, width, height)
	default:
		verifyRecording(entry)
	}
}

// verifyRecording replays headlessly and exits 1 on divergence.
func verifyRecording(entry *storage.Entry) {
	got, err := game.Replay(entry.Config, entry.Recording())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error replaying: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Recording #%d: seed %d, %d ticks, %d inputs\n", entry.ID, entry.Seed, entry.Ticks, entry.Events)
	fmt.Printf("  recorded: %s\n", describeDigest(entry.Expected))
	fmt.Printf("  replayed: %s\n", describeDigest(got))

	if got != entry.Expected {
		fmt.Println("MISMATCH: the replay diverged from the recorded session.")
		os.Exit(1)
	}
	fmt.Println("OK: the replay is identical.")
}

func describeDigest(d game.Digest) string {
	return fmt.Sprintf("tick %d, phase %s, y %.3f, score %d, best %d, runs %d",
		d.Tick, d.Phase, d.EntityY, d.Score, d.HighScore, d.Runs)
}

// watchInTerminal plays a recording in the terminal renderer.
func watchInTerminal(entry *storage.Entry, width, height int) {
	player, err := game.NewPlayer(entry.Config, entry.Recording())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := sessionLogger()
	defer closeLog()

	rt := runtimeConfig(width, height)
	rt.Seed = entry.Seed
	if _, err := tui.Run(tui.Options{
		Config:  entry.Config,
		Runtime: rt,
		Replay:  player,
		Logger:  logger,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error running replay: %v\n", err)
		os.Exit(1)
	}
	reportWatched(entry, player)
}

// watchOnDesktop plays a recording in a desktop window.
func watchOnDesktop(entry *storage.Entry) {
	player, err := game.NewPlayer(entry.Config, entry.Recording())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rt := runtimeConfig(int(entry.Config.Bounds.Width), int(entry.Config.Bounds.Height))
	rt.Seed = entry.Seed
	if _, err := desktop.Run(desktop.Options{
		Config:  entry.Config,
		Runtime: rt,
		Replay:  player,
		Logger:  newLogger(os.Stderr, "skyhop"),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error running replay: %v\n", err)
		os.Exit(1)
	}
	reportWatched(entry, player)
}

// reportWatched compares the digest once the viewer watched to the end.
func reportWatched(entry *storage.Entry, player *game.Player) {
	if !player.Done() {
		fmt.Printf("Stopped at tick %d of %d.\n", player.Game().Tick(), entry.Ticks)
		return
	}
	if game.DigestOf(player.Game()) != entry.Expected {
		fmt.Println("MISMATCH: the replay diverged from the recorded session.")
		os.Exit(1)
	}
	fmt.Printf("Replay of #%d finished: best %d over %d runs.\n", entry.ID, entry.Expected.HighScore, entry.Expected.Runs)
}
