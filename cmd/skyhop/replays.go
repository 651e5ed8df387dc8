package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skyhop/internal/platform/tui"
	"github.com/vovakirdan/skyhop/internal/storage"
)

var (
	flagReplaysLimit       int
	flagReplaysInteractive bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "List recorded sessions",
	Long: `List the most recent recorded sessions.

Record a session with 'skyhop play --record' or 'skyhop desktop --record'.

Examples:
  skyhop replays
  skyhop replays --limit 50
  skyhop replays -i          # Browse, verify, delete and watch interactively`,
	Args: cobra.NoArgs,
	Run:  runReplays,
}

func init() {
	replaysCmd.Flags().IntVarP(&flagReplaysLimit, "limit", "n", 20, "Number of recordings to show")
	replaysCmd.Flags().BoolVarP(&flagReplaysInteractive, "interactive", "i", false, "Open the interactive replay browser")
}

func runReplays(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagReplaysInteractive {
		browseReplays(store)
		return
	}

	recs, err := store.RecentRecordings(flagReplaysLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading recordings: %v\n", err)
		os.Exit(1)
	}

	if len(recs) == 0 {
		fmt.Println("No recordings yet.")
		fmt.Println("\nRecord one with: skyhop play --record")
		return
	}

	fmt.Println("Recorded sessions:")
	fmt.Println()
	fmt.Printf("  %-6s  %-6s  %-5s  %-8s  %-6s  %s\n", "ID", "Best", "Runs", "Ticks", "Inputs", "Date")
	fmt.Printf("  %-6s  %-6s  %-5s  %-8s  %-6s  %s\n", "------", "------", "-----", "--------", "------", "----------------")

	for _, r := range recs {
		fmt.Printf("  %-6s  %-6d  %-5d  %-8d  %-6d  %s\n",
			fmt.Sprintf("#%d", r.ID),
			r.HighScore,
			r.Runs,
			r.Ticks,
			r.Events,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	fmt.Println()
	fmt.Println("Verify with: skyhop replay <id>")
	fmt.Println("Watch with:  skyhop replay <id> --watch")
}

// browseReplays runs the interactive browser and plays the chosen recording.
func browseReplays(store *storage.Store) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	id, chosen, err := tui.RunReplayBrowser(store, width, height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running replay browser: %v\n", err)
		os.Exit(1)
	}
	if !chosen {
		return
	}

	entry, err := store.RecordingByID(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading recording: %v\n", err)
		os.Exit(1)
	}
	watchInTerminal(entry, width, height)
}
