package main

import (
	"fmt"
	"os"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/game"
	"github.com/vovakirdan/skyhop/internal/storage"
)

// saveRecording stores a finished session and tells the user how to replay it.
func saveRecording(rec game.Recording, cfg config.Config, g *game.Game) {
	if rec.Ticks == 0 {
		fmt.Println("Nothing to record.")
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: recording not saved: %v\n", err)
		return
	}
	defer store.Close()

	id, err := store.SaveRecording(rec, cfg, game.DigestOf(g))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: recording not saved: %v\n", err)
		return
	}

	fmt.Printf("Saved recording #%d (%d ticks, %d runs, best %d).\n", id, rec.Ticks, g.Runs(), g.HighScore())
	fmt.Printf("Replay with: skyhop replay %d --watch\n", id)
}
