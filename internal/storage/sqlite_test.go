package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/game"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// recordSession plays a short scripted session and returns what a host would save.
func recordSession(t *testing.T, seed int64, ticks int) (game.Recording, game.Digest) {
	t.Helper()
	g, err := game.New(config.Default(), seed)
	if err != nil {
		t.Fatalf("game.New: %v", err)
	}
	rec := game.NewRecorder(seed)
	in := core.NewInputFrame()
	for i := 1; i <= ticks; i++ {
		in.Clear()
		switch i % 25 {
		case 1:
			in.Push(core.CommandActivate)
		case 8:
			in.Push(core.CommandDeactivate)
		}
		res := g.Step(in)
		rec.Observe(res.Tick, in)
	}
	return rec.Recording(), game.DigestOf(g)
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndLoadRecording(t *testing.T) {
	store := openTestStore(t)
	rec, digest := recordSession(t, 99, 600)

	cfg := config.Default()
	cfg.Obstacles.Speed = 2
	id, err := store.SaveRecording(rec, cfg, digest)
	if err != nil {
		t.Fatalf("SaveRecording() failed: %v", err)
	}

	got, err := store.RecordingByID(id)
	if err != nil {
		t.Fatalf("RecordingByID() failed: %v", err)
	}

	if got.Seed != 99 || got.Ticks != 600 {
		t.Errorf("seed/ticks = %d/%d, expected 99/600", got.Seed, got.Ticks)
	}
	if got.Config != cfg {
		t.Errorf("config not preserved: %+v", got.Config)
	}
	if got.Expected != digest {
		t.Errorf("digest = %+v, expected %+v", got.Expected, digest)
	}
	if len(got.Log) != len(rec.Events) || got.Events != len(rec.Events) {
		t.Fatalf("expected %d events, got %d (count column %d)", len(rec.Events), len(got.Log), got.Events)
	}
	for i := range rec.Events {
		if got.Log[i] != rec.Events[i] {
			t.Fatalf("event %d = %+v, expected %+v", i, got.Log[i], rec.Events[i])
		}
	}
}

func TestStoredRecordingReplays(t *testing.T) {
	store := openTestStore(t)
	rec, digest := recordSession(t, 5, 1500)

	id, err := store.SaveRecording(rec, config.Default(), digest)
	if err != nil {
		t.Fatalf("SaveRecording() failed: %v", err)
	}
	entry, err := store.RecordingByID(id)
	if err != nil {
		t.Fatalf("RecordingByID() failed: %v", err)
	}

	replayed, err := game.Replay(entry.Config, entry.Recording())
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if replayed != entry.Expected {
		t.Errorf("replayed digest %+v, expected %+v", replayed, entry.Expected)
	}
}

func TestStoreEmptyRecording(t *testing.T) {
	store := openTestStore(t)

	g, err := game.New(config.Default(), 1)
	if err != nil {
		t.Fatalf("game.New: %v", err)
	}
	id, err := store.SaveRecording(game.NewRecorder(1).Recording(), config.Default(), game.DigestOf(g))
	if err != nil {
		t.Fatalf("SaveRecording() failed: %v", err)
	}

	got, err := store.RecordingByID(id)
	if err != nil {
		t.Fatalf("RecordingByID() failed: %v", err)
	}
	if len(got.Log) != 0 || got.Expected.Phase != game.PhaseIdle {
		t.Errorf("unexpected entry %+v", got)
	}
}

func TestStoreRecentRecordings(t *testing.T) {
	store := openTestStore(t)

	var ids []int64
	for i := 0; i < 5; i++ {
		rec, digest := recordSession(t, int64(i), 50*(i+1))
		id, err := store.SaveRecording(rec, config.Default(), digest)
		if err != nil {
			t.Fatalf("SaveRecording() failed: %v", err)
		}
		ids = append(ids, id)
	}

	recent, err := store.RecentRecordings(3)
	if err != nil {
		t.Fatalf("RecentRecordings() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 recordings with limit, got %d", len(recent))
	}

	// Newest first
	for i, r := range recent {
		if want := ids[len(ids)-1-i]; r.ID != want {
			t.Errorf("recent[%d].ID = %d, expected %d", i, r.ID, want)
		}
	}
	if recent[0].Ticks != 250 || recent[0].Seed != 4 {
		t.Errorf("newest = %+v, expected seed 4 with 250 ticks", recent[0])
	}
}

func TestStoreRecordingNotFound(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.RecordingByID(42); !errors.Is(err, ErrRecordingNotFound) {
		t.Errorf("RecordingByID() error = %v, expected ErrRecordingNotFound", err)
	}
	if err := store.DeleteRecording(42); !errors.Is(err, ErrRecordingNotFound) {
		t.Errorf("DeleteRecording() error = %v, expected ErrRecordingNotFound", err)
	}
}

func TestStoreDeleteRecording(t *testing.T) {
	store := openTestStore(t)
	rec, digest := recordSession(t, 1, 100)

	id, err := store.SaveRecording(rec, config.Default(), digest)
	if err != nil {
		t.Fatalf("SaveRecording() failed: %v", err)
	}
	if err := store.DeleteRecording(id); err != nil {
		t.Fatalf("DeleteRecording() failed: %v", err)
	}
	if _, err := store.RecordingByID(id); !errors.Is(err, ErrRecordingNotFound) {
		t.Errorf("deleted recording still readable: %v", err)
	}
}

func TestStorePersistsAcrossOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	rec, digest := recordSession(t, 3, 200)

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	id, err := store.SaveRecording(rec, config.Default(), digest)
	if err != nil {
		t.Fatalf("SaveRecording() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if _, err := store.RecordingByID(id); err != nil {
		t.Errorf("recording lost after reopen: %v", err)
	}
}
