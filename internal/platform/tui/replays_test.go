package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/game"
	"github.com/vovakirdan/skyhop/internal/storage"
)

func seedStore(t *testing.T, sessions int) (*storage.Store, []int64) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	var ids []int64
	for i := 0; i < sessions; i++ {
		g, err := game.New(config.Default(), int64(i+1))
		if err != nil {
			t.Fatalf("game.New: %v", err)
		}
		rec := game.NewRecorder(int64(i + 1))
		in := core.NewInputFrame()
		for tick := 1; tick <= 120; tick++ {
			in.Clear()
			if tick%15 == 1 {
				in.Push(core.CommandActivate)
			}
			res := g.Step(in)
			rec.Observe(res.Tick, in)
		}
		id, err := store.SaveRecording(rec.Recording(), config.Default(), game.DigestOf(g))
		if err != nil {
			t.Fatalf("SaveRecording() failed: %v", err)
		}
		ids = append(ids, id)
	}
	return store, ids
}

func updateBrowser(t *testing.T, m ReplayBrowserModel, msg tea.Msg) (ReplayBrowserModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	bm, ok := next.(ReplayBrowserModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return bm, cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestReplayBrowserLists(t *testing.T) {
	store, ids := seedStore(t, 3)
	m := NewReplayBrowserModel(store, 80, 24)

	if len(m.recordings) != 3 {
		t.Fatalf("expected 3 recordings, got %d", len(m.recordings))
	}
	if m.recordings[0].ID != ids[2] {
		t.Errorf("newest recording should be first, got #%d", m.recordings[0].ID)
	}
	if view := m.View(); !strings.Contains(view, "RECORDED SESSIONS") {
		t.Errorf("view missing title: %q", view)
	}
}

func TestReplayBrowserVerify(t *testing.T) {
	store, _ := seedStore(t, 1)
	m := NewReplayBrowserModel(store, 80, 24)

	m, _ = updateBrowser(t, m, runeKey('v'))
	if !strings.Contains(m.status, "verified") {
		t.Errorf("status = %q, expected a verified digest", m.status)
	}
}

func TestReplayBrowserDelete(t *testing.T) {
	store, _ := seedStore(t, 2)
	m := NewReplayBrowserModel(store, 80, 24)

	m, _ = updateBrowser(t, m, runeKey('d'))
	if len(m.recordings) != 1 {
		t.Errorf("expected 1 recording after delete, got %d", len(m.recordings))
	}
	if !strings.HasPrefix(m.status, "deleted") {
		t.Errorf("status = %q", m.status)
	}
}

func TestReplayBrowserWatch(t *testing.T) {
	store, ids := seedStore(t, 2)
	m := NewReplayBrowserModel(store, 80, 24)

	m, cmd := updateBrowser(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	id, ok := m.Selected()
	if !ok || id != ids[1] {
		t.Errorf("Selected() = %d, %v, expected %d", id, ok, ids[1])
	}
	if cmd == nil {
		t.Error("choosing a recording should quit the browser")
	}
}

func TestReplayBrowserEmpty(t *testing.T) {
	store, _ := seedStore(t, 0)
	m := NewReplayBrowserModel(store, 80, 24)

	m, _ = updateBrowser(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := m.Selected(); ok {
		t.Error("nothing to select in an empty list")
	}
	if !strings.Contains(m.View(), "No recordings yet") {
		t.Error("empty view should say so")
	}
}
