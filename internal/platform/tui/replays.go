package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/skyhop/internal/game"
	"github.com/vovakirdan/skyhop/internal/storage"
)

const maxRecordings = 100 // Max recordings to load

// RecordingStore is the part of the store the replay browser needs.
type RecordingStore interface {
	RecentRecordings(limit int) ([]storage.Summary, error)
	RecordingByID(id int64) (*storage.Entry, error)
	DeleteRecording(id int64) error
}

// ReplayKeyMap defines the key bindings for the replay browser.
type ReplayKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Watch  key.Binding
	Verify key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Watch, k.Verify, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ReplayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Watch, k.Verify, k.Delete, k.Quit},
	}
}

// DefaultReplayKeyMap returns default key bindings.
func DefaultReplayKeyMap() ReplayKeyMap {
	return ReplayKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Watch: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "watch"),
		),
		Verify: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "verify"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplayBrowserModel lists stored recordings and lets the user pick one.
type ReplayBrowserModel struct {
	store      RecordingStore
	recordings []storage.Summary
	table      table.Model
	help       help.Model
	keys       ReplayKeyMap
	status     string
	width      int
	height     int
	selected   int64
	quitting   bool
}

// NewReplayBrowserModel creates a replay browser and loads the recent recordings.
func NewReplayBrowserModel(store RecordingStore, width, height int) ReplayBrowserModel {
	m := ReplayBrowserModel{
		store:  store,
		keys:   DefaultReplayKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadRecordings()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ReplayBrowserModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Best", Width: 6},
		{Title: "Runs", Width: 6},
		{Title: "Ticks", Width: 8},
		{Title: "Inputs", Width: 8},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, status and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRecordings refreshes the table from the store.
func (m *ReplayBrowserModel) loadRecordings() {
	if m.store == nil {
		m.recordings = nil
		m.updateTableRows()
		return
	}

	recs, err := m.store.RecentRecordings(maxRecordings)
	if err != nil {
		m.status = err.Error()
		m.recordings = nil
	} else {
		m.recordings = recs
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current recordings.
func (m *ReplayBrowserModel) updateTableRows() {
	rows := make([]table.Row, len(m.recordings))
	for i, r := range m.recordings {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", r.ID),
			strconv.Itoa(r.HighScore),
			strconv.Itoa(r.Runs),
			strconv.FormatUint(r.Ticks, 10),
			strconv.Itoa(r.Events),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.GotoTop()
	}
}

// current returns the recording under the cursor.
func (m ReplayBrowserModel) current() (storage.Summary, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.recordings) {
		return storage.Summary{}, false
	}
	return m.recordings[i], true
}

// Init initializes the replay browser.
func (m ReplayBrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the replay browser.
func (m ReplayBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Watch):
			if r, ok := m.current(); ok {
				m.selected = r.ID
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Verify):
			if r, ok := m.current(); ok {
				m.status = m.verify(r.ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if r, ok := m.current(); ok && m.store != nil {
				if err := m.store.DeleteRecording(r.ID); err != nil {
					m.status = err.Error()
				} else {
					m.status = fmt.Sprintf("deleted #%d", r.ID)
				}
				m.loadRecordings()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// verify re-simulates a recording and reports whether its digest matches.
func (m ReplayBrowserModel) verify(id int64) string {
	if m.store == nil {
		return "no store"
	}
	entry, err := m.store.RecordingByID(id)
	if err != nil {
		return err.Error()
	}
	got, err := game.Replay(entry.Config, entry.Recording())
	if err != nil {
		return err.Error()
	}
	if got != entry.Expected {
		return fmt.Sprintf("#%d MISMATCH: replayed score %d at y=%.2f, recorded %d at y=%.2f",
			id, got.Score, got.EntityY, entry.Expected.Score, entry.Expected.EntityY)
	}
	return fmt.Sprintf("#%d verified: %d ticks replay identically", id, entry.Ticks)
}

// View renders the replay browser.
func (m ReplayBrowserModel) View() string {
	if m.quitting || m.selected != 0 {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render("RECORDED SESSIONS"))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.recordings) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(tableStyle.Render(emptyStyle.Render("No recordings yet.\nPlay with --record to keep one!")))
	} else {
		b.WriteString(tableStyle.Render(m.table.View()))
	}
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(footerStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Selected returns the recording the user chose to watch.
func (m ReplayBrowserModel) Selected() (int64, bool) {
	return m.selected, m.selected != 0
}

// RunReplayBrowser runs the replay browser.
// Returns the ID of the recording to watch, if one was chosen.
func RunReplayBrowser(store RecordingStore, width, height int) (int64, bool, error) {
	p := tea.NewProgram(
		NewReplayBrowserModel(store, width, height),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return 0, false, err
	}

	m, ok := final.(ReplayBrowserModel)
	if !ok {
		return 0, false, nil
	}
	id, chosen := m.Selected()
	return id, chosen, nil
}
