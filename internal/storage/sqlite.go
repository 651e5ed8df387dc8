// Package storage provides SQLite-based persistence for recorded sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/game"
)

// ErrRecordingNotFound is returned when no recording has the requested ID.
var ErrRecordingNotFound = errors.New("storage: recording not found")

// Store manages the SQLite database connection for recorded sessions.
type Store struct {
	db *sql.DB
}

// Summary is the listing view of a recording, without its input log.
type Summary struct {
	ID         int64
	Seed       int64
	Ticks      uint64
	Runs       int
	HighScore  int
	FinalScore int
	Events     int
	CreatedAt  time.Time
}

// Entry is a complete stored recording.
type Entry struct {
	Summary
	Config   config.Config
	Expected game.Digest
	Log      []game.InputEvent
}

// Recording rebuilds the replayable recording.
func (e *Entry) Recording() game.Recording {
	return game.Recording{Seed: e.Seed, Events: e.Log, Ticks: e.Ticks}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS recordings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			runs INTEGER NOT NULL DEFAULT 0,
			high_score INTEGER NOT NULL DEFAULT 0,
			final_score INTEGER NOT NULL DEFAULT 0,
			final_y REAL NOT NULL,
			final_phase TEXT NOT NULL,
			event_count INTEGER NOT NULL DEFAULT 0,
			config BLOB NOT NULL,
			events BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_recordings_created ON recordings(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRecording stores a session's input log together with the configuration
// it ran under and the digest of its final state.
// Returns the ID of the inserted record.
func (s *Store) SaveRecording(rec game.Recording, cfg config.Config, digest game.Digest) (int64, error) {
	cfgBlob, err := config.Marshal(cfg)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode config: %w", err)
	}
	events := rec.Events
	if events == nil {
		events = []game.InputEvent{}
	}
	eventsBlob, err := msgpack.Marshal(events)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode events: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO recordings
		 (seed, ticks, runs, high_score, final_score, final_y, final_phase, event_count, config, events)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Seed,
		int64(rec.Ticks),
		digest.Runs,
		digest.HighScore,
		digest.Score,
		digest.EntityY,
		digest.Phase.String(),
		len(events),
		cfgBlob,
		eventsBlob,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save recording: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecordingByID retrieves a complete recording.
// Returns ErrRecordingNotFound if no such recording exists.
func (s *Store) RecordingByID(id int64) (*Entry, error) {
	var (
		e          Entry
		ticks      int64
		finalPhase string
		cfgBlob    []byte
		eventsBlob []byte
		createdAt  any
	)

	err := s.db.QueryRow(
		`SELECT id, seed, ticks, runs, high_score, final_score, final_y, final_phase,
		        event_count, config, events, created_at
		 FROM recordings
		 WHERE id = ?`,
		id,
	).Scan(
		&e.ID,
		&e.Seed,
		&ticks,
		&e.Runs,
		&e.HighScore,
		&e.FinalScore,
		&e.Expected.EntityY,
		&finalPhase,
		&e.Events,
		&cfgBlob,
		&eventsBlob,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrRecordingNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recording: %w", err)
	}

	e.Ticks = uint64(ticks)
	e.CreatedAt = parseTime(createdAt)

	phase, err := game.ParsePhase(finalPhase)
	if err != nil {
		return nil, fmt.Errorf("storage: recording %d: %w", id, err)
	}
	e.Expected.Tick = e.Ticks
	e.Expected.Score = e.FinalScore
	e.Expected.HighScore = e.HighScore
	e.Expected.Runs = e.Runs
	e.Expected.Phase = phase

	if e.Config, err = config.Parse(cfgBlob); err != nil {
		return nil, fmt.Errorf("storage: recording %d: %w", id, err)
	}
	if err := msgpack.Unmarshal(eventsBlob, &e.Log); err != nil {
		return nil, fmt.Errorf("storage: recording %d: cannot decode events: %w", id, err)
	}

	return &e, nil
}

// RecentRecordings lists the most recent recordings, newest first.
func (s *Store) RecentRecordings(limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, seed, ticks, runs, high_score, final_score, event_count, created_at
		 FROM recordings
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recordings: %w", err)
	}
	defer rows.Close()

	var results []Summary
	for rows.Next() {
		var (
			r         Summary
			ticks     int64
			createdAt any
		)
		if err := rows.Scan(
			&r.ID,
			&r.Seed,
			&ticks,
			&r.Runs,
			&r.HighScore,
			&r.FinalScore,
			&r.Events,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Ticks = uint64(ticks)
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// DeleteRecording removes a recording.
// Returns ErrRecordingNotFound if no such recording exists.
func (s *Store) DeleteRecording(id int64) error {
	res, err := s.db.Exec("DELETE FROM recordings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete recording: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrRecordingNotFound, id)
	}
	return nil
}

// parseTime handles both time.Time and string datetime values from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
