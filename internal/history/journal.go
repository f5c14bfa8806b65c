// Package history keeps a journal of breathing sessions in SQLite.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Outcome describes how a session ended.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeAbandoned Outcome = "abandoned"
)

// Entry is one recorded session.
type Entry struct {
	ID             string
	PresetName     string
	Pattern        string
	PlannedSeconds int
	ElapsedSeconds int
	Outcome        Outcome
	StartedAt      time.Time
	EndedAt        time.Time
}

// Stats aggregates the whole journal.
type Stats struct {
	Sessions       int
	Completed      int
	ElapsedSeconds int
}

// Journal stores entries in a SQLite database.
type Journal struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	preset_name TEXT NOT NULL,
	pattern TEXT NOT NULL,
	planned_seconds INTEGER NOT NULL,
	elapsed_seconds INTEGER NOT NULL,
	outcome TEXT NOT NULL,
	started_at INTEGER NOT NULL,
	ended_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON sessions(started_at);
`

// Open creates or opens the journal at dbPath.
func Open(dbPath string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Journal{db: db}, nil
}

// Close releases the database.
func (journal *Journal) Close() error {
	return journal.db.Close()
}

// Insert stores entry. An empty ID is replaced with a new UUID.
func (journal *Journal) Insert(entry Entry) (Entry, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	_, err := journal.db.Exec(`
		INSERT INTO sessions (id, preset_name, pattern, planned_seconds, elapsed_seconds, outcome, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.PresetName, entry.Pattern, entry.PlannedSeconds, entry.ElapsedSeconds,
		string(entry.Outcome), entry.StartedAt.Unix(), entry.EndedAt.Unix())
	if err != nil {
		return entry, fmt.Errorf("insert session: %w", err)
	}
	return entry, nil
}

// List returns the most recent entries first. A limit of zero or less
// returns everything.
func (journal *Journal) List(limit int) ([]Entry, error) {
	query := `
		SELECT id, preset_name, pattern, planned_seconds, elapsed_seconds, outcome, started_at, ended_at
		FROM sessions ORDER BY started_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := journal.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var outcome string
		var startedAt, endedAt int64
		if err := rows.Scan(&entry.ID, &entry.PresetName, &entry.Pattern, &entry.PlannedSeconds,
			&entry.ElapsedSeconds, &outcome, &startedAt, &endedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		entry.Outcome = Outcome(outcome)
		entry.StartedAt = time.Unix(startedAt, 0)
		entry.EndedAt = time.Unix(endedAt, 0)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return entries, nil
}

// Stats returns totals over every entry.
func (journal *Journal) Stats() (Stats, error) {
	var stats Stats
	err := journal.db.QueryRow(`
		SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(elapsed_seconds), 0)
		FROM sessions
	`, string(OutcomeCompleted)).Scan(&stats.Sessions, &stats.Completed, &stats.ElapsedSeconds)
	if err != nil {
		return Stats{}, fmt.Errorf("session stats: %w", err)
	}
	return stats, nil
}
