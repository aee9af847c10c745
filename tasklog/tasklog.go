// Package tasklog records the history of supervised tasks in a SQLite
// database, surfaced by `fin history`.
package tasklog

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS task_history (
	id          INTEGER PRIMARY KEY,
	pid         INTEGER NOT NULL,
	command     TEXT    NOT NULL,
	started_at  TEXT    NOT NULL,
	finished_at TEXT    NOT NULL DEFAULT '',
	exit_code   INTEGER NOT NULL DEFAULT -1,
	success     INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_task_history_started ON task_history(started_at DESC);
`

const maxQueryLimit = 500

// Entry is one recorded task run.
type Entry struct {
	ID         int64
	PID        int
	Command    string
	StartedAt  time.Time
	FinishedAt time.Time
	ExitCode   int
	Success    bool
}

// Finished reports whether the task's exit was recorded.
func (e Entry) Finished() bool {
	return !e.FinishedAt.IsZero()
}

// Logger is the sqlite-backed task history.
type Logger struct {
	db *sql.DB
}

// Open opens (or creates) the history database at dbPath and runs the
// schema. Use ":memory:" in tests.
func Open(dbPath string) (*Logger, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open task history db: %w", err)
	}
	// sqlite is single-writer, and a :memory: database only exists on the
	// connection that created it.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run task history schema: %w", err)
	}
	return &Logger{db: db}, nil
}

// Close closes the database.
func (l *Logger) Close() error {
	return l.db.Close()
}

// RecordStart inserts a history row for a freshly spawned task. Synchronous
// and safe to call from the Update goroutine.
func (l *Logger) RecordStart(pid int, command string, started time.Time) {
	const q = `INSERT INTO task_history (pid, command, started_at) VALUES (?, ?, ?)`
	_, _ = l.db.Exec(q, pid, command, formatTime(started))
}

// RecordExit marks the most recent unfinished run of pid as finished.
func (l *Logger) RecordExit(pid int, exitCode int, finished time.Time) {
	const q = `
		UPDATE task_history
		SET finished_at = ?, exit_code = ?, success = ?
		WHERE id = (
			SELECT id FROM task_history
			WHERE pid = ? AND finished_at = ''
			ORDER BY id DESC LIMIT 1
		)
	`
	success := 0
	if exitCode == 0 {
		success = 1
	}
	_, _ = l.db.Exec(q, formatTime(finished), exitCode, success, pid)
}

// Recent returns the newest entries, newest first. Limit is capped at 500.
func (l *Logger) Recent(limit int) ([]Entry, error) {
	if limit <= 0 || limit > maxQueryLimit {
		limit = maxQueryLimit
	}
	const q = `
		SELECT id, pid, command, started_at, finished_at, exit_code, success
		FROM task_history
		ORDER BY id DESC LIMIT ?
	`
	rows, err := l.db.Query(q, limit)
	if err != nil {
		return nil, fmt.Errorf("query task history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var started, finished string
		var success int
		if err := rows.Scan(&e.ID, &e.PID, &e.Command, &started, &finished, &e.ExitCode, &success); err != nil {
			return nil, fmt.Errorf("scan task history row: %w", err)
		}
		e.StartedAt = parseTime(started)
		e.FinishedAt = parseTime(finished)
		e.Success = success == 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
