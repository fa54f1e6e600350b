package logging

import (
	"database/sql"
	"fmt"
	"os"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Journal is a Target that persists entries to a SQLite database so log
// history survives the process and can be queried afterwards.
type Journal struct {
	db   *sql.DB
	path string
}

type journalMigration struct {
	Version     int
	Description string
	SQL         string
}

const createSchemaTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	description TEXT NOT NULL,
	applied_at TEXT NOT NULL DEFAULT (datetime('now'))
)`

var journalMigrations = []journalMigration{
	{
		Version:     1,
		Description: "create log_entries",
		SQL: `CREATE TABLE log_entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id INTEGER NOT NULL,
			source TEXT NOT NULL,
			message TEXT NOT NULL,
			logged_at TEXT NOT NULL
		)`,
	},
	{
		Version:     2,
		Description: "index log_entries by level",
		SQL:         `CREATE INDEX idx_log_entries_level ON log_entries(level_id)`,
	},
}

// NewJournal opens (or creates) the journal database at path and runs any
// pending migrations. Use ":memory:" for an ephemeral journal.
func NewJournal(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping journal: %w", err)
	}

	setJournalPermissions(path)

	if err = migrateJournal(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}

	return &Journal{db: db, path: path}, nil
}

func setJournalPermissions(path string) {
	if path == ":memory:" {
		return
	}
	_ = os.Chmod(path, 0600)
	_ = os.Chmod(path+"-wal", 0600)
	_ = os.Chmod(path+"-shm", 0600)
}

func migrateJournal(db *sql.DB) error {
	if _, err := db.Exec(createSchemaTable); err != nil {
		return fmt.Errorf("create schema table: %w", err)
	}

	applied := make(map[int]bool)
	rows, err := db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return fmt.Errorf("read applied migrations: %w", err)
	}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			rows.Close()
			return err
		}
		applied[v] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	pending := make([]journalMigration, 0, len(journalMigrations))
	for _, m := range journalMigrations {
		if !applied[m.Version] {
			pending = append(pending, m)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Version < pending[j].Version })

	for _, m := range pending {
		if _, err := db.Exec(m.SQL); err != nil {
			return fmt.Errorf("apply migration %d (%s): %w", m.Version, m.Description, err)
		}
		if _, err := db.Exec(
			`INSERT INTO schema_migrations (version, description) VALUES (?, ?)`,
			m.Version, m.Description,
		); err != nil {
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}
	}
	return nil
}

// Log inserts the entry. Insert failures go to stderr; the journal never
// feeds errors back into the dispatcher.
func (j *Journal) Log(e Entry) {
	_, err := j.db.Exec(
		`INSERT INTO log_entries (level_id, source, message, logged_at)
		 VALUES (?, ?, ?, ?)`,
		int(e.Level), e.Source, e.Message, e.Time.Format(time.RFC3339Nano),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: journal insert failed: %v (message: %s)\n", err, e.Message)
	}
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	rows, err := j.db.Query(
		`SELECT level_id, source, message, logged_at
		 FROM log_entries ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			levelID int
			e       Entry
			ts      string
		)
		if err := rows.Scan(&levelID, &e.Source, &e.Message, &ts); err != nil {
			return nil, err
		}
		e.Level = Level(levelID)
		if e.Time, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("parse journal timestamp %q: %w", ts, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountByLevel returns the number of stored entries at the given level.
func (j *Journal) CountByLevel(level Level) (int64, error) {
	var count int64
	err := j.db.QueryRow(
		`SELECT COUNT(*) FROM log_entries WHERE level_id = ?`, int(level),
	).Scan(&count)
	return count, err
}

// Close closes the database. Safe on a nil journal.
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

var _ Target = (*Journal)(nil)
