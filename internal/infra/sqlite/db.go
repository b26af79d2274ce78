// Package sqlite provides SQLite-based persistent storage for Exhale.
// Uses WAL mode for concurrent reads and crash-safe writes.
// It is the single implementation of domain.RecordStore and the
// normalizing boundary between storage rows and the strict domain types.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)

	"github.com/exhale-health/exhale/internal/domain"
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// DB implements the record store contract.
var _ domain.RecordStore = (*DB)(nil)

// Open creates or opens the SQLite database at dir/exhale.db.
// Enables WAL mode, foreign keys, and a 5-second busy timeout, then
// seeds the achievement catalog.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "exhale.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := d.seedCatalog(); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed catalog: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Quit profiles — one row per user. quit_date is NULL while
		// onboarding is still in progress.
		`CREATE TABLE IF NOT EXISTS profiles (
			user_id           TEXT PRIMARY KEY,
			name              TEXT NOT NULL DEFAULT '',
			quit_date         INTEGER,
			daily_consumption REAL NOT NULL DEFAULT 0,
			triggers          TEXT NOT NULL DEFAULT '',
			emotional_states  TEXT NOT NULL DEFAULT '',
			archetype         TEXT NOT NULL DEFAULT '',
			created_at        INTEGER NOT NULL,
			updated_at        INTEGER NOT NULL
		)`,

		// Craving/slip log — append-only.
		`CREATE TABLE IF NOT EXISTS events (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			type       TEXT NOT NULL,
			trigger    TEXT NOT NULL DEFAULT '',
			intensity  INTEGER NOT NULL,
			note       TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_user_type ON events(user_id, type)`,
		`CREATE INDEX IF NOT EXISTS idx_events_created ON events(created_at)`,

		// Latest progress snapshot — single row per user, overwritten on
		// every recalculation.
		`CREATE TABLE IF NOT EXISTS progress_stats (
			user_id                  TEXT PRIMARY KEY,
			days_smoke_free          INTEGER NOT NULL,
			cigarettes_smoked        INTEGER NOT NULL,
			cigarettes_not_smoked    INTEGER NOT NULL,
			money_saved              REAL NOT NULL,
			life_regained_hours      REAL NOT NULL,
			nicotine_not_consumed_mg REAL NOT NULL,
			last_calculated          INTEGER NOT NULL
		)`,

		// Static achievement catalog, seeded from code on open.
		`CREATE TABLE IF NOT EXISTS achievement_defs (
			key               TEXT PRIMARY KEY,
			title             TEXT NOT NULL,
			description       TEXT NOT NULL DEFAULT '',
			tier              TEXT NOT NULL,
			requirement_type  TEXT NOT NULL,
			requirement_value INTEGER NOT NULL
		)`,

		// Unlocked achievements. The primary key is the at-most-one
		// invariant: duplicate unlock attempts hit the constraint and are
		// ignored.
		`CREATE TABLE IF NOT EXISTS user_achievements (
			user_id         TEXT NOT NULL,
			achievement_key TEXT NOT NULL,
			unlocked_at     INTEGER NOT NULL,
			notified        BOOLEAN DEFAULT 0,
			PRIMARY KEY (user_id, achievement_key)
		)`,

		// Notification log (policy: max 1/day, quiet hours).
		`CREATE TABLE IF NOT EXISTS notifications (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id    TEXT NOT NULL,
			type       TEXT NOT NULL,
			title      TEXT NOT NULL,
			body       TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			shown      BOOLEAN DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notif_user_created ON notifications(user_id, created_at)`,

		// Key-value store for daemon state (local user id, schema marks).
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── Meta Key-Value ─────────────────────────────────────────────────────────

// SetMeta stores a key-value pair in meta.
func (d *DB) SetMeta(key, value string) error {
	_, err := d.db.Exec(
		`INSERT INTO meta (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value,
	)
	return err
}

// GetMeta retrieves a value from meta. Returns "" if the key is absent.
func (d *DB) GetMeta(key string) (string, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
