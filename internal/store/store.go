package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS babies (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		birth_date  TEXT NOT NULL,
		avatar_uri  TEXT,
		created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS baby_settings (
		id                     TEXT PRIMARY KEY,
		baby_id                TEXT NOT NULL UNIQUE REFERENCES babies(id) ON DELETE CASCADE,
		daily_pumping_goal_oz  REAL,
		feeding_reminder_hours REAL,
		use_metric_units       INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS sleep_logs (
		id              TEXT PRIMARY KEY,
		baby_id         TEXT NOT NULL REFERENCES babies(id) ON DELETE CASCADE,
		start_time      TEXT NOT NULL,
		end_time        TEXT,
		sleep_type      TEXT NOT NULL CHECK (sleep_type IN ('nap', 'night')),
		location        TEXT,
		quality_rating  INTEGER CHECK (quality_rating BETWEEN 1 AND 5),
		notes           TEXT,
		created_at      TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS feeding_logs (
		id            TEXT PRIMARY KEY,
		baby_id       TEXT NOT NULL REFERENCES babies(id) ON DELETE CASCADE,
		feed_type     TEXT NOT NULL CHECK (feed_type IN ('breast_left', 'breast_right', 'bottle', 'solids')),
		start_time    TEXT NOT NULL,
		end_time      TEXT,
		amount_oz     REAL,
		content_type  TEXT CHECK (content_type IN ('breast_milk', 'formula', 'food')),
		food_name     TEXT,
		reaction_flag INTEGER NOT NULL DEFAULT 0,
		notes         TEXT,
		created_at    TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS diaper_logs (
		id           TEXT PRIMARY KEY,
		baby_id      TEXT NOT NULL REFERENCES babies(id) ON DELETE CASCADE,
		logged_at    TEXT NOT NULL,
		diaper_type  TEXT NOT NULL CHECK (diaper_type IN ('wet', 'dirty', 'both')),
		color        TEXT,
		consistency  TEXT,
		notes        TEXT,
		created_at   TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS pumping_logs (
		id              TEXT PRIMARY KEY,
		baby_id         TEXT NOT NULL REFERENCES babies(id) ON DELETE CASCADE,
		start_time      TEXT NOT NULL,
		end_time        TEXT,
		output_oz       REAL NOT NULL,
		output_left_oz  REAL,
		output_right_oz REAL,
		notes           TEXT,
		created_at      TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS milestone_photos (
		id             TEXT PRIMARY KEY,
		baby_id        TEXT NOT NULL REFERENCES babies(id) ON DELETE CASCADE,
		image_uri      TEXT NOT NULL,
		thumbnail_uri  TEXT,
		taken_at       TEXT NOT NULL,
		month_number   INTEGER,
		milestone_type TEXT NOT NULL CHECK (milestone_type IN ('monthly', 'developmental', 'custom')),
		milestone_name TEXT,
		caption        TEXT,
		is_favorite    INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS app_settings (
		id                       INTEGER PRIMARY KEY CHECK (id = 1),
		has_completed_onboarding INTEGER NOT NULL DEFAULT 0,
		selected_baby_id         TEXT,
		appearance_mode          TEXT NOT NULL DEFAULT 'system' CHECK (appearance_mode IN ('light', 'dark', 'system')),
		has_unlocked_premium     INTEGER NOT NULL DEFAULT 0,
		premium_unlock_date      TEXT,
		tip_jar_total            REAL NOT NULL DEFAULT 0
	);

	INSERT OR IGNORE INTO app_settings (id) VALUES (1);

	CREATE INDEX IF NOT EXISTS idx_sleep_logs_baby_date   ON sleep_logs(baby_id, start_time);
	CREATE INDEX IF NOT EXISTS idx_feeding_logs_baby_date ON feeding_logs(baby_id, start_time);
	CREATE INDEX IF NOT EXISTS idx_diaper_logs_baby_date  ON diaper_logs(baby_id, logged_at);
	CREATE INDEX IF NOT EXISTS idx_pumping_logs_baby_date ON pumping_logs(baby_id, start_time);
	CREATE INDEX IF NOT EXISTS idx_photos_baby_date       ON milestone_photos(baby_id, taken_at);
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/dotsby/dotsby.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "dotsby", "dotsby.db"), nil
}
