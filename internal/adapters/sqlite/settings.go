package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"chroninotes/internal/domain"
	"chroninotes/internal/ports"
)

// SettingsStore implements ports.SettingsStore using SQLite
type SettingsStore struct {
	db     *sql.DB
	dbPath string
}

// Ensure SettingsStore implements ports.SettingsStore
var _ ports.SettingsStore = (*SettingsStore)(nil)

// Open creates the database at dbPath if needed and seeds the default row
func Open(dbPath string) (*SettingsStore, error) {
	// Expand ~ in path
	if len(dbPath) > 0 && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection keeps :memory: databases alive across calls
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS pomodoro_settings (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			work_minutes INTEGER NOT NULL,
			break_minutes INTEGER NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	_, err = db.Exec(
		`INSERT OR IGNORE INTO pomodoro_settings (id, work_minutes, break_minutes) VALUES (1, ?, ?)`,
		domain.DefaultPomodoroSettings.WorkMinutes,
		domain.DefaultPomodoroSettings.BreakMinutes,
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed settings: %w", err)
	}

	return &SettingsStore{db: db, dbPath: dbPath}, nil
}

// Get returns the stored durations
func (s *SettingsStore) Get() (domain.PomodoroSettings, error) {
	var settings domain.PomodoroSettings
	err := s.db.QueryRow(
		`SELECT work_minutes, break_minutes FROM pomodoro_settings WHERE id = 1`,
	).Scan(&settings.WorkMinutes, &settings.BreakMinutes)
	if err == sql.ErrNoRows {
		return domain.DefaultPomodoroSettings, nil
	}
	if err != nil {
		return domain.PomodoroSettings{}, fmt.Errorf("failed to read settings: %w", err)
	}
	return settings, nil
}

// Set replaces the stored durations
func (s *SettingsStore) Set(workMinutes, breakMinutes int) error {
	_, err := s.db.Exec(
		`INSERT INTO pomodoro_settings (id, work_minutes, break_minutes) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET work_minutes = excluded.work_minutes, break_minutes = excluded.break_minutes`,
		workMinutes, breakMinutes,
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Path returns the database file location
func (s *SettingsStore) Path() string {
	return s.dbPath
}

// Close closes the database connection
func (s *SettingsStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
