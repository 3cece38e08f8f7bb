// Package prefstore persists user preferences in a small SQLite
// key-value table. Values survive restarts and are read at startup to
// decide, among other things, whether gesture input is enabled.
package prefstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Well-known preference keys.
const (
	// KeyGestureInput gates the gesture coordinator. When false (the
	// default) the inert coordinator is installed instead.
	KeyGestureInput = "gesture_input_enabled"

	// KeyInstallationID holds the random identifier minted on first
	// read. It never changes once written.
	KeyInstallationID = "installation_id"
)

// Store is a read-write preference store backed by a single SQLite file.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if necessary) the preference database at path.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?mode=rwc&_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open preference database: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS prefs (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot create prefs table: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ReadString returns the value for key, or fallback when the key has
// never been written.
func (s *Store) ReadString(key, fallback string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM prefs WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return fallback, nil
	}
	if err != nil {
		return fallback, fmt.Errorf("cannot read pref %q: %w", key, err)
	}
	return value, nil
}

// WriteString stores value under key, replacing any previous value.
func (s *Store) WriteString(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO prefs (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("cannot write pref %q: %w", key, err)
	}
	return nil
}

// ReadFlag returns the boolean value for key, or fallback when the key
// is absent or holds something other than "true"/"false".
func (s *Store) ReadFlag(key string, fallback bool) (bool, error) {
	raw, err := s.ReadString(key, "")
	if err != nil {
		return fallback, err
	}
	switch raw {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return fallback, nil
	}
}

// WriteFlag stores a boolean value under key.
func (s *Store) WriteFlag(key string, value bool) error {
	if value {
		return s.WriteString(key, "true")
	}
	return s.WriteString(key, "false")
}

// ReadOrCreateID returns the stored installation identifier, minting
// and persisting a fresh random one on first read. Subsequent reads
// return the same identifier.
func (s *Store) ReadOrCreateID() (string, error) {
	id, err := s.ReadString(KeyInstallationID, "")
	if err != nil {
		return "", err
	}
	if id != "" {
		return id, nil
	}

	id = uuid.NewString()
	// INSERT OR IGNORE guards against a concurrent first read winning
	// the race. Whichever identifier landed first is the one everybody
	// sees afterwards.
	if _, err := s.db.Exec(
		"INSERT INTO prefs (key, value) VALUES (?, ?) ON CONFLICT(key) DO NOTHING",
		KeyInstallationID, id,
	); err != nil {
		return "", fmt.Errorf("cannot persist installation id: %w", err)
	}
	return s.ReadString(KeyInstallationID, id)
}

// GestureInputEnabled reports the persisted gesture feature flag.
// Absent means disabled.
func (s *Store) GestureInputEnabled() (bool, error) {
	return s.ReadFlag(KeyGestureInput, false)
}

// SetGestureInputEnabled persists the gesture feature flag.
func (s *Store) SetGestureInputEnabled(enabled bool) error {
	return s.WriteFlag(KeyGestureInput, enabled)
}
