package internal

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

const (
	keySessions    = "sessions"
	keyPreferences = "preferences"
	keyCurrent     = "current_session"
)

// Store is the durable key-value mirror of in-memory state. Sessions,
// preferences and the current-session pointer live under independent keys
// in a single kv table.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the store database at path
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StoreError{Key: path, Op: "open", Err: err}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &StoreError{Key: path, Op: "open", Err: err}
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS assistKV (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, &StoreError{Key: path, Op: "open", Err: err}
	}

	return &Store{db: db}, nil
}

// Close flushes and closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) get(key string) (string, bool, error) {
	var value sql.NullString
	err := s.db.QueryRow("SELECT value FROM assistKV WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, &StoreError{Key: key, Op: "load", Err: err}
	}
	if !value.Valid {
		return "", false, nil
	}
	return value.String, true, nil
}

func (s *Store) put(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO assistKV (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return &StoreError{Key: key, Op: "save", Err: err}
	}
	return nil
}

// LoadSessions loads the persisted session collection. Malformed entries
// are skipped individually; a fully unreadable blob yields an empty
// collection rather than an error so startup never fails on bad state.
func (s *Store) LoadSessions() ([]*Session, error) {
	raw, ok, err := s.get(keySessions)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []*Session{}, nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		LogError("Failed to parse sessions blob, starting empty: %v", err)
		return []*Session{}, nil
	}

	sessions := make([]*Session, 0, len(entries))
	for i, entry := range entries {
		var session Session
		if err := json.Unmarshal(entry, &session); err != nil {
			LogWarn("Skipping malformed session entry %d: %v", i, err)
			continue
		}
		if session.ID == "" {
			LogWarn("Skipping session entry %d: missing id", i)
			continue
		}
		if session.Messages == nil {
			session.Messages = []Message{}
		}
		sessions = append(sessions, &session)
	}

	return sessions, nil
}

// SaveSessions re-serializes the full session collection
func (s *Store) SaveSessions(sessions []*Session) error {
	data, err := json.Marshal(sessions)
	if err != nil {
		return &StoreError{Key: keySessions, Op: "save", Err: err}
	}
	return s.put(keySessions, string(data))
}

// LoadCurrentID loads the persisted current-session id, or "" if no
// session has been selected yet.
func (s *Store) LoadCurrentID() (string, error) {
	id, _, err := s.get(keyCurrent)
	if err != nil {
		return "", err
	}
	return id, nil
}

// SaveCurrentID persists the current-session id; an empty id clears the
// selection.
func (s *Store) SaveCurrentID(id string) error {
	return s.put(keyCurrent, id)
}

// LoadPreferences loads preferences merged field-by-field over defaults,
// so blobs written by older versions pick up newly introduced fields.
func (s *Store) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()

	raw, ok, err := s.get(keyPreferences)
	if err != nil {
		return nil, err
	}
	if !ok {
		return prefs, nil
	}

	if err := json.Unmarshal([]byte(raw), prefs); err != nil {
		LogError("Failed to parse preferences blob, using defaults: %v", err)
		return DefaultPreferences(), nil
	}

	return prefs, nil
}

// SavePreferences persists the preferences blob
func (s *Store) SavePreferences(prefs *Preferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return &StoreError{Key: keyPreferences, Op: "save", Err: err}
	}
	return s.put(keyPreferences, string(data))
}

// Dump returns the raw value for a key, for diagnostics
func (s *Store) Dump(key string) (string, error) {
	raw, ok, err := s.get(key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("no value stored for key %q", key)
	}
	return raw, nil
}
