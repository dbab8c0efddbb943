package testutil

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// SeedStoreFixture creates a store database pre-populated with a sessions
// blob, including one deliberately malformed entry to exercise
// skip-on-parse-failure loading.
func SeedStoreFixture(t *testing.T, dbPath string) {
	t.Helper()

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS assistKV (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}

	now := time.Now().UTC().Truncate(time.Second).Format(time.RFC3339)
	good := map[string]interface{}{
		"id":         "fixture-session",
		"title":      "Fixture Conversation",
		"created_at": now,
		"updated_at": now,
		"messages": []map[string]interface{}{
			{
				"id":        "fixture-msg",
				"text":      "hello",
				"sender":    "user",
				"timestamp": now,
			},
		},
	}
	goodJSON, _ := json.Marshal(good)

	// Second entry has no id and a bogus timestamp type.
	blob := `[` + string(goodJSON) + `,{"title":"broken","created_at":42}]`

	insertSQL := "INSERT INTO assistKV (key, value) VALUES (?, ?)"
	if _, err := db.Exec(insertSQL, "sessions", blob); err != nil {
		t.Fatalf("Failed to insert sessions blob: %v", err)
	}
}

// SeedPreferencesFixture writes a partial preferences blob so loading can
// prove field-by-field merging over defaults.
func SeedPreferencesFixture(t *testing.T, dbPath string, partial map[string]interface{}) {
	t.Helper()

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS assistKV (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}

	data, err := json.Marshal(partial)
	if err != nil {
		t.Fatalf("Failed to marshal preferences: %v", err)
	}

	if _, err := db.Exec("INSERT OR REPLACE INTO assistKV (key, value) VALUES (?, ?)", "preferences", string(data)); err != nil {
		t.Fatalf("Failed to insert preferences blob: %v", err)
	}
}
