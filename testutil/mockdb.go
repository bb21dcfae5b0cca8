package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS chat_sessions (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	message_count INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS chat_messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	role TEXT NOT NULL,
	content TEXT NOT NULL,
	chart TEXT,
	time TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chat_messages_session ON chat_messages(session_id);
`

// CreateInMemoryDB creates an in-memory SQLite database with the chat schema
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}
	return db
}

// CreateTestDB creates a test database with sample sessions and messages
func CreateTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db := CreateInMemoryDB(t)

	sessions := []struct {
		id        string
		title     string
		count     int
		createdAt int64
		updatedAt int64
	}{
		{"session_1000", "Show all students", 4, 1000, 4000},
		{"session_2000", "New Chat", 1, 2000, 2000},
	}
	for _, s := range sessions {
		InsertSession(t, db, s.id, s.title, s.count, s.createdAt, s.updatedAt)
	}

	messages := []struct {
		sessionID string
		role      string
		content   string
	}{
		{"session_1000", "bot", "Welcome!"},
		{"session_1000", "user", "SELECT * FROM students;"},
		{"session_1000", "bot", "Query executed successfully"},
		{"session_1000", "bot", "Here is your chart"},
		{"session_2000", "bot", "Welcome!"},
	}
	for i, m := range messages {
		InsertMessage(t, db, m.sessionID, m.role, m.content, int64(1000+i))
	}

	return db
}

// InsertSession inserts a session row
func InsertSession(t *testing.T, db *sql.DB, id, title string, count int, createdAt, updatedAt int64) {
	t.Helper()
	insertSQL := "INSERT INTO chat_sessions (id, title, message_count, created_at, updated_at) VALUES (?, ?, ?, ?, ?)"
	if _, err := db.Exec(insertSQL, id, title, count, createdAt, updatedAt); err != nil {
		t.Fatalf("Failed to insert session: %v", err)
	}
}

// InsertMessage inserts a message row without a chart payload
func InsertMessage(t *testing.T, db *sql.DB, sessionID, role, content string, createdAt int64) {
	t.Helper()
	insertSQL := "INSERT INTO chat_messages (session_id, role, content, chart, time, created_at) VALUES (?, ?, ?, NULL, ?, ?)"
	if _, err := db.Exec(insertSQL, sessionID, role, content, "12:00", createdAt); err != nil {
		t.Fatalf("Failed to insert message: %v", err)
	}
}
