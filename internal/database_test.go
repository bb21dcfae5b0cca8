package internal

import (
	"path/filepath"
	"testing"

	"github.com/mireval/chartbot/testutil"
)

func TestOpenDatabase_CreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chartbot.db")

	db, err := OpenDatabase(path)
	if err != nil {
		t.Fatalf("OpenDatabase() error = %v", err)
	}
	defer db.Close()

	// Both collections are queryable on a fresh database
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM chat_sessions`).Scan(&count); err != nil {
		t.Errorf("chat_sessions missing: %v", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM chat_messages`).Scan(&count); err != nil {
		t.Errorf("chat_messages missing: %v", err)
	}
}

func TestOpenDatabase_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chartbot.db")

	db, err := OpenDatabase(path)
	if err != nil {
		t.Fatalf("OpenDatabase() error = %v", err)
	}
	store := NewStore(db)
	mustCreateSession(t, store, "session_1")
	db.Close()

	// Schema creation is idempotent and data survives a reopen
	db2, err := OpenDatabase(path)
	if err != nil {
		t.Fatalf("OpenDatabase() reopen error = %v", err)
	}
	defer db2.Close()

	sessions, err := NewStore(db2).Sessions()
	if err != nil {
		t.Fatalf("Sessions() error = %v", err)
	}
	if len(sessions) != 1 || sessions[0].ID != "session_1" {
		t.Errorf("sessions = %+v", sessions)
	}
}

func TestStore_ReadsSeededDatabase(t *testing.T) {
	db := testutil.CreateTestDB(t)
	defer db.Close()
	store := NewStore(db)

	sessions, err := store.Sessions()
	if err != nil {
		t.Fatalf("Sessions() error = %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("len = %d, want 2", len(sessions))
	}
	if sessions[0].ID != "session_1000" {
		t.Errorf("first = %v, want the most recently updated seed", sessions[0].ID)
	}

	messages, err := store.Messages("session_1000")
	if err != nil {
		t.Fatalf("Messages() error = %v", err)
	}
	if len(messages) != 4 {
		t.Errorf("len = %d, want 4", len(messages))
	}
	count, _ := store.CountMessages("session_1000")
	if count != sessions[0].MessageCount {
		t.Errorf("count = %d, want %d", count, sessions[0].MessageCount)
	}
}

func TestStore_ReadsSeededChartPayload(t *testing.T) {
	db := testutil.CreateTestDB(t)
	defer db.Close()

	rendered := FormatChart(ChartDescriptor{Type: "pie", Title: "Seeded", Labels: []string{"A"}, Values: []float64{1}})
	payload := testutil.JSONMarshal(t, rendered)
	_, err := db.Exec(
		`INSERT INTO chat_messages (session_id, role, content, chart, time, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		"session_2000", "bot", "Here is your chart", string(payload), "12:01", int64(2001),
	)
	if err != nil {
		t.Fatalf("seed chart message: %v", err)
	}

	messages, err := NewStore(db).Messages("session_2000")
	if err != nil {
		t.Fatalf("Messages() error = %v", err)
	}
	last := messages[len(messages)-1]
	if last.Chart == nil {
		t.Fatal("seeded chart payload should decode")
	}
	if last.Chart.Descriptor.Title != "Seeded" {
		t.Errorf("Title = %v, want Seeded", last.Chart.Descriptor.Title)
	}
}
