package internal

import (
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := OpenDatabase(":memory:")
	if err != nil {
		t.Fatalf("OpenDatabase() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db)
}

func mustCreateSession(t *testing.T, store *Store, id string) {
	t.Helper()
	now := time.Now()
	err := store.CreateSession(ChatSession{ID: id, Title: "New Chat", CreatedAt: now, UpdatedAt: now})
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
}

func TestStore_SaveAndLoadMessages(t *testing.T) {
	store := newTestStore(t)
	mustCreateSession(t, store, "session_1")

	chart := FormatChart(ChartDescriptor{Type: "bar", Labels: []string{"A"}, Values: []float64{1}})
	messages := []Message{
		{Role: RoleBot, Content: "Welcome!", Time: "09:00"},
		{Role: RoleUser, Content: "SELECT 1;", Time: "09:01"},
		{Role: RoleBot, Content: "Here is your chart", Chart: chart, Time: "09:02"},
	}
	for _, m := range messages {
		if err := store.SaveMessage("session_1", m); err != nil {
			t.Fatalf("SaveMessage() error = %v", err)
		}
	}

	loaded, err := store.Messages("session_1")
	if err != nil {
		t.Fatalf("Messages() error = %v", err)
	}
	if len(loaded) != 3 {
		t.Fatalf("len = %d, want 3", len(loaded))
	}
	// Creation order preserved
	if loaded[0].Content != "Welcome!" || loaded[2].Content != "Here is your chart" {
		t.Errorf("order wrong: %v, %v", loaded[0].Content, loaded[2].Content)
	}
	if loaded[0].Role != RoleBot || loaded[1].Role != RoleUser {
		t.Errorf("roles wrong: %v, %v", loaded[0].Role, loaded[1].Role)
	}
	if loaded[1].Chart != nil {
		t.Error("chartless message should load with nil chart")
	}
	if loaded[2].Chart == nil {
		t.Fatal("chart payload should survive the roundtrip")
	}
	if loaded[2].Chart.Descriptor.Type != "bar" {
		t.Errorf("chart type = %v, want bar", loaded[2].Chart.Descriptor.Type)
	}
}

func TestStore_CountAndClearMessages(t *testing.T) {
	store := newTestStore(t)
	mustCreateSession(t, store, "session_1")

	for i := 0; i < 4; i++ {
		if err := store.SaveMessage("session_1", Message{Role: RoleBot, Content: "m", Time: "09:00"}); err != nil {
			t.Fatalf("SaveMessage() error = %v", err)
		}
	}

	count, err := store.CountMessages("session_1")
	if err != nil {
		t.Fatalf("CountMessages() error = %v", err)
	}
	if count != 4 {
		t.Errorf("count = %d, want 4", count)
	}

	if err := store.ClearMessages("session_1"); err != nil {
		t.Fatalf("ClearMessages() error = %v", err)
	}
	count, _ = store.CountMessages("session_1")
	if count != 0 {
		t.Errorf("count after clear = %d, want 0", count)
	}
}

func TestStore_SessionsOrderedByUpdate(t *testing.T) {
	store := newTestStore(t)

	old := time.Now().Add(-time.Hour)
	if err := store.CreateSession(ChatSession{ID: "session_old", Title: "Old", CreatedAt: old, UpdatedAt: old}); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	mustCreateSession(t, store, "session_new")

	sessions, err := store.Sessions()
	if err != nil {
		t.Fatalf("Sessions() error = %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("len = %d, want 2", len(sessions))
	}
	if sessions[0].ID != "session_new" {
		t.Errorf("first = %v, want session_new (most recently updated)", sessions[0].ID)
	}
}

func TestStore_UpdateSessionBumpsTimestamp(t *testing.T) {
	store := newTestStore(t)
	old := time.Now().Add(-time.Hour)
	if err := store.CreateSession(ChatSession{ID: "session_1", Title: "Old", CreatedAt: old, UpdatedAt: old}); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	if err := store.UpdateSession("session_1", "Show all students", 5); err != nil {
		t.Fatalf("UpdateSession() error = %v", err)
	}

	sessions, _ := store.Sessions()
	if sessions[0].Title != "Show all students" {
		t.Errorf("Title = %v", sessions[0].Title)
	}
	if sessions[0].MessageCount != 5 {
		t.Errorf("MessageCount = %d, want 5", sessions[0].MessageCount)
	}
	if !sessions[0].UpdatedAt.After(old.Add(time.Minute)) {
		t.Error("UpdatedAt should be bumped")
	}
}

func TestStore_DeleteSessionRemovesMessages(t *testing.T) {
	store := newTestStore(t)
	mustCreateSession(t, store, "session_1")
	if err := store.SaveMessage("session_1", Message{Role: RoleBot, Content: "m", Time: "09:00"}); err != nil {
		t.Fatalf("SaveMessage() error = %v", err)
	}

	if err := store.DeleteSession("session_1"); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}

	sessions, _ := store.Sessions()
	if len(sessions) != 0 {
		t.Errorf("sessions = %d, want 0", len(sessions))
	}
	count, _ := store.CountMessages("session_1")
	if count != 0 {
		t.Errorf("orphaned messages = %d, want 0", count)
	}
}
