package internal

import (
	"strings"
	"testing"
	"time"
)

func newTestSessionManager(t *testing.T) *SessionManager {
	t.Helper()
	return NewSessionManager(newTestStore(t))
}

func TestSessionManager_Create(t *testing.T) {
	manager := newTestSessionManager(t)

	session, err := manager.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !strings.HasPrefix(session.ID, "session_") {
		t.Errorf("ID = %v, want session_ prefix", session.ID)
	}
	if session.Title != "New Chat" {
		t.Errorf("Title = %v, want New Chat", session.Title)
	}

	sessions, err := manager.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(sessions) != 1 || sessions[0].ID != session.ID {
		t.Errorf("List() = %+v, want the created session", sessions)
	}
}

func TestSessionManager_SaveTimelineKeepsCountConsistent(t *testing.T) {
	manager := newTestSessionManager(t)
	session, err := manager.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	timeline := CreateTestMessages(time.Now())
	if err := manager.SaveTimeline(session.ID, "Show all students", timeline); err != nil {
		t.Fatalf("SaveTimeline() error = %v", err)
	}

	// Saving the same timeline again must not duplicate rows
	if err := manager.SaveTimeline(session.ID, "Show all students", timeline); err != nil {
		t.Fatalf("SaveTimeline() error = %v", err)
	}

	messages, err := manager.Messages(session.ID)
	if err != nil {
		t.Fatalf("Messages() error = %v", err)
	}
	if len(messages) != len(timeline) {
		t.Errorf("persisted rows = %d, want %d", len(messages), len(timeline))
	}

	sessions, _ := manager.List()
	if sessions[0].MessageCount != len(timeline) {
		t.Errorf("MessageCount = %d, want %d (equal to persisted rows)", sessions[0].MessageCount, len(timeline))
	}
	if sessions[0].Title != "Show all students" {
		t.Errorf("Title = %v", sessions[0].Title)
	}
}

func TestSessionManager_DeleteInactiveSession(t *testing.T) {
	manager := newTestSessionManager(t)
	active, _ := manager.Create()
	other := ChatSession{ID: "session_other", Title: "Other", CreatedAt: time.Now().Add(-time.Hour), UpdatedAt: time.Now().Add(-time.Hour)}
	if err := manager.store.CreateSession(other); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	next, err := manager.Delete(other.ID, active.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if next != nil {
		t.Errorf("deleting an inactive session should not trigger a switch, got %+v", next)
	}
}

func TestSessionManager_DeleteActiveSwitchesToMostRecent(t *testing.T) {
	manager := newTestSessionManager(t)
	older := ChatSession{ID: "session_older", Title: "Older", CreatedAt: time.Now().Add(-time.Hour), UpdatedAt: time.Now().Add(-time.Hour)}
	if err := manager.store.CreateSession(older); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	active, _ := manager.Create()

	next, err := manager.Delete(active.ID, active.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if next == nil || next.ID != older.ID {
		t.Errorf("next = %+v, want the remaining session", next)
	}
}

func TestSessionManager_DeleteLastSessionReturnsNil(t *testing.T) {
	manager := newTestSessionManager(t)
	only, _ := manager.Create()

	next, err := manager.Delete(only.ID, only.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if next != nil {
		t.Errorf("next = %+v, want nil when no sessions remain", next)
	}
}

func TestSessionManager_ClearAll(t *testing.T) {
	manager := newTestSessionManager(t)
	first, _ := manager.Create()
	if err := manager.SaveTimeline(first.ID, first.Title, CreateTestMessages(time.Now())); err != nil {
		t.Fatalf("SaveTimeline() error = %v", err)
	}
	if _, err := manager.Create(); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := manager.ClearAll(); err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}

	sessions, err := manager.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("sessions = %d, want 0", len(sessions))
	}
	messages, _ := manager.Messages(first.ID)
	if len(messages) != 0 {
		t.Errorf("messages = %d, want 0", len(messages))
	}
}

func TestSessionManager_ClearMessagesKeepsSession(t *testing.T) {
	manager := newTestSessionManager(t)
	session, _ := manager.Create()
	if err := manager.SaveTimeline(session.ID, session.Title, CreateTestMessages(time.Now())); err != nil {
		t.Fatalf("SaveTimeline() error = %v", err)
	}

	if err := manager.ClearMessages(session.ID); err != nil {
		t.Fatalf("ClearMessages() error = %v", err)
	}

	messages, _ := manager.Messages(session.ID)
	if len(messages) != 0 {
		t.Errorf("messages = %d, want 0", len(messages))
	}
	sessions, _ := manager.List()
	if len(sessions) != 1 {
		t.Errorf("sessions = %d, want 1 (session itself survives)", len(sessions))
	}
}
