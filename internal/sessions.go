package internal

import (
	"time"
)

// SessionManager mediates session load/save/switch/delete against the
// persistence store. Session list reads always re-fetch in full after a
// mutation rather than patching a cached copy.
type SessionManager struct {
	store *Store
}

// NewSessionManager creates a manager over a store
func NewSessionManager(store *Store) *SessionManager {
	return &SessionManager{store: store}
}

// Create persists a fresh session with a time-based id and zero messages
func (m *SessionManager) Create() (ChatSession, error) {
	now := time.Now()
	session := ChatSession{
		ID:        NewSessionID(),
		Title:     "New Chat",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.store.CreateSession(session); err != nil {
		return ChatSession{}, err
	}
	return session, nil
}

// List returns all sessions, most recently updated first
func (m *SessionManager) List() ([]ChatSession, error) {
	return m.store.Sessions()
}

// Messages returns a session's persisted timeline
func (m *SessionManager) Messages(sessionID string) ([]Message, error) {
	return m.store.Messages(sessionID)
}

// SaveTimeline replaces a session's persisted messages with the given
// timeline and recomputes message_count, keeping the count equal to the
// number of persisted rows.
func (m *SessionManager) SaveTimeline(sessionID, title string, messages []Message) error {
	if err := m.store.ClearMessages(sessionID); err != nil {
		return err
	}
	for _, msg := range messages {
		if err := m.store.SaveMessage(sessionID, msg); err != nil {
			return err
		}
	}
	return m.store.UpdateSession(sessionID, title, len(messages))
}

// ClearMessages wipes a session's persisted history without deleting the
// session itself
func (m *SessionManager) ClearMessages(sessionID string) error {
	return m.store.ClearMessages(sessionID)
}

// Delete removes a session. When the deleted session was the active one,
// the next most recent session is returned for the caller to switch to;
// a nil result means no sessions remain and a fresh one should be created.
func (m *SessionManager) Delete(id, activeID string) (*ChatSession, error) {
	if err := m.store.DeleteSession(id); err != nil {
		return nil, err
	}
	if id != activeID {
		return nil, nil
	}
	remaining, err := m.store.Sessions()
	if err != nil {
		return nil, err
	}
	if len(remaining) == 0 {
		return nil, nil
	}
	next := remaining[0]
	return &next, nil
}

// ClearAll wipes every session and message
func (m *SessionManager) ClearAll() error {
	return m.store.ClearAll()
}
