package internal

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Store provides row-level access to the chat_messages and chat_sessions
// collections. Messages are keyed by auto id and ordered by creation time
// ascending; sessions are keyed by id and ordered by update time descending.
type Store struct {
	db *sql.DB
}

// NewStore creates a Store over an open database
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// SaveMessage appends one message row for a session
func (s *Store) SaveMessage(sessionID string, m Message) error {
	var chart sql.NullString
	if m.Chart != nil {
		data, err := json.Marshal(m.Chart)
		if err != nil {
			return &StoreError{Op: "save", Key: sessionID, Err: err}
		}
		chart = sql.NullString{String: string(data), Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT INTO chat_messages (session_id, role, content, chart, time, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		sessionID, string(m.Role), m.Content, chart, m.Time, time.Now().UnixMilli(),
	)
	if err != nil {
		return &StoreError{Op: "save", Key: sessionID, Err: err}
	}
	return nil
}

// Messages returns a session's messages in creation order
func (s *Store) Messages(sessionID string) ([]Message, error) {
	rows, err := s.db.Query(
		`SELECT role, content, chart, time FROM chat_messages WHERE session_id = ? ORDER BY id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, &StoreError{Op: "load", Key: sessionID, Err: err}
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var (
			m     Message
			role  string
			chart sql.NullString
		)
		if err := rows.Scan(&role, &m.Content, &chart, &m.Time); err != nil {
			return nil, &StoreError{Op: "load", Key: sessionID, Err: err}
		}
		m.Role = Role(role)
		if chart.Valid {
			var rendered RenderedChart
			if err := json.Unmarshal([]byte(chart.String), &rendered); err == nil {
				m.Chart = &rendered
			} else {
				LogWarn("Skipping undecodable chart payload for session %s: %v", sessionID, err)
			}
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "load", Key: sessionID, Err: err}
	}
	return messages, nil
}

// CountMessages returns the number of persisted messages for a session
func (s *Store) CountMessages(sessionID string) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM chat_messages WHERE session_id = ?`, sessionID).Scan(&count)
	if err != nil {
		return 0, &StoreError{Op: "load", Key: sessionID, Err: err}
	}
	return count, nil
}

// ClearMessages removes every message belonging to a session
func (s *Store) ClearMessages(sessionID string) error {
	if _, err := s.db.Exec(`DELETE FROM chat_messages WHERE session_id = ?`, sessionID); err != nil {
		return &StoreError{Op: "clear", Key: sessionID, Err: err}
	}
	return nil
}

// CreateSession inserts a new session row
func (s *Store) CreateSession(session ChatSession) error {
	_, err := s.db.Exec(
		`INSERT INTO chat_sessions (id, title, message_count, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		session.ID, session.Title, session.MessageCount,
		session.CreatedAt.UnixMilli(), session.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return &StoreError{Op: "save", Key: session.ID, Err: err}
	}
	return nil
}

// Sessions returns all sessions, most recently updated first
func (s *Store) Sessions() ([]ChatSession, error) {
	rows, err := s.db.Query(
		`SELECT id, title, message_count, created_at, updated_at FROM chat_sessions ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, &StoreError{Op: "load", Key: "sessions", Err: err}
	}
	defer rows.Close()

	var sessions []ChatSession
	for rows.Next() {
		var (
			session            ChatSession
			createdMs, updated int64
		)
		if err := rows.Scan(&session.ID, &session.Title, &session.MessageCount, &createdMs, &updated); err != nil {
			return nil, &StoreError{Op: "load", Key: "sessions", Err: err}
		}
		session.CreatedAt = time.UnixMilli(createdMs)
		session.UpdatedAt = time.UnixMilli(updated)
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "load", Key: "sessions", Err: err}
	}
	return sessions, nil
}

// UpdateSession writes a session's title and message count and bumps its
// update time
func (s *Store) UpdateSession(id, title string, messageCount int) error {
	_, err := s.db.Exec(
		`UPDATE chat_sessions SET title = ?, message_count = ?, updated_at = ? WHERE id = ?`,
		title, messageCount, time.Now().UnixMilli(), id,
	)
	if err != nil {
		return &StoreError{Op: "save", Key: id, Err: err}
	}
	return nil
}

// DeleteSession removes a session and all of its messages
func (s *Store) DeleteSession(id string) error {
	if err := s.ClearMessages(id); err != nil {
		return err
	}
	if _, err := s.db.Exec(`DELETE FROM chat_sessions WHERE id = ?`, id); err != nil {
		return &StoreError{Op: "delete", Key: id, Err: err}
	}
	return nil
}

// ClearAll wipes both collections
func (s *Store) ClearAll() error {
	if _, err := s.db.Exec(`DELETE FROM chat_messages`); err != nil {
		return &StoreError{Op: "clear", Key: "chat_messages", Err: err}
	}
	if _, err := s.db.Exec(`DELETE FROM chat_sessions`); err != nil {
		return &StoreError{Op: "clear", Key: "chat_sessions", Err: err}
	}
	return nil
}
