package internal

import (
	"fmt"
	"time"
)

// Role identifies the author of a timeline message
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message represents a single entry in the conversation timeline.
// Messages are immutable once appended.
type Message struct {
	Role    Role           `json:"role"`
	Content string         `json:"content"`
	Chart   *RenderedChart `json:"chart,omitempty"`
	Time    string         `json:"time"` // display clock, e.g. "15:04"
}

// ChatSession represents a persisted conversation thread
type ChatSession struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HistoryItem is one entry in the bounded recent-query history
type HistoryItem struct {
	ID        int64  `json:"id" yaml:"id"`
	Query     string `json:"query" yaml:"query"` // truncated preview
	FullQuery string `json:"full_query" yaml:"full_query"`
	Kind      string `json:"type" yaml:"type"` // "sql" or "chart"
	Timestamp string `json:"timestamp" yaml:"timestamp"`
}

const (
	historyLimit        = 10
	historyPreviewRunes = 40
)

// NewHistoryItem builds a history entry with a truncated preview
func NewHistoryItem(query, kind string, at time.Time) HistoryItem {
	preview := query
	if runes := []rune(query); len(runes) > historyPreviewRunes {
		preview = string(runes[:historyPreviewRunes]) + "..."
	}
	return HistoryItem{
		ID:        at.UnixMilli(),
		Query:     preview,
		FullQuery: query,
		Kind:      kind,
		Timestamp: at.UTC().Format(time.RFC3339),
	}
}

// AppendHistory prepends item and evicts the oldest entries beyond the
// 10-entry bound. The returned slice is newest-first.
func AppendHistory(items []HistoryItem, item HistoryItem) []HistoryItem {
	updated := append([]HistoryItem{item}, items...)
	if len(updated) > historyLimit {
		updated = updated[:historyLimit]
	}
	return updated
}

// Row is a single tabular result row returned by the gateway. The row shape
// is dictated by the executed query, so it stays schemaless and is passed
// back verbatim on chart creation.
type Row map[string]any

// NewSessionID generates a time-based session token
func NewSessionID() string {
	return newSessionIDAt(time.Now())
}

func newSessionIDAt(t time.Time) string {
	return fmt.Sprintf("session_%d", t.UnixMilli())
}

// DisplayClock formats a timestamp the way the timeline shows it
func DisplayClock(t time.Time) string {
	return t.Format("15:04")
}
