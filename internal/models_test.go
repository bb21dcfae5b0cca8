package internal

import (
	"strings"
	"testing"
	"time"
)

func TestNewSessionID(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	id := newSessionIDAt(at)
	if id != "session_1700000000123" {
		t.Errorf("newSessionIDAt() = %v, want session_1700000000123", id)
	}
}

func TestNewHistoryItem_Truncation(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	long := strings.Repeat("a", 60)

	item := NewHistoryItem(long, "sql", at)

	if item.Query != strings.Repeat("a", 40)+"..." {
		t.Errorf("Query = %v, want 40-char preview with ellipsis", item.Query)
	}
	if item.FullQuery != long {
		t.Errorf("FullQuery should keep the original text")
	}
	if item.Kind != "sql" {
		t.Errorf("Kind = %v, want sql", item.Kind)
	}
	if item.Timestamp != "2024-01-02T03:04:05Z" {
		t.Errorf("Timestamp = %v, want RFC3339", item.Timestamp)
	}
}

func TestNewHistoryItem_ShortQueryKeptVerbatim(t *testing.T) {
	item := NewHistoryItem("SELECT 1;", "sql", time.Now())
	if item.Query != "SELECT 1;" {
		t.Errorf("Query = %v, want SELECT 1;", item.Query)
	}
}

func TestAppendHistory_NewestFirstAndBounded(t *testing.T) {
	var items []HistoryItem
	base := time.Now()
	for i := 0; i < 12; i++ {
		items = AppendHistory(items, NewHistoryItem(
			"query "+strings.Repeat("x", i), "sql", base.Add(time.Duration(i)*time.Second)))
	}

	if len(items) != 10 {
		t.Fatalf("len = %d, want 10", len(items))
	}
	// Newest entry first
	if items[0].FullQuery != "query "+strings.Repeat("x", 11) {
		t.Errorf("items[0] = %v, want the most recent query", items[0].FullQuery)
	}
	// Oldest two evicted
	for _, item := range items {
		if item.FullQuery == "query " || item.FullQuery == "query x" {
			t.Errorf("oldest entries should be evicted, found %v", item.FullQuery)
		}
	}
}

func TestDisplayClock(t *testing.T) {
	at := time.Date(2024, 5, 6, 9, 7, 0, 0, time.Local)
	if got := DisplayClock(at); got != "09:07" {
		t.Errorf("DisplayClock() = %v, want 09:07", got)
	}
}
