package internal

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Theme is the UI color preference
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemePro   Theme = "pro"
)

// Preferences holds the local key-value state: theme, sidebar visibility
// and the bounded query history. Everything here is best-effort: it is
// read on startup and written on every change, and a failed write never
// blocks the caller.
type Preferences struct {
	Theme          Theme         `yaml:"theme"`
	SidebarVisible bool          `yaml:"sidebar_visible"`
	QueryHistory   []HistoryItem `yaml:"query_history,omitempty"`

	path string
	now  func() time.Time
}

// LoadPreferences reads the preferences file, falling back to defaults
// (dark theme, visible sidebar) when it is missing or unreadable
func LoadPreferences(path string) *Preferences {
	prefs := &Preferences{
		Theme:          ThemeDark,
		SidebarVisible: true,
		path:           path,
		now:            time.Now,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			LogWarn("Failed to read preferences: %v", err)
		}
		return prefs
	}
	if err := yaml.Unmarshal(data, prefs); err != nil {
		LogWarn("Failed to parse preferences, using defaults: %v", err)
		return prefs
	}
	if prefs.Theme != ThemeLight && prefs.Theme != ThemeDark && prefs.Theme != ThemePro {
		prefs.Theme = ThemeDark
	}
	if len(prefs.QueryHistory) > historyLimit {
		prefs.QueryHistory = prefs.QueryHistory[:historyLimit]
	}
	return prefs
}

// Save writes the preferences file
func (p *Preferences) Save() error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0644)
}

func (p *Preferences) save() {
	if err := p.Save(); err != nil {
		LogWarn("Failed to save preferences: %v", err)
	}
}

// SetTheme stores a theme preference
func (p *Preferences) SetTheme(theme Theme) {
	p.Theme = theme
	p.save()
}

// CycleTheme advances light → dark → pro → light and returns the new theme
func (p *Preferences) CycleTheme() Theme {
	switch p.Theme {
	case ThemeLight:
		p.SetTheme(ThemeDark)
	case ThemeDark:
		p.SetTheme(ThemePro)
	default:
		p.SetTheme(ThemeLight)
	}
	return p.Theme
}

// SetSidebarVisible stores the sidebar visibility preference
func (p *Preferences) SetSidebarVisible(visible bool) {
	p.SidebarVisible = visible
	p.save()
}

// AddHistory records a query or chart action in the bounded history
// (newest first, oldest evicted past 10 entries)
func (p *Preferences) AddHistory(query, kind string) HistoryItem {
	item := NewHistoryItem(query, kind, p.now())
	p.QueryHistory = AppendHistory(p.QueryHistory, item)
	p.save()
	return item
}

// History returns the recorded history, newest first
func (p *Preferences) History() []HistoryItem {
	return p.QueryHistory
}

// ClearHistory drops all history entries
func (p *Preferences) ClearHistory() {
	p.QueryHistory = nil
	p.save()
}
