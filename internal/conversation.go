package internal

import (
	"context"
	"strings"
	"sync"
	"time"
)

const welcomeText = "🚀 **Welcome back to ChartBot SQL AI!**\n\n" +
	"I'm ready to help you execute SQL queries and create beautiful visualizations. " +
	"What would you like to explore today?"

// ConversationConfig wires a Conversation's collaborators. Gateway and
// Sessions are required; everything else has a working default.
type ConversationConfig struct {
	Gateway  Gateway
	Sessions *SessionManager
	Prefs    *Preferences
	Notifier Notifier
	Progress ProgressSink

	// QuerySchedule/ChartSchedule override the scripted loading
	// sequences; tests use zero-delay schedules.
	QuerySchedule []LoadingStep
	ChartSchedule []LoadingStep

	Now func() time.Time
}

// Conversation owns the message timeline and drives the
// request → loading → response pipeline for queries and chart creation.
// Gateway errors never escape its methods; they become visible bot
// messages. Persistence is best-effort: a failed save is logged and
// notified but the in-memory timeline stays authoritative.
type Conversation struct {
	gateway  Gateway
	sessions *SessionManager
	prefs    *Preferences
	notify   Notifier
	progress ProgressSink

	querySchedule []LoadingStep
	chartSchedule []LoadingStep
	now           func() time.Time

	mu           sync.Mutex
	messages     []Message
	sessionID    string
	sessionTitle string
	pendingData  []Row
	pendingQuery string
	suggestions  []ChartSuggestion
	selecting    bool
	currentChart *RenderedChart
	inFlight     bool
	generation   uint64
}

// NewConversation creates an orchestrator from a config
func NewConversation(cfg ConversationConfig) *Conversation {
	c := &Conversation{
		gateway:       cfg.Gateway,
		sessions:      cfg.Sessions,
		prefs:         cfg.Prefs,
		notify:        cfg.Notifier,
		progress:      cfg.Progress,
		querySchedule: cfg.QuerySchedule,
		chartSchedule: cfg.ChartSchedule,
		now:           cfg.Now,
	}
	if c.notify == nil {
		c.notify = NopNotifier{}
	}
	if c.querySchedule == nil {
		c.querySchedule = QuerySchedule()
	}
	if c.chartSchedule == nil {
		c.chartSchedule = ChartSchedule()
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Init loads the most recent session, or starts a new chat when none exist
func (c *Conversation) Init() error {
	sessions, err := c.sessions.List()
	if err != nil {
		return err
	}
	if len(sessions) > 0 {
		return c.LoadSession(sessions[0].ID)
	}
	return c.NewChat()
}

// NewChat seeds the timeline with the welcome message and persists it as a
// new session
func (c *Conversation) NewChat() error {
	session, err := c.sessions.Create()
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.sessionID = session.ID
	c.sessionTitle = session.Title
	c.messages = []Message{c.welcomeMessage()}
	c.resetTurnState()
	c.mu.Unlock()
	c.persist()
	return nil
}

// LoadSession replaces the in-memory timeline with a session's persisted
// messages, falling back to the welcome message when none exist
func (c *Conversation) LoadSession(sessionID string) error {
	messages, err := c.sessions.Messages(sessionID)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.sessionID = sessionID
	if title := c.titleOf(sessionID); title != "" {
		c.sessionTitle = title
	}
	if len(messages) > 0 {
		c.messages = messages
	} else {
		c.messages = []Message{c.welcomeMessage()}
	}
	c.resetTurnState()
	c.mu.Unlock()
	return nil
}

// ClearChat wipes the persisted history for the current session and
// reseeds the welcome message. The confirm callback gates the destructive
// step; a false return aborts.
func (c *Conversation) ClearChat(confirm func() bool) error {
	if confirm != nil && !confirm() {
		return nil
	}
	c.mu.Lock()
	sessionID := c.sessionID
	c.mu.Unlock()
	if err := c.sessions.ClearMessages(sessionID); err != nil {
		return err
	}
	c.mu.Lock()
	c.messages = []Message{c.welcomeMessage()}
	c.sessionTitle = "New Chat"
	c.resetTurnState()
	c.mu.Unlock()
	c.persist()
	return nil
}

// DeleteSession removes a session. Deleting the active session switches to
// the next most recent one, or starts a fresh chat when none remain.
func (c *Conversation) DeleteSession(sessionID string) error {
	c.mu.Lock()
	activeID := c.sessionID
	c.mu.Unlock()

	next, err := c.sessions.Delete(sessionID, activeID)
	if err != nil {
		return err
	}
	if sessionID != activeID {
		return nil
	}
	c.mu.Lock()
	c.sessionID = ""
	c.mu.Unlock()
	if next != nil {
		return c.LoadSession(next.ID)
	}
	return c.NewChat()
}

// SendQuery runs one conversation turn. Empty or whitespace-only input is
// a no-op. The user message is appended immediately; the gateway reply is
// applied only after the scripted loading schedule has fully played out,
// and only if this turn is still the latest one.
func (c *Conversation) SendQuery(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		c.notify.Warning("A query is already running")
		return
	}
	c.inFlight = true
	c.generation++
	generation := c.generation
	sessionID := c.sessionID
	c.selecting = false
	c.appendLocked(RoleUser, text, nil)
	if c.sessionTitle == "" || c.sessionTitle == "New Chat" {
		c.sessionTitle = titleFrom(text)
	}
	c.mu.Unlock()

	type outcome struct {
		resp *ChatResponse
		err  error
	}
	result := make(chan outcome, 1)
	go func() {
		resp, err := c.gateway.SendMessage(ctx, text, sessionID)
		result <- outcome{resp: resp, err: err}
	}()

	// The schedule is pure feedback; completion still waits for the real
	// response below.
	PlaySchedule(ctx, c.querySchedule, c.progress)

	var out outcome
	select {
	case <-ctx.Done():
		c.finishTurn(generation)
		return
	case out = <-result:
	}

	c.mu.Lock()
	if generation != c.generation {
		// A newer turn superseded this one; drop the stale response.
		c.mu.Unlock()
		return
	}
	switch {
	case out.err != nil:
		LogDebug("Chat gateway call failed: %v", out.err)
		c.appendLocked(RoleBot, "❌ **Connection Error:** "+out.err.Error(), nil)
	case !out.resp.Success:
		c.appendLocked(RoleBot, "❌ **Error:** "+out.resp.Error, nil)
	case out.resp.Type == "sql_result":
		c.appendLocked(RoleBot, out.resp.Message, nil)
		c.pendingData = out.resp.Data
		c.pendingQuery = out.resp.Query
		c.suggestions = out.resp.ChartSuggestions
		c.selecting = true
	default:
		c.appendLocked(RoleBot, out.resp.Message, nil)
	}
	recordHistory := out.err == nil && out.resp.Success && out.resp.Type == "sql_result"
	c.inFlight = false
	c.mu.Unlock()

	if recordHistory && c.prefs != nil {
		c.prefs.AddHistory(text, "sql")
	}
	c.persist()
}

// RequestChart asks the gateway to build a chart from the pending tabular
// data. On success the formatted chart joins the timeline and becomes the
// current (exportable) chart; either way chart-selection mode ends and the
// timeline is persisted.
func (c *Conversation) RequestChart(ctx context.Context, chartType string) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		c.notify.Warning("A request is already running")
		return
	}
	if len(c.pendingData) == 0 {
		c.mu.Unlock()
		c.notify.Error("No query results available. Run a query first.")
		return
	}
	c.inFlight = true
	c.generation++
	generation := c.generation
	data := c.pendingData
	query := c.pendingQuery
	sessionID := c.sessionID
	c.mu.Unlock()

	type outcome struct {
		resp *CreateChartResponse
		err  error
	}
	result := make(chan outcome, 1)
	go func() {
		resp, err := c.gateway.CreateChart(ctx, data, chartType, query, sessionID)
		result <- outcome{resp: resp, err: err}
	}()

	PlaySchedule(ctx, c.chartSchedule, c.progress)

	var out outcome
	select {
	case <-ctx.Done():
		c.finishTurn(generation)
		return
	case out = <-result:
	}

	c.mu.Lock()
	if generation != c.generation {
		c.mu.Unlock()
		return
	}
	var created bool
	switch {
	case out.err != nil:
		LogDebug("Chart gateway call failed: %v", out.err)
		c.appendLocked(RoleBot, "❌ **Error:** "+out.err.Error(), nil)
	case out.resp.Success && out.resp.Chart != nil:
		formatted := FormatChart(*out.resp.Chart)
		c.appendLocked(RoleBot, out.resp.Message, formatted)
		c.currentChart = formatted
		c.pendingData = nil
		c.pendingQuery = ""
		created = true
	default:
		reason := out.resp.Error
		if reason == "" {
			reason = "The server did not return a chart."
		}
		c.appendLocked(RoleBot, "❌ **Chart Creation Failed:** "+reason, nil)
	}
	c.selecting = false
	c.suggestions = nil
	c.inFlight = false
	c.mu.Unlock()

	if created && c.prefs != nil {
		c.prefs.AddHistory(chartType+" chart", "chart")
	}
	c.persist()
}

// Messages returns a copy of the current timeline
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// SessionID returns the active session id
func (c *Conversation) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Selecting reports whether chart-type selection should be offered
func (c *Conversation) Selecting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selecting
}

// Suggestions returns the gateway's chart suggestions for the last result
func (c *Conversation) Suggestions() []ChartSuggestion {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.suggestions
}

// CurrentChart returns the most recently created chart, nil when no chart
// exists in the current turn
func (c *Conversation) CurrentChart() *RenderedChart {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentChart
}

func (c *Conversation) welcomeMessage() Message {
	return Message{Role: RoleBot, Content: welcomeText, Time: DisplayClock(c.now())}
}

func (c *Conversation) appendLocked(role Role, content string, chart *RenderedChart) {
	c.messages = append(c.messages, Message{
		Role:    role,
		Content: content,
		Chart:   chart,
		Time:    DisplayClock(c.now()),
	})
}

func (c *Conversation) resetTurnState() {
	c.pendingData = nil
	c.pendingQuery = ""
	c.suggestions = nil
	c.selecting = false
	c.currentChart = nil
	c.inFlight = false
}

func (c *Conversation) finishTurn(generation uint64) {
	c.mu.Lock()
	if generation == c.generation {
		c.inFlight = false
	}
	c.mu.Unlock()
}

// persist saves the full timeline for the current session. Failures are
// logged and surfaced as a notification but never roll back the timeline.
func (c *Conversation) persist() {
	c.mu.Lock()
	sessionID := c.sessionID
	title := c.sessionTitle
	messages := make([]Message, len(c.messages))
	copy(messages, c.messages)
	c.mu.Unlock()

	if sessionID == "" {
		return
	}
	if err := c.sessions.SaveTimeline(sessionID, title, messages); err != nil {
		LogError("Failed to save chat session %s: %v", sessionID, err)
		c.notify.Error("Failed to save chat session")
	}
}

func (c *Conversation) titleOf(sessionID string) string {
	sessions, err := c.sessions.List()
	if err != nil {
		return ""
	}
	for _, s := range sessions {
		if s.ID == sessionID {
			return s.Title
		}
	}
	return ""
}

func titleFrom(query string) string {
	if runes := []rune(query); len(runes) > historyPreviewRunes {
		return string(runes[:historyPreviewRunes]) + "..."
	}
	return query
}
