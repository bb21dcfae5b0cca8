package internal

import (
	"context"
	"sync"
	"time"
)

// FakeGateway is a scripted Gateway for tests. Responses are consumed in
// order; the zero value answers every call with a generic success.
type FakeGateway struct {
	mu sync.Mutex

	ChatResponses  []*ChatResponse
	ChartResponses []*CreateChartResponse
	ChatErr        error
	ChartErr       error
	HealthResponse *HealthResponse
	HealthErr      error

	ChatCalls   []string
	ChartCalls  []string
	HealthCalls int
}

// SendMessage returns the next scripted chat response
func (f *FakeGateway) SendMessage(ctx context.Context, message, sessionID string) (*ChatResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ChatCalls = append(f.ChatCalls, message)
	if f.ChatErr != nil {
		return nil, f.ChatErr
	}
	if len(f.ChatResponses) > 0 {
		resp := f.ChatResponses[0]
		f.ChatResponses = f.ChatResponses[1:]
		return resp, nil
	}
	return &ChatResponse{Success: true, Type: "text", Message: "OK"}, nil
}

// CreateChart returns the next scripted chart response
func (f *FakeGateway) CreateChart(ctx context.Context, data []Row, chartType, query, sessionID string) (*CreateChartResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ChartCalls = append(f.ChartCalls, chartType)
	if f.ChartErr != nil {
		return nil, f.ChartErr
	}
	if len(f.ChartResponses) > 0 {
		resp := f.ChartResponses[0]
		f.ChartResponses = f.ChartResponses[1:]
		return resp, nil
	}
	return &CreateChartResponse{Success: true, Chart: CreateTestChart(chartType)}, nil
}

// Health returns the scripted health response
func (f *FakeGateway) Health(ctx context.Context) (*HealthResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.HealthCalls++
	if f.HealthErr != nil {
		return nil, f.HealthErr
	}
	if f.HealthResponse != nil {
		return f.HealthResponse, nil
	}
	return &HealthResponse{Status: "healthy", Database: "connected"}, nil
}

// ChatCallCount reports how many chat messages were sent
func (f *FakeGateway) ChatCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ChatCalls)
}

// ChartCallCount reports how many chart requests were made
func (f *FakeGateway) ChartCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ChartCalls)
}

// CreateTestChart creates a chart descriptor with sample data
func CreateTestChart(chartType string) *ChartDescriptor {
	return &ChartDescriptor{
		Type:   chartType,
		Title:  "Test Chart",
		Labels: []string{"A", "B"},
		Values: []float64{1, 3},
	}
}

// CreateTestSQLResponse creates a successful sql_result chat response
func CreateTestSQLResponse(rows int) *ChatResponse {
	data := make([]Row, rows)
	for i := range data {
		data[i] = Row{"name": "row", "value": float64(i + 1)}
	}
	return &ChatResponse{
		Success: true,
		Type:    "sql_result",
		Message: "Query executed successfully",
		Data:    data,
		Query:   "SELECT * FROM students;",
		ChartSuggestions: []ChartSuggestion{
			{Type: "bar", Title: "Bar Chart", Description: "Compare values", BestFor: "categories"},
			{Type: "pie", Title: "Pie Chart", Description: "Show proportions", BestFor: "shares"},
		},
	}
}

// CreateTestMessages creates a short user/bot exchange
func CreateTestMessages(at time.Time) []Message {
	return []Message{
		{Role: RoleBot, Content: "Hello!", Time: DisplayClock(at)},
		{Role: RoleUser, Content: "SELECT 1;", Time: DisplayClock(at)},
		{Role: RoleBot, Content: "Done", Time: DisplayClock(at)},
	}
}

// ZeroDelaySchedule strips the delays from a loading schedule so tests run
// instantly
func ZeroDelaySchedule(steps []LoadingStep) []LoadingStep {
	out := make([]LoadingStep, len(steps))
	for i, s := range steps {
		s.Delay = 0
		out[i] = s
	}
	return out
}
