package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ChatRequest is the payload for POST /api/chat
type ChatRequest struct {
	Message   string  `json:"message"`
	SessionID *string `json:"session_id"`
}

// ChatResponse is the gateway's reply to a chat message. Type is
// "sql_result" when Data/Query/ChartSuggestions are populated.
type ChatResponse struct {
	Success          bool              `json:"success"`
	Type             string            `json:"type,omitempty"`
	Message          string            `json:"message,omitempty"`
	Data             []Row             `json:"data,omitempty"`
	Query            string            `json:"query,omitempty"`
	ChartSuggestions []ChartSuggestion `json:"chart_suggestions,omitempty"`
	Error            string            `json:"error,omitempty"`
}

// CreateChartRequest is the payload for POST /api/create-chart
type CreateChartRequest struct {
	Data      []Row   `json:"data"`
	ChartType string  `json:"chartType"`
	Query     string  `json:"query"`
	SessionID *string `json:"session_id"`
}

// CreateChartResponse is the gateway's reply to a chart-creation request
type CreateChartResponse struct {
	Success bool             `json:"success"`
	Chart   *ChartDescriptor `json:"chart,omitempty"`
	Message string           `json:"message,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// HealthResponse is the gateway liveness payload
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Gateway is the remote chat backend consumed by the orchestrator
type Gateway interface {
	SendMessage(ctx context.Context, message, sessionID string) (*ChatResponse, error)
	CreateChart(ctx context.Context, data []Row, chartType, query, sessionID string) (*CreateChartResponse, error)
	Health(ctx context.Context) (*HealthResponse, error)
}

// GatewayClient talks to the ChartBot SQL AI backend over HTTP
type GatewayClient struct {
	baseURL string
	client  *http.Client
}

// NewGatewayClient creates a client for the given base URL,
// e.g. "http://localhost:5000"
func NewGatewayClient(baseURL string) *GatewayClient {
	return &GatewayClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// SendMessage posts a user message, with the current session id when one
// exists
func (g *GatewayClient) SendMessage(ctx context.Context, message, sessionID string) (*ChatResponse, error) {
	req := ChatRequest{Message: message, SessionID: optionalID(sessionID)}
	var resp ChatResponse
	if err := g.postJSON(ctx, "/api/chat", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateChart posts the pending tabular data with the requested chart type
func (g *GatewayClient) CreateChart(ctx context.Context, data []Row, chartType, query, sessionID string) (*CreateChartResponse, error) {
	req := CreateChartRequest{
		Data:      data,
		ChartType: chartType,
		Query:     query,
		SessionID: optionalID(sessionID),
	}
	var resp CreateChartResponse
	if err := g.postJSON(ctx, "/api/create-chart", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health checks gateway liveness
func (g *GatewayClient) Health(ctx context.Context) (*HealthResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/api/health", nil)
	if err != nil {
		return nil, &GatewayError{Endpoint: "/api/health", Err: err}
	}
	var resp HealthResponse
	if err := g.do(httpReq, "/api/health", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (g *GatewayClient) postJSON(ctx context.Context, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &GatewayError{Endpoint: endpoint, Err: err}
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return &GatewayError{Endpoint: endpoint, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return g.do(httpReq, endpoint, out)
}

func (g *GatewayClient) do(req *http.Request, endpoint string, out any) error {
	resp, err := g.client.Do(req)
	if err != nil {
		return &GatewayError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &GatewayError{
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("unexpected status: %s", bytes.TrimSpace(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &GatewayError{Endpoint: endpoint, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func optionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
