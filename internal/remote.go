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

// RemoteService answers queries against the assistant backend
type RemoteService struct {
	endpoint   string
	httpClient *http.Client
}

// NewRemoteService creates a client for the backend at endpoint
func NewRemoteService(endpoint string, timeout time.Duration) *RemoteService {
	return &RemoteService{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type chatRequest struct {
	Query     string    `json:"query"`
	SessionID string    `json:"session_id,omitempty"`
	Location  *Location `json:"location,omitempty"`
}

// chatResponse mirrors the backend wire format. Older deployments used
// "response" instead of "answer"; both are accepted and normalized.
type chatResponse struct {
	Answer     string   `json:"answer"`
	Response   string   `json:"response"`
	Sources    []Source `json:"sources"`
	Entities   []Entity `json:"entities"`
	Confidence float64  `json:"confidence"`
	SessionID  string   `json:"session_id"`
	Timestamp  string   `json:"timestamp"`
	QueryType  string   `json:"query_type"`
	Reasoning  string   `json:"reasoning"`
}

// Answer implements ResponseSource against POST /api/chat
func (r *RemoteService) Answer(ctx context.Context, query, sessionID string, loc *Location) (*Response, error) {
	payload, err := json.Marshal(chatRequest{
		Query:     query,
		SessionID: sessionID,
		Location:  loc,
	})
	if err != nil {
		return nil, &ResolveError{Endpoint: r.endpoint, Err: err}
	}

	url := fmt.Sprintf("%s/api/chat", r.endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &ResolveError{Endpoint: r.endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, &ResolveError{Endpoint: r.endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &ResolveError{
			Endpoint: r.endpoint,
			Err:      fmt.Errorf("backend returned status %d: %s", resp.StatusCode, string(body)),
		}
	}

	var wire chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, &ResolveError{Endpoint: r.endpoint, Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	answer := wire.Answer
	if answer == "" {
		answer = wire.Response
	}
	if answer == "" {
		return nil, &ResolveError{Endpoint: r.endpoint, Err: fmt.Errorf("response body missing answer")}
	}

	return &Response{
		Answer:     answer,
		Sources:    wire.Sources,
		Entities:   wire.Entities,
		Confidence: wire.Confidence,
	}, nil
}

// Healthy probes GET /health and reports whether the backend is reachable
func (r *RemoteService) Healthy(ctx context.Context) error {
	url := fmt.Sprintf("%s/health", r.endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &ResolveError{Endpoint: r.endpoint, Err: err}
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return &ResolveError{Endpoint: r.endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ResolveError{
			Endpoint: r.endpoint,
			Err:      fmt.Errorf("health endpoint returned status %d", resp.StatusCode),
		}
	}
	return nil
}
