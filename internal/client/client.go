// Package client is a small HTTP client for the board service API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cicd-demo/board-service/internal/application"
	"github.com/cicd-demo/board-service/internal/domain/route"
)

// Health is the body of the health endpoint.
type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// APIError is a non-2xx answer from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api returned %d: %s", e.StatusCode, e.Message)
}

// Client talks to the board service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for baseURL, e.g. http://localhost:3001.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListMessages fetches all messages, newest first.
func (c *Client) ListMessages(ctx context.Context) ([]application.MessageDTO, error) {
	var out []application.MessageDTO
	if err := c.do(ctx, http.MethodGet, "/api/messages", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateMessage posts a new message.
func (c *Client) CreateMessage(ctx context.Context, text string) (*application.MessageDTO, error) {
	var out application.MessageDTO
	if err := c.do(ctx, http.MethodPost, "/api/messages", application.CreateMessageRequest{Text: text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health calls the health endpoint.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.do(ctx, http.MethodGet, "/api/messages/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Waypoints lists the fixed route stops.
func (c *Client) Waypoints(ctx context.Context) ([]route.Waypoint, error) {
	var out struct {
		Waypoints []route.Waypoint `json:"waypoints"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/routes/waypoints", nil, &out); err != nil {
		return nil, err
	}
	return out.Waypoints, nil
}

// PlanRoute asks the service to plan the route. An aborted plan is returned
// together with an *APIError so callers can still render it.
func (c *Client) PlanRoute(ctx context.Context) (*application.PlanResultDTO, error) {
	var out application.PlanResultDTO
	err := c.do(ctx, http.MethodPost, "/api/routes/plan", nil, &out)
	if apiErr, ok := err.(*APIError); ok && apiErr.StatusCode == http.StatusBadGateway {
		return &out, err
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("client: read body: %w", err)
	}

	var apiErr *APIError
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &errBody)
		if errBody.Error == "" {
			errBody.Error = http.StatusText(resp.StatusCode)
		}
		apiErr = &APIError{StatusCode: resp.StatusCode, Message: errBody.Error}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil && apiErr == nil {
			return fmt.Errorf("client: decode response: %w", err)
		}
	}
	if apiErr != nil {
		return apiErr
	}
	return nil
}
