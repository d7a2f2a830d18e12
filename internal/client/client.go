// Package client talks to a running taskboard API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskboard/internal/model"
)

const DefaultTimeout = 10 * time.Second

// APIError is a failure envelope returned by the server.
type APIError struct {
	StatusCode int
	Kind       string
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("api error %d %s: %s", e.StatusCode, e.Kind, e.Message)
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	return msg
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Details string          `json:"details"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// ListTasks fetches the whole task table.
func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.get(ctx, "/tasks", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) Stats(ctx context.Context) (*model.TaskStats, error) {
	var stats model.TaskStats
	if err := c.get(ctx, "/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Request failed", zap.String("url", url), zap.Error(err))
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode %s response (status %d): %w", path, resp.StatusCode, err)
	}

	c.logger.Debug("Request completed",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		return &APIError{
			StatusCode: resp.StatusCode,
			Kind:       env.Error,
			Message:    env.Message,
			Details:    env.Details,
		}
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s data: %w", path, err)
	}
	return nil
}
