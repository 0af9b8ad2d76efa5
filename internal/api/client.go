// Package api is the HTTP adapter for the story content service. It
// translates the logical story operations into calls against the service's
// /api base path and normalizes success and failure into one result shape.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/vocal-project/storyctl/internal/story"
)

// envelope is the wire shape every service response uses. Successful calls
// carry the payload under data; failures carry a human-readable error.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Count   int             `json:"count"`
}

// Client talks to the story content service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the service at baseURL (the host part;
// the /api prefix is appended per request). A zero timeout leaves the
// platform default in place.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// ListStories fetches all stories.
func (c *Client) ListStories(ctx context.Context) ([]story.Story, error) {
	var stories []story.Story
	if err := c.call(ctx, http.MethodGet, "/api/blogs", nil, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

// ListFavorites fetches only the stories flagged as favorites.
func (c *Client) ListFavorites(ctx context.Context) ([]story.Story, error) {
	var stories []story.Story
	if err := c.call(ctx, http.MethodGet, "/api/blogs/favorites", nil, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

// GetStory fetches a single story. A 404 from the service is reported as a
// NotFoundError rather than a generic service failure.
func (c *Client) GetStory(ctx context.Context, id string) (story.Story, error) {
	var s story.Story
	err := c.call(ctx, http.MethodGet, "/api/blogs/"+id, nil, &s)
	if err != nil {
		if svcErr, ok := err.(*ServiceError); ok && svcErr.Status == http.StatusNotFound {
			return story.Story{}, &NotFoundError{ID: id}
		}
		return story.Story{}, err
	}
	return s, nil
}

// CreateStory persists a new story; the service assigns id and createdAt.
func (c *Client) CreateStory(ctx context.Context, draft story.Draft) (story.Story, error) {
	var s story.Story
	if err := c.call(ctx, http.MethodPost, "/api/blogs", draft, &s); err != nil {
		return story.Story{}, err
	}
	return s, nil
}

// UpdateStory replaces the story with the given id wholesale.
func (c *Client) UpdateStory(ctx context.Context, id string, draft story.Draft) (story.Story, error) {
	var s story.Story
	if err := c.call(ctx, http.MethodPut, "/api/blogs/"+id, draft, &s); err != nil {
		return story.Story{}, err
	}
	return s, nil
}

// DeleteStory removes a story. Deleting an id the service no longer knows
// is reported as a service error, not swallowed.
func (c *Client) DeleteStory(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/api/blogs/"+id, nil, nil)
}

// ToggleFavorite flips the favorite flag server-side and returns the
// updated story. The flip is computed by the service so concurrent clients
// cannot diverge.
func (c *Client) ToggleFavorite(ctx context.Context, id string) (story.Story, error) {
	var s story.Story
	if err := c.call(ctx, http.MethodPatch, "/api/blogs/"+id+"/favorite", nil, &s); err != nil {
		return story.Story{}, err
	}
	return s, nil
}

// Health pings the service.
func (c *Client) Health(ctx context.Context) error {
	return c.call(ctx, http.MethodGet, "/api/health", nil, nil)
}

// call performs one request and decodes the response envelope. out may be
// nil for operations whose payload is only an acknowledgement.
func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	url := c.baseURL + path
	op := method + " " + path

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("calling content service", slog.String("method", method), slog.String("url", url))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("transport failure", slog.String("op", op), slog.String("error", err.Error()))
		return &TransportError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.serviceError(op, resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Debug("malformed response body", slog.String("op", op), slog.String("error", err.Error()))
		return &ServiceError{Status: resp.StatusCode, Message: "malformed response from service"}
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return &ServiceError{Status: resp.StatusCode, Message: "malformed response from service: missing data"}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &ServiceError{Status: resp.StatusCode, Message: "malformed response from service"}
	}

	return nil
}

// serviceError builds a ServiceError from a non-2xx response, preferring
// the body's error field and falling back to the HTTP status.
func (c *Client) serviceError(op string, status int, raw []byte) error {
	message := fmt.Sprintf("HTTP error, status %d", status)

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Error != "" {
		message = env.Error
	}

	c.logger.Debug("service error",
		slog.String("op", op),
		slog.Int("status", status),
		slog.String("message", message))

	return &ServiceError{Status: status, Message: message}
}
