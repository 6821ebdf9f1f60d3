package clickup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

const (
	SourceID   = "clickup"
	SourceName = "ClickUp"

	maxErrorBody = 4 << 10
)

// Config holds ClickUp client configuration.
type Config struct {
	BaseURL    string
	Token      string
	TeamID     string
	HTTPClient *http.Client
}

// RequestError is returned for any non-2xx response.
type RequestError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// Client reads the space/folder/list/task hierarchy of one team.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	teamID     string
	logger     *slog.Logger
}

// New creates a new ClickUp client.
func New(cfg Config, logger *slog.Logger) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		teamID:     cfg.TeamID,
		logger:     logger.With("source", SourceID),
	}
}

// ID returns the source identifier.
func (c *Client) ID() string {
	return SourceID
}

// Name returns human-readable name.
func (c *Client) Name() string {
	return SourceName
}

// ListSpaces fetches the spaces of the configured team.
func (c *Client) ListSpaces(ctx context.Context) ([]Space, error) {
	var resp spacesResponse
	if err := c.get(ctx, c.endpoint("team", c.teamID, "space"), &resp); err != nil {
		return nil, err
	}
	return orEmpty(resp.Spaces), nil
}

// ListFolders fetches the folders of a space.
func (c *Client) ListFolders(ctx context.Context, spaceID string) ([]Folder, error) {
	var resp foldersResponse
	if err := c.get(ctx, c.endpoint("space", spaceID, "folder"), &resp); err != nil {
		return nil, err
	}
	return orEmpty(resp.Folders), nil
}

// ListLists fetches the lists of a folder.
func (c *Client) ListLists(ctx context.Context, folderID string) ([]List, error) {
	var resp listsResponse
	if err := c.get(ctx, c.endpoint("folder", folderID, "list"), &resp); err != nil {
		return nil, err
	}
	return orEmpty(resp.Lists), nil
}

// ListTasks fetches the tasks of a list.
func (c *Client) ListTasks(ctx context.Context, listID string) ([]Task, error) {
	var resp tasksResponse
	if err := c.get(ctx, c.endpoint("list", listID, "task"), &resp); err != nil {
		return nil, err
	}
	return orEmpty(resp.Tasks), nil
}

func (c *Client) endpoint(parent, id, child string) string {
	return fmt.Sprintf("%s/%s/%s/%s", c.baseURL, parent, url.PathEscape(id), child)
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.WithStack(fmt.Errorf("create request: %w", err))
	}

	req.Header.Set("Authorization", c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "ClickUpSync/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(fmt.Errorf("execute request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return errors.WithStack(&RequestError{
			Method:     req.Method,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		})
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.WithStack(fmt.Errorf("decode response from %s: %w", endpoint, err))
	}

	c.logger.Debug("fetched", "url", endpoint)

	return nil
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
