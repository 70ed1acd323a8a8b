// Package content talks to the headless content store's GraphQL API.
package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mithrel/showcase/pkg/api"
)

var ErrNotFound = errors.New("not found")

// Client fetches projects and media from the content store.
type Client struct {
	url        string
	token      string
	httpClient *http.Client
}

// New builds a Client from the content.* config keys.
func New(cfg *viper.Viper) *Client {
	timeout := time.Duration(cfg.GetInt("content.timeout_seconds")) * time.Second
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return NewClient(cfg.GetString("content.url"), cfg.GetString("content.token"), &http.Client{Timeout: timeout})
}

// NewClient builds a Client for the GraphQL endpoint at url. token may be
// empty for public APIs.
func NewClient(url, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &Client{url: strings.TrimSpace(url), token: strings.TrimSpace(token), httpClient: httpClient}
}

// URL returns the GraphQL endpoint the client talks to.
func (c *Client) URL() string { return c.url }

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// GraphQLError carries the messages of a response's errors array.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "graphql: " + strings.Join(e.Messages, "; ")
}

func (c *Client) execQuery(ctx context.Context, query string, vars map[string]any, out any) error {
	if c.url == "" {
		return errors.New("content.url is not configured")
	}
	body, err := json.Marshal(gqlRequest{Query: query, Variables: vars})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("content store returned %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	var gr gqlResponse
	if err := json.Unmarshal(respBody, &gr); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(gr.Errors) > 0 {
		msgs := make([]string, 0, len(gr.Errors))
		for _, e := range gr.Errors {
			msgs = append(msgs, e.Message)
		}
		return &GraphQLError{Messages: msgs}
	}
	if len(gr.Data) == 0 || string(gr.Data) == "null" {
		return errors.New("graphql: empty data")
	}
	if err := json.Unmarshal(gr.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

type projectsData struct {
	Projects []api.Project `json:"projects"`
}

// Projects lists all projects without their document fields.
func (c *Client) Projects(ctx context.Context) ([]api.Project, error) {
	var d projectsData
	if err := c.execQuery(ctx, queryProjects, nil, &d); err != nil {
		return nil, err
	}
	return d.Projects, nil
}

// ProjectsBasic lists projects with only the fields a listing needs and at
// most one demo media item each.
func (c *Client) ProjectsBasic(ctx context.Context) ([]api.Project, error) {
	var d projectsData
	if err := c.execQuery(ctx, queryProjectsBasic, nil, &d); err != nil {
		return nil, err
	}
	return d.Projects, nil
}

// ProjectsByCategory lists projects whose category equals category.
func (c *Client) ProjectsByCategory(ctx context.Context, category string) ([]api.Project, error) {
	var d projectsData
	if err := c.execQuery(ctx, queryProjectsByCategory, map[string]any{"category": category}, &d); err != nil {
		return nil, err
	}
	return d.Projects, nil
}

// ProjectBySlug fetches one project with its document fields.
func (c *Client) ProjectBySlug(ctx context.Context, slug string) (api.Project, error) {
	return c.oneProject(ctx, queryProjectBySlug, "slug", slug)
}

// ProjectByID fetches one project with its document fields.
func (c *Client) ProjectByID(ctx context.Context, id string) (api.Project, error) {
	return c.oneProject(ctx, queryProjectByID, "id", id)
}

func (c *Client) oneProject(ctx context.Context, query, key, value string) (api.Project, error) {
	if strings.TrimSpace(value) == "" {
		return api.Project{}, fmt.Errorf("%s is required", key)
	}
	vars := map[string]any{"where": map[string]any{key: map[string]any{"equals": value}}}
	var d projectsData
	if err := c.execQuery(ctx, query, vars, &d); err != nil {
		return api.Project{}, err
	}
	if len(d.Projects) == 0 {
		return api.Project{}, fmt.Errorf("project %s=%q: %w", key, value, ErrNotFound)
	}
	return d.Projects[0], nil
}

// MediaItems lists every media item.
func (c *Client) MediaItems(ctx context.Context) ([]api.MediaItem, error) {
	var d struct {
		MediaItems []api.MediaItem `json:"mediaItems"`
	}
	if err := c.execQuery(ctx, queryMediaItems, nil, &d); err != nil {
		return nil, err
	}
	return d.MediaItems, nil
}

// MediaItem fetches a single media item by id.
func (c *Client) MediaItem(ctx context.Context, id string) (api.MediaItem, error) {
	var d struct {
		MediaItem *api.MediaItem `json:"mediaItem"`
	}
	if err := c.execQuery(ctx, queryMediaItem, map[string]any{"id": id}, &d); err != nil {
		return api.MediaItem{}, err
	}
	if d.MediaItem == nil {
		return api.MediaItem{}, fmt.Errorf("media item %q: %w", id, ErrNotFound)
	}
	return *d.MediaItem, nil
}
