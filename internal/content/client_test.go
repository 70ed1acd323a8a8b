package content

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	auth string
	req  gqlRequest
}

func newTestServer(t *testing.T, respond func(gqlRequest) string) (*httptest.Server, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		b, _ := io.ReadAll(r.Body)
		rec.auth = r.Header.Get("Authorization")
		_ = json.Unmarshal(b, &rec.req)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, respond(rec.req))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

const projectJSON = `{
  "id": "1",
  "title": "Weather Mosaic",
  "slug": "weather-mosaic",
  "category": "web",
  "techStack": "Go",
  "createdAt": "2024-03-01T10:00:00.000Z",
  "developmentProcess": {"document": [{"type": "paragraph", "children": [{"text": "hi"}]}]},
  "designInspiration": null,
  "demoMedia": [{"id": "m1", "type": "image", "file": {"url": "/a.png"}, "altText": "shot"}],
  "inspirationMedia": []
}`

func TestProjectBySlug(t *testing.T) {
	srv, rec := newTestServer(t, func(gqlRequest) string {
		return `{"data": {"projects": [` + projectJSON + `]}}`
	})
	c := NewClient(srv.URL, "secret", nil)

	p, err := c.ProjectBySlug(context.Background(), "weather-mosaic")
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", rec.auth)
	assert.Contains(t, rec.req.Query, "getProjectBySlug")
	assert.Equal(t, map[string]any{"where": map[string]any{"slug": map[string]any{"equals": "weather-mosaic"}}}, rec.req.Variables)

	assert.Equal(t, "Weather Mosaic", p.Title)
	assert.Equal(t, 2024, p.CreatedAt.Year())
	require.Len(t, p.DemoMedia, 1)
	assert.Equal(t, "/a.png", p.DemoMedia[0].File.URL)
	assert.Nil(t, p.DesignInspiration)

	doc, ok := p.DevelopmentProcess.(map[string]any)
	require.True(t, ok, "document field should be passed through as decoded")
	assert.Contains(t, doc, "document")
}

func TestProjectBySlugNotFound(t *testing.T) {
	srv, _ := newTestServer(t, func(gqlRequest) string {
		return `{"data": {"projects": []}}`
	})
	c := NewClient(srv.URL, "", nil)

	_, err := c.ProjectBySlug(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestProjectByID(t *testing.T) {
	srv, rec := newTestServer(t, func(r gqlRequest) string {
		where, _ := r.Variables["where"].(map[string]any)
		id, _ := where["id"].(map[string]any)
		if id["equals"] == "1" {
			return `{"data": {"projects": [` + projectJSON + `]}}`
		}
		return `{"data": {"projects": []}}`
	})
	c := NewClient(srv.URL, "", nil)
	ctx := context.Background()

	p, err := c.ProjectByID(ctx, "1")
	require.NoError(t, err)
	assert.Contains(t, rec.req.Query, "getProjectByID")
	assert.Equal(t, map[string]any{"where": map[string]any{"id": map[string]any{"equals": "1"}}}, rec.req.Variables)
	assert.Equal(t, "weather-mosaic", p.Slug)
	assert.NotNil(t, p.DevelopmentProcess)

	_, err = c.ProjectByID(ctx, "2")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), `id="2"`)

	_, err = c.ProjectByID(ctx, "  ")
	assert.EqualError(t, err, "id is required")
}

func TestGraphQLErrors(t *testing.T) {
	srv, rec := newTestServer(t, func(gqlRequest) string {
		return `{"data": null, "errors": [{"message": "bad field"}, {"message": "worse field"}]}`
	})
	c := NewClient(srv.URL, "", nil)

	_, err := c.Projects(context.Background())
	require.Error(t, err)
	var gqlErr *GraphQLError
	require.True(t, errors.As(err, &gqlErr))
	assert.Equal(t, []string{"bad field", "worse field"}, gqlErr.Messages)
	assert.Empty(t, rec.auth)
}

func TestHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	_, err := NewClient(srv.URL, "", nil).Projects(context.Background())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "502"), err.Error())
}

func TestProjectsByCategoryAndMedia(t *testing.T) {
	srv, rec := newTestServer(t, func(r gqlRequest) string {
		switch {
		case strings.Contains(r.Query, "getProjectsByCategory"):
			return `{"data": {"projects": [` + projectJSON + `]}}`
		case strings.Contains(r.Query, "mediaItem("):
			return `{"data": {"mediaItem": null}}`
		default:
			return `{"data": {"mediaItems": [{"id": "m1", "type": "gif", "file": {"url": "/x.gif"}}]}}`
		}
	})
	c := NewClient(srv.URL, "", nil)
	ctx := context.Background()

	ps, err := c.ProjectsByCategory(ctx, "web")
	require.NoError(t, err)
	assert.Len(t, ps, 1)
	assert.Equal(t, map[string]any{"category": "web"}, rec.req.Variables)

	items, err := c.MediaItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.EqualValues(t, "gif", items[0].Type)

	_, err = c.MediaItem(ctx, "nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestNewFromConfig(t *testing.T) {
	v := viper.New()
	v.Set("content.url", " http://localhost:3000/api/graphql ")
	v.Set("content.timeout_seconds", 5)
	c := New(v)
	assert.Equal(t, "http://localhost:3000/api/graphql", c.URL())

	_, err := NewClient("", "", nil).Projects(context.Background())
	assert.Error(t, err)
}
