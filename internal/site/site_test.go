package site

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/showcase/internal/db"
	"github.com/mithrel/showcase/internal/document"
	"github.com/mithrel/showcase/internal/present/format"
	"github.com/mithrel/showcase/pkg/api"
)

func sampleProjects() []api.Project {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return []api.Project{
		{
			ID: "1", Slug: "mosaic", Title: "Mosaic", Category: "web", TechStack: "Go, SQLite",
			ProjectURL: "https://mosaic.example", GithubURL: "https://github.com/example/mosaic",
			DevelopmentProcess: map[string]any{"document": []any{
				map[string]any{"type": "paragraph", "children": []any{
					map[string]any{"type": "link", "url": "https://go.dev", "children": []any{map[string]any{"text": "Go"}}},
				}},
			}},
			DesignInspiration: "<p>Tile <em>maps</em></p>",
			DemoMedia: []api.MediaItem{
				{ID: "a", Title: "Home", Type: api.MediaImage, File: api.File{URL: "/a.png"}, AltText: "home screen"},
				{ID: "b", Type: api.MediaVideo, File: api.File{URL: "/b.mp4"}, Caption: "walkthrough"},
			},
			CreatedAt: base.Add(24 * time.Hour),
		},
		{ID: "2", Slug: "dune", Title: "Dune <Runner>", Category: "games", CreatedAt: base},
	}
}

func seededStore(t *testing.T) db.Store {
	t.Helper()
	store := db.NewMemStore()
	for _, p := range sampleProjects() {
		_, err := store.PutProject(context.Background(), p)
		require.NoError(t, err)
	}
	return store
}

func TestIndexPage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, IndexPage("Folio", sampleProjects())))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html><html lang=\"en\"><head>"), out)
	assert.Contains(t, out, "<title>Folio</title>")
	games := strings.Index(out, "<h2>Games</h2>")
	web := strings.Index(out, "<h2>Web</h2>")
	require.True(t, games > 0 && web > games, "categories are title-cased and sorted")
	assert.Contains(t, out, `<a href="/project/mosaic/"><figure class="media media-image"><img src="/a.png" alt="home screen" loading="lazy"/></figure><h3>Mosaic</h3>`)
	assert.Contains(t, out, "<h3>Dune &lt;Runner&gt;</h3>")

	buf.Reset()
	require.NoError(t, Write(&buf, IndexPage("Folio", nil)))
	assert.Contains(t, buf.String(), "No projects yet.")
}

func TestProjectPage(t *testing.T) {
	p := sampleProjects()[0]
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, ProjectPage("Folio", p, format.RenderDocuments(&document.Renderer{}, p))))
	out := buf.String()

	assert.Contains(t, out, "<title>Mosaic | Folio</title>")
	assert.Contains(t, out, `<a href="https://github.com/example/mosaic" target="_blank" rel="noopener noreferrer">GitHub</a>`)
	assert.Contains(t, out, `<div class="slide" id="media-1">`)
	assert.Contains(t, out, `<span class="prev disabled">Previous</span><span class="position">1 / 2</span><a href="#media-2" class="next">Next</a>`)
	assert.Contains(t, out, `<a href="#media-1" class="prev">Previous</a><span class="position">2 / 2</span><span class="next disabled">Next</span>`)
	assert.Contains(t, out, `<video src="/b.mp4" controls="" muted="" loop="" playsinline=""></video><figcaption>walkthrough</figcaption>`)

	dev := strings.Index(out, "<h2>Development Process</h2>")
	design := strings.Index(out, "<h2>Design Inspiration</h2>")
	require.True(t, dev > 0 && design > dev)
	assert.Contains(t, out, `<a href="https://go.dev" target="_blank" rel="noopener noreferrer"><span>Go</span></a>`)
	assert.Contains(t, out, `<div class="document-html"><p>Tile <em>maps</em></p></div>`)
	assert.Contains(t, out, `<a href="/">← Back to projects</a>`)
}

func TestProjectPageSkipsAbsentSections(t *testing.T) {
	p := sampleProjects()[1]
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, ProjectPage("Folio", p, format.RenderDocuments(&document.Renderer{}, p))))
	out := buf.String()
	assert.NotContains(t, out, "Development Process")
	assert.NotContains(t, out, "carousel")
	assert.NotContains(t, out, `class="links"`)
}

func TestBuilder(t *testing.T) {
	dir := t.TempDir()
	var logs bytes.Buffer
	b := &Builder{Store: seededStore(t), Title: "Folio", OutDir: dir, Log: log.New(&logs, "", 0)}
	rep, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"index.html", "project/mosaic/index.html", "project/dune/index.html", "404.html"}, rep.Files)
	assert.Greater(t, rep.Bytes, int64(0))
	assert.Contains(t, rep.String(), "4 files")
	assert.Contains(t, logs.String(), "build: wrote 4 files")

	notFound, err := os.ReadFile(filepath.Join(dir, "404.html"))
	require.NoError(t, err)
	assert.Contains(t, string(notFound), "<h1>Project Not Found</h1>")

	page, err := os.ReadFile(filepath.Join(dir, "project", "mosaic", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "<h1>Mosaic</h1>")

	_, err = (&Builder{Store: seededStore(t)}).Build(context.Background())
	assert.Error(t, err)
}

// listedStore serves projects as stored, bypassing slug checks on write.
type listedStore struct {
	db.Store
	projects []api.Project
}

func (s listedStore) ListProjects(context.Context, api.ListQuery) ([]api.Project, error) {
	return s.projects, nil
}

func TestBuilderRefusesUnsafeSlugs(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "a", "site")
	for _, slug := range []string{"../../escaped", "nested/page", "q?x"} {
		store := listedStore{Store: db.NewMemStore(), projects: []api.Project{{Slug: slug, Title: "Bad"}}}
		_, err := (&Builder{Store: store, Title: "Folio", OutDir: out}).Build(context.Background())
		require.Error(t, err, "slug %q", slug)
		assert.True(t, errors.Is(err, db.ErrInvalidSlug), err.Error())
	}
	assert.NoFileExists(t, filepath.Join(root, "escaped", "index.html"))
	assert.NoDirExists(t, filepath.Join(out, "project", "nested"))

	b := &Builder{OutDir: out}
	_, err := b.within(filepath.Join("..", "x.html"))
	assert.Error(t, err)
	path, err := b.within(filepath.Join("project", "ok", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "project", "ok", "index.html"), path)
}

func TestServerRoutes(t *testing.T) {
	var logs bytes.Buffer
	srv := NewServer(seededStore(t), nil, "Folio", log.New(&logs, "", 0))
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	get := func(path string, hdr ...string) (int, string, string) {
		t.Helper()
		req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
		require.NoError(t, err)
		for i := 0; i+1 < len(hdr); i += 2 {
			req.Header.Set(hdr[i], hdr[i+1])
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, resp.Header.Get("Content-Type"), string(body)
	}

	code, _, body := get("/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body)

	code, ctype, body := get("/")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "text/html; charset=utf-8", ctype)
	assert.Contains(t, body, "<h3>Mosaic</h3>")

	for _, path := range []string{"/project/mosaic", "/project/mosaic/"} {
		code, _, body = get(path)
		assert.Equal(t, http.StatusOK, code, path)
		assert.Contains(t, body, "<h1>Mosaic</h1>", path)
	}

	code, _, body = get("/project/nope")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, body, "Project Not Found")

	code, _, body = get("/no/such/page")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, body, "Project Not Found")

	code, ctype, body = get("/api/projects?category=GAMES")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "application/json", ctype)
	var listed []api.Project
	require.NoError(t, json.Unmarshal([]byte(body), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "dune", listed[0].Slug)

	code, _, body = get("/api/projects/mosaic/documents/development-process")
	assert.Equal(t, http.StatusOK, code)
	var el document.Element
	require.NoError(t, json.Unmarshal([]byte(body), &el))
	assert.Equal(t, "Go", el.PlainText())

	code, ctype, body = get("/api/projects/mosaic/documents/design-inspiration", "Accept", "text/html")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "text/html; charset=utf-8", ctype)
	assert.Equal(t, `<div class="document-html"><p>Tile <em>maps</em></p></div>`, body)

	code, _, body = get("/api/projects/dune/documents/development-process")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "null\n", body)

	code, _, _ = get("/api/projects/mosaic/documents/readme")
	assert.Equal(t, http.StatusNotFound, code)

	code, _, body = get("/api/projects/nope")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, body, "project not found")

	code, _, body = get("/api/projects/mosaic")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"developmentProcess":{"kind":"container"`)
}

func TestListenAndServe(t *testing.T) {
	err := ListenAndServe(context.Background(), ServeConfig{Addr: "127.0.0.1:0", HTTP3: true}, http.NotFoundHandler())
	assert.EqualError(t, err, "http3 requires tls")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- ListenAndServe(ctx, ServeConfig{Addr: "127.0.0.1:0", Log: log.New(io.Discard, "", 0)}, http.NotFoundHandler())
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestBuildFileTLS(t *testing.T) {
	_, err := BuildFileTLS("", "")
	assert.Error(t, err)
	_, err = BuildFileTLS(filepath.Join(t.TempDir(), "missing.pem"), filepath.Join(t.TempDir(), "missing.key"))
	assert.ErrorContains(t, err, "load keypair")

	assert.False(t, TLSConfig{}.Enabled())
	assert.True(t, TLSConfig{CertFile: "c.pem"}.Enabled())
}
