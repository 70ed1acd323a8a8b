package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/showcase/internal/document"
	"github.com/mithrel/showcase/pkg/api"
)

func text(s string) map[string]any { return map[string]any{"text": s} }

func sampleDocument() any {
	return map[string]any{"document": []any{
		map[string]any{"type": "heading", "level": 1.0, "children": []any{text("Title")}},
		map[string]any{"type": "paragraph", "children": []any{
			text("Hello "),
			map[string]any{"bold": true, "text": "world"},
			text(" and "),
			map[string]any{"type": "link", "url": "https://x.dev", "children": []any{text("docs")}},
		}},
		map[string]any{"type": "unordered-list", "children": []any{
			map[string]any{"type": "list-item", "children": []any{
				map[string]any{"type": "paragraph", "children": []any{text("one")}},
			}},
			map[string]any{"type": "list-item", "children": []any{
				map[string]any{"type": "paragraph", "children": []any{text("two")}},
				map[string]any{"type": "ordered-list", "children": []any{
					map[string]any{"type": "list-item", "children": []any{text("a")}},
				}},
			}},
		}},
	}}
}

func TestMarkdown(t *testing.T) {
	got := Markdown(document.Render(sampleDocument()))
	want := "# Title\n\nHello **world** and [docs](https://x.dev)\n\n- one\n- two\n  1. a\n"
	assert.Equal(t, want, got)
}

func TestMarkdownShapes(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"absent", nil, ""},
		{"plain text", "just words", "just words\n"},
		{"markup reduced to text", "<p>Hi <b>there</b></p>", "Hi there\n"},
		{"italic without text", []any{map[string]any{"italic": true}}, ""},
		{"debug dump", 42.0, "**Debug: Document Structure**\n\n```json\n42\n```\n"},
		{"dump fence outgrows backticks", map[string]any{"note": "```x"}, "**Debug: Document Structure**\n\n````json\n{\n  \"note\": \"```x\"\n}\n````\n"},
		{"text markers escaped", []any{map[string]any{"type": "paragraph", "children": []any{text("*x* and _y_ [z] `c` <b>")}}}, "\\*x\\* and \\_y\\_ \\[z\\] \\`c\\` \\<b\\>\n"},
		{"line start markers escaped", "# not a heading\n- not a list\n1. nor this", "\\# not a heading\n\\- not a list\n1\\. nor this\n"},
		{"marks stay markup", []any{map[string]any{"bold": true, "text": "a*b"}}, "**a\\*b**\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Markdown(document.Render(tt.in)))
		})
	}
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, document.Render(sampleDocument())))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<div class="document"><h1><span>Title</span></h1>`), out)
	assert.Contains(t, out, `<strong><span>world</span></strong>`)
	assert.Contains(t, out, `<a href="https://x.dev" target="_blank" rel="noopener noreferrer"><span>docs</span></a>`)
	assert.Contains(t, out, `<ul><li><p><span>one</span></p></li>`)
	assert.Contains(t, out, `<ol><li><span>a</span></li></ol>`)
}

func TestHTMLShapes(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"absent", nil, ""},
		{"plain text is escaped", "a < b", `<div class="document-text">a &lt; b</div>`},
		{"markup is verbatim", "<p>Hi <b>there</b></p>", `<div class="document-html"><p>Hi <b>there</b></p></div>`},
		{"debug dump", false, `<div class="document-debug"><div class="debug-label">Debug: Document Structure</div><pre>false</pre></div>`},
		{"heading clamps", []any{map[string]any{"type": "heading", "level": 9.0, "children": []any{"x"}}},
			`<div class="document"><h4><span>x</span></h4></div>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteHTML(&buf, document.Render(tt.in)))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteTree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTree(&buf, document.Render([]any{
		nil,
		map[string]any{"type": "link", "url": "/a", "children": []any{"go"}},
	})))
	assert.Equal(t, "container #0\n  link #1 url=\"/a\"\n    text #0 \"go\"\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteTree(&buf, nil))
	assert.Equal(t, "(empty)\n", buf.String())
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "Title\nHello world and docs\none\ntwo\na", collapse(PlainText(document.Render(sampleDocument()))))
	assert.Equal(t, "Hi there", PlainText(document.Render("<p>Hi <b>there</b></p>")))
	assert.Equal(t, "", PlainText(nil))
}

func collapse(s string) string {
	var lines []string
	for _, l := range strings.Split(s, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return strings.Join(lines, "\n")
}

func sampleProject() api.Project {
	return api.Project{
		ID:                 "1",
		Title:              "Mosaic",
		Slug:               "mosaic",
		Category:           "web",
		TechStack:          "Go",
		GithubURL:          "https://github.com/example/mosaic",
		DevelopmentProcess: sampleDocument(),
		DesignInspiration:  "<p>maps</p>",
		DemoMedia:          []api.MediaItem{{ID: "m1", Title: "Home", Type: api.MediaImage, File: api.File{URL: "/home.png"}}},
		CreatedAt:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func withNow(t *testing.T, ts time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return ts }
	t.Cleanup(func() { now = prev })
}

func TestWritePlainProjects(t *testing.T) {
	withNow(t, time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC))
	p := sampleProject()
	bare := api.Project{Slug: "bare", Title: "Tab\there"}

	var buf bytes.Buffer
	require.NoError(t, WritePlainProjects(&buf, []api.Project{p, bare}, true))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"slug", "title", "category", "tech_stack", "created", "media"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"mosaic", "Mosaic", "web", "Go", "3", "days", "ago", "1"}, strings.Fields(lines[1]))
	assert.Contains(t, lines[2], `Tab\there`)
}

func TestWritePlainProject(t *testing.T) {
	withNow(t, time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC))
	p := sampleProject()
	var buf bytes.Buffer
	require.NoError(t, WritePlainProject(&buf, p, RenderDocuments(&document.Renderer{}, p)))
	out := buf.String()
	assert.Contains(t, out, "github_url")
	assert.NotContains(t, out, "project_url")
	assert.Contains(t, out, "[Development Process]\nTitle")
	assert.Contains(t, out, "[Design Inspiration]\nmaps")
}

func TestProjectMarkdown(t *testing.T) {
	withNow(t, time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC))
	p := sampleProject()
	md := ProjectMarkdown(p, RenderDocuments(&document.Renderer{}, p))

	assert.True(t, strings.HasPrefix(md, "# Mosaic\n\n**Category:** web | **Tech Stack:** Go | **Created:** 3 days ago\n\n[GitHub](https://github.com/example/mosaic)\n\n"), md)
	assert.Contains(t, md, "- [Home](/home.png) (image)")
	dev := strings.Index(md, "## Development Process")
	design := strings.Index(md, "## Design Inspiration")
	require.True(t, dev > 0 && design > dev)
	assert.Contains(t, md, "- two\n  1. a\n")
}

func TestWritePrettyProject(t *testing.T) {
	p := sampleProject()
	var buf bytes.Buffer
	err := WritePrettyProject(&buf, p, RenderDocuments(&document.Renderer{}, p), PrettyOptions{Style: "notty", WordWrap: 60})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Mosaic")
	assert.Contains(t, buf.String(), "Development Process")

	_, err = RenderPretty("# x", PrettyOptions{Style: "no-such-style"})
	assert.Error(t, err)
}

func TestJSONProject(t *testing.T) {
	p := sampleProject()
	var buf bytes.Buffer
	require.NoError(t, WriteJSONProject(&buf, p, RenderDocuments(&document.Renderer{}, p), false))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	dev, ok := got["developmentProcess"].(map[string]any)
	require.True(t, ok, "developmentProcess should be a rendered element")
	assert.Equal(t, "container", dev["kind"])
	design := got["designInspiration"].(map[string]any)
	assert.Equal(t, "markup", design["kind"])
	assert.Equal(t, "<p>maps</p>", design["text"])
	assert.Equal(t, "mosaic", got["slug"])
}

func TestJSONAndNDJSONProjects(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONProjects(&buf, nil, false))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	ps := []api.Project{{Slug: "a"}, {Slug: "b"}}
	require.NoError(t, WriteNDJSONProjects(&buf, ps))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], `"slug":"b"`)

	buf.Reset()
	require.NoError(t, WriteJSONElement(&buf, nil, false))
	assert.Equal(t, "null\n", buf.String())
}

func TestCarousel(t *testing.T) {
	empty := NewCarousel(nil)
	_, ok := empty.Current()
	assert.False(t, ok)
	assert.False(t, empty.Next())
	assert.Equal(t, "0 / 0", empty.Position())

	c := NewCarousel([]api.MediaItem{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	assert.False(t, c.HasPrev())
	assert.False(t, c.Prev())
	assert.Equal(t, "1 / 3", c.Position())

	assert.True(t, c.Next())
	assert.True(t, c.Next())
	assert.False(t, c.Next(), "stepping stops at the last item")
	cur, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "c", cur.ID)
	assert.Equal(t, "3 / 3", c.Position())

	assert.True(t, c.Prev())
	assert.Equal(t, 1, c.Index())
}
