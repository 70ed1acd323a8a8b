package site

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/net/html"

	"github.com/mithrel/showcase/internal/db"
	"github.com/mithrel/showcase/internal/document"
	"github.com/mithrel/showcase/internal/present/format"
	"github.com/mithrel/showcase/pkg/api"
)

// Builder writes the whole site as static files: index.html, one
// project/<slug>/index.html per project and 404.html.
type Builder struct {
	Store    db.Store
	Renderer *document.Renderer
	Title    string
	OutDir   string
	Log      *log.Logger
}

// BuildReport lists the files written, relative to OutDir.
type BuildReport struct {
	Files []string
	Bytes int64
}

func (r BuildReport) String() string {
	return fmt.Sprintf("%s files, %s", humanize.Comma(int64(len(r.Files))), humanize.Bytes(uint64(r.Bytes)))
}

func (b *Builder) logf(msg string, args ...any) {
	if b.Log != nil {
		b.Log.Printf(msg, args...)
	}
}

// Build renders every page from the catalog.
func (b *Builder) Build(ctx context.Context) (BuildReport, error) {
	var rep BuildReport
	if b.OutDir == "" {
		return rep, fmt.Errorf("output directory is required")
	}
	projects, err := b.Store.ListProjects(ctx, api.ListQuery{})
	if err != nil {
		return rep, fmt.Errorf("list projects: %w", err)
	}
	renderer := b.Renderer
	if renderer == nil {
		renderer = &document.Renderer{}
	}

	if err := b.write(&rep, "index.html", IndexPage(b.Title, projects)); err != nil {
		return rep, err
	}
	for _, p := range projects {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		if err := db.ValidSlug(p.Slug); err != nil {
			return rep, fmt.Errorf("project %q: %w", p.Slug, err)
		}
		rel := filepath.Join("project", p.Slug, "index.html")
		if err := b.write(&rep, rel, ProjectPage(b.Title, p, format.RenderDocuments(renderer, p))); err != nil {
			return rep, err
		}
	}
	if err := b.write(&rep, "404.html", NotFoundPage(b.Title)); err != nil {
		return rep, err
	}
	b.logf("build: wrote %s to %s", rep, b.OutDir)
	return rep, nil
}

func (b *Builder) write(rep *BuildReport, rel string, n *html.Node) error {
	var buf bytes.Buffer
	if err := Write(&buf, n); err != nil {
		return fmt.Errorf("render %s: %w", rel, err)
	}
	path, err := b.within(rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	rep.Files = append(rep.Files, filepath.ToSlash(rel))
	rep.Bytes += int64(buf.Len())
	return nil
}

// within joins rel onto OutDir and refuses paths that leave it.
func (b *Builder) within(rel string) (string, error) {
	root := filepath.Clean(b.OutDir)
	path := filepath.Join(root, rel)
	r, err := filepath.Rel(root, path)
	if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) || filepath.IsAbs(r) {
		return "", fmt.Errorf("write %s: path escapes %s", rel, root)
	}
	return path, nil
}
