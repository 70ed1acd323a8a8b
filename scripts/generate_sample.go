package main

import (
	"encoding/json"
	"fmt"
	mrand "math/rand"
	"os"
	"strings"
	"time"

	"github.com/mithrel/showcase/pkg/api"
)

// Writes a deterministic sample catalog for `showcase projects import`.
func main() {
	// Deterministic seed for reproducible output
	mr := mrand.New(mrand.NewSource(42))

	categories := []string{"web", "games", "tools", "data visualization"}
	stacks := []string{"Go", "TypeScript", "React", "SQLite", "WebGL", "Rust", "PostgreSQL", "Tailwind"}

	const total = 24
	out := make([]api.Project, 0, total)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < total; i++ {
		slug := fmt.Sprintf("sample-project-%02d", i+1)
		created := base.Add(-time.Duration(72*i+mr.Intn(48)) * time.Hour)
		p := api.Project{
			ID:                 fmt.Sprintf("sample-%02d", i+1),
			Title:              fmt.Sprintf("Sample Project %02d", i+1),
			Slug:               slug,
			Category:           categories[mr.Intn(len(categories))],
			TechStack:          strings.Join(pick(mr, stacks, 1+mr.Intn(3)), ", "),
			GithubURL:          "https://github.com/example/" + slug,
			DevelopmentProcess: sampleDocument(mr, i+1),
			DemoMedia:          sampleMedia(mr, slug, 1+mr.Intn(3), created),
			CreatedAt:          created,
		}
		// Roughly a third carry legacy HTML, a few nothing at all
		switch r := mr.Float64(); {
		case r < 0.35:
			p.DesignInspiration = fmt.Sprintf("<p>Inspired by <em>%s</em> projects.</p>", p.Category)
		case r < 0.85:
			p.DesignInspiration = map[string]any{"document": []any{
				paragraph(text("Moodboard notes for "), map[string]any{"text": p.Title, "italic": true}),
			}}
		}
		if mr.Float64() < 0.5 {
			p.ProjectURL = "https://example.com/" + slug
			p.InspirationMedia = sampleMedia(mr, slug+"-inspiration", 1, created)
		}
		out = append(out, p)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

func sampleDocument(r *mrand.Rand, n int) map[string]any {
	steps := make([]any, 0, 4)
	for i := 0; i < 2+r.Intn(3); i++ {
		steps = append(steps, map[string]any{"type": "list-item", "children": []any{
			paragraph(text(fmt.Sprintf("Milestone %d", i+1))),
		}})
	}
	return map[string]any{"document": []any{
		map[string]any{"type": "heading", "level": 2, "children": []any{text("Overview")}},
		paragraph(
			text(fmt.Sprintf("Sample project %02d was built in ", n)),
			map[string]any{"text": fmt.Sprintf("%d weeks", 2+r.Intn(10)), "bold": true},
			text(". See the "),
			map[string]any{"type": "link", "url": "https://example.com/notes", "children": []any{text("notes")}},
			text("."),
		),
		map[string]any{"type": "ordered-list", "children": steps},
	}}
}

func paragraph(children ...any) map[string]any {
	return map[string]any{"type": "paragraph", "children": children}
}

func text(s string) map[string]any {
	return map[string]any{"text": s}
}

func sampleMedia(r *mrand.Rand, prefix string, k int, created time.Time) []api.MediaItem {
	types := []api.MediaType{api.MediaImage, api.MediaImage, api.MediaGIF, api.MediaVideo}
	out := make([]api.MediaItem, k)
	for i := range out {
		typ := types[r.Intn(len(types))]
		ext := map[api.MediaType]string{api.MediaImage: "png", api.MediaGIF: "gif", api.MediaVideo: "mp4"}[typ]
		out[i] = api.MediaItem{
			ID:        fmt.Sprintf("%s-m%d", prefix, i+1),
			Title:     fmt.Sprintf("Screen %d", i+1),
			Type:      typ,
			File:      api.File{URL: fmt.Sprintf("/media/%s-%d.%s", prefix, i+1, ext)},
			AltText:   fmt.Sprintf("%s screenshot %d", prefix, i+1),
			CreatedAt: created,
		}
	}
	return out
}

func pick(r *mrand.Rand, pool []string, k int) []string {
	if k >= len(pool) {
		k = len(pool)
	}
	idx := r.Perm(len(pool))[:k]
	out := make([]string, k)
	for i, j := range idx {
		out[i] = pool[j]
	}
	return out
}
