package format

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/mithrel/showcase/pkg/api"
)

// TSV columns: slug, title, category, tech_stack, created, media
var headerLine = "slug\ttitle\tcategory\ttech_stack\tcreated\tmedia\n"

// now is swapped in tests so relative times are stable.
var now = time.Now

func esc(field string) string {
	field = strings.ReplaceAll(field, "\t", "\\t")
	field = strings.ReplaceAll(field, "\n", "\\n")
	return field
}

// created renders a creation time relative to now, or "-" when unknown.
func created(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.RelTime(t, now(), "ago", "from now")
}

func mediaCount(p api.Project) string {
	n := len(p.DemoMedia) + len(p.InspirationMedia)
	if n == 0 {
		return "-"
	}
	return humanize.Comma(int64(n))
}

func WritePlainProjects(w io.Writer, projects []api.Project, headers bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, headerLine)
	}
	for _, p := range projects {
		line := fmt.Sprintf("%s\t%s\t%s\t%s\t%s\t%s\n",
			esc(p.Slug), esc(p.Title), esc(p.Category), esc(p.TechStack), created(p.CreatedAt), mediaCount(p))
		_, _ = io.WriteString(tw, line)
	}
	return tw.Flush()
}

// WritePlainProject writes one "key<TAB>value" line per field followed by the
// flattened text of each document.
func WritePlainProject(w io.Writer, p api.Project, docs Documents) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fields := [][2]string{
		{"slug", p.Slug},
		{"title", p.Title},
		{"category", p.Category},
		{"tech_stack", p.TechStack},
		{"project_url", p.ProjectURL},
		{"github_url", p.GithubURL},
		{"created", created(p.CreatedAt)},
		{"demo_media", humanize.Comma(int64(len(p.DemoMedia)))},
		{"inspiration_media", humanize.Comma(int64(len(p.InspirationMedia)))},
	}
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", f[0], esc(f[1]))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, d := range docs {
		text := strings.TrimSpace(PlainText(d.Element))
		if text == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "\n[%s]\n%s\n", d.Field.Title(), text); err != nil {
			return err
		}
	}
	return nil
}
