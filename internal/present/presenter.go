package present

import (
	"context"
	"errors"
	"io"

	"github.com/mithrel/showcase/internal/document"
	"github.com/mithrel/showcase/internal/present/format"
	"github.com/mithrel/showcase/internal/present/tui"
	"github.com/mithrel/showcase/pkg/api"
)

type Mode int

const (
	ModePlain Mode = iota
	ModePretty
	ModeJSON
	ModeNDJSON
	ModeTUI
)

type Options struct {
	Mode       Mode
	JSONIndent bool
	Headers    bool
	Pretty     format.PrettyOptions
	// Renderer renders document fields; nil uses a non-logging renderer.
	Renderer *document.Renderer
	// Load fetches the full project for the TUI detail view. When nil the
	// listed project is shown as is.
	Load tui.Loader
}

// ParseMode parses a string like "plain", "pretty", "json", "ndjson", "tui".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "plain":
		return ModePlain, true
	case "pretty":
		return ModePretty, true
	case "json":
		return ModeJSON, true
	case "ndjson":
		return ModeNDJSON, true
	case "tui":
		return ModeTUI, true
	default:
		return ModeTUI, false
	}
}

func (o Options) renderer() *document.Renderer {
	if o.Renderer != nil {
		return o.Renderer
	}
	return &document.Renderer{}
}

// RenderProjects renders a project listing according to options.
func RenderProjects(ctx context.Context, w io.Writer, projects []api.Project, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONProjects(w, projects, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONProjects(w, projects)
	case ModeTUI:
		return tui.Browse(ctx, projects, tui.Options{
			Renderer: opts.renderer(),
			Pretty:   opts.Pretty,
			Load:     opts.Load,
			Headers:  opts.Headers,
		})
	default:
		return format.WritePlainProjects(w, projects, opts.Headers)
	}
}

// RenderProject renders a single project, documents included.
func RenderProject(ctx context.Context, w io.Writer, p api.Project, opts Options) error {
	docs := format.RenderDocuments(opts.renderer(), p)
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONProject(w, p, docs, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONProject(w, p, docs)
	case ModePlain:
		return format.WritePlainProject(w, p, docs)
	case ModePretty:
		return format.WritePrettyProject(w, p, docs, opts.Pretty)
	case ModeTUI:
		return errors.New("tui output is only available for project listings")
	default:
		return format.WritePlainProject(w, p, docs)
	}
}
