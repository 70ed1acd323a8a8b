package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/showcase/internal/document"
	"github.com/mithrel/showcase/pkg/api"
)

func newEncoder(w io.Writer, indent bool) *json.Encoder {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	return enc
}

func WriteJSONProjects(w io.Writer, projects []api.Project, indent bool) error {
	if projects == nil {
		projects = []api.Project{}
	}
	return newEncoder(w, indent).Encode(projects)
}

// RenderedProject is a project whose document fields have been replaced by
// their rendered element trees.
type RenderedProject struct {
	api.Project
	DevelopmentProcess *document.Element `json:"developmentProcess,omitempty"`
	DesignInspiration  *document.Element `json:"designInspiration,omitempty"`
}

func NewRenderedProject(p api.Project, docs Documents) RenderedProject {
	out := RenderedProject{Project: p}
	for _, d := range docs {
		switch d.Field {
		case api.FieldDevelopmentProcess:
			out.DevelopmentProcess = d.Element
		case api.FieldDesignInspiration:
			out.DesignInspiration = d.Element
		}
	}
	return out
}

func WriteJSONProject(w io.Writer, p api.Project, docs Documents, indent bool) error {
	return newEncoder(w, indent).Encode(NewRenderedProject(p, docs))
}

// WriteJSONElement writes a rendered element tree. A nil tree is written as
// JSON null.
func WriteJSONElement(w io.Writer, el *document.Element, indent bool) error {
	return newEncoder(w, indent).Encode(el)
}
