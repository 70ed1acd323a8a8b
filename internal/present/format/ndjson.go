package format

import (
	"io"

	"github.com/mithrel/showcase/pkg/api"
)

// WriteNDJSONProjects writes projects as newline-delimited JSON objects.
func WriteNDJSONProjects(w io.Writer, projects []api.Project) error {
	enc := newEncoder(w, false)
	for _, p := range projects {
		if err := enc.Encode(p); err != nil {
			return err
		}
	}
	return nil
}

// WriteNDJSONProject writes a single rendered project as one JSON line.
func WriteNDJSONProject(w io.Writer, p api.Project, docs Documents) error {
	return newEncoder(w, false).Encode(NewRenderedProject(p, docs))
}
