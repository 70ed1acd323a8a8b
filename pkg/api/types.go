package api

import (
	"sort"
	"time"
)

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaGIF   MediaType = "gif"
	MediaVideo MediaType = "video"
)

type File struct {
	URL string `json:"url"`
}

type MediaItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	Type      MediaType `json:"type,omitempty"`
	File      File      `json:"file"`
	Caption   string    `json:"caption,omitempty"`
	AltText   string    `json:"altText,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Project is one portfolio entry as served by the content store. The two
// document fields hold rich-text values exactly as the store returned them;
// they are rendered with package document.
type Project struct {
	ID                 string      `json:"id"`
	Title              string      `json:"title"`
	Slug               string      `json:"slug"`
	Category           string      `json:"category"`
	TechStack          string      `json:"techStack"`
	ProjectURL         string      `json:"projectUrl,omitempty"`
	GithubURL          string      `json:"githubUrl,omitempty"`
	DevelopmentProcess any         `json:"developmentProcess,omitempty"`
	DesignInspiration  any         `json:"designInspiration,omitempty"`
	DemoMedia          []MediaItem `json:"demoMedia"`
	InspirationMedia   []MediaItem `json:"inspirationMedia"`
	CreatedAt          time.Time   `json:"createdAt"`
}

// Cover returns the first demo media item, if any.
func (p Project) Cover() (MediaItem, bool) {
	if len(p.DemoMedia) == 0 {
		return MediaItem{}, false
	}
	return p.DemoMedia[0], true
}

// ProjectsBySlug indexes projects by their slug.
type ProjectsBySlug map[string]Project

// Index builds a ProjectsBySlug; later duplicates replace earlier ones.
func Index(projects []Project) ProjectsBySlug {
	out := make(ProjectsBySlug, len(projects))
	for _, p := range projects {
		out[p.Slug] = p
	}
	return out
}

// Slugs returns the indexed slugs in sorted order.
func (m ProjectsBySlug) Slugs() []string {
	out := make([]string, 0, len(m))
	for s := range m {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

type ListQuery struct {
	Category string
	Limit    int
}

// DocumentField names a rich-text field of a Project.
type DocumentField string

const (
	FieldDevelopmentProcess DocumentField = "development-process"
	FieldDesignInspiration  DocumentField = "design-inspiration"
)

// Document returns the raw value stored under field.
func (p Project) Document(field DocumentField) (any, bool) {
	switch field {
	case FieldDevelopmentProcess:
		return p.DevelopmentProcess, true
	case FieldDesignInspiration:
		return p.DesignInspiration, true
	}
	return nil, false
}

// Title returns the section heading for a document field.
func (f DocumentField) Title() string {
	switch f {
	case FieldDevelopmentProcess:
		return "Development Process"
	case FieldDesignInspiration:
		return "Design Inspiration"
	}
	return string(f)
}
