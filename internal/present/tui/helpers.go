package tui

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/mithrel/showcase/pkg/api"
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

type projectSource []api.Project

func (s projectSource) String(i int) string {
	p := s[i]
	return p.Title + " " + p.Slug + " " + p.TechStack
}

func (s projectSource) Len() int { return len(s) }

// FilterProjects keeps projects in category (case-insensitive, empty means
// any) that fuzzy-match query, best matches first.
func FilterProjects(projects []api.Project, category, query string) []api.Project {
	category = strings.TrimSpace(category)
	var pool projectSource
	for _, p := range projects {
		if category == "" || strings.EqualFold(p.Category, category) {
			pool = append(pool, p)
		}
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return []api.Project(pool)
	}
	matches := fuzzy.FindFrom(query, pool)
	out := make([]api.Project, 0, len(matches))
	for _, mt := range matches {
		out = append(out, pool[mt.Index])
	}
	return out
}
