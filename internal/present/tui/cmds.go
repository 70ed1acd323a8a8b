package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mithrel/showcase/pkg/api"
)

// projectLoadedMsg carries the full project fetched for the detail view.
type projectLoadedMsg struct {
	slug    string
	project api.Project
	err     error
	dur     time.Duration
}

func loadProjectCmd(ctx context.Context, load Loader, slug string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		p, err := load(ctx, slug)
		return projectLoadedMsg{slug: slug, project: p, err: err, dur: time.Since(start)}
	}
}
