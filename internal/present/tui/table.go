package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/showcase/internal/document"
	"github.com/mithrel/showcase/internal/present/format"
	"github.com/mithrel/showcase/pkg/api"
)

// Loader fetches the full project for slug.
type Loader func(ctx context.Context, slug string) (api.Project, error)

type Options struct {
	Renderer *document.Renderer
	Pretty   format.PrettyOptions
	Load     Loader
	Headers  bool
}

// Browse opens an interactive Bubble Tea table to browse projects.
func Browse(ctx context.Context, projects []api.Project, opts Options) error {
	m := newModel(ctx, projects, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

type model struct {
	ctx     context.Context
	opts    Options
	table   table.Model
	all     []api.Project
	shown   []api.Project
	width   int
	height  int
	status  string
	lastDur time.Duration

	category string
	query    string

	detail *projectModal
	filter *filterModal
}

func newModel(ctx context.Context, projects []api.Project, opts Options) model {
	if opts.Renderer == nil {
		opts.Renderer = &document.Renderer{}
	}
	m := model{ctx: ctx, opts: opts, all: projects, shown: projects}
	m.initTable()
	return m
}

func (m *model) initTable() {
	cols := m.columnsFor(m.opts.Headers, 20, 36, 14, 16)
	m.table = table.New(table.WithColumns(cols), table.WithFocused(true))
	m.updateRows()
	m.applyStyles()
}

func (m *model) updateRows() {
	rows := make([]table.Row, 0, len(m.shown))
	for _, p := range m.shown {
		created := ""
		if !p.CreatedAt.IsZero() {
			created = p.CreatedAt.Local().Format("2006-01-02")
		}
		rows = append(rows, table.Row{p.Slug, p.Title, p.Category, created})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(0, len(rows)-1))
	}
}

// applyFilter narrows the listing to the current category and query.
func (m *model) applyFilter() {
	m.shown = FilterProjects(m.all, m.category, m.query)
	m.updateRows()
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applyLayout()
		if m.detail != nil {
			m.detail.resizeForTerm(msg.Width, msg.Height)
		}
		if m.filter != nil {
			m.filter.resizeForTerm(msg.Width, msg.Height)
		}
		return m, nil
	case projectLoadedMsg:
		m.lastDur = msg.dur
		if m.detail == nil || m.detail.project.Slug != msg.slug {
			return m, nil
		}
		if msg.err != nil {
			m.status = fmt.Sprintf("Load failed: %v", msg.err)
			return m, nil
		}
		m.status = "Loaded " + msg.slug
		m.detail.setProject(msg.project)
		return m, nil
	case tea.KeyMsg:
		if m.detail != nil {
			return m.updateDetail(msg)
		}
		if m.filter != nil {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q", "esc", "ctrl+c", "ctrl+q":
			return m, tea.Quit
		case "enter":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.shown) {
				return m, nil
			}
			sel := m.shown[idx]
			m.detail = newProjectModal(sel, m.opts.Renderer, m.opts.Pretty, m.width, m.height)
			if m.opts.Load == nil {
				return m, nil
			}
			m.status = "Loading " + sel.Slug + "…"
			return m, loadProjectCmd(m.ctx, m.opts.Load, sel.Slug)
		case "/", "f":
			m.filter = newFilterModal(m.category, m.query, m.width, m.height)
			return m, nil
		case "x":
			m.category, m.query = "", ""
			m.applyFilter()
			m.status = "Filters cleared"
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc", "backspace":
		m.detail = nil
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.update(msg)
	return m, cmd
}

func (m model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "ctrl+q":
		m.filter = nil
		return m, nil
	case "ctrl+x":
		m.filter.clear()
		return m, nil
	case "enter":
		m.category, m.query = m.filter.values()
		m.filter = nil
		m.applyFilter()
		m.status = fmt.Sprintf("%d of %d projects", len(m.shown), len(m.all))
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.update(msg)
	return m, cmd
}

func (m model) renderFooter() string {
	left := "↑/↓ navigate • enter=open • /=filter • x=clear • q=exit"
	if m.detail != nil {
		left = "←/→ media • ↑/↓ scroll • esc=back"
	}

	var right string
	if m.status != "" {
		if m.lastDur > 0 {
			right = fmt.Sprintf("%s (%s) • ", m.status, m.lastDur.Round(time.Millisecond))
		} else {
			right = m.status + " • "
		}
	}
	right += fmt.Sprintf("%d projects ", len(m.shown))

	width := m.table.Width()
	if m.width > width {
		width = m.width
	}
	space := width - lipgloss.Width(left) - lipgloss.Width(right)
	if space < 1 {
		space = 1
	}
	return left + strings.Repeat(" ", space) + right
}

func (m model) View() string {
	base := "(no projects)\n"
	if len(m.shown) > 0 {
		base = m.table.View() + "\n"
	}
	base += m.renderFooter() + "\n"
	switch {
	case m.detail != nil:
		return m.renderOverlay(base, m.detail.View(), m.detail.width, m.detail.height)
	case m.filter != nil:
		return m.renderOverlay(base, m.filter.View(), m.filter.width, m.filter.height)
	}
	return base
}

func (m *model) applyLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	h := max(6, m.height-1)
	m.table.SetHeight(h)
	m.table.SetWidth(m.width)
	avail := m.width - 4
	if avail < 40 {
		return
	}
	slugW := 20
	createdW := 10
	categoryW := 14
	if avail < 80 {
		slugW = 12
	}
	titleW := avail - slugW - createdW - categoryW
	if titleW < 8 {
		titleW = 8
	}
	m.table.SetColumns(m.columnsFor(m.opts.Headers, slugW, titleW, categoryW, createdW))
}

func (m *model) applyStyles() {
	s := table.DefaultStyles()
	if m.opts.Headers {
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
	} else {
		s.Header = s.Header.
			BorderBottom(false).
			Bold(false)
	}
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	m.table.SetStyles(s)
}

// columnsFor returns columns with or without titles based on headers flag.
func (m *model) columnsFor(headers bool, slugW, titleW, categoryW, createdW int) []table.Column {
	titles := []string{"Slug", "Title", "Category", "Created"}
	if !headers {
		titles = []string{"", "", "", ""}
	}
	return []table.Column{
		{Title: titles[0], Width: slugW},
		{Title: titles[1], Width: titleW},
		{Title: titles[2], Width: categoryW},
		{Title: titles[3], Width: createdW},
	}
}
