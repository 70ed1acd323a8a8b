package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	lipglossv2 "github.com/charmbracelet/lipgloss/v2"

	"github.com/mithrel/showcase/internal/document"
	"github.com/mithrel/showcase/internal/present/format"
	"github.com/mithrel/showcase/pkg/api"
)

// projectModal shows a rendered project page in a scrollable viewport with
// a demo media carousel line above it.
type projectModal struct {
	project  api.Project
	renderer *document.Renderer
	pretty   format.PrettyOptions
	carousel *format.Carousel
	vp       viewport.Model
	width    int
	height   int
	padX     int
	padY     int
	box      lipglossv2.Style
	content  string
}

func newProjectModal(p api.Project, r *document.Renderer, pretty format.PrettyOptions, termW, termH int) *projectModal {
	m := &projectModal{renderer: r, pretty: pretty, padX: 2, padY: 1}
	m.resizeForTerm(termW, termH)
	m.setProject(p)
	return m
}

func (m *projectModal) resizeForTerm(termW, termH int) {
	if termW <= 0 || termH <= 0 {
		termW, termH = 80, 24
	}
	w := int(float64(termW) * 0.7)
	if termW < 80 {
		w = termW - 4
	}
	if w < 40 {
		w = max(32, termW-2)
	}
	h := int(float64(termH) * 0.8)
	if termH < 20 {
		h = termH - 2
	}
	if h < 10 {
		h = max(8, termH-1)
	}
	m.width, m.height = w, h
	m.box = lipglossv2.NewStyle().
		Width(w).
		Height(h).
		Padding(m.padY, m.padX).
		Border(lipglossv2.RoundedBorder()).
		BorderForeground(lipglossv2.Color("63"))

	innerW := max(10, w-2-m.padX*2)
	// two lines for the carousel header
	innerH := max(5, h-2-m.padY*2-2)
	if m.vp.Width == 0 {
		m.vp = viewport.New(innerW, innerH)
	} else {
		m.vp.Width = innerW
		m.vp.Height = innerH
	}
	m.vp.SetContent(m.content)
}

// setProject renders p with glamour and resets the carousel.
func (m *projectModal) setProject(p api.Project) {
	m.project = p
	m.carousel = format.NewCarousel(p.DemoMedia)
	md := format.ProjectMarkdown(p, format.RenderDocuments(m.renderer, p))
	opts := m.pretty
	opts.WordWrap = m.vp.Width
	out, err := format.RenderPretty(md, opts)
	if err != nil {
		out = md
	}
	m.content = out
	m.vp.SetContent(out)
	m.vp.GotoTop()
}

func (m *projectModal) carouselLine() string {
	item, ok := m.carousel.Current()
	if !ok {
		return lipgloss.NewStyle().Faint(true).Render("no demo media")
	}
	label := item.Title
	if label == "" {
		label = item.File.URL
	}
	prev, next := "‹", "›"
	dim := lipgloss.NewStyle().Faint(true)
	if !m.carousel.HasPrev() {
		prev = dim.Render(prev)
	}
	if !m.carousel.HasNext() {
		next = dim.Render(next)
	}
	line := fmt.Sprintf("%s %s %s  %s", prev, m.carousel.Position(), next, label)
	if item.Type != "" {
		line += dim.Render(fmt.Sprintf(" (%s)", item.Type))
	}
	return line
}

func (m *projectModal) update(msg tea.Msg) (*projectModal, tea.Cmd) {
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.resizeForTerm(x.Width, x.Height)
		return m, nil
	case tea.KeyMsg:
		switch x.String() {
		case "left", "h":
			m.carousel.Prev()
			return m, nil
		case "right", "l":
			m.carousel.Next()
			return m, nil
		}
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *projectModal) View() string {
	header := lipgloss.NewStyle().Bold(true).Render(m.project.Title)
	body := strings.Join([]string{header + "  " + m.carouselLine(), "", m.vp.View()}, "\n")
	return m.box.Render(body)
}
