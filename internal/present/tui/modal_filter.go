package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	lipglossv2 "github.com/charmbracelet/lipgloss/v2"
)

// filterModal edits the category and search query of the listing.
type filterModal struct {
	inputs []textinput.Model
	focus  int
	width  int
	height int
	box    lipglossv2.Style
}

func newFilterModal(category, query string, termW, termH int) *filterModal {
	m := &filterModal{inputs: []textinput.Model{
		newFilterInput("category: ", "web", category),
		newFilterInput("search:   ", "title, slug or stack", query),
	}}
	m.setFocus(0)
	m.resizeForTerm(termW, termH)
	return m
}

func newFilterInput(prompt, placeholder, value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = placeholder
	ti.SetValue(value)
	return ti
}

func (m *filterModal) resizeForTerm(termW, termH int) {
	if termW <= 0 || termH <= 0 {
		termW, termH = 80, 24
	}
	w := int(float64(termW) * 0.5)
	if w < 46 {
		w = max(42, termW-2)
	}
	if w > 80 {
		w = 80
	}
	m.width, m.height = w, 9
	m.box = lipglossv2.NewStyle().
		Width(w).
		Height(m.height).
		Padding(1, 2).
		Border(lipglossv2.RoundedBorder()).
		BorderForeground(lipglossv2.Color("63"))
	inner := max(12, w-6)
	for i := range m.inputs {
		m.inputs[i].Width = max(12, inner-lipgloss.Width(m.inputs[i].Prompt))
	}
}

func (m *filterModal) setFocus(idx int) {
	m.focus = idx
	for i := range m.inputs {
		if i == idx {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *filterModal) clear() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
}

func (m *filterModal) values() (category, query string) {
	return strings.TrimSpace(m.inputs[0].Value()), strings.TrimSpace(m.inputs[1].Value())
}

func (m *filterModal) update(msg tea.Msg) (*filterModal, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "tab", "down":
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *filterModal) View() string {
	header := lipgloss.NewStyle().Bold(true).Render("Filter projects")
	help := lipgloss.NewStyle().Faint(true).Render("enter=apply • esc=cancel • tab=next • ctrl+x=clear")
	lines := []string{header, ""}
	for _, in := range m.inputs {
		lines = append(lines, in.View())
	}
	lines = append(lines, "", help)
	return m.box.Render(strings.Join(lines, "\n"))
}
